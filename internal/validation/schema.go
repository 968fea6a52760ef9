package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	crud "github.com/goliatone/go-crud"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrContractValidation is the sentinel every payload validation failure
// unwraps to.
var ErrContractValidation = errors.New("validation: front matter contract violated")

// SchemaResource identifies the front-matter contract in schema registries.
const (
	SchemaResource       = "front_matter"
	SchemaResourcePlural = "front_matters"
)

// frontMatterContract pins the shapes of the five recognized keys. The
// contract is open: unknown keys are allowed so authors can carry custom
// values, but the recognized keys must keep their declared shapes.
var frontMatterContract = map[string]any{
	"$schema":     "https://json-schema.org/draft/2020-12/schema",
	"$id":         "blog://schemas/front-matter.json",
	"title":       "FrontMatter",
	"description": "Metadata block at the top of a content file",
	"type":        "object",
	"properties": map[string]any{
		"layout": map[string]any{
			"type":        "string",
			"description": "Layout applied by the external publishing pipeline",
		},
		"title": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"permalink": map[string]any{
			"type":        "string",
			"pattern":     "^/",
			"description": "Canonical URL path override; must start with /",
		},
		"tags": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"categories": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	},
	"additionalProperties": true,
}

var (
	compileOnce   sync.Once
	compiled      *jsonschema.Schema
	compiledError error
)

// ValidationIssue captures a single contract failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// PayloadValidationError surfaces contract violations with schema-aware context.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrContractValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrContractValidation
}

// Issues extracts contract issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// FrontMatterSchemaDocument returns a copy of the contract so callers can
// serve or register it without mutating the compiled original.
func FrontMatterSchemaDocument() map[string]any {
	return cloneMap(frontMatterContract)
}

// ValidateFrontMatter checks decoded front-matter metadata against the
// contract, returning a PayloadValidationError with one issue per cause.
func ValidateFrontMatter(meta map[string]any) error {
	schema, err := contractSchema()
	if err != nil {
		return fmt.Errorf("validation: compile front matter contract: %w", err)
	}
	if meta == nil {
		meta = map[string]any{}
	}
	if err := schema.Validate(normalizePayload(meta)); err != nil {
		return &PayloadValidationError{
			Issues: Issues(err),
			Cause:  err,
		}
	}
	return nil
}

// RegisterSchemaDocument publishes the contract in go-crud's schema registry
// so embedding applications can expose it over their own APIs.
func RegisterSchemaDocument() bool {
	return crud.RegisterSchemaDocument(SchemaResource, SchemaResourcePlural, FrontMatterSchemaDocument())
}

func contractSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled, compiledError = compileSchema(frontMatterContract)
	})
	return compiled, compiledError
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

// normalizePayload round-trips the metadata through JSON so YAML-decoded
// values (string slices, numeric types) take the shapes the validator
// expects.
func normalizePayload(meta map[string]any) any {
	encoded, err := json.Marshal(meta)
	if err != nil {
		return meta
	}
	var out any
	if err := json.Unmarshal(encoded, &out); err != nil {
		return meta
	}
	return out
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		switch typed := value.(type) {
		case map[string]any:
			out[key] = cloneMap(typed)
		case []any:
			out[key] = cloneSlice(typed)
		default:
			out[key] = value
		}
	}
	return out
}

func cloneSlice(input []any) []any {
	if input == nil {
		return nil
	}
	out := make([]any, len(input))
	for i, value := range input {
		switch typed := value.(type) {
		case map[string]any:
			out[i] = cloneMap(typed)
		case []any:
			out[i] = cloneSlice(typed)
		default:
			out[i] = value
		}
	}
	return out
}
