package validation

import (
	"errors"
	"testing"
)

func TestValidateFrontMatterAcceptsRecognizedKeys(t *testing.T) {
	meta := map[string]any{
		"layout":     "post",
		"title":      "Transducers from first principles",
		"permalink":  "/2024/01/transducers/",
		"tags":       []string{"clojure", "functional-programming"},
		"categories": []string{"essays"},
	}

	if err := ValidateFrontMatter(meta); err != nil {
		t.Fatalf("expected valid front matter, got %v", err)
	}
}

func TestValidateFrontMatterAllowsUnknownKeys(t *testing.T) {
	meta := map[string]any{
		"title":     "About",
		"published": false,
		"series":    "fundamentals",
	}

	if err := ValidateFrontMatter(meta); err != nil {
		t.Fatalf("unknown keys should pass, got %v", err)
	}
}

func TestValidateFrontMatterRejectsScalarTags(t *testing.T) {
	meta := map[string]any{
		"title": "Broken",
		"tags":  "clojure",
	}

	err := ValidateFrontMatter(meta)
	if err == nil {
		t.Fatalf("expected scalar tags to violate the contract")
	}
	if !errors.Is(err, ErrContractValidation) {
		t.Fatalf("expected ErrContractValidation, got %v", err)
	}
	if issues := Issues(err); len(issues) == 0 {
		t.Fatalf("expected at least one issue")
	}
}

func TestValidateFrontMatterRejectsRelativePermalink(t *testing.T) {
	meta := map[string]any{
		"title":     "Broken",
		"permalink": "about/",
	}

	if err := ValidateFrontMatter(meta); err == nil {
		t.Fatalf("expected permalink without leading slash to fail")
	}
}

func TestValidateFrontMatterRejectsBlankTitle(t *testing.T) {
	meta := map[string]any{"title": ""}

	if err := ValidateFrontMatter(meta); err == nil {
		t.Fatalf("expected empty title to fail minLength")
	}
}

func TestValidateFrontMatterNilMetadata(t *testing.T) {
	if err := ValidateFrontMatter(nil); err != nil {
		t.Fatalf("nil metadata should validate (no recognized keys present), got %v", err)
	}
}

func TestFrontMatterSchemaDocumentIsCopied(t *testing.T) {
	doc := FrontMatterSchemaDocument()
	doc["properties"] = nil

	fresh := FrontMatterSchemaDocument()
	if fresh["properties"] == nil {
		t.Fatalf("mutating a returned document must not affect the contract")
	}
}

func TestRegisterSchemaDocument(t *testing.T) {
	if ok := RegisterSchemaDocument(); !ok {
		t.Fatalf("expected schema registration to succeed")
	}
}
