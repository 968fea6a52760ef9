package lint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/validation"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Rule identifiers reported on issues. Front-matter rules guard the metadata
// contract, body rules guard document structure, and repo rules only fire
// when checking a whole corpus.
const (
	RuleSchema             = "front-matter/schema"
	RuleTitle              = "front-matter/title"
	RuleLayout             = "front-matter/layout"
	RulePermalink          = "front-matter/permalink"
	RuleTags               = "front-matter/tags"
	RuleCategories         = "front-matter/categories"
	RulePostDate           = "path/post-date"
	RuleHeadingJump        = "body/heading-jump"
	RuleListingLanguage    = "body/listing-language"
	RuleDuplicateSlug      = "repo/duplicate-slug"
	RuleDuplicatePermalink = "repo/duplicate-permalink"
)

// PermalinkFunc resolves the canonical permalink for a document so the
// duplicate-permalink rule can compare resolved values instead of raw
// front-matter overrides.
type PermalinkFunc func(doc *interfaces.Document) (string, error)

// Config captures the site knowledge the rules need.
type Config struct {
	// Layouts lists the layout names the site recognizes. Empty disables
	// the layout rule; an empty layout on a document is always allowed.
	Layouts []string
}

// Option mutates the runner at construction time.
type Option func(*Runner)

// WithLogger injects the logger used for per-run reporting.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithPermalinkResolver supplies the resolver consulted by the
// duplicate-permalink rule. Without one, the rule compares front-matter
// overrides only.
func WithPermalinkResolver(fn PermalinkFunc) Option {
	return func(r *Runner) {
		r.resolve = fn
	}
}

// Runner applies the rule set to documents.
type Runner struct {
	layouts map[string]struct{}
	resolve PermalinkFunc
	logger  interfaces.Logger
}

// NewRunner builds a runner for the supplied site configuration.
func NewRunner(cfg Config, opts ...Option) *Runner {
	r := &Runner{
		logger: logging.NoOp(),
	}
	if len(cfg.Layouts) > 0 {
		r.layouts = make(map[string]struct{}, len(cfg.Layouts))
		for _, layout := range cfg.Layouts {
			trimmed := strings.ToLower(strings.TrimSpace(layout))
			if trimmed == "" {
				continue
			}
			r.layouts[trimmed] = struct{}{}
		}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CheckDocument applies every per-document rule.
func (r *Runner) CheckDocument(doc *interfaces.Document) []interfaces.Issue {
	if doc == nil {
		return nil
	}

	var issues []interfaces.Issue
	issues = append(issues, r.checkFrontMatter(doc)...)
	issues = append(issues, checkBody(doc)...)
	return issues
}

// Check applies the per-document rules to every document plus the
// corpus-level uniqueness rules, returning issues ordered by path.
func (r *Runner) Check(docs []*interfaces.Document) []interfaces.Issue {
	var issues []interfaces.Issue
	for _, doc := range docs {
		issues = append(issues, r.CheckDocument(doc)...)
	}
	issues = append(issues, r.checkCorpus(docs)...)

	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Path != issues[j].Path {
			return issues[i].Path < issues[j].Path
		}
		return issues[i].Rule < issues[j].Rule
	})

	if errs := CountErrors(issues); errs > 0 {
		r.logger.Warn("lint found contract violations", "errors", errs, "issues", len(issues))
	}
	return issues
}

func (r *Runner) checkFrontMatter(doc *interfaces.Document) []interfaces.Issue {
	var issues []interfaces.Issue
	meta := doc.FrontMatter

	if strings.TrimSpace(meta.Title) == "" {
		issues = append(issues, errorIssue(RuleTitle, doc.Path, "title is required"))
	}

	if err := validation.ValidateFrontMatter(meta.Raw); err != nil {
		for _, violation := range validation.Issues(err) {
			msg := violation.Message
			if location := strings.TrimSpace(violation.Location); location != "" {
				msg = fmt.Sprintf("%s: %s", location, violation.Message)
			}
			issues = append(issues, errorIssue(RuleSchema, doc.Path, msg))
		}
	}

	if r.layouts != nil && strings.TrimSpace(meta.Layout) != "" {
		if _, ok := r.layouts[strings.ToLower(strings.TrimSpace(meta.Layout))]; !ok {
			issues = append(issues, warningIssue(RuleLayout, doc.Path,
				fmt.Sprintf("layout %q is not a known layout", meta.Layout)))
		}
	}

	if permalink := strings.TrimSpace(meta.Permalink); permalink != "" {
		if msg := permalinkProblem(permalink); msg != "" {
			issues = append(issues, errorIssue(RulePermalink, doc.Path, msg))
		}
	}

	issues = append(issues, checkStringList(RuleTags, doc.Path, "tags", meta.Tags)...)
	issues = append(issues, checkStringList(RuleCategories, doc.Path, "categories", meta.Categories)...)

	if doc.Collection == "posts" && doc.Date == nil {
		issues = append(issues, errorIssue(RulePostDate, doc.Path,
			"post filename must carry a YYYY-MM-DD- date prefix"))
	}

	return issues
}

func checkBody(doc *interfaces.Document) []interfaces.Issue {
	var issues []interfaces.Issue

	previous := 0
	for _, section := range doc.Outline {
		if previous > 0 && section.Level > previous+1 {
			issues = append(issues, warningIssue(RuleHeadingJump, doc.Path,
				fmt.Sprintf("heading %q jumps from level %d to %d", section.Title, previous, section.Level)))
		}
		previous = section.Level
	}

	for i, listing := range doc.Listings {
		if strings.TrimSpace(listing.Language) == "" {
			issues = append(issues, warningIssue(RuleListingLanguage, doc.Path,
				fmt.Sprintf("fenced block %d has no language hint", i+1)))
		}
	}

	return issues
}

func (r *Runner) checkCorpus(docs []*interfaces.Document) []interfaces.Issue {
	var issues []interfaces.Issue

	slugs := map[string]string{}
	permalinks := map[string]string{}

	for _, doc := range docs {
		if doc == nil {
			continue
		}

		if slug := strings.TrimSpace(doc.Slug); slug != "" {
			key := doc.Collection + "/" + slug
			if first, ok := slugs[key]; ok {
				issues = append(issues, errorIssue(RuleDuplicateSlug, doc.Path,
					fmt.Sprintf("slug %q already used by %s", slug, first)))
			} else {
				slugs[key] = doc.Path
			}
		}

		permalink := r.documentPermalink(doc)
		if permalink == "" {
			continue
		}
		if first, ok := permalinks[permalink]; ok {
			issues = append(issues, errorIssue(RuleDuplicatePermalink, doc.Path,
				fmt.Sprintf("permalink %q already used by %s", permalink, first)))
		} else {
			permalinks[permalink] = doc.Path
		}
	}

	return issues
}

func (r *Runner) documentPermalink(doc *interfaces.Document) string {
	if r.resolve != nil {
		resolved, err := r.resolve(doc)
		if err == nil && strings.TrimSpace(resolved) != "" {
			return resolved
		}
		return strings.TrimSpace(doc.FrontMatter.Permalink)
	}
	return strings.TrimSpace(doc.FrontMatter.Permalink)
}

// permalinkProblem describes why a permalink violates the contract, or
// returns "" when it is well-formed.
func permalinkProblem(permalink string) string {
	switch {
	case !strings.HasPrefix(permalink, "/"):
		return fmt.Sprintf("permalink %q must start with /", permalink)
	case strings.Contains(permalink, " "):
		return fmt.Sprintf("permalink %q must not contain spaces", permalink)
	case strings.Contains(permalink, "//"):
		return fmt.Sprintf("permalink %q must not contain empty segments", permalink)
	default:
		return ""
	}
}

func checkStringList(rule, path, field string, values []string) []interfaces.Issue {
	var issues []interfaces.Issue
	seen := map[string]struct{}{}
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			issues = append(issues, errorIssue(rule, path,
				fmt.Sprintf("%s must not contain blank entries", field)))
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			issues = append(issues, errorIssue(rule, path,
				fmt.Sprintf("%s entry %q is duplicated", field, trimmed)))
			continue
		}
		seen[key] = struct{}{}
	}
	return issues
}

// HasErrors reports whether any issue is at error severity.
func HasErrors(issues []interfaces.Issue) bool {
	return CountErrors(issues) > 0
}

// CountErrors counts error-severity issues.
func CountErrors(issues []interfaces.Issue) int {
	count := 0
	for _, issue := range issues {
		if issue.Severity == interfaces.SeverityError {
			count++
		}
	}
	return count
}

// FilterErrors keeps only error-severity issues.
func FilterErrors(issues []interfaces.Issue) []interfaces.Issue {
	out := make([]interfaces.Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.Severity == interfaces.SeverityError {
			out = append(out, issue)
		}
	}
	return out
}

// Promote raises every warning to error severity, which is how strict
// validation runs treat style problems.
func Promote(issues []interfaces.Issue) []interfaces.Issue {
	out := make([]interfaces.Issue, len(issues))
	for i, issue := range issues {
		issue.Severity = interfaces.SeverityError
		out[i] = issue
	}
	return out
}

func errorIssue(rule, path, message string) interfaces.Issue {
	return interfaces.Issue{Rule: rule, Severity: interfaces.SeverityError, Path: path, Message: message}
}

func warningIssue(rule, path, message string) interfaces.Issue {
	return interfaces.Issue{Rule: rule, Severity: interfaces.SeverityWarning, Path: path, Message: message}
}
