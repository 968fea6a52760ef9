package markup

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// GoldmarkParser renders markup to HTML fragments through goldmark. It holds
// no per-call state, so one instance serves concurrent callers.
type GoldmarkParser struct {
	defaultOptions interfaces.ParseOptions
}

// NewGoldmarkParser builds a parser whose defaults apply to every Parse call.
// ParseWithOptions overrides them per invocation.
func NewGoldmarkParser(defaults interfaces.ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{defaultOptions: defaults}
}

// Parse renders markup with the parser's default configuration.
func (p *GoldmarkParser) Parse(markup []byte) ([]byte, error) {
	return p.ParseWithOptions(markup, p.defaultOptions)
}

// ParseWithOptions renders markup into an HTML fragment using the provided
// options.
func (p *GoldmarkParser) ParseWithOptions(markup []byte, opts interfaces.ParseOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := newGoldmarkEngine(opts).Convert(markup, &buf); err != nil {
		return nil, fmt.Errorf("markup parse: %w", err)
	}
	return buf.Bytes(), nil
}

func newGoldmarkEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	options := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	}
	if exts := resolveExtensions(opts.Extensions); len(exts) > 0 {
		options = append(options, goldmark.WithExtensions(exts...))
	}

	var render []renderer.Option
	if opts.HardWraps {
		render = append(render, html.WithHardWraps())
	}
	// Raw HTML passes through unless either safety toggle is set.
	if !opts.SafeMode && !opts.Sanitize {
		render = append(render, html.WithUnsafe())
	}
	if len(render) > 0 {
		options = append(options, goldmark.WithRendererOptions(render...))
	}

	return goldmark.New(options...)
}

// extensionRegistry maps configuration names to goldmark extenders. Unknown
// names are silently skipped so configs stay forward compatible.
var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func resolveExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM, extension.Linkify, extension.TaskList}
	}

	seen := make(map[string]struct{}, len(names))
	out := make([]goldmark.Extender, 0, len(names))
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if ext, ok := extensionRegistry[key]; ok {
			out = append(out, ext)
		}
	}
	return out
}
