package markup

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Structure captures what a document body is made of: its heading outline,
// its fenced code listings, and the prose word count. Listings are recorded
// verbatim and never evaluated.
type Structure struct {
	Outline   []interfaces.Section
	Listings  []interfaces.CodeListing
	WordCount int
}

// ExtractStructure parses the markup body and walks its block nodes in
// document order, descending into containers such as lists and blockquotes.
// Headings open sections, fenced code blocks become listings attributed to
// the enclosing section, and leaf text blocks contribute prose words.
// Heading titles and code are excluded from word counts so the totals
// describe actual prose.
func ExtractStructure(source []byte) Structure {
	engine := goldmark.New(goldmark.WithParserOptions(parser.WithAutoHeadingID()))
	root := engine.Parser().Parse(text.NewReader(source))

	structure := Structure{}
	current := -1

	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Heading:
			structure.Outline = append(structure.Outline, interfaces.Section{
				Level:  n.Level,
				Title:  strings.TrimSpace(string(nodeText(n, source))),
				Anchor: headingAnchor(n),
			})
			current = len(structure.Outline) - 1
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock:
			anchor := ""
			if current >= 0 {
				anchor = structure.Outline[current].Anchor
			}
			structure.Listings = append(structure.Listings, buildListing(n, source, anchor))
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph, *ast.TextBlock:
			words := len(strings.Fields(string(nodeText(node, source))))
			if words > 0 {
				structure.WordCount += words
				if current >= 0 {
					structure.Outline[current].WordCount += words
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return structure
}

func buildListing(block *ast.FencedCodeBlock, source []byte, section string) interfaces.CodeListing {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(source))
	}

	language := ""
	if lang := block.Language(source); len(lang) > 0 {
		language = string(lang)
	}

	return interfaces.CodeListing{
		Language: language,
		Code:     buf.String(),
		Lines:    lines.Len(),
		Section:  section,
	}
}

func headingAnchor(heading *ast.Heading) string {
	value, ok := heading.AttributeString("id")
	if !ok {
		return ""
	}
	switch id := value.(type) {
	case []byte:
		return string(id)
	case string:
		return id
	default:
		return ""
	}
}

// nodeText flattens the inline text content of a node. Fenced and indented
// code blocks keep their content in line segments rather than child nodes,
// so they naturally contribute nothing here.
func nodeText(node ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.Bytes()
}
