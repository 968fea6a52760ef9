package markup

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// ParseFrontMatter extracts metadata and body content from the provided
// source bytes. Every content file must open with a front-matter block; a
// missing block is an error rather than an empty result so malformed files
// never sneak into the archive. The returned body is the markup after the
// closing delimiter, byte for byte.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.MustParse(reader, &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse front matter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildDocument assembles an interfaces.Document from the supplied file path,
// raw content, and modification time. Rendering and structure extraction are
// intentionally left to the caller so loaders can decorate documents lazily.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.Document, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", path, err)
	}

	return &interfaces.Document{
		Path:         path,
		FrontMatter:  meta,
		Body:         body,
		LastModified: modified,
	}, nil
}

// frontMatterEnvelope pins the shapes of the recognized keys. Declaring tags
// and categories as string slices makes a scalar value a decode error, which
// is exactly the contract: sequences or nothing.
type frontMatterEnvelope struct {
	Layout     string         `yaml:"layout"`
	Title      string         `yaml:"title"`
	Permalink  string         `yaml:"permalink"`
	Tags       []string       `yaml:"tags"`
	Categories []string       `yaml:"categories"`
	Custom     map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	raw := make(map[string]any, len(env.Custom)+5)
	for key, value := range env.Custom {
		raw[key] = value
	}

	if env.Layout != "" {
		raw["layout"] = env.Layout
	}
	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Permalink != "" {
		raw["permalink"] = env.Permalink
	}
	if len(env.Tags) > 0 {
		raw["tags"] = append([]string(nil), env.Tags...)
	}
	if len(env.Categories) > 0 {
		raw["categories"] = append([]string(nil), env.Categories...)
	}

	return interfaces.FrontMatter{
		Layout:     env.Layout,
		Title:      env.Title,
		Permalink:  env.Permalink,
		Tags:       append([]string(nil), env.Tags...),
		Categories: append([]string(nil), env.Categories...),
		Custom:     cloneMap(env.Custom),
		Raw:        raw,
	}
}

// PublishDate resolves the publish date for a document. A custom date key in
// the front matter overrides the filename-derived date so authors can
// reschedule without renaming files.
func PublishDate(doc *interfaces.Document) *time.Time {
	if doc == nil {
		return nil
	}
	if override := customDate(doc.FrontMatter.Custom); override != nil {
		return override
	}
	return doc.Date
}

// PublishedFlag reads the optional published front-matter key. A nil result
// means the author left the flag unset.
func PublishedFlag(doc *interfaces.Document) *bool {
	if doc == nil || doc.FrontMatter.Custom == nil {
		return nil
	}
	value, ok := doc.FrontMatter.Custom["published"]
	if !ok {
		return nil
	}
	flag, ok := value.(bool)
	if !ok {
		return nil
	}
	return &flag
}

func customDate(custom map[string]any) *time.Time {
	if custom == nil {
		return nil
	}
	value, ok := custom["date"]
	if !ok {
		return nil
	}
	switch v := value.(type) {
	case time.Time:
		utc := v.UTC()
		return &utc
	case string:
		for _, layout := range []string{"2006-01-02", time.RFC3339} {
			if parsed, err := time.Parse(layout, v); err == nil {
				utc := parsed.UTC()
				return &utc
			}
		}
	}
	return nil
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
