package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/glamour"

	"github.com/goliatone/go-blog/cmd/blog/internal/bootstrap"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	var (
		configFile = flag.String("config", "", "Path to a YAML site config file")
		contentDir = flag.String("content", "", "Path to the content root (overrides config)")
		filePath   = flag.String("file", "", "Markdown file to preview, relative to the content root")
		format     = flag.String("format", "term", "Output format: term, html, or json")
	)

	flag.Parse()

	if *filePath == "" {
		log.Fatalf("-file is required")
	}

	ctx := context.Background()

	module, err := moduleBuilder(ctx, bootstrap.Options{
		ConfigFile: *configFile,
		ContentDir: *contentDir,
	})
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}

	docs := module.Module.Documents()
	doc, err := docs.Load(ctx, *filePath, interfaces.LoadOptions{})
	if err != nil {
		log.Fatalf("load document: %v", err)
	}

	switch *format {
	case "json":
		if err := printJSON(ctx, docs, doc); err != nil {
			log.Fatalf("render json: %v", err)
		}
	case "html":
		html, err := docs.RenderDocument(ctx, doc, interfaces.ParseOptions{})
		if err != nil {
			log.Fatalf("render html: %v", err)
		}
		fmt.Fprintln(os.Stdout, string(html))
	default:
		if err := printTerm(doc); err != nil {
			log.Fatalf("render terminal preview: %v", err)
		}
	}
}

func printTerm(doc *interfaces.Document) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return err
	}
	out, err := renderer.Render(string(doc.Body))
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s (%s/%s)\n", doc.FrontMatter.Title, doc.Collection, doc.Slug)
	fmt.Fprint(os.Stdout, out)
	return nil
}

func printJSON(ctx context.Context, docs interfaces.DocumentService, doc *interfaces.Document) error {
	html, err := docs.RenderDocument(ctx, doc, interfaces.ParseOptions{})
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(struct {
		Path        string                   `json:"path"`
		Collection  string                   `json:"collection"`
		Slug        string                   `json:"slug"`
		FrontMatter interfaces.FrontMatter   `json:"front_matter"`
		Outline     []interfaces.Section     `json:"outline"`
		Listings    []interfaces.CodeListing `json:"listings"`
		WordCount   int                      `json:"word_count"`
		HTML        string                   `json:"html"`
	}{
		Path:        doc.Path,
		Collection:  doc.Collection,
		Slug:        doc.Slug,
		FrontMatter: doc.FrontMatter,
		Outline:     doc.Outline,
		Listings:    doc.Listings,
		WordCount:   doc.WordCount,
		HTML:        string(html),
	})
}
