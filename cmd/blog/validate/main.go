package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/cmd/blog/internal/bootstrap"
	contentcmd "github.com/goliatone/go-blog/internal/commands/content"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	var (
		configFile = flag.String("config", "", "Path to a YAML site config file")
		contentDir = flag.String("content", "", "Path to the content root (overrides config)")
		pattern    = flag.String("pattern", "", "Glob pattern for discovering markdown files")
		strict     = flag.Bool("strict", false, "Treat warnings as failures")
		format     = flag.String("format", "text", "Output format: text or json")
	)

	flag.Parse()

	ctx := context.Background()

	module, err := moduleBuilder(ctx, bootstrap.Options{
		ConfigFile: *configFile,
		ContentDir: *contentDir,
		Pattern:    *pattern,
	})
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}

	result, err := module.Module.Validate(ctx, contentcmd.ValidateContentMessage{
		Strict: *strict,
	})
	if err != nil {
		log.Fatalf("validate content: %v", err)
	}

	switch *format {
	case "json":
		if err := json.NewEncoder(os.Stdout).Encode(result); err != nil {
			log.Fatalf("encode result: %v", err)
		}
	default:
		printText(result)
	}

	if result.Failed {
		os.Exit(1)
	}
}

func printText(result *blog.ValidateContentResult) {
	fmt.Fprintf(os.Stdout, "checked %d document(s)\n", result.Documents)
	for _, issue := range result.Issues {
		fmt.Fprintf(os.Stdout, "%s: [%s] %s: %s\n", issue.Severity, issue.Rule, issue.Path, issue.Message)
	}
	if len(result.Issues) == 0 {
		fmt.Fprintln(os.Stdout, "no issues found")
	}
}
