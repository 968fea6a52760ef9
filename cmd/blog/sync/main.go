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
		configFile     = flag.String("config", "", "Path to a YAML site config file")
		contentDir     = flag.String("content", "", "Path to the content root (overrides config)")
		pattern        = flag.String("pattern", "", "Glob pattern for discovering markdown files")
		driver         = flag.String("db", "", "Storage driver: memory, sqlite, or postgres")
		dsn            = flag.String("dsn", "", "Storage DSN for sqlite or postgres drivers")
		dryRun         = flag.Bool("dry-run", false, "Classify files without writing to the archive")
		deleteOrphaned = flag.Bool("delete-orphaned", false, "Archive entries whose backing file disappeared")
		format         = flag.String("format", "text", "Output format: text or json")
	)

	flag.Parse()

	ctx := context.Background()

	module, err := moduleBuilder(ctx, bootstrap.Options{
		ConfigFile: *configFile,
		ContentDir: *contentDir,
		Pattern:    *pattern,
		Driver:     *driver,
		DSN:        *dsn,
	})
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}

	result, err := module.Module.Sync(ctx, contentcmd.SyncContentMessage{
		DryRun:         *dryRun,
		DeleteOrphaned: *deleteOrphaned,
	})
	if err != nil {
		log.Fatalf("sync content: %v", err)
	}

	switch *format {
	case "json":
		if err := json.NewEncoder(os.Stdout).Encode(result); err != nil {
			log.Fatalf("encode result: %v", err)
		}
	default:
		printText(result, *dryRun)
	}

	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}

func printText(result *blog.SyncResult, dryRun bool) {
	if dryRun {
		fmt.Fprintln(os.Stdout, "dry run, no archive writes performed")
	}
	fmt.Fprintf(os.Stdout, "created: %d updated: %d skipped: %d orphaned: %d\n",
		len(result.Created), len(result.Updated), len(result.Skipped), len(result.Orphaned))
	for _, path := range result.Created {
		fmt.Fprintf(os.Stdout, "  created  %s\n", path)
	}
	for _, path := range result.Updated {
		fmt.Fprintf(os.Stdout, "  updated  %s\n", path)
	}
	for _, path := range result.Orphaned {
		fmt.Fprintf(os.Stdout, "  orphaned %s\n", path)
	}
	for _, issue := range result.Issues {
		fmt.Fprintf(os.Stdout, "%s: [%s] %s: %s\n", issue.Severity, issue.Rule, issue.Path, issue.Message)
	}
	for _, err := range result.Errors {
		fmt.Fprintf(os.Stdout, "error: %v\n", err)
	}
}
