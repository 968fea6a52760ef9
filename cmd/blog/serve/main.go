package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-blog/cmd/blog/internal/bootstrap"
	contentcmd "github.com/goliatone/go-blog/internal/commands/content"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	var (
		configFile = flag.String("config", "", "Path to a YAML site config file")
		contentDir = flag.String("content", "", "Path to the content root (overrides config)")
		driver     = flag.String("db", "", "Storage driver: memory, sqlite, or postgres")
		dsn        = flag.String("dsn", "", "Storage DSN for sqlite or postgres drivers")
		addr       = flag.String("addr", ":8080", "Listen address for the read API")
		skipSync   = flag.Bool("skip-sync", false, "Serve the archive as-is without syncing the content tree first")
		watch      = flag.Bool("watch", false, "Re-sync the archive when content files change")
	)

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	module, err := moduleBuilder(ctx, bootstrap.Options{
		ConfigFile: *configFile,
		ContentDir: *contentDir,
		Driver:     *driver,
		DSN:        *dsn,
		HTTP:       true,
		Watch:      *watch,
	})
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}

	if !*skipSync {
		result, err := module.Module.Sync(ctx, contentcmd.SyncContentMessage{})
		if err != nil {
			log.Fatalf("sync content: %v", err)
		}
		module.Logger.Info("content synced",
			"created", len(result.Created),
			"updated", len(result.Updated),
			"skipped", len(result.Skipped),
		)
	}

	if watcher := module.Module.Container().Watcher(); watcher != nil {
		if err := watcher.Start(ctx); err != nil {
			log.Fatalf("start watcher: %v", err)
		}
		defer watcher.Stop()

		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case event := <-watcher.Events():
					module.Logger.Info("content changed", "path", event.Path, "op", event.Op)
					if _, err := module.Module.Sync(ctx, contentcmd.SyncContentMessage{DeleteOrphaned: true}); err != nil {
						module.Logger.Error("re-sync failed", "error", err)
					}
				}
			}
		}()
	}

	api := module.Module.HTTPAPI()
	if api == nil {
		log.Fatalf("http api not configured")
	}

	mux := http.NewServeMux()
	api.RegisterRoutes(mux)

	server := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			module.Logger.Error("server shutdown", "error", err)
		}
	}()

	module.Logger.Info("serving read api", "addr", *addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("serve: %v", err)
	}
}
