package bloghttp

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-blog/internal/archive"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/validation"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// API registers read-only endpoints over the archive.
type API struct {
	basePath  string
	archive   archive.Service
	siteTitle string
	baseURL   string
	logger    interfaces.Logger
}

// Option mutates the API configuration.
type Option func(*API)

// New constructs an API instance.
func New(service archive.Service, opts ...Option) *API {
	api := &API{
		basePath:  "/blog",
		archive:   service,
		siteTitle: "Blog",
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/blog").
func WithBasePath(path string) Option {
	return func(api *API) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithSiteTitle sets the title advertised on the feed.
func WithSiteTitle(title string) Option {
	return func(api *API) {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			api.siteTitle = trimmed
		}
	}
}

// WithBaseURL sets the absolute site URL used to build feed item links.
func WithBaseURL(baseURL string) Option {
	return func(api *API) {
		api.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	}
}

// WithLogger injects the request logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// RegisterRoutes mounts every endpoint on the supplied mux.
func (api *API) RegisterRoutes(mux *http.ServeMux) {
	if api == nil || mux == nil {
		return
	}
	base := joinPath(api.basePath, "")

	mux.HandleFunc("GET "+joinPath(base, "entries"), api.handleEntriesList)
	mux.HandleFunc("GET "+joinPath(base, "entries")+"/{id}", api.handleEntryGet)
	mux.HandleFunc("GET "+joinPath(base, "entries")+"/{collection}/{slug}", api.handleEntryGetBySlug)
	mux.HandleFunc("GET "+joinPath(base, "tags"), api.handleTags)
	mux.HandleFunc("GET "+joinPath(base, "categories"), api.handleCategories)
	mux.HandleFunc("GET "+joinPath(base, "feed.json"), api.handleFeed)
	mux.HandleFunc("GET "+joinPath(base, "schema"), api.handleSchema)
}

// handleSchema serves the front-matter contract so external authoring tools
// can validate before submitting content.
func (api *API) handleSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, validation.FrontMatterSchemaDocument())
}
