// Package permalink resolves the canonical URL path for every document in
// the archive. A front-matter permalink override always wins; otherwise the
// collection's route template expands from the document's date and slug.
package permalink

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

var (
	// ErrSlugRequired indicates a document without a slug cannot resolve.
	ErrSlugRequired = errors.New("permalink: slug is required")
	// ErrDateRequired indicates a dated route template needs a publish date.
	ErrDateRequired = errors.New("permalink: post date is required for dated routes")
	// ErrMalformed indicates a front-matter override violates the contract.
	ErrMalformed = errors.New("permalink: malformed permalink")
)

const (
	groupPosts = "posts"
	groupPages = "pages"
	routeEntry = "entry"

	defaultPostsRoute = "/:year/:month/:slug"
	defaultPagesRoute = "/:slug"
)

// Config captures route templates and normalization style.
type Config struct {
	// Posts is the route template for dated entries. Parameters :year,
	// :month, :day, and :slug are recognized.
	Posts string
	// Pages is the route template for undated documents.
	Pages string
	// TrailingSlash controls whether resolved permalinks end with a slash.
	TrailingSlash bool
}

// Resolver expands route templates through a go-urlkit route manager.
type Resolver struct {
	manager       *urlkit.RouteManager
	templates     map[string]string
	trailingSlash bool

	mu         sync.RWMutex
	groupCache map[string]*urlkit.Group
}

// New constructs a resolver from the supplied route templates.
func New(cfg Config) *Resolver {
	posts := strings.TrimSpace(cfg.Posts)
	if posts == "" {
		posts = defaultPostsRoute
	}
	pages := strings.TrimSpace(cfg.Pages)
	if pages == "" {
		pages = defaultPagesRoute
	}

	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:  groupPosts,
				Paths: map[string]string{routeEntry: strings.TrimSuffix(posts, "/")},
			},
			{
				Name:  groupPages,
				Paths: map[string]string{routeEntry: strings.TrimSuffix(pages, "/")},
			},
		},
	})

	return &Resolver{
		manager: manager,
		templates: map[string]string{
			groupPosts: posts,
			groupPages: pages,
		},
		trailingSlash: cfg.TrailingSlash,
		groupCache:    make(map[string]*urlkit.Group),
	}
}

// Resolve returns the canonical permalink for a parsed document.
func (r *Resolver) Resolve(doc *interfaces.Document) (string, error) {
	if doc == nil {
		return "", ErrSlugRequired
	}
	if override := strings.TrimSpace(doc.FrontMatter.Permalink); override != "" {
		return r.Normalize(override)
	}
	return r.ResolveParts(doc.Collection, doc.Slug, doc.Date)
}

// ResolveParts expands the collection's route template from entry fields,
// zero-padding date parameters.
func (r *Resolver) ResolveParts(collection, slug string, date *time.Time) (string, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return "", ErrSlugRequired
	}

	groupName := groupPages
	if strings.EqualFold(strings.TrimSpace(collection), groupPosts) {
		groupName = groupPosts
	}

	group, err := r.group(groupName)
	if err != nil {
		return "", err
	}

	if dated(r.templates[groupName]) && date == nil {
		return "", ErrDateRequired
	}

	builder, err := r.safeBuilder(group, routeEntry)
	if err != nil {
		return "", err
	}
	builder.WithParam("slug", slug)
	if date != nil {
		builder.WithParam("year", fmt.Sprintf("%04d", date.Year()))
		builder.WithParam("month", fmt.Sprintf("%02d", int(date.Month())))
		builder.WithParam("day", fmt.Sprintf("%02d", date.Day()))
	}

	url, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("permalink: build %s/%s: %w", groupName, slug, err)
	}
	return r.Normalize(url)
}

// Normalize validates a permalink against the contract and applies the
// configured trailing-slash style.
func (r *Resolver) Normalize(permalink string) (string, error) {
	trimmed := strings.TrimSpace(permalink)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty", ErrMalformed)
	}
	if !strings.HasPrefix(trimmed, "/") {
		return "", fmt.Errorf("%w: %q must start with /", ErrMalformed, permalink)
	}
	if strings.Contains(trimmed, " ") {
		return "", fmt.Errorf("%w: %q contains spaces", ErrMalformed, permalink)
	}
	if strings.Contains(trimmed, "//") {
		return "", fmt.Errorf("%w: %q contains empty segments", ErrMalformed, permalink)
	}

	if trimmed == "/" {
		return trimmed, nil
	}
	trimmed = strings.TrimSuffix(trimmed, "/")
	if r.trailingSlash {
		trimmed += "/"
	}
	return trimmed, nil
}

func (r *Resolver) group(name string) (*urlkit.Group, error) {
	r.mu.RLock()
	group, ok := r.groupCache[name]
	r.mu.RUnlock()
	if ok {
		return group, nil
	}

	group, err := r.lookupGroup(name)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.groupCache[name] = group
	r.mu.Unlock()
	return group, nil
}

// lookupGroup shields callers from urlkit's panic on unknown group names.
func (r *Resolver) lookupGroup(name string) (group *urlkit.Group, err error) {
	if r.manager == nil {
		return nil, errors.New("permalink: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("permalink: route group %q not found", name)
		}
	}()
	group = r.manager.Group(name)
	return group, err
}

func (r *Resolver) safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, errors.New("permalink: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("permalink: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}

func dated(template string) bool {
	return strings.Contains(template, ":year") ||
		strings.Contains(template, ":month") ||
		strings.Contains(template, ":day")
}
