package bloghttp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goliatone/go-blog/internal/archive"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestMux(t *testing.T) (*http.ServeMux, archive.Service) {
	t.Helper()

	svc := archive.NewService(
		archive.NewMemoryEntryRepository(),
		archive.WithClock(func() time.Time { return fixedNow }),
	)
	seedEntries(t, svc)

	api := New(svc,
		WithSiteTitle("Field Notes"),
		WithBaseURL("https://example.dev"),
	)
	mux := http.NewServeMux()
	api.RegisterRoutes(mux)
	return mux, svc
}

func seedEntries(t *testing.T, svc archive.Service) {
	t.Helper()
	ctx := context.Background()

	older := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	inputs := []archive.UpsertEntryInput{
		{
			Path:       "posts/2024-01-15-transducers.md",
			Collection: "posts",
			Slug:       "transducers",
			Title:      "Transducers",
			Layout:     "post",
			Permalink:  "/2024/01/transducers/",
			Date:       &older,
			Tags:       []string{"clojure"},
			Categories: []string{"programming"},
			Checksum:   "aaa",
		},
		{
			Path:       "posts/2024-03-02-code-smells.md",
			Collection: "posts",
			Slug:       "code-smells",
			Title:      "Code Smells",
			Layout:     "post",
			Permalink:  "/2024/03/code-smells/",
			Date:       &newer,
			Tags:       []string{"clojure", "refactoring"},
			Categories: []string{"programming"},
			Checksum:   "bbb",
		},
		{
			Path:       "pages/about.md",
			Collection: "pages",
			Slug:       "about",
			Title:      "About",
			Layout:     "page",
			Permalink:  "/about/",
			Checksum:   "ccc",
		},
	}

	for _, input := range inputs {
		if _, err := svc.Upsert(ctx, input); err != nil {
			t.Fatalf("seed %s: %v", input.Slug, err)
		}
	}
}

func doRequest(t *testing.T, mux *http.ServeMux, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestEntriesListEndpoint(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doRequest(t, mux, http.MethodGet, "/blog/entries")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload entryListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Total != 3 || len(payload.Items) != 3 {
		t.Fatalf("expected three entries, got %+v", payload)
	}
	if payload.Items[0].Slug != "code-smells" {
		t.Fatalf("expected newest-first ordering, got %q first", payload.Items[0].Slug)
	}
}

func TestEntriesListEndpointFilters(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doRequest(t, mux, http.MethodGet, "/blog/entries?collection=posts&tag=refactoring")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload entryListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Total != 1 || payload.Items[0].Slug != "code-smells" {
		t.Fatalf("expected only code-smells, got %+v", payload)
	}

	rec = doRequest(t, mux, http.MethodGet, "/blog/entries?limit=1&offset=1")
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode paginated response: %v", err)
	}
	if payload.Total != 3 || len(payload.Items) != 1 {
		t.Fatalf("pagination must keep the full total, got %+v", payload)
	}
}

func TestEntriesListEndpointRejectsUnknownStatus(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doRequest(t, mux, http.MethodGet, "/blog/entries?status=pending")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEntryGetByID(t *testing.T) {
	mux, svc := newTestMux(t)

	entry, err := svc.GetBySlug(context.Background(), "posts", "transducers")
	if err != nil {
		t.Fatalf("seed lookup: %v", err)
	}

	rec := doRequest(t, mux, http.MethodGet, "/blog/entries/"+entry.ID.String())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got archive.Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Slug != "transducers" {
		t.Fatalf("unexpected slug %q", got.Slug)
	}

	rec = doRequest(t, mux, http.MethodGet, "/blog/entries/not-a-uuid")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", rec.Code)
	}
}

func TestEntryGetByCollectionAndSlug(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doRequest(t, mux, http.MethodGet, "/blog/entries/pages/about")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got archive.Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Permalink != "/about/" {
		t.Fatalf("unexpected permalink %q", got.Permalink)
	}

	rec = doRequest(t, mux, http.MethodGet, "/blog/entries/posts/missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTagsAndCategoriesEndpoints(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doRequest(t, mux, http.MethodGet, "/blog/tags")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var tags []archive.TermCount
	if err := json.Unmarshal(rec.Body.Bytes(), &tags); err != nil {
		t.Fatalf("decode tags: %v", err)
	}
	if len(tags) != 2 || tags[0].Name != "clojure" || tags[0].Count != 2 {
		t.Fatalf("unexpected tags: %+v", tags)
	}

	rec = doRequest(t, mux, http.MethodGet, "/blog/categories")
	var categories []archive.TermCount
	if err := json.Unmarshal(rec.Body.Bytes(), &categories); err != nil {
		t.Fatalf("decode categories: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "programming" {
		t.Fatalf("unexpected categories: %+v", categories)
	}
}

func TestFeedEndpoint(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doRequest(t, mux, http.MethodGet, "/blog/feed.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var feed jsonFeed
	if err := json.Unmarshal(rec.Body.Bytes(), &feed); err != nil {
		t.Fatalf("decode feed: %v", err)
	}
	if feed.Version != jsonFeedVersion {
		t.Fatalf("unexpected feed version %q", feed.Version)
	}
	if feed.Title != "Field Notes" {
		t.Fatalf("unexpected feed title %q", feed.Title)
	}
	if len(feed.Items) != 3 {
		t.Fatalf("expected three feed items, got %d", len(feed.Items))
	}
	if feed.Items[0].URL != "https://example.dev/2024/03/code-smells/" {
		t.Fatalf("unexpected item url %q", feed.Items[0].URL)
	}
	if feed.Items[0].DatePublished == "" {
		t.Fatal("dated items must carry date_published")
	}
}

func TestSchemaEndpoint(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doRequest(t, mux, http.MethodGet, "/blog/schema")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var schema map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &schema); err != nil {
		t.Fatalf("decode schema: %v", err)
	}
	if schema["title"] != "FrontMatter" {
		t.Fatalf("unexpected schema title %v", schema["title"])
	}
	properties, ok := schema["properties"].(map[string]any)
	if !ok {
		t.Fatalf("expected schema properties, got %v", schema)
	}
	if _, ok := properties["permalink"]; !ok {
		t.Fatal("expected the permalink property in the contract")
	}
}
