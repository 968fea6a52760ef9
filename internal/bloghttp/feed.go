package bloghttp

import (
	"net/http"
	"time"

	"github.com/goliatone/go-blog/internal/archive"
)

const jsonFeedVersion = "https://jsonfeed.org/version/1.1"

type jsonFeed struct {
	Version     string         `json:"version"`
	Title       string         `json:"title"`
	HomePageURL string         `json:"home_page_url,omitempty"`
	FeedURL     string         `json:"feed_url,omitempty"`
	Items       []jsonFeedItem `json:"items"`
}

type jsonFeedItem struct {
	ID            string   `json:"id"`
	URL           string   `json:"url,omitempty"`
	Title         string   `json:"title"`
	DatePublished string   `json:"date_published,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

// handleFeed serves the archive's visible entries as a JSON Feed 1.1
// document. The feed carries repository metadata only; body rendering stays
// with the publishing pipeline.
func (api *API) handleFeed(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.archive == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	entries, _, err := api.archive.List(r.Context(), archive.ListOptions{})
	if err != nil {
		writeError(w, err)
		return
	}

	feed := jsonFeed{
		Version: jsonFeedVersion,
		Title:   api.siteTitle,
		Items:   make([]jsonFeedItem, 0, len(entries)),
	}
	if api.baseURL != "" {
		feed.HomePageURL = api.baseURL + "/"
		feed.FeedURL = api.baseURL + joinPath(api.basePath, "feed.json")
	}

	for _, entry := range entries {
		item := jsonFeedItem{
			ID:    entry.ID.String(),
			Title: entry.Title,
			URL:   api.entryURL(entry),
		}
		if entry.Date != nil {
			item.DatePublished = entry.Date.Format(time.RFC3339)
		}
		if len(entry.Tags) > 0 {
			item.Tags = append([]string(nil), entry.Tags...)
		}
		feed.Items = append(feed.Items, item)
	}

	writeJSON(w, http.StatusOK, feed)
}

func (api *API) entryURL(entry *archive.Entry) string {
	if entry.Permalink == "" {
		return ""
	}
	if api.baseURL == "" {
		return entry.Permalink
	}
	return api.baseURL + entry.Permalink
}
