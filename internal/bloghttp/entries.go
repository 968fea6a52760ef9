package bloghttp

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-blog/internal/archive"
	"github.com/goliatone/go-blog/internal/domain"
)

const defaultListLimit = 20

type entryListResponse struct {
	Items  []*archive.Entry `json:"items"`
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

func (api *API) handleEntriesList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.archive == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	query := r.URL.Query()

	opts := archive.ListOptions{
		Collection: strings.TrimSpace(query.Get("collection")),
		Tag:        strings.TrimSpace(query.Get("tag")),
		Category:   strings.TrimSpace(query.Get("category")),
		Limit:      parseIntQuery(query.Get("limit"), defaultListLimit),
		Offset:     parseIntQuery(query.Get("offset"), 0),
	}

	if raw := strings.TrimSpace(query.Get("status")); raw != "" {
		status := domain.Status(strings.ToLower(raw))
		if !knownStatus(status) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid status"})
			return
		}
		opts.Status = status
		// Filtering on a non-published state only makes sense when hidden
		// entries are in scope.
		opts.IncludeHidden = status != domain.StatusPublished
	}

	entries, total, err := api.archive.List(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entryListResponse{
		Items:  entries,
		Total:  total,
		Limit:  opts.Limit,
		Offset: opts.Offset,
	})
}

func (api *API) handleEntryGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.archive == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}

	entry, err := api.archive.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (api *API) handleEntryGetBySlug(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.archive == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	entry, err := api.archive.GetBySlug(r.Context(), r.PathValue("collection"), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (api *API) handleTags(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.archive == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	terms, err := api.archive.Tags(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, terms)
}

func (api *API) handleCategories(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.archive == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	terms, err := api.archive.Categories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, terms)
}

func knownStatus(status domain.Status) bool {
	switch status {
	case domain.StatusDraft, domain.StatusPublished, domain.StatusScheduled, domain.StatusArchived:
		return true
	default:
		return false
	}
}
