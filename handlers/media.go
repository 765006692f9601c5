package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/danirando/backend-film-antigravity/models"
	"github.com/danirando/backend-film-antigravity/services/catalog"
)

type catalogService interface {
	SearchMovies(ctx context.Context, query string, includeAdult bool) []models.MediaItem
	SearchTV(ctx context.Context, query string, includeAdult bool) []models.MediaItem
	Details(ctx context.Context, mediaType string, id int64) *models.MediaItem
	PopularMovies(ctx context.Context) []models.MediaItem
	PopularTV(ctx context.Context) []models.MediaItem
	Trending(ctx context.Context, mediaType, timeWindow string) []models.MediaItem
	Similar(ctx context.Context, mediaType string, id int64) []models.MediaItem
	Suggestions(ctx context.Context, query string) []models.MediaItem
}

var _ catalogService = (*catalog.Client)(nil)

// adultFilter screens adult-oriented movies out of a listing.
type adultFilter func(ctx context.Context, items []models.MediaItem, includeAdult bool) []models.MediaItem

type MediaHandler struct {
	Catalog catalogService
	Filter  adultFilter
}

func NewMediaHandler(catalogSvc catalogService, filter adultFilter) *MediaHandler {
	if filter == nil {
		filter = func(ctx context.Context, items []models.MediaItem, includeAdult bool) []models.MediaItem {
			return items
		}
	}
	return &MediaHandler{Catalog: catalogSvc, Filter: filter}
}

// Search handles GET /api/media/search?query=&type=&include_adult=.
func (h *MediaHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		writeJSONError(w, http.StatusBadRequest, "Query parameter is required")
		return
	}

	mediaType := strings.ToLower(r.URL.Query().Get("type"))
	includeAdult := r.URL.Query().Get("include_adult") == "true"

	ctx := r.Context()
	var results []models.MediaItem
	switch mediaType {
	case models.MediaTypeMovie:
		results = h.Catalog.SearchMovies(ctx, query, includeAdult)
	case models.MediaTypeTV:
		results = h.Catalog.SearchTV(ctx, query, includeAdult)
	default:
		results = append(results, h.Catalog.SearchMovies(ctx, query, includeAdult)...)
		results = append(results, h.Catalog.SearchTV(ctx, query, includeAdult)...)
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Popularity > results[j].Popularity
		})
	}

	results = h.Filter(ctx, results, includeAdult)
	writeItems(w, results)
}

// Details handles GET /api/media/{type}/{id}.
func (h *MediaHandler) Details(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mediaType := strings.ToLower(vars["type"])
	if mediaType != models.MediaTypeMovie && mediaType != models.MediaTypeTV {
		writeJSONError(w, http.StatusBadRequest, "Invalid media type")
		return
	}
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil || id <= 0 {
		writeJSONError(w, http.StatusBadRequest, "Invalid media id")
		return
	}

	item := h.Catalog.Details(r.Context(), mediaType, id)
	if item == nil {
		writeJSONError(w, http.StatusNotFound, "Media not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Similar handles GET /api/media/{type}/{id}/similar.
func (h *MediaHandler) Similar(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mediaType := strings.ToLower(vars["type"])
	if mediaType != models.MediaTypeMovie && mediaType != models.MediaTypeTV {
		writeJSONError(w, http.StatusBadRequest, "Invalid media type")
		return
	}
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil || id <= 0 {
		writeJSONError(w, http.StatusBadRequest, "Invalid media id")
		return
	}

	ctx := r.Context()
	items := h.Catalog.Similar(ctx, mediaType, id)
	items = h.Filter(ctx, items, false)
	writeItems(w, items)
}

// Suggestions handles GET /api/media/suggestions?q=. Responses are compact
// autocomplete entries; an empty query falls back to trending titles.
func (h *MediaHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	items := h.Catalog.Suggestions(r.Context(), query)

	suggestions := make([]models.Suggestion, 0, len(items))
	for _, item := range items {
		suggestions = append(suggestions, models.Suggestion{
			ID:        item.ID,
			Title:     item.DisplayTitle(),
			MediaType: item.Kind(),
			Year:      item.ReleaseYear(),
		})
	}
	writeJSON(w, http.StatusOK, suggestions)
}

// PopularTV handles GET /api/media/popular-tv.
func (h *MediaHandler) PopularTV(w http.ResponseWriter, r *http.Request) {
	writeItems(w, h.Catalog.PopularTV(r.Context()))
}

// writeItems encodes a media list as a bare JSON array, never null.
func writeItems(w http.ResponseWriter, items []models.MediaItem) {
	if items == nil {
		items = []models.MediaItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
