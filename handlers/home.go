package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/danirando/backend-film-antigravity/api"
	"github.com/danirando/backend-film-antigravity/models"
	"github.com/danirando/backend-film-antigravity/services/catalog"
	"github.com/danirando/backend-film-antigravity/services/discover"
	"github.com/danirando/backend-film-antigravity/services/watchlist"
)

type homeCatalog interface {
	NowPlaying(ctx context.Context, region string) []models.MediaItem
	Trending(ctx context.Context, mediaType, timeWindow string) []models.MediaItem
	PopularMovies(ctx context.Context) []models.MediaItem
	PopularTV(ctx context.Context) []models.MediaItem
	Recommendations(ctx context.Context, mediaType string, id int64) []models.MediaItem
}

var _ homeCatalog = (*catalog.Client)(nil)

type seedSource interface {
	RecentSeeds(accountID, mediaType string, limit int) ([]models.WatchlistItem, error)
}

var _ seedSource = (*watchlist.Service)(nil)

type HomeHandler struct {
	Catalog homeCatalog
	Seeds   seedSource
	Filter  adultFilter
}

func NewHomeHandler(catalogSvc homeCatalog, seeds seedSource, filter adultFilter) *HomeHandler {
	if filter == nil {
		filter = func(ctx context.Context, items []models.MediaItem, includeAdult bool) []models.MediaItem {
			return items
		}
	}
	return &HomeHandler{Catalog: catalogSvc, Seeds: seeds, Filter: filter}
}

// ForYou handles GET /api/home/for-you?media_type=. The feed is built from
// the account's newest watchlist entries.
func (h *HomeHandler) ForYou(w http.ResponseWriter, r *http.Request) {
	account, ok := api.AccountFromRequest(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	mediaType := strings.ToLower(r.URL.Query().Get("media_type"))
	if mediaType != models.MediaTypeTV {
		mediaType = models.MediaTypeMovie
	}

	seeds, err := h.Seeds.RecentSeeds(account.ID, mediaType, 10)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to load watchlist")
		return
	}

	ctx := r.Context()
	feed := discover.ForYou(ctx, h.Catalog, seeds)
	feed = h.Filter(ctx, feed, false)
	writeItems(w, feed)
}

// NowPlaying handles GET /api/home/now-playing?region=.
func (h *HomeHandler) NowPlaying(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	items := h.Catalog.NowPlaying(ctx, strings.ToUpper(r.URL.Query().Get("region")))
	items = h.Filter(ctx, items, false)
	writeItems(w, items)
}

// Trending handles GET /api/home/trending?media_type=&time_window=.
func (h *HomeHandler) Trending(w http.ResponseWriter, r *http.Request) {
	mediaType := strings.ToLower(r.URL.Query().Get("media_type"))
	if mediaType != models.MediaTypeTV {
		mediaType = models.MediaTypeMovie
	}

	ctx := r.Context()
	items := h.Catalog.Trending(ctx, mediaType, r.URL.Query().Get("time_window"))
	items = h.Filter(ctx, items, false)
	writeItems(w, items)
}

// Popular handles GET /api/home/popular?media_type=.
func (h *HomeHandler) Popular(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var items []models.MediaItem
	if strings.ToLower(r.URL.Query().Get("media_type")) == models.MediaTypeTV {
		items = h.Catalog.PopularTV(ctx)
	} else {
		items = h.Catalog.PopularMovies(ctx)
		items = h.Filter(ctx, items, false)
	}
	writeItems(w, items)
}
