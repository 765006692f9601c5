package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/danirando/backend-film-antigravity/api"
	"github.com/danirando/backend-film-antigravity/models"
	"github.com/danirando/backend-film-antigravity/services/watchlist"
)

type watchlistService interface {
	List(accountID string) ([]models.WatchlistItem, error)
	Add(accountID string, input models.WatchlistUpsert) error
	SetWatched(accountID, mediaType string, tmdbID int64, watched bool) error
	Remove(accountID, mediaType string, tmdbID int64) error
}

var _ watchlistService = (*watchlist.Service)(nil)

type WatchlistHandler struct {
	Service watchlistService
}

func NewWatchlistHandler(service watchlistService) *WatchlistHandler {
	return &WatchlistHandler{Service: service}
}

func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	account, ok := api.AccountFromRequest(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	items, err := h.Service.List(account.ID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to load watchlist")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	account, ok := api.AccountFromRequest(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var body models.WatchlistUpsert
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.Add(account.ID, body); err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, watchlist.ErrInvalidTMDBID),
			errors.Is(err, watchlist.ErrInvalidType),
			errors.Is(err, watchlist.ErrNameRequired):
			status = http.StatusBadRequest
		}
		writeJSONError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "added"})
}

func (h *WatchlistHandler) SetWatched(w http.ResponseWriter, r *http.Request) {
	account, ok := api.AccountFromRequest(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	mediaType, tmdbID, ok := watchlistVars(w, r)
	if !ok {
		return
	}

	var body struct {
		Watched *bool `json:"watched"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Watched == nil {
		writeJSONError(w, http.StatusBadRequest, "watched field is required")
		return
	}

	if err := h.Service.SetWatched(account.ID, mediaType, tmdbID, *body.Watched); err != nil {
		if errors.Is(err, watchlist.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "watchlist entry not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	account, ok := api.AccountFromRequest(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	mediaType, tmdbID, ok := watchlistVars(w, r)
	if !ok {
		return
	}

	if err := h.Service.Remove(account.ID, mediaType, tmdbID); err != nil {
		if errors.Is(err, watchlist.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "watchlist entry not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func watchlistVars(w http.ResponseWriter, r *http.Request) (string, int64, bool) {
	vars := mux.Vars(r)
	mediaType := strings.ToLower(vars["type"])
	if mediaType != models.MediaTypeMovie && mediaType != models.MediaTypeTV {
		writeJSONError(w, http.StatusBadRequest, "Invalid media type")
		return "", 0, false
	}
	tmdbID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil || tmdbID <= 0 {
		writeJSONError(w, http.StatusBadRequest, "Invalid media id")
		return "", 0, false
	}
	return mediaType, tmdbID, true
}
