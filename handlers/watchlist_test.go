package handlers

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/danirando/backend-film-antigravity/api"
	"github.com/danirando/backend-film-antigravity/internal/database"
	"github.com/danirando/backend-film-antigravity/models"
	"github.com/danirando/backend-film-antigravity/services/watchlist"
)

func newWatchlistRouter(t *testing.T) *mux.Router {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.NewDB(database.Config{DatabasePath: dbPath})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Accounts.Create(models.Account{
		ID:           "acct-1",
		Username:     "tester",
		PasswordHash: "x",
		CreatedAt:    time.Now(),
	}); err != nil {
		t.Fatalf("failed to create account: %v", err)
	}

	h := NewWatchlistHandler(watchlist.NewService(db.Watchlist))
	router := mux.NewRouter()
	router.HandleFunc("/api/watchlist", h.List).Methods(http.MethodGet)
	router.HandleFunc("/api/watchlist", h.Add).Methods(http.MethodPost)
	router.HandleFunc("/api/watchlist/{type}/{id}", h.SetWatched).Methods(http.MethodPatch)
	router.HandleFunc("/api/watchlist/{type}/{id}", h.Remove).Methods(http.MethodDelete)
	router.Use(api.RequireAccount(&staticValidator{account: models.Account{ID: "acct-1"}}))
	return router
}

func doJSON(t *testing.T, router *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestWatchlistLifecycle(t *testing.T) {
	router := newWatchlistRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/watchlist",
		`{"tmdb_id":603,"type":"movie","name":"The Matrix","release_date":"1999-03-31"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	// Repeat add keeps a single entry.
	rec = doJSON(t, router, http.MethodPost, "/api/watchlist",
		`{"tmdb_id":603,"type":"movie","name":"The Matrix"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("repeat add: expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/watchlist", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"tmdb_id":603`) {
		t.Fatalf("list missing entry: %s", rec.Body.String())
	}
	if strings.Count(rec.Body.String(), `"tmdb_id":603`) != 1 {
		t.Fatalf("expected a single entry: %s", rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPatch, "/api/watchlist/movie/603", `{"watched":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/watchlist", "")
	if !strings.Contains(rec.Body.String(), `"watched":true`) {
		t.Fatalf("expected watched entry: %s", rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/watchlist/movie/603", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/watchlist", "")
	if strings.Contains(rec.Body.String(), `"tmdb_id":603`) {
		t.Fatalf("expected empty list: %s", rec.Body.String())
	}
}

func TestWatchlistAddValidation(t *testing.T) {
	router := newWatchlistRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/watchlist", `{"type":"movie","name":"No ID"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing tmdb_id, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/watchlist", `{"tmdb_id":1,"type":"podcast","name":"X"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad type, got %d", rec.Code)
	}
}

func TestWatchlistUpdateMissingEntry(t *testing.T) {
	router := newWatchlistRouter(t)

	rec := doJSON(t, router, http.MethodPatch, "/api/watchlist/movie/999", `{"watched":true}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/watchlist/movie/999", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestWatchlistRejectsBadPathParams(t *testing.T) {
	router := newWatchlistRouter(t)

	rec := doJSON(t, router, http.MethodPatch, "/api/watchlist/person/1", `{"watched":true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad type, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/watchlist/movie/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", rec.Code)
	}
}
