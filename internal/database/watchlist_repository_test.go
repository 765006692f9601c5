package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/danirando/backend-film-antigravity/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := NewDB(Config{DatabasePath: dbPath})
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
	return db
}

func TestFindOrCreateMediaIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	first, err := db.Watchlist.FindOrCreateMedia(models.WatchlistUpsert{
		TMDBID: 603, Type: "movie", Name: "The Matrix", ReleaseDate: "1999-03-31",
	})
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	second, err := db.Watchlist.FindOrCreateMedia(models.WatchlistUpsert{
		TMDBID: 603, Type: "movie", Name: "Renamed",
	})
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if first != second {
		t.Fatalf("expected same media row, got %d and %d", first, second)
	}

	// Same catalog id under a different kind is a different row.
	tv, err := db.Watchlist.FindOrCreateMedia(models.WatchlistUpsert{
		TMDBID: 603, Type: "tv", Name: "Some Show",
	})
	if err != nil {
		t.Fatalf("tv create failed: %v", err)
	}
	if tv == first {
		t.Fatal("expected distinct rows per media type")
	}
}

func TestAttachIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	mediaID, err := db.Watchlist.FindOrCreateMedia(models.WatchlistUpsert{
		TMDBID: 603, Type: "movie", Name: "The Matrix",
	})
	if err != nil {
		t.Fatalf("create media failed: %v", err)
	}

	if err := db.Watchlist.Attach("acct-1", mediaID); err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	if ok, err := db.Watchlist.SetWatched("acct-1", "movie", 603, true); err != nil || !ok {
		t.Fatalf("set watched failed: ok=%v err=%v", ok, err)
	}

	// Re-attaching must not reset the watched flag.
	if err := db.Watchlist.Attach("acct-1", mediaID); err != nil {
		t.Fatalf("re-attach failed: %v", err)
	}

	items, err := db.Watchlist.List("acct-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if !items[0].Watched {
		t.Fatal("expected watched flag to survive re-attach")
	}
	if items[0].AddedAt.IsZero() {
		t.Fatal("expected AddedAt to be set")
	}
}

func TestListNewestFirstAndRecentLimit(t *testing.T) {
	db := setupTestDB(t)

	for i, name := range []string{"First", "Second", "Third"} {
		mediaID, err := db.Watchlist.FindOrCreateMedia(models.WatchlistUpsert{
			TMDBID: int64(100 + i), Type: "movie", Name: name,
		})
		if err != nil {
			t.Fatalf("create media %q failed: %v", name, err)
		}
		if err := db.Watchlist.Attach("acct-1", mediaID); err != nil {
			t.Fatalf("attach %q failed: %v", name, err)
		}
	}

	items, err := db.Watchlist.List("acct-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Name != "Third" || items[2].Name != "First" {
		t.Fatalf("expected newest-first order, got %q..%q", items[0].Name, items[2].Name)
	}

	recent, err := db.Watchlist.Recent("acct-1", "movie", 2)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 recent items, got %d", len(recent))
	}
	if recent[0].Name != "Third" {
		t.Fatalf("expected newest seed first, got %q", recent[0].Name)
	}
}

func TestDetach(t *testing.T) {
	db := setupTestDB(t)

	mediaID, err := db.Watchlist.FindOrCreateMedia(models.WatchlistUpsert{
		TMDBID: 603, Type: "movie", Name: "The Matrix",
	})
	if err != nil {
		t.Fatalf("create media failed: %v", err)
	}
	if err := db.Watchlist.Attach("acct-1", mediaID); err != nil {
		t.Fatalf("attach failed: %v", err)
	}

	removed, err := db.Watchlist.Detach("acct-1", "movie", 603)
	if err != nil {
		t.Fatalf("detach failed: %v", err)
	}
	if !removed {
		t.Fatal("expected detach to remove the association")
	}

	removed, err = db.Watchlist.Detach("acct-1", "movie", 603)
	if err != nil {
		t.Fatalf("second detach failed: %v", err)
	}
	if removed {
		t.Fatal("expected second detach to be a no-op")
	}

	// Media row survives a detach.
	again, err := db.Watchlist.FindOrCreateMedia(models.WatchlistUpsert{
		TMDBID: 603, Type: "movie", Name: "The Matrix",
	})
	if err != nil {
		t.Fatalf("re-create failed: %v", err)
	}
	if again != mediaID {
		t.Fatal("expected media row to survive detach")
	}
}
