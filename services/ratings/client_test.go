package ratings

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/danirando/backend-film-antigravity/config"
	"github.com/danirando/backend-film-antigravity/internal/cache"
	"github.com/danirando/backend-film-antigravity/models"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func newTestClient(t *testing.T, rt roundTripFunc) *Client {
	t.Helper()
	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	cfg := config.OMDBConfig{APIKey: "k", BaseURL: "https://omdb.test/"}
	return NewClient(cfg, &http.Client{Transport: rt}, store)
}

func TestLookupCachesResult(t *testing.T) {
	var (
		mu    sync.Mutex
		calls int
	)
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return jsonResponse(http.StatusOK,
			`{"Response":"True","Title":"Heat","Year":"1995","Rated":"R","imdbRating":"8.3","Genre":"Action, Crime"}`), nil
	})

	ctx := context.Background()
	first := client.Lookup(ctx, "Heat", "1995")
	if first == nil || first.Rated != "R" {
		t.Fatalf("unexpected record: %+v", first)
	}

	second := client.Lookup(ctx, "Heat", "1995")
	if second == nil || second.Rated != "R" {
		t.Fatalf("unexpected cached record: %+v", second)
	}
	if calls != 1 {
		t.Fatalf("expected 1 remote call, got %d", calls)
	}
}

func TestLookupCachesNegativeAnswer(t *testing.T) {
	var (
		mu    sync.Mutex
		calls int
	)
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return jsonResponse(http.StatusOK, `{"Response":"False","Error":"Movie not found!"}`), nil
	})

	ctx := context.Background()
	if rec := client.Lookup(ctx, "Unknown Film", ""); rec != nil {
		t.Fatalf("expected nil for unknown title, got %+v", rec)
	}
	if rec := client.Lookup(ctx, "Unknown Film", ""); rec != nil {
		t.Fatalf("expected nil on cached negative, got %+v", rec)
	}
	if calls != 1 {
		t.Fatalf("expected negative answer to be cached, got %d calls", calls)
	}
}

func TestLookupFailureIsNil(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadGateway, `upstream broke`), nil
	})

	if rec := client.Lookup(context.Background(), "Heat", "1995"); rec != nil {
		t.Fatalf("expected nil on transport failure, got %+v", rec)
	}
}

func TestLookupBatchMapsKeysAndReusesCache(t *testing.T) {
	var (
		mu      sync.Mutex
		fetched []string
	)
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		title := req.URL.Query().Get("t")
		mu.Lock()
		fetched = append(fetched, title)
		mu.Unlock()

		if title == "Missing" {
			return jsonResponse(http.StatusOK, `{"Response":"False"}`), nil
		}
		return jsonResponse(http.StatusOK,
			fmt.Sprintf(`{"Response":"True","Title":%q,"Rated":"PG-13"}`, title)), nil
	})

	ctx := context.Background()

	// Warm the cache for one title through the sequential path.
	if rec := client.Lookup(ctx, "Cached Film", "2020"); rec == nil {
		t.Fatal("expected record for cached film")
	}

	got := client.LookupBatch(ctx, []models.RatingQuery{
		{Title: "Cached Film", Year: "2020", Key: 0},
		{Title: "Fresh Film", Year: "2021", Key: 1},
		{Title: "Missing", Key: 2},
	})

	if rec := got[0]; rec == nil || rec.Title != "Cached Film" {
		t.Fatalf("key 0: unexpected record %+v", got[0])
	}
	if rec := got[1]; rec == nil || rec.Title != "Fresh Film" {
		t.Fatalf("key 1: unexpected record %+v", got[1])
	}
	if got[2] != nil {
		t.Fatalf("key 2: expected nil for missing title, got %+v", got[2])
	}

	// The warm-up fetch is the only one allowed for the cached title.
	mu.Lock()
	defer mu.Unlock()
	count := 0
	for _, title := range fetched {
		if title == "Cached Film" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one fetch for cached title, got %d", count)
	}
}

func TestClassification(t *testing.T) {
	cases := []struct {
		record *models.RatingRecord
		drop   bool
	}{
		{&models.RatingRecord{Rated: "PG-13"}, false},
		{&models.RatingRecord{Rated: "R", Genre: "Action"}, false},
		{&models.RatingRecord{Rated: "NC-17"}, true},
		{&models.RatingRecord{Rated: "x"}, true},
		{&models.RatingRecord{Rated: "N/A", Genre: "Drama"}, false},
		{&models.RatingRecord{Rated: "N/A", Genre: "Erotic Drama"}, true},
		{&models.RatingRecord{Rated: "Not Rated", Genre: "Adult"}, true},
		{&models.RatingRecord{Rated: "Unrated", Genre: "Sexploitation"}, true},
		{nil, false},
	}
	for i, tc := range cases {
		if got := IsPotentiallyInappropriate(tc.record); got != tc.drop {
			t.Fatalf("case %d (%+v): got %v, want %v", i, tc.record, got, tc.drop)
		}
	}
}

func TestSuspiciousKeywords(t *testing.T) {
	if !HasSuspiciousKeywords("Bikini Beach Party") {
		t.Fatal("expected keyword match")
	}
	if !HasSuspiciousKeywords("EMMANUELLE in space") {
		t.Fatal("expected case-insensitive match")
	}
	if HasSuspiciousKeywords("The Godfather") {
		t.Fatal("unexpected keyword match")
	}
}
