package discover

import (
	"context"
	"fmt"
	"testing"

	"github.com/danirando/backend-film-antigravity/models"
)

type fakeRecommender struct {
	byID  map[int64][]models.MediaItem
	calls []int64
}

func (f *fakeRecommender) Recommendations(ctx context.Context, mediaType string, id int64) []models.MediaItem {
	f.calls = append(f.calls, id)
	return f.byID[id]
}

func seed(id int64, mediaType string) models.WatchlistItem {
	return models.WatchlistItem{TMDBID: id, Type: mediaType}
}

func item(id int64, popularity float64) models.MediaItem {
	return models.MediaItem{ID: id, MediaType: models.MediaTypeMovie, Title: fmt.Sprintf("Movie %d", id), Popularity: popularity}
}

func TestForYouEmptySeeds(t *testing.T) {
	rec := &fakeRecommender{}
	got := ForYou(context.Background(), rec, nil)
	if len(got) != 0 {
		t.Fatalf("expected empty feed, got %v", got)
	}
	if len(rec.calls) != 0 {
		t.Fatalf("expected no remote calls, got %d", len(rec.calls))
	}
}

func TestForYouExcludesSeedsAndDuplicates(t *testing.T) {
	rec := &fakeRecommender{byID: map[int64][]models.MediaItem{
		1: {item(2, 50), item(100, 10), item(101, 20)},
		2: {item(101, 20), item(102, 30), item(1, 99)},
	}}
	seeds := []models.WatchlistItem{seed(1, "movie"), seed(2, "movie")}

	got := ForYou(context.Background(), rec, seeds)
	ids := make(map[int64]int)
	for _, m := range got {
		ids[m.ID]++
	}
	if ids[1] != 0 || ids[2] != 0 {
		t.Fatalf("seed ids leaked into feed: %v", got)
	}
	if ids[101] != 1 {
		t.Fatalf("expected one occurrence of 101, got %d", ids[101])
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}
}

func TestForYouSortsByPopularityAndCaps(t *testing.T) {
	var many []models.MediaItem
	for i := int64(0); i < 40; i++ {
		many = append(many, item(100+i, float64(i)))
	}
	rec := &fakeRecommender{byID: map[int64][]models.MediaItem{1: many}}

	got := ForYou(context.Background(), rec, []models.WatchlistItem{seed(1, "movie")})
	if len(got) != 20 {
		t.Fatalf("expected 20 items, got %d", len(got))
	}
	// Only the first 30 candidates are collected, then ranked by popularity.
	if got[0].ID != 129 {
		t.Fatalf("expected most popular collected item first, got %d", got[0].ID)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Popularity > got[i-1].Popularity {
			t.Fatalf("feed not sorted by popularity at %d", i)
		}
	}
}

func TestForYouCapsSeedCount(t *testing.T) {
	rec := &fakeRecommender{byID: map[int64][]models.MediaItem{}}
	var seeds []models.WatchlistItem
	for i := int64(1); i <= 15; i++ {
		seeds = append(seeds, seed(i, "movie"))
	}

	ForYou(context.Background(), rec, seeds)
	if len(rec.calls) != 10 {
		t.Fatalf("expected 10 seed lookups, got %d", len(rec.calls))
	}
}

func TestForYouStopsCollectingAtLimit(t *testing.T) {
	var many []models.MediaItem
	for i := int64(0); i < 30; i++ {
		many = append(many, item(100+i, 1))
	}
	rec := &fakeRecommender{byID: map[int64][]models.MediaItem{
		1: many,
		2: {item(500, 1)},
	}}
	seeds := []models.WatchlistItem{seed(1, "movie"), seed(2, "movie")}

	ForYou(context.Background(), rec, seeds)
	if len(rec.calls) != 1 {
		t.Fatalf("expected collection to stop before second seed, got %d calls", len(rec.calls))
	}
}
