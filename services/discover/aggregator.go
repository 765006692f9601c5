package discover

import (
	"context"
	"sort"
	"strconv"

	"github.com/danirando/backend-film-antigravity/models"
	"github.com/danirando/backend-film-antigravity/services/catalog"
)

const (
	maxSeeds      = 10
	collectLimit  = 30
	responseLimit = 20
)

// Recommender fetches titles related to a known one.
type Recommender interface {
	Recommendations(ctx context.Context, mediaType string, id int64) []models.MediaItem
}

var _ Recommender = (*catalog.Client)(nil)

// ForYou builds a personalized feed from recent watchlist entries.
//
// Each seed contributes its recommendations in order. Seed titles and
// duplicates are skipped, keeping the first occurrence. Collection stops
// at 30 candidates; the result is sorted by popularity and capped at 20.
func ForYou(ctx context.Context, rec Recommender, seeds []models.WatchlistItem) []models.MediaItem {
	if len(seeds) == 0 {
		return []models.MediaItem{}
	}
	if len(seeds) > maxSeeds {
		seeds = seeds[:maxSeeds]
	}

	exclude := make(map[int64]struct{}, len(seeds))
	for _, seed := range seeds {
		exclude[seed.TMDBID] = struct{}{}
	}

	seen := make(map[string]struct{})
	collected := make([]models.MediaItem, 0, collectLimit)

	for _, seed := range seeds {
		if len(collected) >= collectLimit {
			break
		}
		for _, item := range rec.Recommendations(ctx, seed.Type, seed.TMDBID) {
			if _, skip := exclude[item.ID]; skip {
				continue
			}
			key := item.Kind() + ":" + strconv.FormatInt(item.ID, 10)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			collected = append(collected, item)
			if len(collected) >= collectLimit {
				break
			}
		}
	}

	sort.SliceStable(collected, func(i, j int) bool {
		return collected[i].Popularity > collected[j].Popularity
	})

	if len(collected) > responseLimit {
		collected = collected[:responseLimit]
	}
	return collected
}
