package catalog

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/danirando/backend-film-antigravity/config"
	"github.com/danirando/backend-film-antigravity/internal/cache"
	"github.com/danirando/backend-film-antigravity/models"
)

const nowPlayingPages = 3

// NowPlaying returns the ranked now-playing list for a region. Up to three
// pages are fetched sequentially; a failing page stops the loop but keeps
// the pages already fetched. The deduplicated, recency-ranked list is cached
// whole under a region-scoped key.
func (c *Client) NowPlaying(ctx context.Context, region string) []models.MediaItem {
	if region == "" {
		region = c.region
	}

	key := cache.Key("tmdb", "now-playing", region)
	var items []models.MediaItem
	err := cache.Remember(ctx, c.cache, key, config.NowPlayingTTL, &items, func() (any, error) {
		var all []models.MediaItem
		for page := 1; page <= nowPlayingPages; page++ {
			results, err := c.nowPlayingPage(ctx, region, page)
			if err != nil {
				log.Printf("[catalog] now-playing page failed region=%s page=%d err=%v", region, page, err)
				break
			}
			all = append(all, results...)
		}
		return rankNowPlaying(all, time.Now()), nil
	})
	if err != nil {
		return nil
	}
	return items
}

// rankNowPlaying deduplicates by id, keeping the first occurrence, then
// sorts by a recency-boosted popularity score. The time anchor is evaluated
// once so every item is scored against the same "now". The sort is stable:
// equal scores keep their first-seen order.
func rankNowPlaying(items []models.MediaItem, now time.Time) []models.MediaItem {
	seen := make(map[int64]bool, len(items))
	deduped := make([]models.MediaItem, 0, len(items))
	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		deduped = append(deduped, item)
	}

	type scored struct {
		item  models.MediaItem
		score float64
	}
	entries := make([]scored, len(deduped))
	for i, item := range deduped {
		entries[i] = scored{item: item, score: effectiveScore(item, now)}
	}
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].score > entries[b].score
	})

	ranked := make([]models.MediaItem, len(entries))
	for i, e := range entries {
		ranked[i] = e.item
	}
	return ranked
}

// effectiveScore boosts popularity for releases close to now. The distance
// is an absolute day count, so a title opening in a few days is boosted the
// same as one that opened a few days ago. An unparseable or missing release
// date means no boost, never an error.
func effectiveScore(item models.MediaItem, now time.Time) float64 {
	score := item.Popularity

	released, err := time.Parse("2006-01-02", item.ReleaseDate)
	if err != nil {
		return score
	}

	hours := now.Sub(released).Hours()
	if hours < 0 {
		hours = -hours
	}
	days := int(hours / 24)
	switch {
	case days == 0:
		score *= 1000
	case days <= 3:
		score *= 500
	case days <= 7:
		score *= 200
	case days <= 14:
		score *= 50
	}
	return score
}
