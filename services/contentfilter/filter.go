package contentfilter

import (
	"context"
	"log"

	"github.com/danirando/backend-film-antigravity/models"
	"github.com/danirando/backend-film-antigravity/services/ratings"
)

// RatingLookup resolves certification records for a batch of titles.
type RatingLookup interface {
	LookupBatch(ctx context.Context, queries []models.RatingQuery) map[int]*models.RatingRecord
}

var _ RatingLookup = (*ratings.Client)(nil)

// Filter screens adult-oriented movies out of a media list.
//
// TV entries pass through untouched. Movies whose title contains a
// suspicious keyword are dropped without a remote lookup; the rest are
// checked against their certification records in a single batch. A movie
// with no usable record is kept. Output order matches input order.
func Filter(ctx context.Context, lookup RatingLookup, items []models.MediaItem, includeAdult bool) []models.MediaItem {
	if includeAdult || len(items) == 0 {
		return items
	}

	keep := make([]bool, len(items))
	var queries []models.RatingQuery
	for i, item := range items {
		if item.Kind() != models.MediaTypeMovie {
			keep[i] = true
			continue
		}
		title := item.DisplayTitle()
		if ratings.HasSuspiciousKeywords(title) {
			log.Printf("[contentfilter] dropping %q: suspicious title", title)
			continue
		}
		keep[i] = true
		queries = append(queries, models.RatingQuery{
			Title: title,
			Year:  item.ReleaseYear(),
			Key:   i,
		})
	}

	if len(queries) > 0 {
		records := lookup.LookupBatch(ctx, queries)
		for _, q := range queries {
			record := records[q.Key]
			if record == nil {
				continue
			}
			if ratings.IsPotentiallyInappropriate(record) {
				log.Printf("[contentfilter] dropping %q: rated %q", q.Title, record.Rated)
				keep[q.Key] = false
			}
		}
	}

	result := make([]models.MediaItem, 0, len(items))
	for i, item := range items {
		if keep[i] {
			result = append(result, item)
		}
	}
	return result
}
