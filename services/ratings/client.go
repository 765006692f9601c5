package ratings

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/danirando/backend-film-antigravity/config"
	"github.com/danirando/backend-film-antigravity/internal/cache"
	"github.com/danirando/backend-film-antigravity/models"
)

// Client wraps the ratings provider. Lookups are keyed by (title, year) and
// cached for a month; a missing or failed answer is normalized to nil so
// callers can fail open. Batched lookups fan out cache misses concurrently,
// each call bounded by the configured timeout without canceling siblings.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
	cache   cache.Cache
}

// NewClient creates a ratings client. The http.Client is injected so tests
// can stub the transport; its timeout bounds every outbound call,
// including each call of a batch.
func NewClient(cfg config.OMDBConfig, httpc *http.Client, store cache.Cache) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		httpc:   httpc,
		cache:   store,
	}
}

// cachedLookup is the stored shape for one (title, year) query. Negative
// answers are cached too, so a title the provider does not know is not
// re-fetched on every request.
type cachedLookup struct {
	Found  bool                `json:"found"`
	Record models.RatingRecord `json:"record,omitempty"`
}

// Lookup returns the rating record for a title, or nil when the provider
// has no data or the call fails.
func (c *Client) Lookup(ctx context.Context, title, year string) *models.RatingRecord {
	key := cache.Key("omdb", "rating", title, year)

	var cached cachedLookup
	if ok, err := c.cache.Get(ctx, key, &cached); err == nil && ok {
		return cached.toRecord()
	}

	result := c.fetch(ctx, title, year)
	_ = c.cache.Put(ctx, key, fromRecord(result), config.RatingTTL)
	return result
}

// LookupBatch resolves a group of queries, reusing cache entries and fanning
// out remote calls only for the misses. The result maps each query's
// correlation key to its record, or to nil when nothing was found. A failed
// call never fails the batch.
func (c *Client) LookupBatch(ctx context.Context, queries []models.RatingQuery) map[int]*models.RatingRecord {
	out := make(map[int]*models.RatingRecord, len(queries))
	var misses []models.RatingQuery

	for _, q := range queries {
		key := cache.Key("omdb", "rating", q.Title, q.Year)
		var cached cachedLookup
		if ok, err := c.cache.Get(ctx, key, &cached); err == nil && ok {
			out[q.Key] = cached.toRecord()
			continue
		}
		misses = append(misses, q)
	}

	if len(misses) == 0 {
		return out
	}

	var mu sync.Mutex
	p := pool.New().WithContext(ctx)
	for _, q := range misses {
		p.Go(func(ctx context.Context) error {
			record := c.fetch(ctx, q.Title, q.Year)
			key := cache.Key("omdb", "rating", q.Title, q.Year)
			_ = c.cache.Put(ctx, key, fromRecord(record), config.RatingTTL)

			mu.Lock()
			out[q.Key] = record
			mu.Unlock()
			return nil
		})
	}
	_ = p.Wait()

	return out
}

type omdbResponse struct {
	Response   string `json:"Response"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Rated      string `json:"Rated"`
	IMDBRating string `json:"imdbRating"`
	Genre      string `json:"Genre"`
}

func (c *Client) fetch(ctx context.Context, title, year string) *models.RatingRecord {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("t", title)
	params.Set("type", "movie")
	if year != "" {
		params.Set("y", year)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(c.baseURL, "/")+"/?"+params.Encode(), nil)
	if err != nil {
		log.Printf("[ratings] bad request title=%q err=%v", title, err)
		return nil
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		log.Printf("[ratings] lookup failed title=%q year=%s err=%v", title, year, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		log.Printf("[ratings] lookup status=%d title=%q body=%s", resp.StatusCode, title, strings.TrimSpace(string(body)))
		return nil
	}

	var payload omdbResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("[ratings] decode failed title=%q err=%v", title, err)
		return nil
	}
	if payload.Response != "True" {
		return nil
	}

	rated := payload.Rated
	if rated == "" {
		rated = "N/A"
	}
	return &models.RatingRecord{
		Title:      payload.Title,
		Year:       payload.Year,
		Rated:      rated,
		IMDBRating: payload.IMDBRating,
		Genre:      payload.Genre,
	}
}

func (l cachedLookup) toRecord() *models.RatingRecord {
	if !l.Found {
		return nil
	}
	record := l.Record
	return &record
}

func fromRecord(record *models.RatingRecord) cachedLookup {
	if record == nil {
		return cachedLookup{}
	}
	return cachedLookup{Found: true, Record: *record}
}
