package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/danirando/backend-film-antigravity/config"
	"github.com/danirando/backend-film-antigravity/internal/cache"
	"github.com/danirando/backend-film-antigravity/models"
)

const suggestionLimit = 8

// Client wraps the catalog provider's REST API. Every listing operation is
// cache-wrapped under a deterministic key and degrades to an empty result on
// transport failure or a non-success status, logging the failing parameters.
// Detail lookups degrade to nil instead. Nothing is retried.
type Client struct {
	apiKey   string
	baseURL  string
	language string
	httpc    *http.Client
	cache    cache.Cache
	region   string
}

// NewClient creates a catalog client. The http.Client is injected so tests
// can stub the transport.
func NewClient(cfg config.TMDBConfig, language, region string, httpc *http.Client, store cache.Cache) *Client {
	if httpc == nil {
		httpc = &http.Client{}
	}
	return &Client{
		apiKey:   cfg.APIKey,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		language: language,
		region:   region,
		httpc:    httpc,
		cache:    store,
	}
}

type listResponse struct {
	Page         int                `json:"page"`
	Results      []models.MediaItem `json:"results"`
	TotalPages   int                `json:"total_pages"`
	TotalResults int                `json:"total_results"`
}

// SearchMovies searches movies by title. Results are tagged as movies.
func (c *Client) SearchMovies(ctx context.Context, query string, includeAdult bool) []models.MediaItem {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", strconv.FormatBool(includeAdult))

	key := cache.Key("tmdb", "search", "movie", query, strconv.FormatBool(includeAdult))
	return c.cachedList(ctx, key, config.SearchTTL, "/search/movie", params, models.MediaTypeMovie)
}

// SearchTV searches TV shows by title. Results are tagged as TV.
func (c *Client) SearchTV(ctx context.Context, query string, includeAdult bool) []models.MediaItem {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", strconv.FormatBool(includeAdult))

	key := cache.Key("tmdb", "search", "tv", query, strconv.FormatBool(includeAdult))
	return c.cachedList(ctx, key, config.SearchTTL, "/search/tv", params, models.MediaTypeTV)
}

// Details fetches a single movie or TV entry by id. Returns nil when the
// provider has no such entry or the lookup fails; failed lookups are not
// cached.
func (c *Client) Details(ctx context.Context, mediaType string, id int64) *models.MediaItem {
	key := cache.Key("tmdb", "details", mediaType, strconv.FormatInt(id, 10))

	var item models.MediaItem
	err := cache.Remember(ctx, c.cache, key, config.DetailsTTL, &item, func() (any, error) {
		var detail models.MediaItem
		path := fmt.Sprintf("/%s/%d", mediaType, id)
		if err := c.getJSON(ctx, path, nil, &detail); err != nil {
			return nil, err
		}
		detail.MediaType = mediaType
		return detail, nil
	})
	if err != nil {
		log.Printf("[catalog] details lookup failed type=%s id=%d err=%v", mediaType, id, err)
		return nil
	}
	return &item
}

// PopularMovies returns the provider's popular movie listing.
func (c *Client) PopularMovies(ctx context.Context) []models.MediaItem {
	key := cache.Key("tmdb", "popular", "movie")
	return c.cachedList(ctx, key, config.TrendingTTL, "/movie/popular", nil, models.MediaTypeMovie)
}

// PopularTV returns the provider's popular TV listing.
func (c *Client) PopularTV(ctx context.Context) []models.MediaItem {
	key := cache.Key("tmdb", "popular", "tv")
	return c.cachedList(ctx, key, config.TrendingTTL, "/tv/popular", nil, models.MediaTypeTV)
}

// Trending returns trending entries for a media type over a time window
// (day or week).
func (c *Client) Trending(ctx context.Context, mediaType, timeWindow string) []models.MediaItem {
	if timeWindow != "day" {
		timeWindow = "week"
	}
	path := fmt.Sprintf("/trending/%s/%s", mediaType, timeWindow)
	key := cache.Key("tmdb", "trending", mediaType, timeWindow)
	return c.cachedList(ctx, key, config.TrendingTTL, path, nil, mediaType)
}

// Similar returns entries similar to the given title.
func (c *Client) Similar(ctx context.Context, mediaType string, id int64) []models.MediaItem {
	path := fmt.Sprintf("/%s/%d/similar", mediaType, id)
	key := cache.Key("tmdb", "similar", mediaType, strconv.FormatInt(id, 10))
	return c.cachedList(ctx, key, config.DetailsTTL, path, nil, mediaType)
}

// Recommendations returns the provider's recommendations for the given title.
func (c *Client) Recommendations(ctx context.Context, mediaType string, id int64) []models.MediaItem {
	path := fmt.Sprintf("/%s/%d/recommendations", mediaType, id)
	key := cache.Key("tmdb", "recommendations", mediaType, strconv.FormatInt(id, 10))
	return c.cachedList(ctx, key, config.DetailsTTL, path, nil, mediaType)
}

// Suggestions returns compact autocomplete entries. With a query it runs a
// multi search restricted to movies and TV, sorted by popularity; without
// one it falls back to the weekly trending feed.
func (c *Client) Suggestions(ctx context.Context, query string) []models.MediaItem {
	if query != "" {
		key := cache.Key("tmdb", "suggestions", query)
		var items []models.MediaItem
		err := cache.Remember(ctx, c.cache, key, config.SuggestionsTTL, &items, func() (any, error) {
			params := url.Values{}
			params.Set("query", query)
			params.Set("include_adult", "false")
			params.Set("page", "1")

			var resp listResponse
			if err := c.getJSON(ctx, "/search/multi", params, &resp); err != nil {
				log.Printf("[catalog] suggestions search failed query=%q err=%v", query, err)
				return []models.MediaItem{}, nil
			}

			filtered := make([]models.MediaItem, 0, len(resp.Results))
			for _, item := range resp.Results {
				if item.MediaType == models.MediaTypeMovie || item.MediaType == models.MediaTypeTV {
					filtered = append(filtered, item)
				}
			}
			sort.SliceStable(filtered, func(i, j int) bool {
				return filtered[i].Popularity > filtered[j].Popularity
			})
			if len(filtered) > suggestionLimit {
				filtered = filtered[:suggestionLimit]
			}
			return filtered, nil
		})
		if err != nil {
			return nil
		}
		return items
	}

	key := cache.Key("tmdb", "suggestions", "trending-all")
	var items []models.MediaItem
	err := cache.Remember(ctx, c.cache, key, config.TrendingTTL, &items, func() (any, error) {
		var resp listResponse
		if err := c.getJSON(ctx, "/trending/all/week", nil, &resp); err != nil {
			log.Printf("[catalog] trending suggestions failed err=%v", err)
			return []models.MediaItem{}, nil
		}
		results := resp.Results
		if len(results) > suggestionLimit {
			results = results[:suggestionLimit]
		}
		return results, nil
	})
	if err != nil {
		return nil
	}
	return items
}

// nowPlayingPage fetches one raw page of now-playing results. Unlike the
// listing operations this surfaces the error, so the page loop can stop on
// the first failing page.
func (c *Client) nowPlayingPage(ctx context.Context, region string, page int) ([]models.MediaItem, error) {
	params := url.Values{}
	params.Set("region", region)
	params.Set("page", strconv.Itoa(page))

	var resp listResponse
	if err := c.getJSON(ctx, "/movie/now_playing", params, &resp); err != nil {
		return nil, err
	}
	return tagResults(resp.Results, models.MediaTypeMovie), nil
}

// cachedList wraps a listing endpoint with the cache. Failures are logged
// and yield an empty, cached result, mirroring how a missing listing is
// served downstream.
func (c *Client) cachedList(ctx context.Context, key string, ttl time.Duration, path string, params url.Values, mediaType string) []models.MediaItem {
	var items []models.MediaItem
	err := cache.Remember(ctx, c.cache, key, ttl, &items, func() (any, error) {
		var resp listResponse
		if err := c.getJSON(ctx, path, params, &resp); err != nil {
			log.Printf("[catalog] request failed path=%s params=%v err=%v", path, params, err)
			return []models.MediaItem{}, nil
		}
		return tagResults(resp.Results, mediaType), nil
	})
	if err != nil {
		return nil
	}
	return items
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dest any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("catalog status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}

// tagResults attaches the media type to items the provider returned without
// one. Items already tagged (e.g. from multi search) are left alone.
func tagResults(items []models.MediaItem, mediaType string) []models.MediaItem {
	for i := range items {
		if items[i].MediaType == "" {
			items[i].MediaType = mediaType
		}
	}
	return items
}
