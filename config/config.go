package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the server.
type Config struct {
	Port string

	TMDB  TMDBConfig
	OMDB  OMDBConfig
	Cache CacheConfig

	DatabasePath string
	LogPath      string

	// Language passed to the catalog provider on every request.
	Language string
	// Region used for now-playing lookups when the client does not send one.
	Region string
	// FilterAdultContent disables the adult-content filter entirely when false.
	FilterAdultContent bool
}

// TMDBConfig holds catalog provider configuration.
type TMDBConfig struct {
	APIKey  string
	BaseURL string
}

// OMDBConfig holds ratings provider configuration.
type OMDBConfig struct {
	APIKey  string
	BaseURL string
	// Timeout bounds each outbound ratings call, including batched ones.
	Timeout time.Duration
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is "file" or "redis".
	Backend string
	Dir     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// TTLs for cached catalog and ratings data, grouped by volatility.
const (
	SearchTTL      = 1 * time.Hour
	DetailsTTL     = 24 * time.Hour
	TrendingTTL    = 1 * time.Hour
	NowPlayingTTL  = 6 * time.Hour
	SuggestionsTTL = 5 * time.Minute
	RatingTTL      = 30 * 24 * time.Hour
)

// Load reads configuration from environment variables, with a .env file as
// optional source.
func Load() (*Config, error) {
	_ = godotenv.Load()

	omdbTimeout, _ := strconv.Atoi(getEnv("OMDB_TIMEOUT_SECONDS", "5"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	cfg := &Config{
		Port: getEnv("SERVER_PORT", "8080"),
		TMDB: TMDBConfig{
			APIKey:  getEnv("TMDB_API_KEY", ""),
			BaseURL: getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		},
		OMDB: OMDBConfig{
			APIKey:  getEnv("OMDB_API_KEY", ""),
			BaseURL: getEnv("OMDB_BASE_URL", "https://www.omdbapi.com/"),
			Timeout: time.Duration(omdbTimeout) * time.Second,
		},
		Cache: CacheConfig{
			Backend:       getEnv("CACHE_BACKEND", "file"),
			Dir:           getEnv("CACHE_DIR", "./data/cache"),
			RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		DatabasePath:       getEnv("DATABASE_PATH", "./data/app.db"),
		LogPath:            getEnv("LOG_PATH", ""),
		Language:           getEnv("LANGUAGE", "it-IT"),
		Region:             getEnv("REGION", "IT"),
		FilterAdultContent: getEnv("FILTER_ADULT_CONTENT", "true") != "false",
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
