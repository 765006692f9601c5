package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/danirando/backend-film-antigravity/api"
	"github.com/danirando/backend-film-antigravity/config"
	"github.com/danirando/backend-film-antigravity/handlers"
	"github.com/danirando/backend-film-antigravity/internal/cache"
	"github.com/danirando/backend-film-antigravity/internal/database"
	"github.com/danirando/backend-film-antigravity/models"
	"github.com/danirando/backend-film-antigravity/services/accounts"
	"github.com/danirando/backend-film-antigravity/services/catalog"
	"github.com/danirando/backend-film-antigravity/services/contentfilter"
	"github.com/danirando/backend-film-antigravity/services/ratings"
	"github.com/danirando/backend-film-antigravity/services/watchlist"
	"github.com/danirando/backend-film-antigravity/utils"

	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}

	if cfg.LogPath != "" {
		log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.LogPath,
			MaxSize:    25, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
		}))
	}

	if cfg.TMDB.APIKey == "" {
		log.Println("[main] warning: TMDB_API_KEY not set, catalog lookups will fail")
	}
	if cfg.OMDB.APIKey == "" {
		log.Println("[main] warning: OMDB_API_KEY not set, adult-content filtering runs fail-open")
	}

	store := newCacheStore(cfg.Cache)

	db, err := database.NewDB(database.Config{DatabasePath: cfg.DatabasePath})
	if err != nil {
		log.Fatalf("[main] failed to open database: %v", err)
	}
	defer db.Close()

	catalogClient := catalog.NewClient(cfg.TMDB, cfg.Language, cfg.Region, nil, store)
	ratingsClient := ratings.NewClient(cfg.OMDB, nil, store)

	accountsSvc := accounts.NewService(db.Accounts)
	watchlistSvc := watchlist.NewService(db.Watchlist)

	filter := func(ctx context.Context, items []models.MediaItem, includeAdult bool) []models.MediaItem {
		if !cfg.FilterAdultContent {
			return items
		}
		return contentfilter.Filter(ctx, ratingsClient, items, includeAdult)
	}

	mediaHandler := handlers.NewMediaHandler(catalogClient, filter)
	homeHandler := handlers.NewHomeHandler(catalogClient, watchlistSvc, filter)
	watchlistHandler := handlers.NewWatchlistHandler(watchlistSvc)
	authHandler := handlers.NewAuthHandler(accountsSvc)

	router := utils.NewRouter()

	// 5 auth attempts per minute per IP.
	authLimiter := api.NewIPRateLimiter(rate.Every(12*time.Second), 5)
	authRoutes := router.PathPrefix("/api/auth").Subrouter()
	authRoutes.Use(api.RateLimit(authLimiter))
	authRoutes.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	authRoutes.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	authRoutes.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	router.HandleFunc("/api/media/search", mediaHandler.Search).Methods(http.MethodGet)
	router.HandleFunc("/api/media/suggestions", mediaHandler.Suggestions).Methods(http.MethodGet)
	router.HandleFunc("/api/media/popular-tv", mediaHandler.PopularTV).Methods(http.MethodGet)
	router.HandleFunc("/api/media/{type}/{id}", mediaHandler.Details).Methods(http.MethodGet)
	router.HandleFunc("/api/media/{type}/{id}/similar", mediaHandler.Similar).Methods(http.MethodGet)

	router.HandleFunc("/api/home/now-playing", homeHandler.NowPlaying).Methods(http.MethodGet)
	router.HandleFunc("/api/home/trending", homeHandler.Trending).Methods(http.MethodGet)
	router.HandleFunc("/api/home/popular", homeHandler.Popular).Methods(http.MethodGet)

	authed := router.PathPrefix("/api").Subrouter()
	authed.Use(api.RequireAccount(accountsSvc))
	authed.HandleFunc("/home/for-you", homeHandler.ForYou).Methods(http.MethodGet)
	authed.HandleFunc("/watchlist", watchlistHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/watchlist", watchlistHandler.Add).Methods(http.MethodPost)
	authed.HandleFunc("/watchlist/{type}/{id}", watchlistHandler.SetWatched).Methods(http.MethodPatch)
	authed.HandleFunc("/watchlist/{type}/{id}", watchlistHandler.Remove).Methods(http.MethodDelete)

	go sessionJanitor(db.Accounts)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("[main] listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("[main] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[main] shutdown error: %v", err)
	}
}

// newCacheStore builds the configured cache backend, falling back to the
// file cache when redis is unreachable.
func newCacheStore(cfg config.CacheConfig) cache.Cache {
	if cfg.Backend == "redis" {
		store, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err == nil {
			log.Printf("[main] using redis cache at %s", cfg.RedisAddr)
			return store
		}
		log.Printf("[main] redis unavailable (%v), falling back to file cache", err)
	}

	store, err := cache.NewFileCache(cfg.Dir)
	if err != nil {
		log.Fatalf("[main] failed to create cache dir: %v", err)
	}
	return store
}

// sessionJanitor prunes expired session tokens once an hour.
func sessionJanitor(repo *database.AccountRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		if err := repo.DeleteExpiredSessions(time.Now().UTC()); err != nil {
			log.Printf("[main] session cleanup failed: %v", err)
		}
	}
}
