package watchlist

import (
	"errors"
	"strings"

	"github.com/danirando/backend-film-antigravity/internal/database"
	"github.com/danirando/backend-film-antigravity/models"
)

var (
	ErrInvalidTMDBID = errors.New("tmdb id is required")
	ErrInvalidType   = errors.New("type must be movie or tv")
	ErrNameRequired  = errors.New("name is required")
	ErrNotFound      = errors.New("watchlist entry not found")
)

// Service manages per-account watchlists.
type Service struct {
	repo *database.WatchlistRepository
}

func NewService(repo *database.WatchlistRepository) *Service {
	return &Service{repo: repo}
}

// List returns the account's watchlist, newest additions first.
func (s *Service) List(accountID string) ([]models.WatchlistItem, error) {
	items, err := s.repo.List(accountID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.WatchlistItem{}
	}
	return items, nil
}

// Add stores a media entry and attaches it to the account's watchlist.
// Adding an entry that is already present leaves it untouched.
func (s *Service) Add(accountID string, input models.WatchlistUpsert) error {
	if input.TMDBID <= 0 {
		return ErrInvalidTMDBID
	}
	input.Type = strings.ToLower(strings.TrimSpace(input.Type))
	if input.Type != models.MediaTypeMovie && input.Type != models.MediaTypeTV {
		return ErrInvalidType
	}
	if strings.TrimSpace(input.Name) == "" {
		return ErrNameRequired
	}

	mediaID, err := s.repo.FindOrCreateMedia(input)
	if err != nil {
		return err
	}
	return s.repo.Attach(accountID, mediaID)
}

// SetWatched flips the watched flag on an existing entry.
func (s *Service) SetWatched(accountID, mediaType string, tmdbID int64, watched bool) error {
	updated, err := s.repo.SetWatched(accountID, mediaType, tmdbID, watched)
	if err != nil {
		return err
	}
	if !updated {
		return ErrNotFound
	}
	return nil
}

// Remove detaches an entry from the account's watchlist.
func (s *Service) Remove(accountID, mediaType string, tmdbID int64) error {
	removed, err := s.repo.Detach(accountID, mediaType, tmdbID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

// RecentSeeds returns the newest entries of the given type, capped at limit.
func (s *Service) RecentSeeds(accountID, mediaType string, limit int) ([]models.WatchlistItem, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.Recent(accountID, mediaType, limit)
}
