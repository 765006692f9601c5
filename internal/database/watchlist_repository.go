package database

import (
	"database/sql"
	"fmt"

	"github.com/danirando/backend-film-antigravity/models"
)

// WatchlistRepository persists media rows and their per-account watchlist
// associations.
type WatchlistRepository struct {
	db *sql.DB
}

func NewWatchlistRepository(db *sql.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// FindOrCreateMedia returns the local row id for a (tmdb_id, type) pair,
// inserting the media row when it does not exist yet. An existing row is
// left untouched.
func (r *WatchlistRepository) FindOrCreateMedia(input models.WatchlistUpsert) (int64, error) {
	var id int64
	err := r.db.QueryRow(
		`SELECT id FROM media WHERE tmdb_id = ? AND type = ?`,
		input.TMDBID, input.Type,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("lookup media: %w", err)
	}

	res, err := r.db.Exec(
		`INSERT INTO media (tmdb_id, type, name, original_name, poster_path, overview,
			release_date, first_air_date, number_of_seasons, number_of_episodes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		input.TMDBID, input.Type, input.Name,
		nullable(input.OriginalName), nullable(input.PosterPath), nullable(input.Overview),
		nullable(input.ReleaseDate), nullable(input.FirstAirDate),
		nullableInt(input.NumberOfSeasons), nullableInt(input.NumberOfEpisodes),
	)
	if err != nil {
		return 0, fmt.Errorf("insert media: %w", err)
	}
	return res.LastInsertId()
}

// Attach links a media row to an account's watchlist. Re-attaching an
// already linked row changes nothing, including the watched flag and the
// original insertion timestamp.
func (r *WatchlistRepository) Attach(accountID string, mediaID int64) error {
	_, err := r.db.Exec(
		`INSERT OR IGNORE INTO watchlists (account_id, media_id) VALUES (?, ?)`,
		accountID, mediaID,
	)
	if err != nil {
		return fmt.Errorf("attach watchlist entry: %w", err)
	}
	return nil
}

// List returns the account's watchlist newest-first.
func (r *WatchlistRepository) List(accountID string) ([]models.WatchlistItem, error) {
	return r.query(
		`SELECT m.tmdb_id, m.type, m.name, m.original_name, m.poster_path, m.overview,
			m.release_date, m.first_air_date, m.number_of_seasons, m.number_of_episodes,
			w.watched, w.created_at
		 FROM watchlists w
		 JOIN media m ON m.id = w.media_id
		 WHERE w.account_id = ?
		 ORDER BY w.created_at DESC, w.rowid DESC`,
		accountID,
	)
}

// Recent returns up to limit watchlist entries of the given media type,
// newest-first. Used to pick recommendation seeds.
func (r *WatchlistRepository) Recent(accountID, mediaType string, limit int) ([]models.WatchlistItem, error) {
	return r.query(
		`SELECT m.tmdb_id, m.type, m.name, m.original_name, m.poster_path, m.overview,
			m.release_date, m.first_air_date, m.number_of_seasons, m.number_of_episodes,
			w.watched, w.created_at
		 FROM watchlists w
		 JOIN media m ON m.id = w.media_id
		 WHERE w.account_id = ? AND m.type = ?
		 ORDER BY w.created_at DESC, w.rowid DESC
		 LIMIT ?`,
		accountID, mediaType, limit,
	)
}

// SetWatched updates the watched flag on an existing association and reports
// whether an association was found.
func (r *WatchlistRepository) SetWatched(accountID, mediaType string, tmdbID int64, watched bool) (bool, error) {
	res, err := r.db.Exec(
		`UPDATE watchlists SET watched = ?
		 WHERE account_id = ?
		   AND media_id = (SELECT id FROM media WHERE tmdb_id = ? AND type = ?)`,
		watched, accountID, tmdbID, mediaType,
	)
	if err != nil {
		return false, fmt.Errorf("update watched flag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Detach removes an association, leaving the media row in place, and reports
// whether anything was removed.
func (r *WatchlistRepository) Detach(accountID, mediaType string, tmdbID int64) (bool, error) {
	res, err := r.db.Exec(
		`DELETE FROM watchlists
		 WHERE account_id = ?
		   AND media_id = (SELECT id FROM media WHERE tmdb_id = ? AND type = ?)`,
		accountID, tmdbID, mediaType,
	)
	if err != nil {
		return false, fmt.Errorf("detach watchlist entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *WatchlistRepository) query(q string, args ...any) ([]models.WatchlistItem, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("query watchlist: %w", err)
	}
	defer rows.Close()

	var items []models.WatchlistItem
	for rows.Next() {
		var (
			item         models.WatchlistItem
			originalName sql.NullString
			posterPath   sql.NullString
			overview     sql.NullString
			releaseDate  sql.NullString
			firstAirDate sql.NullString
			seasons      sql.NullInt64
			episodes     sql.NullInt64
		)
		if err := rows.Scan(
			&item.TMDBID, &item.Type, &item.Name, &originalName, &posterPath, &overview,
			&releaseDate, &firstAirDate, &seasons, &episodes,
			&item.Watched, &item.AddedAt,
		); err != nil {
			return nil, fmt.Errorf("scan watchlist row: %w", err)
		}
		item.OriginalName = originalName.String
		item.PosterPath = posterPath.String
		item.Overview = overview.String
		item.ReleaseDate = releaseDate.String
		item.FirstAirDate = firstAirDate.String
		item.NumberOfSeasons = int(seasons.Int64)
		item.NumberOfEpisodes = int(episodes.Int64)
		items = append(items, item)
	}
	return items, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}
