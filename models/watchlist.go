package models

import "time"

// WatchlistItem represents a media entry saved by a user, joined with the
// locally persisted media row it points at.
type WatchlistItem struct {
	TMDBID           int64     `json:"tmdb_id"`
	Type             string    `json:"type"` // movie | tv
	Name             string    `json:"name"`
	OriginalName     string    `json:"original_name,omitempty"`
	PosterPath       string    `json:"poster_path,omitempty"`
	Overview         string    `json:"overview,omitempty"`
	ReleaseDate      string    `json:"release_date,omitempty"`
	FirstAirDate     string    `json:"first_air_date,omitempty"`
	NumberOfSeasons  int       `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes int       `json:"number_of_episodes,omitempty"`
	Watched          bool      `json:"watched"`
	AddedAt          time.Time `json:"added_at"`
}

// WatchlistUpsert captures data required to add a media entry to a watchlist.
type WatchlistUpsert struct {
	TMDBID           int64  `json:"tmdb_id"`
	Type             string `json:"type"`
	Name             string `json:"name"`
	OriginalName     string `json:"original_name,omitempty"`
	PosterPath       string `json:"poster_path,omitempty"`
	Overview         string `json:"overview,omitempty"`
	ReleaseDate      string `json:"release_date,omitempty"`
	FirstAirDate     string `json:"first_air_date,omitempty"`
	NumberOfSeasons  int    `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes int    `json:"number_of_episodes,omitempty"`
}
