package models

// Media kinds used across the API. The catalog provider namespaces ids per
// kind, so (MediaTypeMovie, 603) and (MediaTypeTV, 603) are different titles.
const (
	MediaTypeMovie = "movie"
	MediaTypeTV    = "tv"
)

// MediaItem is one movie or TV entry as returned by the catalog provider.
// Fields mirror the provider's JSON so results can be passed through to
// clients without reshaping. Movies populate Title/ReleaseDate, TV entries
// Name/FirstAirDate.
type MediaItem struct {
	ID               int64   `json:"id"`
	MediaType        string  `json:"media_type,omitempty"`
	Title            string  `json:"title,omitempty"`
	Name             string  `json:"name,omitempty"`
	OriginalTitle    string  `json:"original_title,omitempty"`
	OriginalName     string  `json:"original_name,omitempty"`
	Overview         string  `json:"overview,omitempty"`
	PosterPath       string  `json:"poster_path,omitempty"`
	BackdropPath     string  `json:"backdrop_path,omitempty"`
	Popularity       float64 `json:"popularity,omitempty"`
	VoteAverage      float64 `json:"vote_average,omitempty"`
	VoteCount        int64   `json:"vote_count,omitempty"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	FirstAirDate     string  `json:"first_air_date,omitempty"`
	GenreIDs         []int64 `json:"genre_ids,omitempty"`
	NumberOfSeasons  int     `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes int     `json:"number_of_episodes,omitempty"`
	Adult            bool    `json:"adult,omitempty"`

	// Populated on detail lookups only.
	Genres  []Genre `json:"genres,omitempty"`
	Runtime int     `json:"runtime,omitempty"`
	Status  string  `json:"status,omitempty"`
	Tagline string  `json:"tagline,omitempty"`
}

// Genre is a catalog provider genre as returned by detail lookups.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Kind returns the media type, defaulting to movie for untagged items.
func (m MediaItem) Kind() string {
	if m.MediaType == MediaTypeTV {
		return MediaTypeTV
	}
	return MediaTypeMovie
}

// DisplayTitle returns the movie title or, for TV entries, the show name.
func (m MediaItem) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	return m.Name
}

// DisplayDate returns the release date for movies and the first air date for
// TV shows, as an ISO date string possibly empty.
func (m MediaItem) DisplayDate() string {
	if m.ReleaseDate != "" {
		return m.ReleaseDate
	}
	return m.FirstAirDate
}

// ReleaseYear extracts the 4-digit year from the display date, or "" when no
// date is available.
func (m MediaItem) ReleaseYear() string {
	date := m.DisplayDate()
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

// Suggestion is a compact autocomplete entry derived from a MediaItem.
type Suggestion struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	MediaType string `json:"media_type"`
	Year      string `json:"year"`
}
