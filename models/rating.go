package models

// RatingRecord is one ratings-provider answer for a (title, year) query.
// Rated is the free-text content rating label; observed values include MPAA
// codes ("PG-13", "NC-17") and not-rated variants ("N/A", "Not Rated",
// "Unrated"). Genre is the provider's comma-joined genre string.
type RatingRecord struct {
	Title      string `json:"title"`
	Year       string `json:"year,omitempty"`
	Rated      string `json:"rated"`
	IMDBRating string `json:"imdb_rating,omitempty"`
	Genre      string `json:"genre,omitempty"`
}

// RatingQuery identifies one title in a batched ratings lookup. Key is a
// caller-assigned correlation key used to map results back; it carries no
// meaning to the ratings adapter.
type RatingQuery struct {
	Title string
	Year  string
	Key   int
}
