package ratings

import (
	"strings"

	"github.com/danirando/backend-film-antigravity/models"
)

// Rating labels treated as adult or deliberately unrated content.
var adultRatings = map[string]bool{
	"NC-17": true,
	"X":     true,
	"NR":    true,
	"UR":    true,
}

// Not-rated label variants that trigger the genre check instead of an
// outright block.
var notRatedVariants = map[string]bool{
	"N/A":       true,
	"NOT RATED": true,
	"UNRATED":   true,
}

// Genre substrings that, combined with a not-rated label, mark a title as
// inappropriate.
var suspiciousGenres = []string{
	"erotic",
	"adult",
	"exploitation",
}

// Title substrings that mark a movie as adult content without consulting
// the ratings provider at all.
var suspiciousKeywords = []string{
	"interstellar space", // recurring pattern in low-budget adult films
	"erotic",
	"xxx",
	"adult only",
	"playboy",
	"penthouse",
	"bikini",
	"emmanuelle",
	"caligula",
	"showgirls",
	"strip",
	"temptation",
}

// IsAdultRating reports whether a content rating label marks adult or
// unrated content.
func IsAdultRating(rated string) bool {
	return adultRatings[strings.ToUpper(strings.TrimSpace(rated))]
}

// IsPotentiallyInappropriate reports whether a rating record should exclude
// the title: either an explicit adult rating, or a not-rated label combined
// with a suspicious genre.
func IsPotentiallyInappropriate(record *models.RatingRecord) bool {
	if record == nil {
		return false
	}
	if IsAdultRating(record.Rated) {
		return true
	}

	if notRatedVariants[strings.ToUpper(strings.TrimSpace(record.Rated))] {
		genre := strings.ToLower(record.Genre)
		for _, s := range suspiciousGenres {
			if strings.Contains(genre, s) {
				return true
			}
		}
	}
	return false
}

// HasSuspiciousKeywords reports whether a title matches the keyword
// pre-filter.
func HasSuspiciousKeywords(title string) bool {
	title = strings.ToLower(title)
	for _, kw := range suspiciousKeywords {
		if strings.Contains(title, kw) {
			return true
		}
	}
	return false
}
