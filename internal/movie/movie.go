package movie

import (
	"net/url"

	"github.com/AdamBeresnev/movie-kombat/internal/bracket"
	"github.com/AdamBeresnev/movie-kombat/internal/poster"
)

// Movie mirrors the OMDb record shape, which capitalizes most keys.
type Movie struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`

	// Only filled by single title lookups
	Genre      string `json:"Genre,omitempty"`
	Director   string `json:"Director,omitempty"`
	Actors     string `json:"Actors,omitempty"`
	Plot       string `json:"Plot,omitempty"`
	ImdbRating string `json:"imdbRating,omitempty"`
}

func (m Movie) Entry() bracket.Entry {
	return bracket.NewEntry(m.ImdbID, m.Title, poster.URL(m.Poster))
}

func (m Movie) IMDbURL() string {
	return IMDbURL(m.ImdbID)
}

func IMDbURL(imdbID string) string {
	return "https://www.imdb.com/title/" + url.PathEscape(imdbID) + "/"
}
