package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AdamBeresnev/movie-kombat/internal/bracket"
	"github.com/AdamBeresnev/movie-kombat/internal/db"
	"github.com/AdamBeresnev/movie-kombat/internal/metrics"
	"github.com/AdamBeresnev/movie-kombat/internal/movie"
	"github.com/AdamBeresnev/movie-kombat/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.OpenMemory()
	require.NoError(t, err, "Failed to open in-memory DB")
	t.Cleanup(func() { database.Close() })

	return database
}

type services struct {
	candidates  *CandidateService
	movies      *MovieService
	tournaments *TournamentService
	metrics     *metrics.Metrics
}

func setupServices(t *testing.T, omdbURL, defaultKey string) *services {
	t.Helper()

	database := setupTestDB(t)
	m := metrics.New()

	candidateStore := store.NewCandidateStore(database)
	candidates := NewCandidateService(database, candidateStore)
	client := movie.NewClient(movie.Options{
		BaseURL:       omdbURL,
		APIKey:        defaultKey,
		RatePerSecond: 100,
		Timeout:       5 * time.Second,
	})

	return &services{
		candidates:  candidates,
		movies:      NewMovieService(database, client, store.NewSettingsStore(database), candidates, m),
		tournaments: NewTournamentService(database, store.NewTournamentStore(database), candidateStore, m),
		metrics:     m,
	}
}

// fakeOMDb answers i= lookups for tt0000001..tt0000099 with "Movie N" and t= lookups
// with a fixed movie. Only the key "good" is accepted.
func fakeOMDb(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		enc := json.NewEncoder(w)

		if q.Get("apikey") != "good" {
			_ = enc.Encode(map[string]string{"Response": "False", "Error": "Invalid API key!"})
			return
		}

		var n int
		switch {
		case q.Get("s") != "":
			_ = enc.Encode(map[string]any{
				"Response": "True",
				"Search": []movie.Movie{
					{Title: "Alien", Year: "1979", ImdbID: "tt0078748", Type: "movie", Poster: "N/A"},
				},
			})
		case q.Get("t") != "":
			_ = enc.Encode(movie.Movie{Title: q.Get("t"), Year: "1986", ImdbID: "tt0090605", Type: "movie", Poster: "https://img.example/aliens.jpg"})
		case q.Get("i") != "":
			if _, err := fmt.Sscanf(q.Get("i"), "tt%07d", &n); err != nil || n == 0 {
				_ = enc.Encode(map[string]string{"Response": "False", "Error": "Incorrect IMDb ID."})
				return
			}
			_ = enc.Encode(movie.Movie{Title: fmt.Sprintf("Movie %d", n), ImdbID: q.Get("i"), Type: "movie"})
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func entry(n int) bracket.Entry {
	return bracket.NewEntry(fmt.Sprintf("tt%07d", n), fmt.Sprintf("Movie %d", n), "")
}

func addCandidates(t *testing.T, s *CandidateService, listID uuid.UUID, n int) []bracket.Entry {
	t.Helper()

	entries := make([]bracket.Entry, 0, n)
	for i := 1; i <= n; i++ {
		e := entry(i)
		added, err := s.Add(context.Background(), listID, e)
		require.NoError(t, err)
		require.True(t, added)
		entries = append(entries, e)
	}
	return entries
}
