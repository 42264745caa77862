package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/AdamBeresnev/movie-kombat/internal/bracket"
	"github.com/AdamBeresnev/movie-kombat/internal/metrics"
	"github.com/AdamBeresnev/movie-kombat/internal/movie"
	"github.com/AdamBeresnev/movie-kombat/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// MovieService looks movies up for a list and adds them as candidates.
type MovieService struct {
	db         *sqlx.DB
	client     *movie.Client
	settings   *store.SettingsStore
	candidates *CandidateService
	metrics    *metrics.Metrics
}

func NewMovieService(db *sqlx.DB, client *movie.Client, settings *store.SettingsStore, candidates *CandidateService, m *metrics.Metrics) *MovieService {
	return &MovieService{
		db:         db,
		client:     client,
		settings:   settings,
		candidates: candidates,
		metrics:    m,
	}
}

// clientFor prefers the list's own API key over the configured one.
func (s *MovieService) clientFor(ctx context.Context, listID uuid.UUID) (*movie.Client, error) {
	key, err := s.settings.GetAPIKey(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to get api key: %w", err)
	}
	return s.client.WithAPIKey(key), nil
}

func (s *MovieService) HasAPIKey(ctx context.Context, listID uuid.UUID) (bool, error) {
	client, err := s.clientFor(ctx, listID)
	if err != nil {
		return false, err
	}
	return client.HasAPIKey(), nil
}

func (s *MovieService) Search(ctx context.Context, listID uuid.UUID, query string) ([]movie.Movie, error) {
	client, err := s.clientFor(ctx, listID)
	if err != nil {
		return nil, err
	}

	results, err := client.Search(ctx, query)
	s.metrics.ObserveLookup("search", err)
	if err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}
	return results, nil
}

// AddByID fetches the movie and adds it to the list. Already listed movies are
// reported as not added.
func (s *MovieService) AddByID(ctx context.Context, listID uuid.UUID, imdbID string) (bracket.Entry, bool, error) {
	client, err := s.clientFor(ctx, listID)
	if err != nil {
		return bracket.Entry{}, false, err
	}

	m, err := client.ByID(ctx, imdbID)
	s.metrics.ObserveLookup("by_id", err)
	if err != nil {
		return bracket.Entry{}, false, fmt.Errorf("failed to get movie %q: %w", imdbID, err)
	}
	return s.add(ctx, listID, m)
}

func (s *MovieService) AddByTitle(ctx context.Context, listID uuid.UUID, title string) (bracket.Entry, bool, error) {
	client, err := s.clientFor(ctx, listID)
	if err != nil {
		return bracket.Entry{}, false, err
	}

	m, err := client.ByTitle(ctx, title)
	s.metrics.ObserveLookup("by_title", err)
	if err != nil {
		return bracket.Entry{}, false, fmt.Errorf("failed to get movie %q: %w", title, err)
	}
	return s.add(ctx, listID, m)
}

func (s *MovieService) add(ctx context.Context, listID uuid.UUID, m *movie.Movie) (bracket.Entry, bool, error) {
	entry := m.Entry()
	added, err := s.candidates.Add(ctx, listID, entry)
	if err != nil {
		return bracket.Entry{}, false, err
	}
	return entry, added, nil
}

// SetAPIKey stores a per-list OMDb key. A blank key falls back to the configured one.
func (s *MovieService) SetAPIKey(ctx context.Context, listID uuid.UUID, key string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.settings.SaveAPIKey(ctx, tx, listID, strings.TrimSpace(key)); err != nil {
		return fmt.Errorf("failed to save api key: %w", err)
	}

	return tx.Commit()
}
