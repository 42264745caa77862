package service

import (
	"context"
	"fmt"

	"github.com/AdamBeresnev/movie-kombat/internal/bracket"
	"github.com/AdamBeresnev/movie-kombat/internal/metrics"
	"github.com/AdamBeresnev/movie-kombat/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// TournamentService owns the tournament run of each list. Every operation loads the
// stored run, applies one step and saves it in the same transaction.
type TournamentService struct {
	db         *sqlx.DB
	store      *store.TournamentStore
	candidates *store.CandidateStore
	metrics    *metrics.Metrics
}

func NewTournamentService(db *sqlx.DB, store *store.TournamentStore, candidates *store.CandidateStore, m *metrics.Metrics) *TournamentService {
	return &TournamentService{db: db, store: store, candidates: candidates, metrics: m}
}

// Start builds a bracket from the current candidates and replaces any previous run.
func (s *TournamentService) Start(ctx context.Context, listID uuid.UUID) (*bracket.Tournament, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	entries, err := s.candidates.GetCandidatesTx(ctx, tx, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidates: %w", err)
	}

	b, err := bracket.Build(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to build bracket: %w", err)
	}

	t, err := bracket.NewTournament(b)
	if err != nil {
		return nil, fmt.Errorf("failed to start tournament: %w", err)
	}

	if err := s.store.SaveTournament(ctx, tx, listID, t); err != nil {
		return nil, fmt.Errorf("failed to save tournament: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.metrics.TournamentsStarted.Inc()
	s.metrics.AutoByes.Add(float64(countAuto(t.History())))
	if t.IsCompleted() {
		s.metrics.TournamentsCompleted.Inc()
	}
	return t, nil
}

// Get returns sql.ErrNoRows when the list has no tournament.
func (s *TournamentService) Get(ctx context.Context, listID uuid.UUID) (*bracket.Tournament, error) {
	return s.store.GetTournament(ctx, listID)
}

func (s *TournamentService) Choose(ctx context.Context, listID uuid.UUID, entryID string) (*bracket.Tournament, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	t, err := s.store.GetTournamentTx(ctx, tx, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}

	autoBefore := countAuto(t.History())
	if err := t.ChooseByID(entryID); err != nil {
		return nil, fmt.Errorf("failed to choose winner: %w", err)
	}

	if err := s.store.SaveTournament(ctx, tx, listID, t); err != nil {
		return nil, fmt.Errorf("failed to save tournament: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.metrics.Choices.Inc()
	s.metrics.AutoByes.Add(float64(countAuto(t.History()) - autoBefore))
	if t.IsCompleted() {
		s.metrics.TournamentsCompleted.Inc()
	}
	return t, nil
}

// Reset discards the list's tournament. The candidates are kept.
func (s *TournamentService) Reset(ctx context.Context, listID uuid.UUID) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.store.DeleteTournament(ctx, tx, listID); err != nil {
		return fmt.Errorf("failed to delete tournament: %w", err)
	}

	return tx.Commit()
}

func countAuto(history []bracket.Decision) int {
	n := 0
	for _, d := range history {
		if d.Auto {
			n++
		}
	}
	return n
}
