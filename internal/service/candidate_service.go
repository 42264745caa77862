package service

import (
	"context"
	"fmt"

	"github.com/AdamBeresnev/movie-kombat/internal/bracket"
	"github.com/AdamBeresnev/movie-kombat/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CandidateService manages the movies a list will put into its next tournament.
type CandidateService struct {
	db    *sqlx.DB
	store *store.CandidateStore
}

func NewCandidateService(db *sqlx.DB, store *store.CandidateStore) *CandidateService {
	return &CandidateService{db: db, store: store}
}

func (s *CandidateService) List(ctx context.Context, listID uuid.UUID) ([]bracket.Entry, error) {
	return s.store.GetCandidates(ctx, listID)
}

// Add appends entry unless a candidate with the same ID is already listed. The
// returned bool reports whether the list changed.
func (s *CandidateService) Add(ctx context.Context, listID uuid.UUID, entry bracket.Entry) (bool, error) {
	if entry.ID == "" || entry.IsPlaceholder() {
		return false, fmt.Errorf("%w: %q cannot be a candidate", bracket.ErrInvalidEntry, entry.ID)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	entries, err := s.store.GetCandidatesTx(ctx, tx, listID)
	if err != nil {
		return false, fmt.Errorf("failed to get candidates: %w", err)
	}

	for _, e := range entries {
		if e.ID == entry.ID {
			return false, nil
		}
	}

	entries = append(entries, entry)
	if err := s.store.SaveCandidates(ctx, tx, listID, entries); err != nil {
		return false, fmt.Errorf("failed to save candidates: %w", err)
	}

	return true, tx.Commit()
}

// Remove drops the candidate with entryID. Removing an unknown ID is not an error.
func (s *CandidateService) Remove(ctx context.Context, listID uuid.UUID, entryID string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	entries, err := s.store.GetCandidatesTx(ctx, tx, listID)
	if err != nil {
		return fmt.Errorf("failed to get candidates: %w", err)
	}

	kept := make([]bracket.Entry, 0, len(entries))
	for _, e := range entries {
		if e.ID != entryID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return nil
	}

	if err := s.store.SaveCandidates(ctx, tx, listID, kept); err != nil {
		return fmt.Errorf("failed to save candidates: %w", err)
	}

	return tx.Commit()
}

func (s *CandidateService) Clear(ctx context.Context, listID uuid.UUID) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.store.SaveCandidates(ctx, tx, listID, nil); err != nil {
		return fmt.Errorf("failed to clear candidates: %w", err)
	}

	return tx.Commit()
}
