package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AdamBeresnev/movie-kombat/internal/bracket"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CandidateStore struct {
	kv *KVStore
}

func NewCandidateStore(db *sqlx.DB) *CandidateStore {
	return &CandidateStore{kv: NewKVStore(db)}
}

func candidatesKey(listID uuid.UUID) string {
	return "candidates:" + listID.String()
}

// GetCandidates returns an empty list for a list that was never saved.
func (s *CandidateStore) GetCandidates(ctx context.Context, listID uuid.UUID) ([]bracket.Entry, error) {
	value, err := s.kv.Get(ctx, candidatesKey(listID))
	return decodeCandidates(value, err)
}

func (s *CandidateStore) GetCandidatesTx(ctx context.Context, tx *sqlx.Tx, listID uuid.UUID) ([]bracket.Entry, error) {
	value, err := s.kv.GetTx(ctx, tx, candidatesKey(listID))
	return decodeCandidates(value, err)
}

func (s *CandidateStore) SaveCandidates(ctx context.Context, tx *sqlx.Tx, listID uuid.UUID, entries []bracket.Entry) error {
	if len(entries) == 0 {
		return s.kv.Delete(ctx, tx, candidatesKey(listID))
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode candidates: %w", err)
	}
	return s.kv.Put(ctx, tx, candidatesKey(listID), string(data))
}

func decodeCandidates(value string, err error) ([]bracket.Entry, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return []bracket.Entry{}, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []bracket.Entry
	if err := json.Unmarshal([]byte(value), &entries); err != nil {
		return nil, fmt.Errorf("failed to decode candidates: %w", err)
	}
	return entries, nil
}
