package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/AdamBeresnev/movie-kombat/internal/bracket"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TournamentStore struct {
	kv *KVStore
}

func NewTournamentStore(db *sqlx.DB) *TournamentStore {
	return &TournamentStore{kv: NewKVStore(db)}
}

func tournamentKey(listID uuid.UUID) string {
	return "tournament:" + listID.String()
}

// GetTournament returns sql.ErrNoRows when no tournament is running for the list.
func (s *TournamentStore) GetTournament(ctx context.Context, listID uuid.UUID) (*bracket.Tournament, error) {
	value, err := s.kv.Get(ctx, tournamentKey(listID))
	if err != nil {
		return nil, err
	}
	return decodeTournament(value)
}

func (s *TournamentStore) GetTournamentTx(ctx context.Context, tx *sqlx.Tx, listID uuid.UUID) (*bracket.Tournament, error) {
	value, err := s.kv.GetTx(ctx, tx, tournamentKey(listID))
	if err != nil {
		return nil, err
	}
	return decodeTournament(value)
}

func (s *TournamentStore) SaveTournament(ctx context.Context, tx *sqlx.Tx, listID uuid.UUID, tournament *bracket.Tournament) error {
	data, err := json.Marshal(tournament)
	if err != nil {
		return fmt.Errorf("failed to encode tournament: %w", err)
	}
	return s.kv.Put(ctx, tx, tournamentKey(listID), string(data))
}

func (s *TournamentStore) DeleteTournament(ctx context.Context, tx *sqlx.Tx, listID uuid.UUID) error {
	return s.kv.Delete(ctx, tx, tournamentKey(listID))
}

func decodeTournament(value string) (*bracket.Tournament, error) {
	var tournament bracket.Tournament
	if err := json.Unmarshal([]byte(value), &tournament); err != nil {
		return nil, fmt.Errorf("failed to decode tournament: %w", err)
	}
	return &tournament, nil
}
