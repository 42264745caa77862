package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type SettingsStore struct {
	kv *KVStore
}

func NewSettingsStore(db *sqlx.DB) *SettingsStore {
	return &SettingsStore{kv: NewKVStore(db)}
}

func apiKeyKey(listID uuid.UUID) string {
	return "apikey:" + listID.String()
}

// GetAPIKey returns an empty string when the list has no key of its own.
func (s *SettingsStore) GetAPIKey(ctx context.Context, listID uuid.UUID) (string, error) {
	value, err := s.kv.Get(ctx, apiKeyKey(listID))
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// SaveAPIKey stores the key, or removes it when key is empty.
func (s *SettingsStore) SaveAPIKey(ctx context.Context, tx *sqlx.Tx, listID uuid.UUID, key string) error {
	if key == "" {
		return s.kv.Delete(ctx, tx, apiKeyKey(listID))
	}
	return s.kv.Put(ctx, tx, apiKeyKey(listID), key)
}
