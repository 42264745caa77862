package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type KVStore struct {
	db *sqlx.DB
}

type kvRow struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

const (
	getValueQuery = "SELECT value FROM kv WHERE key = ?"
	putValueQuery = `
		INSERT INTO kv (key, value, updated_at) VALUES (:key, :value, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
		value = excluded.value,
		updated_at = CURRENT_TIMESTAMP
	`
	deleteValueQuery = "DELETE FROM kv WHERE key = ?"
)

func NewKVStore(db *sqlx.DB) *KVStore {
	return &KVStore{db: db}
}

// Get returns sql.ErrNoRows when the key does not exist.
func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value, getValueQuery, key)
	return value, err
}

func (s *KVStore) GetTx(ctx context.Context, tx *sqlx.Tx, key string) (string, error) {
	var value string
	err := tx.GetContext(ctx, &value, getValueQuery, key)
	return value, err
}

func (s *KVStore) Put(ctx context.Context, tx *sqlx.Tx, key, value string) error {
	_, err := tx.NamedExecContext(ctx, putValueQuery, kvRow{Key: key, Value: value})
	return err
}

func (s *KVStore) Delete(ctx context.Context, tx *sqlx.Tx, key string) error {
	_, err := tx.ExecContext(ctx, deleteValueQuery, key)
	return err
}
