package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMemory_AppliesMigrations(t *testing.T) {
	database, err := OpenMemory()
	require.NoError(t, err)
	defer database.Close()

	var tables []string
	err = database.Select(&tables, "SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('kv', 'sessions') ORDER BY name")
	require.NoError(t, err)
	assert.Equal(t, []string{"kv", "sessions"}, tables)

	// Running again is a no-op
	assert.NoError(t, RunMigrations(database.DB))
}
