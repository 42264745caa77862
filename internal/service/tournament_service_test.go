package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/AdamBeresnev/movie-kombat/internal/bracket"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTournamentService_StartRequiresTwoCandidates(t *testing.T) {
	s := setupServices(t, "", "")
	ctx := context.Background()
	listID := uuid.New()

	_, err := s.tournaments.Start(ctx, listID)
	assert.ErrorIs(t, err, bracket.ErrNotEnoughEntries)

	addCandidates(t, s.candidates, listID, 1)
	_, err = s.tournaments.Start(ctx, listID)
	assert.ErrorIs(t, err, bracket.ErrNotEnoughEntries)

	_, err = s.tournaments.Get(ctx, listID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Zero(t, testutil.ToFloat64(s.metrics.TournamentsStarted))
}

func TestTournamentService_PlayThrough(t *testing.T) {
	s := setupServices(t, "", "")
	ctx := context.Background()
	listID := uuid.New()

	entries := addCandidates(t, s.candidates, listID, 5)

	started, err := s.tournaments.Start(ctx, listID)
	require.NoError(t, err)
	assert.False(t, started.IsCompleted())
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.AutoByes), "the fifth entry gets a first round bye")

	// Candidates added after the start do not join the running tournament
	_, err = s.candidates.Add(ctx, listID, entry(42))
	require.NoError(t, err)

	choices := 0
	for {
		current, err := s.tournaments.Get(ctx, listID)
		require.NoError(t, err)
		if current.IsCompleted() {
			break
		}

		m, ok := current.CurrentMatch()
		require.True(t, ok)
		require.False(t, m.First.IsPlaceholder())
		require.False(t, m.Second.IsPlaceholder())

		// The lower seed always wins
		_, err = s.tournaments.Choose(ctx, listID, m.First.ID)
		require.NoError(t, err)
		choices++
	}

	assert.Equal(t, len(entries)-1, choices)

	final, err := s.tournaments.Get(ctx, listID)
	require.NoError(t, err)
	champion, ok := final.Champion()
	require.True(t, ok)
	assert.Equal(t, entries[0], champion)

	_, err = s.tournaments.Choose(ctx, listID, entries[0].ID)
	assert.ErrorIs(t, err, bracket.ErrTournamentCompleted)

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.TournamentsStarted))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.TournamentsCompleted))
	assert.Equal(t, float64(choices), testutil.ToFloat64(s.metrics.Choices))
	assert.Equal(t, 2.0, testutil.ToFloat64(s.metrics.AutoByes), "and a second bye in the semi-finals")
}

func TestTournamentService_ChooseErrors(t *testing.T) {
	s := setupServices(t, "", "")
	ctx := context.Background()
	listID := uuid.New()

	_, err := s.tournaments.Choose(ctx, listID, "tt0000001")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	addCandidates(t, s.candidates, listID, 4)
	_, err = s.tournaments.Start(ctx, listID)
	require.NoError(t, err)

	// tt0000003 plays in the second match
	_, err = s.tournaments.Choose(ctx, listID, "tt0000003")
	assert.ErrorIs(t, err, bracket.ErrNotInMatch)

	t1, err := s.tournaments.Get(ctx, listID)
	require.NoError(t, err)
	stage, match := t1.Cursor()
	assert.Equal(t, 0, stage)
	assert.Equal(t, 0, match, "a rejected choice must not move the cursor")
}

func TestTournamentService_ResetAndRestart(t *testing.T) {
	s := setupServices(t, "", "")
	ctx := context.Background()
	listID := uuid.New()

	entries := addCandidates(t, s.candidates, listID, 2)
	_, err := s.tournaments.Start(ctx, listID)
	require.NoError(t, err)

	done, err := s.tournaments.Choose(ctx, listID, entries[1].ID)
	require.NoError(t, err)
	champion, ok := done.Champion()
	require.True(t, ok)
	assert.Equal(t, entries[1].ID, champion.ID)

	require.NoError(t, s.tournaments.Reset(ctx, listID))
	_, err = s.tournaments.Get(ctx, listID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	got, err := s.candidates.List(ctx, listID)
	require.NoError(t, err)
	assert.Len(t, got, 2, "reset keeps the candidates")

	restarted, err := s.tournaments.Start(ctx, listID)
	require.NoError(t, err)
	assert.False(t, restarted.IsCompleted())
}
