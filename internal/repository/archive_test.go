package repository

import (
	"context"
	"testing"

	"github.com/playgrid/tictactoe-backend/internal/apperror"
	"github.com/playgrid/tictactoe-backend/internal/entity"
	"github.com/playgrid/tictactoe-backend/internal/repository/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArchive(t *testing.T, ctx context.Context) ArchiveRepository {
	t.Helper()

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	require.NoError(t, store.Init(ctx))

	return NewArchiveRepository(store.Connection)
}

func finishedGame(t *testing.T, id string) *entity.Game {
	t.Helper()

	game := entity.NewGame(id, entity.PrivateType)
	for _, cell := range []int{0, 3, 1, 4, 2} {
		_, err := game.ApplyMove(cell)
		require.NoError(t, err)
	}
	require.True(t, game.IsOver())

	return game
}

func TestArchiveRepository_Save(t *testing.T) {
	ctx := context.Background()
	archive := newArchive(t, ctx)

	// Given: a finished game
	game := finishedGame(t, "123")

	// When: the game is archived
	err := archive.Save(ctx, game)

	// Then: it can be read back with its final board and outcome
	require.NoError(t, err)

	archived, err := archive.GetByID(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, game.Board, archived.Board)
	assert.Equal(t, entity.OutcomeXWon, archived.Outcome)
	assert.False(t, archived.FinishedAt.IsZero())
}

func TestArchiveRepository_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	archive := newArchive(t, ctx)

	_, err := archive.GetByID(ctx, "missing")

	require.ErrorIs(t, err, apperror.ErrGameNotFound)
}

func TestArchiveRepository_CountByOutcome(t *testing.T) {
	ctx := context.Background()
	archive := newArchive(t, ctx)

	// Given: two archived X wins
	require.NoError(t, archive.Save(ctx, finishedGame(t, "a")))
	require.NoError(t, archive.Save(ctx, finishedGame(t, "b")))

	// When/Then: counting per outcome
	xWins, err := archive.CountByOutcome(ctx, entity.OutcomeXWon)
	require.NoError(t, err)
	assert.Equal(t, 2, xWins)

	draws, err := archive.CountByOutcome(ctx, entity.OutcomeDraw)
	require.NoError(t, err)
	assert.Equal(t, 0, draws)
}
