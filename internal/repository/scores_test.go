package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rocketscienceinc/squares-backend/internal/entity"
	"github.com/rocketscienceinc/squares-backend/internal/repository/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScoresRepo(t *testing.T) (context.Context, ScoresRepository) {
	t.Helper()

	ctx := context.Background()

	sqliteStorage, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "squares.db"))
	require.NoError(t, err)
	require.NoError(t, sqliteStorage.Init(ctx))

	t.Cleanup(func() {
		require.NoError(t, sqliteStorage.Close())
	})

	return ctx, NewScoresRepository(sqliteStorage.Connection)
}

func TestScoresRepository_Get_Empty(t *testing.T) {
	ctx, scoresRepo := newScoresRepo(t)

	// When: no scores row exists yet
	scores, err := scoresRepo.Get(ctx)

	// Then: an empty record comes back, not an error
	require.NoError(t, err)
	assert.Equal(t, &entity.Scores{}, scores)
}

func TestScoresRepository_SaveAndGet(t *testing.T) {
	ctx, scoresRepo := newScoresRepo(t)

	homeQ1, awayQ1, homeQ2 := 7, 3, 14

	// Given: a partially scored game
	scores := &entity.Scores{}
	scores.Home[0] = &homeQ1
	scores.Away[0] = &awayQ1
	scores.Home[1] = &homeQ2

	// When: the scores are saved and re-read
	require.NoError(t, scoresRepo.Save(ctx, scores))

	stored, err := scoresRepo.Get(ctx)
	require.NoError(t, err)

	// Then: present values round-trip and missing ones stay nil
	assert.Equal(t, scores, stored)
	assert.Nil(t, stored.Away[1])

	// When: the singleton is updated
	awayQ2 := 10
	scores.Away[1] = &awayQ2
	require.NoError(t, scoresRepo.Save(ctx, scores))

	stored, err = scoresRepo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, scores, stored)
}
