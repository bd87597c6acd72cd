package service

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/squares-backend/internal/entity"
	"github.com/rocketscienceinc/squares-backend/internal/repository"
	"github.com/rocketscienceinc/squares-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettlement(t *testing.T) (context.Context, SettlementService, repository.CellRepository, repository.GameConfigRepository) {
	t.Helper()

	ctx, st := suite.New(t)

	cellRepo := repository.NewCellRepository(st.Storage)
	configRepo := repository.NewGameConfigRepository(st.Storage)
	scoresRepo := repository.NewScoresRepository(st.SQLite.Connection)

	return ctx, NewSettlementService(cellRepo, configRepo, scoresRepo), cellRepo, configRepo
}

func TestSettlementService_GridView(t *testing.T) {
	ctx, settlement, cellRepo, _ := newSettlement(t)

	require.NoError(t, cellRepo.TryInsert(ctx, 3, 4, "alice@example.com"))

	// When: the grid is listed before settlement
	view, err := settlement.GridView(ctx)

	// Then: cells are present and the config is null, not an error
	require.NoError(t, err)
	require.Len(t, view.Cells, 1)
	assert.Nil(t, view.Config)
	assert.NotNil(t, view.Scores)
}

func TestSettlementService_Winners(t *testing.T) {
	ctx, settlement, cellRepo, configRepo := newSettlement(t)

	// Given: a known config, a scored first quarter, and an owner on the
	// winning square
	config := &entity.GameConfig{
		RowSequence: [entity.GridSize]int{5, 2, 9, 1, 4, 0, 8, 3, 6, 7},
		ColSequence: [entity.GridSize]int{1, 4, 0, 7, 9, 2, 5, 8, 3, 6},
	}

	inserted, err := configRepo.InsertIfAbsent(ctx, config)
	require.NoError(t, err)
	require.True(t, inserted)

	require.NoError(t, cellRepo.TryInsert(ctx, 0, 3, "alice@example.com"))

	home, away := 15, 17 // digits (5, 7) -> square (0, 3)
	scores := &entity.Scores{}
	scores.Home[0] = &home
	scores.Away[0] = &away
	require.NoError(t, settlement.SaveScores(ctx, scores))

	// When: winners are computed
	winners, err := settlement.Winners(ctx)
	require.NoError(t, err)
	require.Len(t, winners, entity.Quarters)

	// Then: the first quarter resolves to (0, 3) and its owner
	first := winners[0]
	assert.True(t, first.Defined)
	assert.Equal(t, 0, first.Row)
	assert.Equal(t, 3, first.Col)
	assert.Equal(t, "alice@example.com", first.Owner)

	// Then: unscored quarters remain undefined
	for _, winner := range winners[1:] {
		assert.False(t, winner.Defined)
	}
}

func TestSettlementService_Winners_NoConfig(t *testing.T) {
	ctx, settlement, _, _ := newSettlement(t)

	home, away := 7, 0
	scores := &entity.Scores{}
	scores.Home[0] = &home
	scores.Away[0] = &away
	require.NoError(t, settlement.SaveScores(ctx, scores))

	// When: scores exist but the config has not been generated
	winners, err := settlement.Winners(ctx)
	require.NoError(t, err)

	// Then: no quarter has a winner yet
	for _, winner := range winners {
		assert.False(t, winner.Defined)
	}
}

func TestSettlementService_ClearConfig(t *testing.T) {
	ctx, settlement, _, configRepo := newSettlement(t)

	inserted, err := configRepo.InsertIfAbsent(ctx, entity.NewGameConfig())
	require.NoError(t, err)
	require.True(t, inserted)

	// When: the administrative reset runs
	require.NoError(t, settlement.ClearConfig(ctx))

	// Then: the grid view reports no config again
	view, err := settlement.GridView(ctx)
	require.NoError(t, err)
	assert.Nil(t, view.Config)
}
