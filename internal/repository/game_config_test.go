package repository

import (
	"testing"

	"github.com/rocketscienceinc/squares-backend/internal/apperror"
	"github.com/rocketscienceinc/squares-backend/internal/entity"
	"github.com/rocketscienceinc/squares-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameConfigRepository_Get_NotFound(t *testing.T) {
	ctx, st := suite.New(t)

	configRepo := NewGameConfigRepository(st.Storage)

	// When: no config has been generated yet
	config, err := configRepo.Get(ctx)

	// Then: the singleton is reported absent
	require.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Nil(t, config)
}

func TestGameConfigRepository_InsertIfAbsent(t *testing.T) {
	ctx, st := suite.New(t)

	configRepo := NewGameConfigRepository(st.Storage)

	first := entity.NewGameConfig()
	second := entity.NewGameConfig()

	// When: two configs are written insert-if-absent
	inserted, err := configRepo.InsertIfAbsent(ctx, first)
	require.NoError(t, err)
	require.True(t, inserted)

	inserted, err = configRepo.InsertIfAbsent(ctx, second)
	require.NoError(t, err)

	// Then: only the first write wins and readers see its permutations
	assert.False(t, inserted)

	stored, err := configRepo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, stored)
}

func TestGameConfigRepository_Clear(t *testing.T) {
	ctx, st := suite.New(t)

	configRepo := NewGameConfigRepository(st.Storage)

	inserted, err := configRepo.InsertIfAbsent(ctx, entity.NewGameConfig())
	require.NoError(t, err)
	require.True(t, inserted)

	// When: the administrative reset clears the singleton
	require.NoError(t, configRepo.Clear(ctx))

	// Then: the singleton is absent and may be generated again
	_, err = configRepo.Get(ctx)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}
