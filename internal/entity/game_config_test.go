package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertPermutation(t *testing.T, sequence [GridSize]int) {
	t.Helper()

	seen := make(map[int]bool, GridSize)
	for _, digit := range sequence {
		require.GreaterOrEqual(t, digit, 0)
		require.Less(t, digit, GridSize)
		require.False(t, seen[digit], "digit %d appears twice", digit)
		seen[digit] = true
	}

	require.Len(t, seen, GridSize)
}

func TestNewGameConfig(t *testing.T) {
	for i := 0; i < 50; i++ {
		// When: a new config is generated
		config := NewGameConfig()

		// Then: both sequences are permutations of the digits 0-9
		assertPermutation(t, config.RowSequence)
		assertPermutation(t, config.ColSequence)
	}
}

func TestGameConfig_WinningCell(t *testing.T) {
	t.Run("InverseLookup", func(t *testing.T) {
		// Given: a config where digit 5 labels row 0 and digit 7 labels column 3
		config := &GameConfig{
			RowSequence: [GridSize]int{5, 2, 9, 1, 4, 0, 8, 3, 6, 7},
			ColSequence: [GridSize]int{1, 4, 0, 7, 9, 2, 5, 8, 3, 6},
		}

		// When: the quarter score digits are (5, 7)
		row, col, ok := config.WinningCell(5, 7)

		// Then: the winning square is (0, 3), the inverse lookup, not a forward index
		require.True(t, ok)
		assert.Equal(t, 0, row)
		assert.Equal(t, 3, col)
	})

	t.Run("OutOfRangeDigits", func(t *testing.T) {
		config := NewGameConfig()

		_, _, ok := config.WinningCell(-1, 3)
		assert.False(t, ok)

		_, _, ok = config.WinningCell(3, 10)
		assert.False(t, ok)
	})
}
