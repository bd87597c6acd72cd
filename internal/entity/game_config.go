package entity

import "math/rand"

// GameConfig - the settlement singleton: one digit permutation for the rows and
// one for the columns. Generated at most once per grid, when the hundredth
// square locks, and immutable from then on.
type GameConfig struct {
	RowSequence [GridSize]int `json:"row_sequence"`
	ColSequence [GridSize]int `json:"col_sequence"`
}

// NewGameConfig - draws two independent uniform permutations of the digits 0-9.
func NewGameConfig() *GameConfig {
	config := &GameConfig{}

	copy(config.RowSequence[:], rand.Perm(GridSize)) //nolint: gosec // it's ok
	copy(config.ColSequence[:], rand.Perm(GridSize)) //nolint: gosec // it's ok

	return config
}

// WinningCell - the inverse permutation lookup: the winning square for the
// score digits (rowDigit, colDigit) is the (row, col) whose assigned labels
// equal those digits. Returns false for digits outside 0-9.
func (that *GameConfig) WinningCell(rowDigit, colDigit int) (int, int, bool) {
	if rowDigit < 0 || rowDigit >= GridSize || colDigit < 0 || colDigit >= GridSize {
		return 0, 0, false
	}

	row, col := -1, -1
	for i := 0; i < GridSize; i++ {
		if that.RowSequence[i] == rowDigit {
			row = i
		}
		if that.ColSequence[i] == colDigit {
			col = i
		}
	}

	if row < 0 || col < 0 {
		return 0, 0, false
	}

	return row, col, true
}
