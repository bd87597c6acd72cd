package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoard_IsLockedIn(t *testing.T) {
	// Given: one participant with a locked square, one without
	board := &Board{Cells: []Cell{
		{Row: 0, Col: 0, Owner: "alice@example.com", Locked: true},
		{Row: 0, Col: 1, Owner: "alice@example.com", Locked: true},
		{Row: 1, Col: 0, Owner: "bob@example.com"},
	}}

	// Then: only the participant holding locked squares is locked in
	assert.True(t, board.IsLockedIn("alice@example.com"))
	assert.False(t, board.IsLockedIn("bob@example.com"))
	assert.False(t, board.IsLockedIn("carol@example.com"))
}

func TestBoard_OwnedBy(t *testing.T) {
	board := &Board{Cells: []Cell{
		{Row: 0, Col: 0, Owner: "alice@example.com"},
		{Row: 1, Col: 0, Owner: "bob@example.com"},
		{Row: 2, Col: 5, Owner: "alice@example.com"},
	}}

	assert.Len(t, board.OwnedBy("alice@example.com"), 2)
	assert.Len(t, board.OwnedBy("bob@example.com"), 1)
	assert.Empty(t, board.OwnedBy("carol@example.com"))
}

func TestScores_QuarterDigits(t *testing.T) {
	home, away := 17, 23

	// Given: only the first quarter has both scores
	scores := &Scores{}
	scores.Home[0] = &home
	scores.Away[0] = &away

	// Then: the first quarter's digits are the last digit of each score
	homeDigit, awayDigit, ok := scores.QuarterDigits(1)
	assert.True(t, ok)
	assert.Equal(t, 7, homeDigit)
	assert.Equal(t, 3, awayDigit)

	// Then: unscored quarters and invalid quarter numbers stay undefined
	_, _, ok = scores.QuarterDigits(2)
	assert.False(t, ok)

	_, _, ok = scores.QuarterDigits(0)
	assert.False(t, ok)

	_, _, ok = scores.QuarterDigits(5)
	assert.False(t, ok)
}
