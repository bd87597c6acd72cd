package entity

// Board - a point-in-time snapshot of every owned square. It is advisory only:
// the authoritative exclusivity decisions are made by the store, never by a
// snapshot read earlier in the same request.
type Board struct {
	Cells []Cell `json:"cells"`
}

// OwnedBy - returns the squares owned by the given participant.
func (that *Board) OwnedBy(participant string) []Cell {
	var owned []Cell
	for _, cell := range that.Cells {
		if cell.Owner == participant {
			owned = append(owned, cell)
		}
	}

	return owned
}

// IsLockedIn - reports whether the participant has locked in. By protocol a
// participant's squares are either all locked or all unlocked, so one locked
// square is enough.
func (that *Board) IsLockedIn(participant string) bool {
	for _, cell := range that.Cells {
		if cell.Owner == participant && cell.Locked {
			return true
		}
	}

	return false
}

// CellAt - returns the cell at (row, col), or false if the square is unowned.
func (that *Board) CellAt(row, col int) (Cell, bool) {
	for _, cell := range that.Cells {
		if cell.Row == row && cell.Col == col {
			return cell, true
		}
	}

	return Cell{}, false
}
