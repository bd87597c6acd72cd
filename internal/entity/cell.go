package entity

const (
	// GridSize - the grid is GridSize x GridSize squares.
	GridSize = 10

	// TotalCells - a full grid holds this many squares.
	TotalCells = GridSize * GridSize
)

// Cell - one owned square of the grid. Unowned coordinates have no Cell at all,
// so Locked is always meaningful: an unowned square is never locked.
type Cell struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Owner  string `json:"owner"`
	Locked bool   `json:"locked"`
}

// InRange - reports whether (row, col) addresses a square of the grid.
func InRange(row, col int) bool {
	return row >= 0 && row < GridSize && col >= 0 && col < GridSize
}
