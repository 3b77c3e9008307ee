package core

// Grid stores a dense 2D array in row-major order.
type Grid[T any] struct {
	Rows, Cols int
	data       []T
}

// NewGrid allocates a grid with the given dimensions.
func NewGrid[T any](rows, cols int) *Grid[T] {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Grid[T]{Rows: rows, Cols: cols, data: make([]T, rows*cols)}
}

// Index returns the linear slice index for (row, col).
func (g *Grid[T]) Index(row, col int) int { return row*g.Cols + col }

// At returns the value stored at (row, col).
func (g *Grid[T]) At(row, col int) T { return g.data[g.Index(row, col)] }

// Set stores v at (row, col).
func (g *Grid[T]) Set(row, col int, v T) { g.data[g.Index(row, col)] = v }

// Column copies one column into a new slice.
func (g *Grid[T]) Column(col int) []T {
	out := make([]T, g.Rows)
	for row := 0; row < g.Rows; row++ {
		out[row] = g.data[g.Index(row, col)]
	}
	return out
}
