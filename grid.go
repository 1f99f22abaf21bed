package termtest

import "strings"

// Grid stores a fixed-size 2D grid of cells and the cursor position.
// The cursor is always kept inside the grid.
type Grid struct {
	rows   int
	cols   int
	cells  [][]Cell
	cursor Position
}

// NewGrid creates a grid filled with default cells and the cursor at (0, 0).
// Non-positive dimensions are raised to 1.
func NewGrid(rows, cols int) *Grid {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}

	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([][]Cell, rows),
	}
	for i := range g.cells {
		g.cells[i] = newRow(cols)
	}
	return g
}

func newRow(cols int) []Cell {
	row := make([]Cell, cols)
	for i := range row {
		row[i] = NewCell()
	}
	return row
}

// Rows returns the grid height in character rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the grid width in character columns.
func (g *Grid) Cols() int {
	return g.cols
}

// Cell returns a pointer to the cell at (row, col).
// Returns nil if coordinates are out of bounds.
func (g *Grid) Cell(row, col int) *Cell {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return nil
	}
	return &g.cells[row][col]
}

// SetCell replaces the cell at (row, col).
// Does nothing if coordinates are out of bounds, like a terminal clipping output.
func (g *Grid) SetCell(row, col int, cell Cell) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return
	}
	g.cells[row][col] = cell
}

// Cursor returns the current cursor position.
func (g *Grid) Cursor() Position {
	return g.cursor
}

// SetCursor moves the cursor, clamping it to the grid.
func (g *Grid) SetCursor(row, col int) {
	g.cursor.Row = clamp(row, 0, g.rows-1)
	g.cursor.Col = clamp(col, 0, g.cols-1)
}

// LineFeed moves the cursor down one row.
// On the last row the grid scrolls up instead: the top row is dropped and a blank row appended.
func (g *Grid) LineFeed() {
	if g.cursor.Row+1 < g.rows {
		g.cursor.Row++
		return
	}
	g.ScrollUp(1)
}

// CarriageReturn moves the cursor to column 0.
func (g *Grid) CarriageReturn() {
	g.cursor.Col = 0
}

// ScrollUp shifts all rows up by n, discarding the top rows and clearing the bottom ones.
func (g *Grid) ScrollUp(n int) {
	if n <= 0 {
		return
	}
	if n > g.rows {
		n = g.rows
	}

	copy(g.cells, g.cells[n:])
	for row := g.rows - n; row < g.rows; row++ {
		g.cells[row] = newRow(g.cols)
	}
}

// ClearRow resets all cells in the row to default state.
func (g *Grid) ClearRow(row int) {
	if row < 0 || row >= g.rows {
		return
	}
	for col := range g.cells[row] {
		g.cells[row][col].Reset()
	}
}

// ClearRowRange resets cells in the row from startCol (inclusive) to endCol (exclusive).
func (g *Grid) ClearRowRange(row, startCol, endCol int) {
	if row < 0 || row >= g.rows {
		return
	}
	if startCol < 0 {
		startCol = 0
	}
	if endCol > g.cols {
		endCol = g.cols
	}
	for col := startCol; col < endCol; col++ {
		g.cells[row][col].Reset()
	}
}

// ClearAll resets all cells in the grid to default state. The cursor is not moved.
func (g *Grid) ClearAll() {
	for row := range g.cells {
		g.ClearRow(row)
	}
}

// Resize changes grid dimensions, preserving the overlapping top-left cells.
// When growing, new default cells are added at the bottom/right.
// The cursor is clamped to the new bounds. Invalid dimensions (<= 0) are ignored.
func (g *Grid) Resize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}

	newCells := make([][]Cell, rows)
	for i := range newCells {
		newCells[i] = newRow(cols)
		if i < g.rows {
			copy(newCells[i], g.cells[i])
		}
	}

	g.cells = newCells
	g.rows = rows
	g.cols = cols
	g.SetCursor(g.cursor.Row, g.cursor.Col)
}

// RowContents returns the text of a row including trailing spaces.
// Wide character spacers are skipped. Returns "" if the row is out of bounds.
func (g *Grid) RowContents(row int) string {
	if row < 0 || row >= g.rows {
		return ""
	}

	var sb strings.Builder
	sb.Grow(g.cols)
	for col := range g.cells[row] {
		cell := &g.cells[row][col]
		if cell.IsWideSpacer() {
			continue
		}
		if cell.Char == 0 {
			sb.WriteRune(' ')
		} else {
			sb.WriteRune(cell.Char)
		}
	}
	return sb.String()
}

// LineContent returns the text content of a row with trailing spaces trimmed.
func (g *Grid) LineContent(row int) string {
	return strings.TrimRight(g.RowContents(row), " ")
}

// Contents returns all rows joined by newlines. Trailing spaces are preserved.
func (g *Grid) Contents() string {
	lines := make([]string, g.rows)
	for row := range lines {
		lines[row] = g.RowContents(row)
	}
	return strings.Join(lines, "\n")
}

// clamp ensures the value is within the given range.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
