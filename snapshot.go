package termtest

import "fmt"

// GridSnapshot is a deep copy of a screen grid: size, every cell and the cursor.
// It shares no memory with its source, so later writes to the screen do not affect it.
type GridSnapshot struct {
	Rows   int      `json:"rows"`
	Cols   int      `json:"cols"`
	Cells  [][]Cell `json:"cells"`
	Cursor Position `json:"cursor"`
}

// Snapshot returns a deep copy of the grid and cursor.
func (s *Screen) Snapshot() GridSnapshot {
	return SnapshotOf(s)
}

// Cell returns the cell at (row, col), or nil if out of bounds.
func (g *GridSnapshot) Cell(row, col int) *Cell {
	if row < 0 || row >= g.Rows || row >= len(g.Cells) || col < 0 || col >= len(g.Cells[row]) {
		return nil
	}
	return &g.Cells[row][col]
}

// Equal returns true if both snapshots have the same size, cursor and cells.
func (g GridSnapshot) Equal(other GridSnapshot) bool {
	if g.Rows != other.Rows || g.Cols != other.Cols || g.Cursor != other.Cursor {
		return false
	}
	if len(g.Cells) != len(other.Cells) {
		return false
	}
	for row := range g.Cells {
		if len(g.Cells[row]) != len(other.Cells[row]) {
			return false
		}
		for col := range g.Cells[row] {
			if g.Cells[row][col] != other.Cells[row][col] {
				return false
			}
		}
	}
	return true
}

// Text returns the rows of the snapshot with trailing spaces trimmed.
func (g GridSnapshot) Text() []string {
	lines := make([]string, len(g.Cells))
	for row, cells := range g.Cells {
		runes := make([]rune, 0, len(cells))
		for _, c := range cells {
			if c.IsWideSpacer() {
				continue
			}
			if c.Char == 0 {
				runes = append(runes, ' ')
			} else {
				runes = append(runes, c.Char)
			}
		}
		end := len(runes)
		for end > 0 && runes[end-1] == ' ' {
			end--
		}
		lines[row] = string(runes[:end])
	}
	return lines
}

func (g GridSnapshot) String() string {
	return fmt.Sprintf("%dx%d grid, cursor %s", g.Rows, g.Cols, g.Cursor)
}

// ScreenReport is a JSON-friendly summary of a screen: its text, cursor, Sixel regions and diagnostics.
type ScreenReport struct {
	Size        ReportSize    `json:"size"`
	Cursor      Position      `json:"cursor"`
	Lines       []string      `json:"lines"`
	Regions     []SixelRegion `json:"regions,omitempty"`
	Diagnostics []string      `json:"diagnostics,omitempty"`
}

// ReportSize holds screen dimensions.
type ReportSize struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Report builds a summary of the current screen state.
func (s *Screen) Report() ScreenReport {
	lines := make([]string, s.grid.Rows())
	for row := range lines {
		lines[row] = s.grid.LineContent(row)
	}
	return ScreenReport{
		Size:        ReportSize{Rows: s.grid.Rows(), Cols: s.grid.Cols()},
		Cursor:      s.grid.Cursor(),
		Lines:       lines,
		Regions:     s.SixelRegions(),
		Diagnostics: s.Diagnostics(),
	}
}
