package termtest

import "fmt"

// Position identifies a cell location in the terminal grid (0-based).
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Before returns true if this position comes before other in reading order (top-to-bottom, left-to-right).
func (p Position) Before(other Position) bool {
	if p.Row < other.Row {
		return true
	}
	if p.Row == other.Row && p.Col < other.Col {
		return true
	}
	return false
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// CellTemplate holds the attributes applied to newly printed characters.
// Modified by SGR (Select Graphic Rendition) escape sequences.
type CellTemplate struct {
	Fg    Color
	Bg    Color
	Flags CellFlags
}

// apply stamps the template attributes onto a cell carrying r.
func (t CellTemplate) apply(r rune) Cell {
	return Cell{Char: r, Fg: t.Fg, Bg: t.Bg, Flags: t.Flags & styleFlags}
}
