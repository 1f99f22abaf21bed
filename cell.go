package termtest

import "fmt"

// CellFlags is a bitmask of cell rendering attributes.
type CellFlags uint8

const (
	CellFlagBold CellFlags = 1 << iota
	CellFlagItalic
	CellFlagUnderline
	CellFlagWideChar
	CellFlagWideCharSpacer
)

// styleFlags are the flags driven by SGR; the wide flags belong to the grid.
const styleFlags = CellFlagBold | CellFlagItalic | CellFlagUnderline

// Color is an optional palette index (0-255).
// The zero value is the terminal default color.
type Color struct {
	Index uint8
	Set   bool
}

// Indexed returns a color referring to palette entry n.
func Indexed(n uint8) Color {
	return Color{Index: n, Set: true}
}

// IsDefault returns true if no palette index is selected.
func (c Color) IsDefault() bool {
	return !c.Set
}

func (c Color) String() string {
	if !c.Set {
		return "default"
	}
	return fmt.Sprintf("%d", c.Index)
}

// Cell stores the character, colors, and formatting attributes for one grid position.
// Wide characters (2 columns) use a spacer cell in the second position.
// Cell is a comparable value type, so two cells are equal iff == holds.
type Cell struct {
	Char  rune
	Fg    Color
	Bg    Color
	Flags CellFlags
}

// NewCell creates a cell initialized with space character and default colors.
func NewCell() Cell {
	return Cell{Char: ' '}
}

// Reset clears all attributes and sets the cell to default state.
func (c *Cell) Reset() {
	*c = NewCell()
}

// HasFlag returns true if the specified flag is set.
func (c *Cell) HasFlag(flag CellFlags) bool {
	return c.Flags&flag != 0
}

// SetFlag enables the specified flag without affecting others.
func (c *Cell) SetFlag(flag CellFlags) {
	c.Flags |= flag
}

// ClearFlag disables the specified flag without affecting others.
func (c *Cell) ClearFlag(flag CellFlags) {
	c.Flags &^= flag
}

// IsWide returns true if this cell contains a wide character that occupies 2 columns.
func (c *Cell) IsWide() bool {
	return c.HasFlag(CellFlagWideChar)
}

// IsWideSpacer returns true if this is the second cell of a wide character.
func (c *Cell) IsWideSpacer() bool {
	return c.HasFlag(CellFlagWideCharSpacer)
}

// Bold, Italic and Underline report the SGR style flags.
func (c *Cell) Bold() bool      { return c.HasFlag(CellFlagBold) }
func (c *Cell) Italic() bool    { return c.HasFlag(CellFlagItalic) }
func (c *Cell) Underline() bool { return c.HasFlag(CellFlagUnderline) }

func (c Cell) String() string {
	return fmt.Sprintf("{%q fg=%s bg=%s flags=%05b}", c.Char, c.Fg, c.Bg, c.Flags)
}
