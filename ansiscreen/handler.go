package ansiscreen

import (
	"image/color"

	"github.com/danielgatis/go-ansicode"
	termtest "github.com/danielgatis/go-termtest"
)

const tabWidth = 8

// Named colors above the 16 ANSI entries select the terminal defaults.
const (
	namedForeground = 256
	namedBackground = 257
)

// Input writes r at the cursor with deferred autowrap.
func (s *Screen) Input(r rune) {
	width := termtest.StringWidth(string(r))
	cols := s.grid.Cols()
	if width == 0 || width > cols {
		return
	}

	cur := s.grid.Cursor()
	if s.wrapPending || cur.Col+width > cols {
		s.grid.LineFeed()
		s.grid.CarriageReturn()
		cur = s.grid.Cursor()
	}
	s.wrapPending = false

	s.splitWide(cur.Row, cur.Col)
	cell := s.penCell(r)
	if width == 2 {
		s.splitWide(cur.Row, cur.Col+1)
		cell.SetFlag(termtest.CellFlagWideChar)
		spacer := s.penCell(' ')
		spacer.SetFlag(termtest.CellFlagWideCharSpacer)
		s.grid.SetCell(cur.Row, cur.Col+1, spacer)
	}
	s.grid.SetCell(cur.Row, cur.Col, cell)

	if cur.Col+width >= cols {
		s.wrapPending = true
		s.grid.SetCursor(cur.Row, cols-1)
		return
	}
	s.grid.SetCursor(cur.Row, cur.Col+width)
}

func (s *Screen) penCell(r rune) termtest.Cell {
	return termtest.Cell{Char: r, Fg: s.pen.Fg, Bg: s.pen.Bg, Flags: s.pen.Flags}
}

// splitWide clears the other half of a wide character at (row, col).
func (s *Screen) splitWide(row, col int) {
	cell := s.grid.Cell(row, col)
	if cell == nil {
		return
	}
	if cell.IsWide() {
		if next := s.grid.Cell(row, col+1); next != nil && next.IsWideSpacer() {
			next.Reset()
		}
	}
	if cell.IsWideSpacer() {
		if prev := s.grid.Cell(row, col-1); prev != nil && prev.IsWide() {
			prev.Reset()
		}
	}
}

// moveTo clamps and moves the cursor, cancelling a pending wrap.
func (s *Screen) moveTo(row, col int) {
	s.grid.SetCursor(row, col)
	s.wrapPending = false
}

func (s *Screen) LineFeed() {
	s.grid.LineFeed()
	s.wrapPending = false
}

func (s *Screen) CarriageReturn() {
	s.grid.CarriageReturn()
	s.wrapPending = false
}

func (s *Screen) Backspace() {
	cur := s.grid.Cursor()
	s.moveTo(cur.Row, cur.Col-1)
}

func (s *Screen) Tab(n int) {
	cur := s.grid.Cursor()
	col := cur.Col
	for i := 0; i < max(n, 1); i++ {
		col = (col/tabWidth + 1) * tabWidth
	}
	s.moveTo(cur.Row, col)
}

func (s *Screen) Goto(row, col int) { s.moveTo(row, col) }

func (s *Screen) GotoLine(row int) { s.moveTo(row, s.grid.Cursor().Col) }

func (s *Screen) GotoCol(col int) { s.moveTo(s.grid.Cursor().Row, col) }

func (s *Screen) MoveUp(n int) {
	cur := s.grid.Cursor()
	s.moveTo(cur.Row-n, cur.Col)
}

func (s *Screen) MoveDown(n int) {
	cur := s.grid.Cursor()
	s.moveTo(cur.Row+n, cur.Col)
}

func (s *Screen) MoveForward(n int) {
	cur := s.grid.Cursor()
	s.moveTo(cur.Row, cur.Col+n)
}

func (s *Screen) MoveBackward(n int) {
	cur := s.grid.Cursor()
	s.moveTo(cur.Row, cur.Col-n)
}

func (s *Screen) MoveUpCr(n int) {
	s.moveTo(s.grid.Cursor().Row-n, 0)
}

func (s *Screen) MoveDownCr(n int) {
	s.moveTo(s.grid.Cursor().Row+n, 0)
}

// ClearScreen erases cells only; recorded Sixel regions are kept.
func (s *Screen) ClearScreen(mode ansicode.ClearMode) {
	s.wrapPending = false
	cur := s.grid.Cursor()
	switch mode {
	case ansicode.ClearModeBelow:
		s.grid.ClearRowRange(cur.Row, cur.Col, s.grid.Cols())
		for row := cur.Row + 1; row < s.grid.Rows(); row++ {
			s.grid.ClearRow(row)
		}
	case ansicode.ClearModeAbove:
		for row := 0; row < cur.Row; row++ {
			s.grid.ClearRow(row)
		}
		s.grid.ClearRowRange(cur.Row, 0, cur.Col+1)
	case ansicode.ClearModeAll:
		s.grid.ClearAll()
	}
	// ClearModeSaved targets scrollback, which this screen does not keep.
}

func (s *Screen) ClearLine(mode ansicode.LineClearMode) {
	s.wrapPending = false
	cur := s.grid.Cursor()
	switch mode {
	case ansicode.LineClearModeRight:
		s.grid.ClearRowRange(cur.Row, cur.Col, s.grid.Cols())
	case ansicode.LineClearModeLeft:
		s.grid.ClearRowRange(cur.Row, 0, cur.Col+1)
	case ansicode.LineClearModeAll:
		s.grid.ClearRow(cur.Row)
	}
}

// SetTerminalCharAttribute applies bold, italic, underline and palette colors.
// True colors leave the pen color unchanged since cells hold palette indices only.
func (s *Screen) SetTerminalCharAttribute(attr ansicode.TerminalCharAttribute) {
	switch attr.Attr {
	case ansicode.CharAttributeReset:
		s.pen = termtest.CellTemplate{}
	case ansicode.CharAttributeBold:
		s.pen.Flags |= termtest.CellFlagBold
	case ansicode.CharAttributeItalic:
		s.pen.Flags |= termtest.CellFlagItalic
	case ansicode.CharAttributeUnderline:
		s.pen.Flags |= termtest.CellFlagUnderline
	case ansicode.CharAttributeCancelBold, ansicode.CharAttributeCancelBoldDim:
		s.pen.Flags &^= termtest.CellFlagBold
	case ansicode.CharAttributeCancelItalic:
		s.pen.Flags &^= termtest.CellFlagItalic
	case ansicode.CharAttributeCancelUnderline:
		s.pen.Flags &^= termtest.CellFlagUnderline
	case ansicode.CharAttributeForeground:
		if c, ok := paletteColor(attr); ok {
			s.pen.Fg = c
		}
	case ansicode.CharAttributeBackground:
		if c, ok := paletteColor(attr); ok {
			s.pen.Bg = c
		}
	}
}

// paletteColor maps a decoded color to a palette index.
// Returns false for true colors and unknown named colors.
func paletteColor(attr ansicode.TerminalCharAttribute) (termtest.Color, bool) {
	switch {
	case attr.IndexedColor != nil:
		return termtest.Indexed(uint8(attr.IndexedColor.Index)), true
	case attr.NamedColor != nil:
		name := int(*attr.NamedColor)
		switch {
		case name >= 0 && name < 16:
			return termtest.Indexed(uint8(name)), true
		case name == namedForeground, name == namedBackground:
			return termtest.Color{}, true
		}
		return termtest.Color{}, false
	case attr.RGBColor != nil:
		return termtest.Color{}, false
	default:
		return termtest.Color{}, true
	}
}

// SixelReceived records a region anchored at the cursor for a complete DCS q
// payload. The cursor does not move.
func (s *Screen) SixelReceived(params [][]uint16, data []byte) {
	raster := termtest.ParseRaster(data)
	for _, msg := range raster.Diagnostics {
		s.logger.Warn(msg)
	}

	cw, ch := s.sizeProvider.CellSizePixels()
	cols, rows := termtest.CellsFromPixels(raster.Width, raster.Height, uint32(max(cw, 0)), uint32(max(ch, 0)))

	cur := s.grid.Cursor()
	s.regions = append(s.regions, termtest.SixelRegion{
		StartRow:    cur.Row,
		StartCol:    cur.Col,
		WidthPx:     raster.Width,
		HeightPx:    raster.Height,
		WidthCells:  cols,
		HeightCells: rows,
		Data:        append([]byte(nil), data...),
	})
}

// The remaining callbacks have no effect on this screen model: scrolling
// regions, insert/delete, tab stops, modes, charsets, titles and reports are
// not emulated, and escape sequences carry no screen state.

func (s *Screen) ApplicationCommandReceived(data []byte)                           {}
func (s *Screen) Bell()                                                            {}
func (s *Screen) ClearTabs(mode ansicode.TabulationClearMode)                      {}
func (s *Screen) ClipboardLoad(clipboard byte, terminator string)                  {}
func (s *Screen) ClipboardStore(clipboard byte, data []byte)                       {}
func (s *Screen) ConfigureCharset(index ansicode.CharsetIndex, c ansicode.Charset) {}
func (s *Screen) Decaln()                                                          {}
func (s *Screen) DeleteChars(n int)                                                {}
func (s *Screen) DeleteLines(n int)                                                {}
func (s *Screen) DeviceStatus(n int)                                               {}
func (s *Screen) EraseChars(n int)                                                 {}
func (s *Screen) HorizontalTabSet()                                                {}
func (s *Screen) IdentifyTerminal(b byte)                                          {}
func (s *Screen) InsertBlank(n int)                                                {}
func (s *Screen) InsertBlankLines(n int)                                           {}
func (s *Screen) MoveBackwardTabs(n int)                                           {}
func (s *Screen) MoveForwardTabs(n int)                                            {}
func (s *Screen) PopKeyboardMode(n int)                                            {}
func (s *Screen) PopTitle()                                                        {}
func (s *Screen) PrivacyMessageReceived(data []byte)                               {}
func (s *Screen) PushKeyboardMode(mode ansicode.KeyboardMode)                      {}
func (s *Screen) PushTitle()                                                       {}
func (s *Screen) ReportKeyboardMode()                                              {}
func (s *Screen) ReportModifyOtherKeys()                                           {}
func (s *Screen) ResetColor(i int)                                                 {}
func (s *Screen) ResetState()                                                      {}
func (s *Screen) RestoreCursorPosition()                                           {}
func (s *Screen) ReverseIndex()                                                    {}
func (s *Screen) SaveCursorPosition()                                              {}
func (s *Screen) ScrollDown(n int)                                                 {}
func (s *Screen) ScrollUp(n int)                                                   {}
func (s *Screen) SetActiveCharset(n int)                                           {}
func (s *Screen) SetColor(index int, c color.Color)                                {}
func (s *Screen) SetCursorStyle(style ansicode.CursorStyle)                        {}
func (s *Screen) SetDynamicColor(prefix string, index int, terminator string)      {}
func (s *Screen) SetHyperlink(hyperlink *ansicode.Hyperlink)                       {}
func (s *Screen) SetKeypadApplicationMode()                                        {}
func (s *Screen) SetMode(mode ansicode.TerminalMode)                               {}
func (s *Screen) SetModifyOtherKeys(modify ansicode.ModifyOtherKeys)               {}
func (s *Screen) SetScrollingRegion(top, bottom int)                               {}
func (s *Screen) SetTitle(title string)                                            {}
func (s *Screen) StartOfStringReceived(data []byte)                                {}
func (s *Screen) Substitute()                                                      {}
func (s *Screen) TextAreaSizeChars()                                               {}
func (s *Screen) TextAreaSizePixels()                                              {}
func (s *Screen) UnsetKeypadApplicationMode()                                      {}
func (s *Screen) UnsetMode(mode ansicode.TerminalMode)                             {}

func (s *Screen) SetKeyboardMode(mode ansicode.KeyboardMode, behavior ansicode.KeyboardModeBehavior) {
}
