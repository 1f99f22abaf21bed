package termtest

// Apply processes one tokenizer event, mutating the grid, the pen and the Sixel state.
// Middleware registered with WithMiddleware runs first for the matching event kind.
//
// Apply is the only entry point that changes screen state from input, so screens
// can be driven by synthetic events without going through the byte tokenizer:
//
//	screen.Apply(termtest.PrintEvent{Rune: 'A'})
//	screen.Apply(termtest.ExecuteEvent{Byte: '\n'})
func (s *Screen) Apply(ev Event) {
	mw := s.middleware
	switch ev := ev.(type) {
	case PrintEvent:
		if mw != nil && mw.Print != nil {
			mw.Print(ev.Rune, s.print)
			return
		}
		s.print(ev.Rune)
	case ExecuteEvent:
		if mw != nil && mw.Execute != nil {
			mw.Execute(ev.Byte, s.execute)
			return
		}
		s.execute(ev.Byte)
	case CSIEvent:
		if mw != nil && mw.CSI != nil {
			mw.CSI(ev, s.csiDispatch)
			return
		}
		s.csiDispatch(ev)
	case DCSHookEvent:
		if mw != nil && mw.DCSHook != nil {
			mw.DCSHook(ev, s.dcsHook)
			return
		}
		s.dcsHook(ev)
	case DCSPutEvent:
		if mw != nil && mw.DCSPut != nil {
			mw.DCSPut(ev.Byte, s.dcsPut)
			return
		}
		s.dcsPut(ev.Byte)
	case DCSUnhookEvent:
		if mw != nil && mw.DCSUnhook != nil {
			mw.DCSUnhook(s.dcsUnhook)
			return
		}
		s.dcsUnhook()
	case OSCEvent:
		if mw != nil && mw.OSC != nil {
			mw.OSC(ev, func(OSCEvent) {})
		}
	case ESCEvent:
		if mw != nil && mw.ESC != nil {
			mw.ESC(ev, func(ESCEvent) {})
		}
	}
}

// print writes r with the current pen at the cursor.
//
// Writing the last column leaves the cursor there with a pending wrap; the
// next printable character wraps first (line feed + carriage return). A wide
// character that does not fit on the current line wraps before being written.
func (s *Screen) print(r rune) {
	width := runeWidth(r)
	if width == 0 || width > s.grid.Cols() {
		return
	}

	cur := s.grid.Cursor()
	if s.wrapPending || cur.Col+width > s.grid.Cols() {
		s.grid.LineFeed()
		s.grid.CarriageReturn()
		cur = s.grid.Cursor()
	}
	s.wrapPending = false

	s.breakWideAt(cur.Row, cur.Col)
	cell := s.pen.apply(r)
	if width == 2 {
		s.breakWideAt(cur.Row, cur.Col+1)
		cell.SetFlag(CellFlagWideChar)
		s.grid.SetCell(cur.Row, cur.Col, cell)

		spacer := s.pen.apply(' ')
		spacer.SetFlag(CellFlagWideCharSpacer)
		s.grid.SetCell(cur.Row, cur.Col+1, spacer)
	} else {
		s.grid.SetCell(cur.Row, cur.Col, cell)
	}

	next := cur.Col + width
	if next >= s.grid.Cols() {
		s.wrapPending = true
		next = s.grid.Cols() - 1
	}
	s.grid.SetCursor(cur.Row, next)
}

// breakWideAt blanks the other half of a wide character about to be overwritten at (row, col).
func (s *Screen) breakWideAt(row, col int) {
	cell := s.grid.Cell(row, col)
	if cell == nil {
		return
	}
	switch {
	case cell.IsWide():
		if spacer := s.grid.Cell(row, col+1); spacer != nil && spacer.IsWideSpacer() {
			spacer.Reset()
		}
	case cell.IsWideSpacer():
		if wide := s.grid.Cell(row, col-1); wide != nil && wide.IsWide() {
			wide.Reset()
		}
	}
}

// execute handles C0 control bytes. Unsupported bytes are ignored.
func (s *Screen) execute(b byte) {
	cur := s.grid.Cursor()
	switch b {
	case '\n', '\v', '\f':
		s.grid.LineFeed()
	case '\r':
		s.grid.CarriageReturn()
	case '\t':
		s.grid.SetCursor(cur.Row, (cur.Col/tabWidth+1)*tabWidth)
	case '\b':
		s.grid.SetCursor(cur.Row, cur.Col-1)
	default:
		return
	}
	s.wrapPending = false
}

// tabWidth is the distance between the fixed tab stops.
const tabWidth = 8

// csiDispatch handles cursor movement, erase and SGR.
// Sequences with intermediates or private markers are not supported and are ignored.
func (s *Screen) csiDispatch(ev CSIEvent) {
	if ev.Ignore || len(ev.Intermediates) > 0 {
		return
	}

	if ev.Final == 'm' {
		s.sgr(ev.Params)
		return
	}

	cur := s.grid.Cursor()
	switch ev.Final {
	case 'A':
		s.grid.SetCursor(cur.Row-countParam(ev.Params, 0), cur.Col)
	case 'B':
		s.grid.SetCursor(cur.Row+countParam(ev.Params, 0), cur.Col)
	case 'C':
		s.grid.SetCursor(cur.Row, cur.Col+countParam(ev.Params, 0))
	case 'D':
		s.grid.SetCursor(cur.Row, cur.Col-countParam(ev.Params, 0))
	case 'E':
		s.grid.SetCursor(cur.Row+countParam(ev.Params, 0), 0)
	case 'F':
		s.grid.SetCursor(cur.Row-countParam(ev.Params, 0), 0)
	case 'G', '`':
		s.grid.SetCursor(cur.Row, countParam(ev.Params, 0)-1)
	case 'd':
		s.grid.SetCursor(countParam(ev.Params, 0)-1, cur.Col)
	case 'H', 'f':
		s.grid.SetCursor(countParam(ev.Params, 0)-1, countParam(ev.Params, 1)-1)
	case 'J':
		s.eraseDisplay(param(ev.Params, 0, 0))
	case 'K':
		s.eraseLine(param(ev.Params, 0, 0))
	default:
		return
	}
	s.wrapPending = false
}

// eraseDisplay clears cells only. Recorded Sixel regions are kept; use ClearSixelRegions to drop them.
func (s *Screen) eraseDisplay(mode uint16) {
	cur := s.grid.Cursor()
	switch mode {
	case 0:
		s.grid.ClearRowRange(cur.Row, cur.Col, s.grid.Cols())
		for row := cur.Row + 1; row < s.grid.Rows(); row++ {
			s.grid.ClearRow(row)
		}
	case 1:
		for row := 0; row < cur.Row; row++ {
			s.grid.ClearRow(row)
		}
		s.grid.ClearRowRange(cur.Row, 0, cur.Col+1)
	case 2:
		s.grid.ClearAll()
	}
	// Mode 3 erases scrollback, which a screen does not keep.
}

func (s *Screen) eraseLine(mode uint16) {
	cur := s.grid.Cursor()
	switch mode {
	case 0:
		s.grid.ClearRowRange(cur.Row, cur.Col, s.grid.Cols())
	case 1:
		s.grid.ClearRowRange(cur.Row, 0, cur.Col+1)
	case 2:
		s.grid.ClearRow(cur.Row)
	}
}

// sgr updates the pen. An empty parameter list resets it.
func (s *Screen) sgr(params [][]uint16) {
	if len(params) == 0 {
		s.pen = CellTemplate{}
		return
	}

	for i := 0; i < len(params); i++ {
		code := param(params, i, 0)
		switch {
		case code == 0:
			s.pen = CellTemplate{}
		case code == 1:
			s.pen.Flags |= CellFlagBold
		case code == 3:
			s.pen.Flags |= CellFlagItalic
		case code == 4:
			s.pen.Flags |= CellFlagUnderline
		case code == 22:
			s.pen.Flags &^= CellFlagBold
		case code == 23:
			s.pen.Flags &^= CellFlagItalic
		case code == 24:
			s.pen.Flags &^= CellFlagUnderline
		case code >= 30 && code <= 37:
			s.pen.Fg = Indexed(uint8(code - 30))
		case code == 39:
			s.pen.Fg = Color{}
		case code >= 40 && code <= 47:
			s.pen.Bg = Indexed(uint8(code - 40))
		case code == 49:
			s.pen.Bg = Color{}
		case code >= 90 && code <= 97:
			s.pen.Fg = Indexed(uint8(code - 90 + 8))
		case code >= 100 && code <= 107:
			s.pen.Bg = Indexed(uint8(code - 100 + 8))
		case code == 38, code == 48:
			c, ok, skip := extendedColor(params, i)
			i += skip
			if !ok {
				continue
			}
			if code == 38 {
				s.pen.Fg = c
			} else {
				s.pen.Bg = c
			}
		}
	}
}

// extendedColor reads a 38/48 color starting at params[i].
// It supports "5;n" and "5:n" (256 colors); "2;r;g;b" true colors are consumed
// but not applied since cells carry palette indices only. skip is the number of
// following parameters that belong to this color.
func extendedColor(params [][]uint16, i int) (c Color, ok bool, skip int) {
	// Colon form: all values share one parameter.
	if sub := params[i]; len(sub) > 1 {
		if sub[1] == 5 && len(sub) > 2 && sub[2] <= 255 {
			return Indexed(uint8(sub[2])), true, 0
		}
		return Color{}, false, 0
	}

	switch param(params, i+1, 0) {
	case 5:
		if i+2 >= len(params) {
			return Color{}, false, len(params) - i - 1
		}
		n := param(params, i+2, 0)
		if n > 255 {
			return Color{}, false, 2
		}
		return Indexed(uint8(n)), true, 2
	case 2:
		return Color{}, false, min(4, len(params)-i-1)
	default:
		if i+1 < len(params) {
			return Color{}, false, 1
		}
		return Color{}, false, 0
	}
}

// dcsHook starts collecting a Sixel payload. Other DCS strings are ignored.
func (s *Screen) dcsHook(ev DCSHookEvent) {
	if ev.Final != SixelIntroducer || ev.Ignore || len(ev.Intermediates) > 0 {
		s.mode = idleMode{}
		return
	}
	s.mode = &accumulatingSixel{
		anchor: s.grid.Cursor(),
		params: ev.Params,
	}
}

func (s *Screen) dcsPut(b byte) {
	if acc, ok := s.mode.(*accumulatingSixel); ok {
		acc.buffer = append(acc.buffer, b)
	}
}

// dcsUnhook turns the collected payload into a SixelRegion anchored where the image started.
// The cursor is not moved.
func (s *Screen) dcsUnhook() {
	acc, ok := s.mode.(*accumulatingSixel)
	if !ok {
		return
	}
	s.mode = idleMode{}

	raster := ParseRaster(acc.buffer)
	for _, msg := range raster.Diagnostics {
		s.diagnose(msg)
	}

	cw, ch := s.sizeProvider.CellSizePixels()
	cols, rows := CellsFromPixels(raster.Width, raster.Height, pixels(cw), pixels(ch))

	region := SixelRegion{
		StartRow:    acc.anchor.Row,
		StartCol:    acc.anchor.Col,
		WidthPx:     raster.Width,
		HeightPx:    raster.Height,
		WidthCells:  cols,
		HeightCells: rows,
		Data:        acc.buffer,
	}

	if s.middleware != nil && s.middleware.SixelRegion != nil {
		s.middleware.SixelRegion(region, s.addRegion)
		return
	}
	s.addRegion(region)
}

func (s *Screen) addRegion(region SixelRegion) {
	s.regions = append(s.regions, region)
	s.logger.Debug("sixel region recorded",
		"row", region.StartRow, "col", region.StartCol,
		"width_px", region.WidthPx, "height_px", region.HeightPx,
		"width_cells", region.WidthCells, "height_cells", region.HeightCells)
}

// pixels converts a provider dimension, mapping non-positive values to 0 (use default).
func pixels(n int) uint32 {
	if n <= 0 {
		return 0
	}
	return uint32(n)
}
