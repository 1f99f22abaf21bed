package termtest

import "testing"

func applyAll(s *Screen, events ...Event) {
	for _, ev := range events {
		s.Apply(ev)
	}
}

func printString(s *Screen, text string) {
	for _, r := range text {
		s.Apply(PrintEvent{Rune: r})
	}
}

func csi(final rune, params ...uint16) CSIEvent {
	ev := CSIEvent{Final: final}
	for _, p := range params {
		ev.Params = append(ev.Params, []uint16{p})
	}
	return ev
}

func sixelEvents(payload string) []Event {
	events := []Event{DCSHookEvent{Final: SixelIntroducer}}
	for i := 0; i < len(payload); i++ {
		events = append(events, DCSPutEvent{Byte: payload[i]})
	}
	return append(events, DCSUnhookEvent{})
}

func TestApply_Print(t *testing.T) {
	s := New(WithSize(5, 10))
	printString(s, "Hi")

	if s.LineContent(0) != "Hi" {
		t.Errorf("expected 'Hi', got %q", s.LineContent(0))
	}
	row, col := s.CursorPos()
	if row != 0 || col != 2 {
		t.Errorf("expected cursor (0, 2), got (%d, %d)", row, col)
	}
}

func TestApply_DeferredWrap(t *testing.T) {
	s := New(WithSize(3, 4))
	printString(s, "abcd")

	row, col := s.CursorPos()
	if row != 0 || col != 3 {
		t.Errorf("expected cursor to stay on last column, got (%d, %d)", row, col)
	}

	printString(s, "e")
	if s.LineContent(1) != "e" {
		t.Errorf("expected wrap to row 1, got %q", s.LineContent(1))
	}
	row, col = s.CursorPos()
	if row != 1 || col != 1 {
		t.Errorf("expected cursor (1, 1), got (%d, %d)", row, col)
	}
}

func TestApply_CarriageReturnCancelsWrap(t *testing.T) {
	s := New(WithSize(3, 4))
	printString(s, "abcd")
	s.Apply(ExecuteEvent{Byte: '\r'})
	printString(s, "X")

	if s.LineContent(0) != "Xbcd" {
		t.Errorf("expected 'Xbcd', got %q", s.LineContent(0))
	}
	if s.LineContent(1) != "" {
		t.Errorf("expected row 1 empty, got %q", s.LineContent(1))
	}
}

func TestApply_WrapScrollsOnLastRow(t *testing.T) {
	s := New(WithSize(2, 3))
	printString(s, "abcdefg")

	if s.LineContent(0) != "def" || s.LineContent(1) != "g" {
		t.Errorf("expected scrolled rows 'def'/'g', got %q/%q", s.LineContent(0), s.LineContent(1))
	}
}

func TestApply_WideChar(t *testing.T) {
	s := New(WithSize(2, 10))
	printString(s, "中a")

	if c := s.Cell(0, 0); !c.IsWide() || c.Char != '中' {
		t.Errorf("expected wide cell, got %v", c)
	}
	if c := s.Cell(0, 1); !c.IsWideSpacer() {
		t.Errorf("expected spacer, got %v", c)
	}
	if s.LineContent(0) != "中a" {
		t.Errorf("expected '中a', got %q", s.LineContent(0))
	}
	_, col := s.CursorPos()
	if col != 3 {
		t.Errorf("expected cursor col 3, got %d", col)
	}
}

func TestApply_WideCharWrapsWhenNoRoom(t *testing.T) {
	s := New(WithSize(2, 3))
	printString(s, "ab中")

	if s.LineContent(0) != "ab" {
		t.Errorf("expected 'ab', got %q", s.LineContent(0))
	}
	if c := s.Cell(1, 0); c.Char != '中' || !c.IsWide() {
		t.Errorf("expected wide char on row 1, got %v", c)
	}
}

func TestApply_OverwriteWideHalf(t *testing.T) {
	s := New(WithSize(1, 10))
	printString(s, "中")
	applyAll(s, csi('G', 2))
	printString(s, "x")

	if c := s.Cell(0, 0); c.IsWide() || c.Char != ' ' {
		t.Errorf("expected wide head reset, got %v", c)
	}
	if c := s.Cell(0, 1); c.Char != 'x' || c.IsWideSpacer() {
		t.Errorf("expected 'x' replacing spacer, got %v", c)
	}
}

func TestApply_ZeroWidthDropped(t *testing.T) {
	s := New(WithSize(1, 10))
	printString(s, "a\u0301b")

	if s.LineContent(0) != "ab" {
		t.Errorf("expected combining mark dropped, got %q", s.LineContent(0))
	}
}

func TestApply_LineFeedKeepsColumn(t *testing.T) {
	s := New(WithSize(5, 10))
	printString(s, "abc")
	s.Apply(ExecuteEvent{Byte: '\n'})

	row, col := s.CursorPos()
	if row != 1 || col != 3 {
		t.Errorf("expected cursor (1, 3), got (%d, %d)", row, col)
	}
}

func TestApply_Tab(t *testing.T) {
	s := New(WithSize(1, 20))
	s.Apply(ExecuteEvent{Byte: '\t'})
	if _, col := s.CursorPos(); col != 8 {
		t.Errorf("expected col 8, got %d", col)
	}

	s.Apply(ExecuteEvent{Byte: '\t'})
	s.Apply(ExecuteEvent{Byte: '\t'})
	if _, col := s.CursorPos(); col != 19 {
		t.Errorf("expected col clamped to 19, got %d", col)
	}
}

func TestApply_Backspace(t *testing.T) {
	s := New(WithSize(1, 10))
	s.Apply(ExecuteEvent{Byte: '\b'})
	if _, col := s.CursorPos(); col != 0 {
		t.Errorf("expected col 0, got %d", col)
	}

	printString(s, "ab")
	s.Apply(ExecuteEvent{Byte: '\b'})
	if _, col := s.CursorPos(); col != 1 {
		t.Errorf("expected col 1, got %d", col)
	}
}

func TestApply_CursorMovement(t *testing.T) {
	s := New(WithSize(24, 80))

	tests := []struct {
		ev       CSIEvent
		row, col int
	}{
		{csi('H', 5, 10), 4, 9},
		{csi('A', 2), 2, 9},
		{csi('B'), 3, 9},
		{csi('C', 0), 3, 10},
		{csi('D', 4), 3, 6},
		{csi('E', 2), 5, 0},
		{csi('F'), 4, 0},
		{csi('G', 30), 4, 29},
		{csi('d', 12), 11, 29},
		{csi('`', 1), 11, 0},
		{csi('f'), 0, 0},
		{csi('A', 5), 0, 0},
		{csi('H', 100, 200), 23, 79},
	}

	for _, tt := range tests {
		s.Apply(tt.ev)
		row, col := s.CursorPos()
		if row != tt.row || col != tt.col {
			t.Errorf("%v: expected (%d, %d), got (%d, %d)", tt.ev, tt.row, tt.col, row, col)
		}
	}
}

func TestApply_EraseDisplay(t *testing.T) {
	fill := func() *Screen {
		s := New(WithSize(3, 3))
		printString(s, "abcdefghi")
		applyAll(s, csi('H', 2, 2))
		return s
	}

	s := fill()
	s.Apply(csi('J'))
	if s.String() != "abc\nd" {
		t.Errorf("ED 0: got %q", s.String())
	}

	s = fill()
	s.Apply(csi('J', 1))
	if s.Contents() != "   \n  f\nghi" {
		t.Errorf("ED 1: got %q", s.Contents())
	}

	s = fill()
	s.Apply(csi('J', 2))
	if s.String() != "" {
		t.Errorf("ED 2: got %q", s.String())
	}
	row, col := s.CursorPos()
	if row != 1 || col != 1 {
		t.Errorf("expected cursor unchanged, got (%d, %d)", row, col)
	}

	s = fill()
	s.Apply(csi('J', 3))
	if s.String() != "abc\ndef\nghi" {
		t.Errorf("ED 3: got %q", s.String())
	}
}

func TestApply_EraseLine(t *testing.T) {
	tests := []struct {
		mode uint16
		want string
	}{
		{0, "ab"},
		{1, "   de"},
		{2, ""},
	}

	for _, tt := range tests {
		s := New(WithSize(1, 5))
		printString(s, "abcde")
		applyAll(s, csi('G', 3))
		s.Apply(csi('K', tt.mode))

		if s.LineContent(0) != tt.want {
			t.Errorf("EL %d: expected %q, got %q", tt.mode, tt.want, s.LineContent(0))
		}
	}
}

func TestApply_SGR(t *testing.T) {
	s := New(WithSize(1, 20))

	s.Apply(csi('m', 1, 4, 31, 42))
	printString(s, "a")
	c := s.Cell(0, 0)
	if !c.Bold() || !c.Underline() || c.Italic() {
		t.Errorf("expected bold+underline, got %v", c)
	}
	if c.Fg != Indexed(1) || c.Bg != Indexed(2) {
		t.Errorf("expected fg 1 bg 2, got %v", c)
	}

	s.Apply(csi('m', 22, 24, 39, 49, 3, 95, 104))
	printString(s, "b")
	c = s.Cell(0, 1)
	if c.Bold() || c.Underline() || !c.Italic() {
		t.Errorf("expected italic only, got %v", c)
	}
	if c.Fg != Indexed(13) || c.Bg != Indexed(12) {
		t.Errorf("expected bright colors, got %v", c)
	}

	s.Apply(csi('m'))
	printString(s, "c")
	if c := s.Cell(0, 2); c.Flags != 0 || !c.Fg.IsDefault() || !c.Bg.IsDefault() {
		t.Errorf("expected reset pen, got %v", c)
	}
}

func TestApply_SGRExtendedColors(t *testing.T) {
	s := New(WithSize(1, 20))

	s.Apply(csi('m', 38, 5, 200, 48, 5, 17))
	printString(s, "a")
	if c := s.Cell(0, 0); c.Fg != Indexed(200) || c.Bg != Indexed(17) {
		t.Errorf("expected 256 colors, got %v", c)
	}

	s.Apply(CSIEvent{Final: 'm', Params: [][]uint16{{38, 5, 99}}})
	printString(s, "b")
	if c := s.Cell(0, 1); c.Fg != Indexed(99) {
		t.Errorf("expected colon form color 99, got %v", c)
	}

	// True color is consumed, so the trailing 1 still applies.
	s.Apply(csi('m', 0, 38, 2, 10, 20, 30, 1))
	printString(s, "c")
	if c := s.Cell(0, 2); !c.Fg.IsDefault() || !c.Bold() {
		t.Errorf("expected default fg and bold, got %v", c)
	}
}

func TestApply_IgnoresPrivateCSI(t *testing.T) {
	s := New(WithSize(5, 5))
	s.Apply(CSIEvent{Final: 'H', Intermediates: []byte{'?'}, Params: [][]uint16{{3}, {3}}})
	s.Apply(CSIEvent{Final: 'J', Ignore: true, Params: [][]uint16{{2}}})

	row, col := s.CursorPos()
	if row != 0 || col != 0 {
		t.Errorf("expected cursor untouched, got (%d, %d)", row, col)
	}
}

func TestApply_SixelRegion(t *testing.T) {
	s := New(WithSize(24, 80))
	applyAll(s, csi('H', 10, 20))
	applyAll(s, sixelEvents("\"1;1;100;50#0~")...)

	regions := s.SixelRegions()
	if len(regions) != 1 {
		t.Fatalf("expected 1 region, got %d", len(regions))
	}
	r := regions[0]
	if r.StartRow != 9 || r.StartCol != 19 {
		t.Errorf("expected anchor (9, 19), got (%d, %d)", r.StartRow, r.StartCol)
	}
	if r.WidthCells != 13 || r.HeightCells != 9 {
		t.Errorf("expected 13x9 cells, got %dx%d", r.WidthCells, r.HeightCells)
	}
	if string(r.Data) != "\"1;1;100;50#0~" {
		t.Errorf("unexpected payload %q", r.Data)
	}

	row, col := s.CursorPos()
	if row != 9 || col != 19 {
		t.Errorf("expected cursor not moved, got (%d, %d)", row, col)
	}
}

func TestApply_NonSixelDCSIgnored(t *testing.T) {
	s := New()
	applyAll(s,
		DCSHookEvent{Final: 'q', Intermediates: []byte{'$'}},
		DCSPutEvent{Byte: 'm'},
		DCSUnhookEvent{},
		DCSHookEvent{Final: 'p'},
		DCSUnhookEvent{},
	)

	if len(s.SixelRegions()) != 0 {
		t.Errorf("expected no regions, got %v", s.SixelRegions())
	}
	if s.IsAccumulatingSixel() {
		t.Error("expected idle state")
	}
}

func TestApply_UnhookWithoutHook(t *testing.T) {
	s := New()
	s.Apply(DCSPutEvent{Byte: '~'})
	s.Apply(DCSUnhookEvent{})

	if len(s.SixelRegions()) != 0 {
		t.Error("expected stray unhook to be ignored")
	}
}

func TestApply_AccumulatingState(t *testing.T) {
	s := New()
	s.Apply(DCSHookEvent{Final: SixelIntroducer})

	if !s.IsAccumulatingSixel() {
		t.Error("expected accumulating after hook")
	}

	s.Apply(DCSUnhookEvent{})
	if s.IsAccumulatingSixel() {
		t.Error("expected idle after unhook")
	}
}

func TestApply_OSCAndESCDoNotTouchGrid(t *testing.T) {
	s := New(WithSize(3, 3))
	printString(s, "ab")
	before := s.Snapshot()

	s.Apply(OSCEvent{Params: [][]byte{[]byte("0"), []byte("title")}})
	s.Apply(ESCEvent{Final: 'c'})

	if !before.Equal(s.Snapshot()) {
		t.Error("expected grid unchanged")
	}
}
