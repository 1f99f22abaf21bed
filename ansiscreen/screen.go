// Package ansiscreen is a second, independent screen implementation driven by
// go-ansicode's semantic decoder instead of raw tokenizer events.
//
// The decoder does not surface DCS payloads, so Sixel images are collected by
// a separate go-vte parser fed the same bytes in step with the decoder.
//
// It follows the same screen model as termtest.Screen (deferred autowrap,
// palette-only colors, Sixel regions recorded at the cursor without moving it)
// and implements termtest.ScreenFeeder, so both can be compared with
// termtest.CompareScreens and termtest.FindFirstDivergence:
//
//	ref := termtest.New(termtest.WithSize(24, 80))
//	sut := ansiscreen.New(24, 80)
//	offset, _ := termtest.FindFirstDivergence(data, ref, sut, 16)
package ansiscreen

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/danielgatis/go-ansicode"
	termtest "github.com/danielgatis/go-termtest"
	"github.com/danielgatis/go-vte"
)

// Ensure Screen implements the decoder callbacks and the oracle surface.
var (
	_ ansicode.Handler      = (*Screen)(nil)
	_ termtest.ScreenFeeder = (*Screen)(nil)
)

// Screen is a headless screen decoded by go-ansicode.
// Like termtest.Screen it is not safe for concurrent use.
type Screen struct {
	grid        *termtest.Grid
	pen         termtest.CellTemplate
	wrapPending bool

	regions []termtest.SixelRegion

	decoder      *ansicode.Decoder
	sixelParser  *vte.Parser
	sizeProvider termtest.SizeProvider
	logger       *log.Logger
}

// Option configures a Screen during construction.
type Option func(*Screen)

// WithSizeProvider sets the cell pixel size used to convert Sixel images to cells.
func WithSizeProvider(p termtest.SizeProvider) Option {
	return func(s *Screen) {
		s.sizeProvider = p
	}
}

// WithLogger sets the logger for Sixel diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Screen) {
		s.logger = l
	}
}

// New creates a screen of rows x cols cells. Values <= 0 fall back to 24x80.
func New(rows, cols int, opts ...Option) *Screen {
	if rows <= 0 {
		rows = termtest.DEFAULT_ROWS
	}
	if cols <= 0 {
		cols = termtest.DEFAULT_COLS
	}

	s := &Screen{
		grid:         termtest.NewGrid(rows, cols),
		sizeProvider: termtest.NoopSizeProvider{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.sizeProvider == nil {
		s.sizeProvider = termtest.NoopSizeProvider{}
	}

	s.decoder = ansicode.NewDecoder(s)
	s.sixelParser = newSixelParser(s)
	return s
}

// Write decodes data and updates the screen. Implements io.Writer.
// Bytes are fed one at a time so a Sixel image sees the cursor of its own
// position in the stream.
func (s *Screen) Write(data []byte) (int, error) {
	for i := range data {
		if _, err := s.decoder.Write(data[i : i+1]); err != nil {
			return i, err
		}
		s.sixelParser.Advance(data[i])
	}
	return len(data), nil
}

// WriteString is a convenience method that converts the string to bytes and calls Write.
func (s *Screen) WriteString(str string) (int, error) {
	return s.Write([]byte(str))
}

// Size returns the grid dimensions.
func (s *Screen) Size() (rows, cols int) {
	return s.grid.Rows(), s.grid.Cols()
}

// CursorPos returns the cursor position (0-based).
func (s *Screen) CursorPos() (row, col int) {
	cur := s.grid.Cursor()
	return cur.Row, cur.Col
}

// Cell returns the cell at (row, col), or nil if out of bounds.
func (s *Screen) Cell(row, col int) *termtest.Cell {
	return s.grid.Cell(row, col)
}

// Contents returns all rows joined by newlines. Trailing spaces are preserved.
func (s *Screen) Contents() string {
	return s.grid.Contents()
}

// LineContent returns the text of a row with trailing spaces trimmed.
func (s *Screen) LineContent(row int) string {
	return s.grid.LineContent(row)
}

// SixelRegions returns a copy of the recorded Sixel regions.
func (s *Screen) SixelRegions() []termtest.SixelRegion {
	return termtest.CaptureRegions(s.regions).Regions()
}
