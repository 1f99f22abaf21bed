package termtest

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/danielgatis/go-vte"
)

const (
	// DEFAULT_ROWS is the default number of screen rows.
	DEFAULT_ROWS = 24
	// DEFAULT_COLS is the default number of screen columns.
	DEFAULT_COLS = 80
)

// Screen is a headless terminal screen that records Sixel images.
//
// It owns a character grid with cursor, the current pen (SGR attributes) and
// an ordered, append-only list of Sixel regions. Bytes written to the screen
// are tokenized by go-vte and applied as events in order; tokenizer state
// survives across calls, so output can be fed in arbitrary chunks.
//
// Autowrap is deferred: after a character fills the last column the cursor
// stays on that column, and [Screen.CursorPos] reports it there until the next
// printable character wraps to the following row.
//
// A Screen is not safe for concurrent use. Callers that read from a PTY in
// one goroutine and assert in another must serialize access themselves.
type Screen struct {
	rows int
	cols int

	grid        *Grid
	pen         CellTemplate
	wrapPending bool

	// Sixel state
	mode        sixelMode
	regions     []SixelRegion
	diagnostics []string

	parser *vte.Parser

	logger            *log.Logger
	middleware        *Middleware
	sizeProvider      SizeProvider
	recordingProvider RecordingProvider
}

// Option configures a Screen during construction.
type Option func(*Screen)

// WithSize sets the screen dimensions.
// Values <= 0 are replaced with defaults (24x80).
func WithSize(rows, cols int) Option {
	if rows <= 0 {
		rows = DEFAULT_ROWS
	}
	if cols <= 0 {
		cols = DEFAULT_COLS
	}

	return func(s *Screen) {
		s.rows = rows
		s.cols = cols
	}
}

// WithSizeProvider sets the provider for the cell pixel size used to convert Sixel images.
// Defaults to 8x6 pixels per cell.
func WithSizeProvider(p SizeProvider) Option {
	return func(s *Screen) {
		s.sizeProvider = p
	}
}

// WithProfile uses a terminal profile as size provider.
// When the profile declares a grid size, it is used as the screen size.
func WithProfile(p Profile) Option {
	return func(s *Screen) {
		s.sizeProvider = p
		if p.Rows > 0 && p.Cols > 0 {
			s.rows = p.Rows
			s.cols = p.Cols
		}
	}
}

// WithLogger sets the logger for diagnostics (malformed Sixel metadata at WARN, recorded regions at DEBUG).
// Defaults to a logger that discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Screen) {
		s.logger = l
	}
}

// WithMiddleware sets functions to intercept screen events.
// Each middleware receives the event and a next function to call the default handling.
func WithMiddleware(mw *Middleware) Option {
	return func(s *Screen) {
		if s.middleware == nil {
			s.middleware = &Middleware{}
		}
		s.middleware.Merge(mw)
	}
}

// WithRecording sets the handler for capturing raw input bytes before tokenizing.
// Useful for replay, debugging, or regression testing.
func WithRecording(p RecordingProvider) Option {
	return func(s *Screen) {
		s.recordingProvider = p
	}
}

// New creates a screen with the given options.
// Defaults to 24x80, an 8x6 pixel cell and no logging.
func New(opts ...Option) *Screen {
	s := &Screen{
		rows:              DEFAULT_ROWS,
		cols:              DEFAULT_COLS,
		mode:              idleMode{},
		sizeProvider:      NoopSizeProvider{},
		recordingProvider: NoopRecording{},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.sizeProvider == nil {
		s.sizeProvider = NoopSizeProvider{}
	}
	if s.recordingProvider == nil {
		s.recordingProvider = NoopRecording{}
	}

	s.grid = NewGrid(s.rows, s.cols)
	s.parser = newParser(s.Apply)

	return s
}

// Feed processes raw bytes, parsing escape sequences and updating the screen.
// Incomplete sequences at the end of data are completed by later calls.
func (s *Screen) Feed(data []byte) {
	s.recordingProvider.Record(data)
	for _, b := range data {
		s.parser.Advance(b)
	}
}

// Write feeds data to the screen. It never fails. Implements io.Writer.
func (s *Screen) Write(data []byte) (int, error) {
	s.Feed(data)
	return len(data), nil
}

// WriteString is a convenience method that converts the string to bytes and calls Write.
func (s *Screen) WriteString(str string) (int, error) {
	return s.Write([]byte(str))
}

// Rows returns the screen height in character rows.
func (s *Screen) Rows() int {
	return s.grid.Rows()
}

// Cols returns the screen width in character columns.
func (s *Screen) Cols() int {
	return s.grid.Cols()
}

// Size returns the screen dimensions.
func (s *Screen) Size() (rows, cols int) {
	return s.grid.Rows(), s.grid.Cols()
}

// Cell returns the cell at (row, col).
// Returns nil if coordinates are out of bounds.
func (s *Screen) Cell(row, col int) *Cell {
	return s.grid.Cell(row, col)
}

// CursorPos returns the current cursor position (0-based).
func (s *Screen) CursorPos() (row, col int) {
	cur := s.grid.Cursor()
	return cur.Row, cur.Col
}

// Contents returns all rows joined by newlines. Trailing spaces are preserved.
func (s *Screen) Contents() string {
	return s.grid.Contents()
}

// RowContents returns the text of a row including trailing spaces.
func (s *Screen) RowContents(row int) string {
	return s.grid.RowContents(row)
}

// LineContent returns the text content of a line, trimming trailing spaces.
// Returns empty string if the line contains only spaces or is out of bounds.
func (s *Screen) LineContent(row int) string {
	return s.grid.LineContent(row)
}

// String returns the visible screen content as a newline-separated string.
// Trailing spaces and trailing empty lines are omitted. Implements fmt.Stringer.
func (s *Screen) String() string {
	lines := make([]string, s.grid.Rows())
	lastNonEmpty := -1
	for row := range lines {
		lines[row] = s.grid.LineContent(row)
		if lines[row] != "" {
			lastNonEmpty = row
		}
	}
	return strings.Join(lines[:lastNonEmpty+1], "\n")
}

// Contains returns true if text appears on any single row.
func (s *Screen) Contains(text string) bool {
	for row := 0; row < s.grid.Rows(); row++ {
		if strings.Contains(s.grid.RowContents(row), text) {
			return true
		}
	}
	return false
}

// TextAt returns the character at (row, col).
// Returns false if the coordinates are out of bounds.
func (s *Screen) TextAt(row, col int) (rune, bool) {
	cell := s.grid.Cell(row, col)
	if cell == nil {
		return 0, false
	}
	return cell.Char, true
}

// SixelRegions returns a copy of the recorded Sixel regions in drawing order.
func (s *Screen) SixelRegions() []SixelRegion {
	return cloneRegions(s.regions)
}

// HasSixelAt returns true if any recorded Sixel region covers the cell at (row, col).
func (s *Screen) HasSixelAt(row, col int) bool {
	for _, r := range s.regions {
		if r.Bounds().Contains(row, col) {
			return true
		}
	}
	return false
}

// IsAccumulatingSixel returns true while a Sixel payload is being received.
func (s *Screen) IsAccumulatingSixel() bool {
	_, ok := s.mode.(*accumulatingSixel)
	return ok
}

// Diagnostics returns the non-fatal problems found while reading Sixel metadata.
func (s *Screen) Diagnostics() []string {
	return append([]string(nil), s.diagnostics...)
}

// Resize changes the screen dimensions, preserving overlapping cells.
// Recorded Sixel regions keep their original coordinates; repositioning them is up to the caller.
// Invalid dimensions (<= 0) are ignored.
func (s *Screen) Resize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}
	s.grid.Resize(rows, cols)
	s.rows, s.cols = rows, cols
	s.wrapPending = false
}

// ClearSixelRegions drops every recorded Sixel region.
// Erasing the screen does not do this implicitly.
func (s *Screen) ClearSixelRegions() {
	s.regions = nil
}

// Reset returns the screen to its initial state, keeping its size and options.
func (s *Screen) Reset() {
	s.grid = NewGrid(s.rows, s.cols)
	s.pen = CellTemplate{}
	s.wrapPending = false
	s.mode = idleMode{}
	s.regions = nil
	s.diagnostics = nil
	s.parser = newParser(s.Apply)
}

// Middleware returns the current middleware, or nil if not set.
func (s *Screen) Middleware() *Middleware {
	return s.middleware
}

// RecordedData returns all raw bytes captured by the recording provider.
func (s *Screen) RecordedData() []byte {
	return s.recordingProvider.Data()
}

func (s *Screen) diagnose(msg string) {
	s.diagnostics = append(s.diagnostics, msg)
	s.logger.Warn(msg)
}

func cloneRegions(regions []SixelRegion) []SixelRegion {
	if len(regions) == 0 {
		return nil
	}
	out := make([]SixelRegion, len(regions))
	for i, r := range regions {
		out[i] = r.clone()
	}
	return out
}
