package termtest

import (
	"fmt"
	"io"
)

// MemoryRecording keeps every write fed to a screen, in order and with its
// original boundaries, so a session can be replayed exactly as it arrived.
//
// Example:
//
//	recorder := termtest.NewMemoryRecording()
//	screen := termtest.New(termtest.WithRecording(recorder))
//	// ... feed program output ...
//	data := recorder.Data() // replay into another screen with FindFirstDivergence
type MemoryRecording struct {
	chunks [][]byte
	size   int
}

// NewMemoryRecording creates an empty in-memory recording.
func NewMemoryRecording() *MemoryRecording {
	return &MemoryRecording{}
}

// Record stores a copy of one write. Empty writes are not kept.
func (r *MemoryRecording) Record(data []byte) {
	if len(data) == 0 {
		return
	}
	r.chunks = append(r.chunks, append([]byte(nil), data...))
	r.size += len(data)
}

// Data returns all recorded bytes concatenated.
func (r *MemoryRecording) Data() []byte {
	out := make([]byte, 0, r.size)
	for _, c := range r.chunks {
		out = append(out, c...)
	}
	return out
}

// Chunks returns a copy of the recorded writes with their original boundaries.
func (r *MemoryRecording) Chunks() [][]byte {
	out := make([][]byte, len(r.chunks))
	for i, c := range r.chunks {
		out[i] = append([]byte(nil), c...)
	}
	return out
}

// Replay writes the recorded chunks to w one by one, stopping at the first error.
func (r *MemoryRecording) Replay(w io.Writer) error {
	for i, c := range r.chunks {
		if _, err := w.Write(c); err != nil {
			return fmt.Errorf("replay chunk %d: %w", i, err)
		}
	}
	return nil
}

// Clear discards the recording.
func (r *MemoryRecording) Clear() {
	r.chunks = nil
	r.size = 0
}

// RecordingProvider receives raw input bytes before they are tokenized.
type RecordingProvider interface {
	// Record is called with every chunk passed to Feed.
	Record(data []byte)
	// Data returns everything recorded since the last Clear.
	Data() []byte
	// Clear discards the recording.
	Clear()
}

// NoopRecording records nothing.
type NoopRecording struct{}

func (NoopRecording) Record([]byte) {}
func (NoopRecording) Data() []byte  { return nil }
func (NoopRecording) Clear()        {}

// --- Size Provider ---

// SizeProvider provides the pixel geometry used to convert Sixel images to cells.
type SizeProvider interface {
	// WindowSizePixels returns the terminal window size in pixels.
	WindowSizePixels() (width, height int)
	// CellSizePixels returns the size of a single cell in pixels.
	CellSizePixels() (width, height int)
}

// NoopSizeProvider reports the default 8x6 cell, one Sixel band per row.
type NoopSizeProvider struct{}

func (NoopSizeProvider) WindowSizePixels() (width, height int) {
	return DEFAULT_COLS * DefaultCellWidth, DEFAULT_ROWS * DefaultCellHeight
}
func (NoopSizeProvider) CellSizePixels() (width, height int) {
	return DefaultCellWidth, DefaultCellHeight
}

var (
	_ RecordingProvider = (*NoopRecording)(nil)
	_ RecordingProvider = (*MemoryRecording)(nil)
	_ SizeProvider      = (*NoopSizeProvider)(nil)
	_ SizeProvider      = (*Profile)(nil)
)
