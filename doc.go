// Package termtest provides a headless terminal screen for testing programs
// that draw Sixel graphics.
//
// It is meant for:
//   - Asserting that images land inside the area a TUI reserved for them
//   - Detecting images added or left behind across screen transitions
//   - Checking the text and colors a program leaves on screen
//   - Comparing two screen models fed the same output
//
// Sixel pixel data is never decoded. Each image is recorded from its declared
// raster size as a rectangle of cells, a [SixelRegion].
//
// # Quick Start
//
// Create a screen and write program output to it:
//
//	screen := termtest.New(termtest.WithSize(24, 80))
//	screen.WriteString("\x1b[10;20H")
//	screen.WriteString("\x1bPq\"1;1;100;50#0~\x1b\\")
//
//	regions := screen.SixelRegions()
//	// regions[0]: rows 9-17, cols 19-31 (100x50 px at 8x6 px per cell)
//
// # Architecture
//
// Bytes flow through three layers:
//
//   - Tokenizer: go-vte splits the stream into events ([PrintEvent], [CSIEvent], [DCSHookEvent]...)
//   - Consumer: [Screen.Apply] mutates the grid, the pen and the Sixel state for each event
//   - Queries: [Screen], [GridSnapshot] and [Capture] read the result
//
// The tokenizer keeps its state between writes, so output can be fed in chunks
// of any size, including splits inside an escape sequence or a Sixel payload.
// [Screen.Apply] can also be driven directly with hand-built events.
//
// # Screen Model
//
// The screen is a fixed grid of [Cell] values with a cursor that always stays
// inside it. Supported input:
//
//   - Printable characters, with wide (CJK, emoji) characters taking two cells
//   - Deferred autowrap: writing the last column wraps on the next character
//   - LF, CR, HT (8-column stops) and BS
//   - CSI cursor movement (A-G, d, H, f), erase (J, K) and SGR (m)
//   - SGR bold, italic, underline and palette colors (16, 256)
//   - DCS q (Sixel) payloads, recorded on the final ST
//
// Everything else (scrolling regions, alternate screen, OSC) leaves the grid unchanged.
//
// # Sixel Regions
//
// A region is anchored at the cursor position where the DCS started and is
// sized from the raster attributes ("Pan;Pad;Ph;Pv):
//
//	cols = ceil(width_px / cell_width)
//	rows = ceil(height_px / cell_height)
//
// The cell size comes from a [SizeProvider], 8x6 pixels by default. Use
// [WithProfile] with [XtermProfile] or a profile from [LoadProfiles] for a
// specific terminal:
//
//	screen := termtest.New(termtest.WithProfile(termtest.XtermProfile))
//
// Missing or malformed raster attributes fall back to 100x100 pixels and are
// reported by [Screen.Diagnostics] and the logger.
//
// Regions are append-only: erasing the screen does not remove them. Call
// [Screen.ClearSixelRegions] when the program under test clears its images.
//
// # Assertions
//
// A [Capture] freezes the regions of a screen for area checks and diffs:
//
//	capture := screen.Capture()
//	if err := capture.AssertAllWithin(termtest.NewArea(5, 30, 70, 30)); err != nil {
//	    t.Fatal(err) // lists every region outside the area
//	}
//
//	before := screen.Capture()
//	// ... feed a screen transition ...
//	diff := before.Diff(screen.Capture())
//
// # Differential Testing
//
// The ansiscreen subpackage implements the same screen model on top of
// go-ansicode. [CompareScreens] and [FindFirstDivergence] work on any
// [ScreenFeeder], so the two can be fed the same recording:
//
//	recording := termtest.NewMemoryRecording()
//	// ... run the program with termtest.WithRecording(recording) ...
//	offset, err := termtest.FindFirstDivergence(recording.Data(),
//	    termtest.New(), ansiscreen.New(24, 80), 16)
//
// # Middleware
//
// [Middleware] intercepts events before the default handling. Each function
// receives the event and a next callback; not calling next drops the event:
//
//	mw := &termtest.Middleware{
//	    SixelRegion: func(r termtest.SixelRegion, next func(termtest.SixelRegion)) {
//	        log.Printf("image at %s", r.Bounds())
//	        next(r)
//	    },
//	}
//	screen := termtest.New(termtest.WithMiddleware(mw))
//
// # Screenshots
//
// [Screen.Screenshot] renders the grid to an image with Sixel regions drawn as
// outlines, which is useful as an artifact when an assertion fails.
//
// # Thread Safety
//
// A Screen is not safe for concurrent use. Callers that read a PTY in one
// goroutine and assert in another must serialize access themselves.
package termtest
