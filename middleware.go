package termtest

// Middleware intercepts screen events, allowing custom behavior before/after execution.
// Each field wraps one event kind: it receives the event and a next function that runs the default handling.
// Not calling next drops the event.
//
// Example:
//
//	mw := &termtest.Middleware{
//		Print: func(r rune, next func(rune)) {
//			next(unicode.ToUpper(r))
//		},
//	}
//	screen := termtest.New(termtest.WithMiddleware(mw))
type Middleware struct {
	// Print wraps printable characters
	Print func(r rune, next func(rune))

	// Execute wraps C0/C1 control bytes
	Execute func(b byte, next func(byte))

	// CSI wraps control sequences (cursor movement, erase, SGR)
	CSI func(ev CSIEvent, next func(CSIEvent))

	// DCSHook wraps the start of a Device Control String
	DCSHook func(ev DCSHookEvent, next func(DCSHookEvent))

	// DCSPut wraps each payload byte of a Device Control String
	DCSPut func(b byte, next func(byte))

	// DCSUnhook wraps the end of a Device Control String
	DCSUnhook func(next func())

	// OSC wraps Operating System Commands
	OSC func(ev OSCEvent, next func(OSCEvent))

	// ESC wraps escape sequences
	ESC func(ev ESCEvent, next func(ESCEvent))

	// SixelRegion wraps the recording of a finished Sixel image.
	// The region can be inspected, altered before calling next, or dropped.
	SixelRegion func(region SixelRegion, next func(SixelRegion))
}

// Merge copies non-nil middleware functions from other into this, overwriting existing values.
func (m *Middleware) Merge(other *Middleware) {
	if other == nil {
		return
	}

	if other.Print != nil {
		m.Print = other.Print
	}
	if other.Execute != nil {
		m.Execute = other.Execute
	}
	if other.CSI != nil {
		m.CSI = other.CSI
	}
	if other.DCSHook != nil {
		m.DCSHook = other.DCSHook
	}
	if other.DCSPut != nil {
		m.DCSPut = other.DCSPut
	}
	if other.DCSUnhook != nil {
		m.DCSUnhook = other.DCSUnhook
	}
	if other.OSC != nil {
		m.OSC = other.OSC
	}
	if other.ESC != nil {
		m.ESC = other.ESC
	}
	if other.SixelRegion != nil {
		m.SixelRegion = other.SixelRegion
	}
}
