package termtest

import "fmt"

// Event is one semantic callback produced by the escape-sequence tokenizer.
// The set of events is closed: only the types in this file implement it.
// Events can be built by hand and passed to [Screen.Apply], which makes the
// consumer testable without any tokenizer present.
type Event interface {
	isEvent()
}

// PrintEvent writes a printable rune at the cursor.
type PrintEvent struct {
	Rune rune
}

// ExecuteEvent runs a C0/C1 control byte (LF, CR, HT, BS...).
type ExecuteEvent struct {
	Byte byte
}

// CSIEvent is a Control Sequence Introducer dispatch (ESC [ params intermediates final).
// Params holds one slice per ';'-separated parameter; colon sub-parameters share a slice.
type CSIEvent struct {
	Params        [][]uint16
	Intermediates []byte
	Ignore        bool
	Final         rune
}

// DCSHookEvent starts a Device Control String (ESC P params intermediates final).
type DCSHookEvent struct {
	Params        [][]uint16
	Intermediates []byte
	Ignore        bool
	Final         rune
}

// DCSPutEvent carries one payload byte of the active Device Control String.
type DCSPutEvent struct {
	Byte byte
}

// DCSUnhookEvent terminates the active Device Control String.
type DCSUnhookEvent struct{}

// OSCEvent is an Operating System Command dispatch.
type OSCEvent struct {
	Params         [][]byte
	BellTerminated bool
}

// ESCEvent is an escape sequence dispatch (ESC intermediates final).
type ESCEvent struct {
	Intermediates []byte
	Ignore        bool
	Final         byte
}

func (PrintEvent) isEvent()     {}
func (ExecuteEvent) isEvent()   {}
func (CSIEvent) isEvent()       {}
func (DCSHookEvent) isEvent()   {}
func (DCSPutEvent) isEvent()    {}
func (DCSUnhookEvent) isEvent() {}
func (OSCEvent) isEvent()       {}
func (ESCEvent) isEvent()       {}

func (e PrintEvent) String() string   { return fmt.Sprintf("Print(%q)", e.Rune) }
func (e ExecuteEvent) String() string { return fmt.Sprintf("Execute(0x%02x)", e.Byte) }
func (e CSIEvent) String() string {
	return fmt.Sprintf("CSI(%v %q %c)", e.Params, e.Intermediates, e.Final)
}
func (e DCSHookEvent) String() string {
	return fmt.Sprintf("DCSHook(%v %q %c)", e.Params, e.Intermediates, e.Final)
}
func (e DCSPutEvent) String() string  { return fmt.Sprintf("DCSPut(0x%02x)", e.Byte) }
func (DCSUnhookEvent) String() string { return "DCSUnhook" }
func (e OSCEvent) String() string     { return fmt.Sprintf("OSC(%q)", e.Params) }
func (e ESCEvent) String() string     { return fmt.Sprintf("ESC(%q %c)", e.Intermediates, e.Final) }

// param returns the first value of parameter i, or def when it is missing.
func param(params [][]uint16, i int, def uint16) uint16 {
	if i >= len(params) || len(params[i]) == 0 {
		return def
	}
	return params[i][0]
}

// countParam returns parameter i for movement commands, where 0 and missing both mean 1.
func countParam(params [][]uint16, i int) int {
	n := param(params, i, 1)
	if n == 0 {
		n = 1
	}
	return int(n)
}
