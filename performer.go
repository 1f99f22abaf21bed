package termtest

import "github.com/danielgatis/go-vte"

// performer adapts the go-vte callback surface to [Event] values.
// The tokenizer reuses its parameter buffers, so every slice is copied before dispatch.
type performer struct {
	emit func(Event)
}

func newParser(emit func(Event)) *vte.Parser {
	return vte.NewParser(&performer{emit: emit})
}

func (p *performer) Print(r rune) {
	p.emit(PrintEvent{Rune: r})
}

func (p *performer) Execute(b byte) {
	p.emit(ExecuteEvent{Byte: b})
}

func (p *performer) Put(b byte) {
	p.emit(DCSPutEvent{Byte: b})
}

func (p *performer) Unhook() {
	p.emit(DCSUnhookEvent{})
}

func (p *performer) Hook(params [][]uint16, intermediates []byte, ignore bool, r rune) {
	p.emit(DCSHookEvent{
		Params:        copyParams(params),
		Intermediates: copyBytes(intermediates),
		Ignore:        ignore,
		Final:         r,
	})
}

func (p *performer) OscDispatch(params [][]byte, bellTerminated bool) {
	out := make([][]byte, len(params))
	for i, param := range params {
		out[i] = copyBytes(param)
	}
	p.emit(OSCEvent{Params: out, BellTerminated: bellTerminated})
}

func (p *performer) CsiDispatch(params [][]uint16, intermediates []byte, ignore bool, r rune) {
	p.emit(CSIEvent{
		Params:        copyParams(params),
		Intermediates: copyBytes(intermediates),
		Ignore:        ignore,
		Final:         r,
	})
}

func (p *performer) EscDispatch(intermediates []byte, ignore bool, b byte) {
	p.emit(ESCEvent{
		Intermediates: copyBytes(intermediates),
		Ignore:        ignore,
		Final:         b,
	})
}

// SosPmApcDispatch receives SOS/PM/APC strings, which carry nothing for this screen model.
func (p *performer) SosPmApcDispatch(kind byte, data []byte, bellTerminated bool) {}

func copyParams(params [][]uint16) [][]uint16 {
	if len(params) == 0 {
		return nil
	}
	out := make([][]uint16, len(params))
	for i, param := range params {
		out[i] = append([]uint16(nil), param...)
	}
	return out
}

func copyBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return append([]byte(nil), b...)
}
