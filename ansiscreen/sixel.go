package ansiscreen

import "github.com/danielgatis/go-vte"

// sixelTap collects DCS q payloads from a go-vte parser fed the same bytes as
// the decoder, which does not surface DCS data. Everything else is ignored.
type sixelTap struct {
	screen *Screen
	active bool
	params [][]uint16
	buf    []byte
}

func newSixelParser(s *Screen) *vte.Parser {
	return vte.NewParser(&sixelTap{screen: s})
}

func (t *sixelTap) Hook(params [][]uint16, intermediates []byte, ignore bool, r rune) {
	t.buf = t.buf[:0]
	t.active = r == 'q' && !ignore && len(intermediates) == 0
	if !t.active {
		t.params = nil
		return
	}

	t.params = make([][]uint16, len(params))
	for i, p := range params {
		t.params[i] = append([]uint16(nil), p...)
	}
}

func (t *sixelTap) Put(b byte) {
	if t.active {
		t.buf = append(t.buf, b)
	}
}

func (t *sixelTap) Unhook() {
	if !t.active {
		return
	}
	t.active = false
	t.screen.SixelReceived(t.params, t.buf)
}

func (t *sixelTap) Print(r rune)                                                             {}
func (t *sixelTap) Execute(b byte)                                                           {}
func (t *sixelTap) OscDispatch(params [][]byte, bellTerminated bool)                         {}
func (t *sixelTap) CsiDispatch(params [][]uint16, intermediates []byte, ignore bool, r rune) {}
func (t *sixelTap) EscDispatch(intermediates []byte, ignore bool, b byte)                    {}
func (t *sixelTap) SosPmApcDispatch(kind byte, data []byte, bellTerminated bool)             {}
