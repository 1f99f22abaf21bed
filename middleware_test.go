package termtest

import "testing"

func TestMiddlewarePrint(t *testing.T) {
	var intercepted []rune
	s := New(
		WithSize(24, 80),
		WithMiddleware(&Middleware{
			Print: func(r rune, next func(rune)) {
				intercepted = append(intercepted, r)
				// Modify the rune before passing to the screen
				if r == 'a' {
					next('A')
				} else {
					next(r)
				}
			},
		}),
	)

	s.WriteString("abc")

	if len(intercepted) != 3 {
		t.Errorf("expected 3 intercepted runes, got %d", len(intercepted))
	}
	if s.LineContent(0) != "Abc" {
		t.Errorf("expected 'Abc', got '%s'", s.LineContent(0))
	}
}

func TestMiddlewareExecute(t *testing.T) {
	var bytes []byte
	s := New(
		WithSize(24, 80),
		WithMiddleware(&Middleware{
			Execute: func(b byte, next func(byte)) {
				bytes = append(bytes, b)
				next(b)
			},
		}),
	)

	s.WriteString("a\r\nb\x07")

	if string(bytes) != "\r\n\x07" {
		t.Errorf("expected CR LF BEL, got %q", bytes)
	}
}

func TestMiddlewareBlocksErase(t *testing.T) {
	eraseCount := 0
	s := New(
		WithSize(24, 80),
		WithMiddleware(&Middleware{
			CSI: func(ev CSIEvent, next func(CSIEvent)) {
				if ev.Final == 'J' {
					eraseCount++
					// Don't call next - screen won't be cleared
					return
				}
				next(ev)
			},
		}),
	)

	s.WriteString("Hello")
	s.WriteString("\x1b[2J\x1b[1;1H")

	if eraseCount != 1 {
		t.Errorf("expected 1 erase call, got %d", eraseCount)
	}
	if s.LineContent(0) != "Hello" {
		t.Errorf("expected 'Hello' (erase was blocked), got '%s'", s.LineContent(0))
	}
	if row, col := s.CursorPos(); row != 0 || col != 0 {
		t.Errorf("expected other CSI to pass through, got (%d, %d)", row, col)
	}
}

func TestMiddlewareDCS(t *testing.T) {
	var hooks []rune
	var payload []byte
	unhooks := 0
	s := New(
		WithMiddleware(&Middleware{
			DCSHook: func(ev DCSHookEvent, next func(DCSHookEvent)) {
				hooks = append(hooks, ev.Final)
				next(ev)
			},
			DCSPut: func(b byte, next func(byte)) {
				payload = append(payload, b)
				next(b)
			},
			DCSUnhook: func(next func()) {
				unhooks++
				next()
			},
		}),
	)

	s.WriteString("\x1bPq\"1;1;8;6~\x1b\\")

	if len(hooks) != 1 || hooks[0] != 'q' {
		t.Errorf("expected one 'q' hook, got %q", hooks)
	}
	if string(payload) != "\"1;1;8;6~" {
		t.Errorf("unexpected payload %q", payload)
	}
	if unhooks != 1 {
		t.Errorf("expected 1 unhook, got %d", unhooks)
	}
	if len(s.SixelRegions()) != 1 {
		t.Error("expected region recorded through middleware")
	}
}

func TestMiddlewareSixelRegion(t *testing.T) {
	var seen []SixelRegion
	s := New(
		WithMiddleware(&Middleware{
			SixelRegion: func(region SixelRegion, next func(SixelRegion)) {
				seen = append(seen, region)
				if region.StartRow == 0 {
					// Drop images drawn on the first row
					return
				}
				region.StartCol = 0
				next(region)
			},
		}),
	)

	s.WriteString("\x1bPq\"1;1;8;6~\x1b\\")
	s.WriteString("\x1b[3;4H\x1bPq\"1;1;8;6~\x1b\\")

	if len(seen) != 2 {
		t.Errorf("expected 2 regions seen, got %d", len(seen))
	}
	regions := s.SixelRegions()
	if len(regions) != 1 {
		t.Fatalf("expected 1 region kept, got %d", len(regions))
	}
	if regions[0].StartRow != 2 || regions[0].StartCol != 0 {
		t.Errorf("expected altered region at (2, 0), got %v", regions[0])
	}
}

func TestMiddlewareOSCAndESC(t *testing.T) {
	var titles []string
	var escapes []byte
	s := New(
		WithMiddleware(&Middleware{
			OSC: func(ev OSCEvent, next func(OSCEvent)) {
				if len(ev.Params) > 1 {
					titles = append(titles, string(ev.Params[1]))
				}
				next(ev)
			},
			ESC: func(ev ESCEvent, next func(ESCEvent)) {
				escapes = append(escapes, ev.Final)
				next(ev)
			},
		}),
	)

	s.WriteString("\x1b]0;My Title\x07\x1b7")

	if len(titles) != 1 || titles[0] != "My Title" {
		t.Errorf("expected 'My Title', got %q", titles)
	}
	if string(escapes) != "7" {
		t.Errorf("expected ESC 7, got %q", escapes)
	}
}

func TestMiddlewareMerge(t *testing.T) {
	printCalls, csiCalls := 0, 0
	s := New(
		WithMiddleware(&Middleware{
			Print: func(r rune, next func(rune)) {
				printCalls++
				next(r)
			},
		}),
		WithMiddleware(&Middleware{
			CSI: func(ev CSIEvent, next func(CSIEvent)) {
				csiCalls++
				next(ev)
			},
		}),
	)

	s.WriteString("ab\x1b[H")

	if printCalls != 2 || csiCalls != 1 {
		t.Errorf("expected both middlewares active, got print=%d csi=%d", printCalls, csiCalls)
	}
	if s.Middleware() == nil || s.Middleware().Print == nil || s.Middleware().CSI == nil {
		t.Error("expected merged middleware")
	}
}

func TestMiddlewareMergeNil(t *testing.T) {
	mw := &Middleware{Print: func(r rune, next func(rune)) { next(r) }}
	mw.Merge(nil)

	if mw.Print == nil {
		t.Error("expected Merge(nil) to keep existing functions")
	}
}
