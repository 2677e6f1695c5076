package pad

import (
	"testing"

	"inkpad/grid"
	"inkpad/hal"
)

type fakeFramebuffer struct {
	w      int
	h      int
	buf    []byte
	clears int
}

func newFakeFramebuffer(w, h int) *fakeFramebuffer {
	return &fakeFramebuffer{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *fakeFramebuffer) Width() int              { return f.w }
func (f *fakeFramebuffer) Height() int             { return f.h }
func (f *fakeFramebuffer) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *fakeFramebuffer) StrideBytes() int        { return f.w * 2 }
func (f *fakeFramebuffer) Buffer() []byte          { return f.buf }
func (f *fakeFramebuffer) Present() error          { return nil }
func (f *fakeFramebuffer) ClearRGB(r, g, b uint8)  { f.clears++ }

type fakeLogger struct {
	lines []string
}

func (l *fakeLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *fakeLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

type fakeDisplay struct{ fb hal.Framebuffer }

func (d fakeDisplay) Framebuffer() hal.Framebuffer { return d.fb }

type fakeInput struct{}

func (fakeInput) Pointer() hal.Pointer   { return nil }
func (fakeInput) Keyboard() hal.Keyboard { return nil }

type fakeTime struct{}

func (fakeTime) Ticks() <-chan uint64 { return nil }

type fakeHAL struct {
	fb  *fakeFramebuffer
	log *fakeLogger
}

func (h *fakeHAL) Logger() hal.Logger   { return h.log }
func (h *fakeHAL) Display() hal.Display { return fakeDisplay{fb: h.fb} }
func (h *fakeHAL) Input() hal.Input     { return fakeInput{} }
func (h *fakeHAL) Time() hal.Time       { return fakeTime{} }

func newTestPad(t *testing.T) (*Pad, *fakeHAL) {
	t.Helper()
	h := &fakeHAL{fb: newFakeFramebuffer(320, 336), log: &fakeLogger{}}
	return New(h, Config{Version: "1.0"}), h
}

// gridPoint returns surface coordinates for the center of cell (row, col).
func gridPoint(p *Pad, row, col int) (float64, float64) {
	return float64(p.originX) + (float64(col)+0.5)*float64(p.cellPx),
		float64(p.originY) + (float64(row)+0.5)*float64(p.cellPx)
}

func sum(vals []float64) float64 {
	var s float64
	for _, v := range vals {
		s += v
	}
	return s
}

func TestNewLayout(t *testing.T) {
	p, h := newTestPad(t)
	if p.cellPx <= 0 {
		t.Fatalf("cellPx = %d; want > 0", p.cellPx)
	}
	if p.originY < hudHeight {
		t.Fatalf("originY = %d; want >= %d (grid below the HUD)", p.originY, hudHeight)
	}
	if got := p.originX + p.cellPx*grid.Cols; got > h.fb.w {
		t.Fatalf("grid right edge = %d; exceeds surface width %d", got, h.fb.w)
	}
}

func TestStrokePaintsCells(t *testing.T) {
	p, _ := newTestPad(t)

	x0, y0 := gridPoint(p, 0, 0)
	x1, y1 := gridPoint(p, 0, 10)
	p.HandlePointer(hal.PointerEvent{Kind: hal.PointerDown, X: x0, Y: y0, Pressure: 1})
	p.HandlePointer(hal.PointerEvent{Kind: hal.PointerMove, X: x1, Y: y1, Pressure: 1})
	p.HandlePointer(hal.PointerEvent{Kind: hal.PointerUp, X: x1, Y: y1})

	vals := p.Values()
	if len(vals) != grid.Cells {
		t.Fatalf("Values() len = %d; want %d", len(vals), grid.Cells)
	}
	for col := 0; col <= 10; col++ {
		if vals[col] <= 0 {
			t.Fatalf("Values()[%d] = 0 after stroke across row 0", col)
		}
	}
}

func TestZeroPressurePressIgnored(t *testing.T) {
	p, _ := newTestPad(t)

	x, y := gridPoint(p, 5, 5)
	p.HandlePointer(hal.PointerEvent{Kind: hal.PointerDown, X: x, Y: y, Pressure: 0})
	p.HandlePointer(hal.PointerEvent{Kind: hal.PointerMove, X: x + 3, Y: y, Pressure: 0})

	if s := sum(p.Values()); s != 0 {
		t.Fatalf("sum(Values()) = %v after zero-pressure press; want 0", s)
	}
}

func TestMoveWithoutPressIgnored(t *testing.T) {
	p, _ := newTestPad(t)

	x, y := gridPoint(p, 5, 5)
	p.HandlePointer(hal.PointerEvent{Kind: hal.PointerMove, X: x, Y: y, Pressure: 1})
	if s := sum(p.Values()); s != 0 {
		t.Fatalf("sum(Values()) = %v after move without press; want 0", s)
	}
}

func TestStrayReleaseHarmless(t *testing.T) {
	p, _ := newTestPad(t)

	x, y := gridPoint(p, 3, 3)
	p.HandlePointer(hal.PointerEvent{Kind: hal.PointerUp, X: x, Y: y})
	p.HandlePointer(hal.PointerEvent{Kind: hal.PointerCancel, X: x, Y: y})
	if s := sum(p.Values()); s != 0 {
		t.Fatalf("sum(Values()) = %v after stray release; want 0", s)
	}

	// The pad still takes a fresh stroke afterwards.
	p.HandlePointer(hal.PointerEvent{Kind: hal.PointerDown, X: x, Y: y, Pressure: 1})
	if s := sum(p.Values()); s <= 0 {
		t.Fatalf("press after stray release did not paint")
	}
}

func TestHUDTapClears(t *testing.T) {
	p, _ := newTestPad(t)

	x, y := gridPoint(p, 5, 5)
	p.HandlePointer(hal.PointerEvent{Kind: hal.PointerDown, X: x, Y: y, Pressure: 1})
	p.HandlePointer(hal.PointerEvent{Kind: hal.PointerUp, X: x, Y: y})
	if s := sum(p.Values()); s <= 0 {
		t.Fatalf("setup stroke did not paint")
	}

	p.HandlePointer(hal.PointerEvent{Kind: hal.PointerDown, X: 10, Y: 4, Pressure: 1})
	if s := sum(p.Values()); s != 0 {
		t.Fatalf("sum(Values()) = %v after HUD tap; want 0", s)
	}
}

func TestClearMidStroke(t *testing.T) {
	p, _ := newTestPad(t)

	x, y := gridPoint(p, 5, 5)
	p.HandlePointer(hal.PointerEvent{Kind: hal.PointerDown, X: x, Y: y, Pressure: 1})
	p.Clear()

	if s := sum(p.Values()); s != 0 {
		t.Fatalf("sum(Values()) = %v after Clear; want 0", s)
	}
	// The interrupted stroke is gone: a move paints nothing...
	p.HandlePointer(hal.PointerEvent{Kind: hal.PointerMove, X: x + 5, Y: y, Pressure: 1})
	if s := sum(p.Values()); s != 0 {
		t.Fatalf("move after mid-stroke Clear painted; want no-op")
	}
	// ...and a fresh press still works.
	p.HandlePointer(hal.PointerEvent{Kind: hal.PointerDown, X: x, Y: y, Pressure: 1})
	if s := sum(p.Values()); s <= 0 {
		t.Fatalf("press after mid-stroke Clear did not paint")
	}
}

func TestHandleKey(t *testing.T) {
	p, _ := newTestPad(t)

	x, y := gridPoint(p, 2, 2)
	p.HandlePointer(hal.PointerEvent{Kind: hal.PointerDown, X: x, Y: y, Pressure: 1})
	p.HandlePointer(hal.PointerEvent{Kind: hal.PointerUp, X: x, Y: y})

	if err := p.HandleKey(hal.KeyEvent{Press: true, Rune: 'c'}); err != nil {
		t.Fatalf("HandleKey(c) = %v; want nil", err)
	}
	if s := sum(p.Values()); s != 0 {
		t.Fatalf("sum(Values()) = %v after c key; want 0", s)
	}

	if err := p.HandleKey(hal.KeyEvent{Press: true, Rune: 'q'}); err != ErrQuit {
		t.Fatalf("HandleKey(q) = %v; want ErrQuit", err)
	}
	if err := p.HandleKey(hal.KeyEvent{Press: true, Code: hal.KeyEscape}); err != ErrQuit {
		t.Fatalf("HandleKey(escape) = %v; want ErrQuit", err)
	}
	if err := p.HandleKey(hal.KeyEvent{Press: false, Rune: 'q'}); err != nil {
		t.Fatalf("HandleKey(q release) = %v; want nil", err)
	}
}

func TestRenderOnlyWhenDirty(t *testing.T) {
	p, h := newTestPad(t)

	p.Render()
	first := h.fb.clears
	if first == 0 {
		t.Fatalf("initial Render did not repaint")
	}

	p.Render()
	if h.fb.clears != first {
		t.Fatalf("Render repainted a clean pad")
	}

	x, y := gridPoint(p, 1, 1)
	p.HandlePointer(hal.PointerEvent{Kind: hal.PointerDown, X: x, Y: y, Pressure: 1})
	p.Render()
	if h.fb.clears != first+1 {
		t.Fatalf("Render after stroke did not repaint")
	}
}

func TestRenderShadesMarkedCells(t *testing.T) {
	p, h := newTestPad(t)

	x, y := gridPoint(p, 0, 0)
	p.HandlePointer(hal.PointerEvent{Kind: hal.PointerDown, X: x, Y: y, Pressure: 1})
	p.HandlePointer(hal.PointerEvent{Kind: hal.PointerUp, X: x, Y: y})
	p.Render()

	// Center pixel of cell (0,0) should be near-white.
	px := p.originX + p.cellPx/2
	py := p.originY + p.cellPx/2
	off := py*h.fb.StrideBytes() + px*2
	pixel := uint16(h.fb.buf[off]) | uint16(h.fb.buf[off+1])<<8
	if pixel == 0 {
		t.Fatalf("marked cell rendered black; want a bright shade")
	}
}
