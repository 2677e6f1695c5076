// Package pad is the sketch pad widget: it owns the intensity grid, turns HAL
// pointer events into strokes, and renders the result to the framebuffer.
package pad

import (
	"errors"
	"image/color"
	"sync"

	"inkpad/grid"
	"inkpad/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// ErrQuit is returned by Step when the user asks to close the pad.
var ErrQuit = errors.New("quit")

// hudHeight is the strip above the grid holding the caption. Tapping it
// clears the pad.
const hudHeight = 16

// Config carries the tunables the entrypoints expose.
type Config struct {
	// Radius overrides the brush radius in pixels; zero keeps the grid
	// default (cell size * sqrt(2)/2).
	Radius float64

	// Version is shown in the HUD caption.
	Version string
}

// Pad binds a grid to a framebuffer and input events.
//
// All mutations happen on the UI loop via Handle*/Render. Values and Clear
// are safe to call from other goroutines (the HTTP sidecar); the mutex exists
// only for that boundary.
type Pad struct {
	mu sync.Mutex

	g      *grid.Grid
	fb     hal.Framebuffer
	logger hal.Logger

	version string
	font    tinyfont.Fonter

	// Grid placement on the surface, in pixels.
	cellPx  int
	originX int
	originY int

	dirty bool
}

// New builds a pad sized to the framebuffer: the largest 28x28 cell grid that
// fits under the HUD strip, centered.
func New(h hal.HAL, cfg Config) *Pad {
	fb := h.Display().Framebuffer()

	w := fb.Width()
	fit := fb.Height() - hudHeight
	if w < fit {
		fit = w
	}
	cellPx := fit / grid.Cols
	if cellPx < 1 {
		cellPx = 1
	}

	p := &Pad{
		g: grid.New(grid.Config{
			CellSize: float64(cellPx),
			Radius:   cfg.Radius,
		}),
		fb:      fb,
		logger:  h.Logger(),
		version: cfg.Version,
		font:    &proggy.TinySZ8pt7b,
		cellPx:  cellPx,
		originX: (w - cellPx*grid.Cols) / 2,
		originY: hudHeight + (fb.Height()-hudHeight-cellPx*grid.Rows)/2,
		dirty:   true,
	}
	return p
}

// Values returns the 784-element intensity vector, row-major, as a copy.
func (p *Pad) Values() []float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.g.Values()
}

// Clear resets every cell and aborts any in-flight stroke.
func (p *Pad) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clearLocked()
}

func (p *Pad) clearLocked() {
	p.g.Clear()
	p.dirty = true
	if p.logger != nil {
		p.logger.WriteLineString("pad: clear")
	}
}

// Version returns the caption version string.
func (p *Pad) Version() string { return p.version }

// HandlePointer feeds one pointer event through the stroke machine. Events
// with no pressure on press are dropped; positions outside the grid area
// degrade to no-ops inside the grid itself.
func (p *Pad) HandlePointer(ev hal.PointerEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch ev.Kind {
	case hal.PointerDown:
		if ev.Pressure <= 0 {
			return
		}
		if int(ev.Y) < p.originY && int(ev.Y) >= 0 {
			// The strip above the grid acts as the clear button.
			p.clearLocked()
			return
		}
		p.g.Begin(ev.X-float64(p.originX), ev.Y-float64(p.originY))
		p.dirty = true
	case hal.PointerMove:
		if !p.g.Drawing() {
			return
		}
		p.g.Move(ev.X-float64(p.originX), ev.Y-float64(p.originY))
		p.dirty = true
	case hal.PointerUp, hal.PointerCancel:
		p.g.End()
	}
}

// HandleKey processes a key event: c clears, q or escape quits.
// It returns ErrQuit when the pad should shut down.
func (p *Pad) HandleKey(ev hal.KeyEvent) error {
	if !ev.Press {
		return nil
	}
	if ev.Code == hal.KeyEscape || ev.Rune == 'q' || ev.Rune == 'Q' {
		return ErrQuit
	}
	if ev.Rune == 'c' || ev.Rune == 'C' {
		p.Clear()
	}
	return nil
}

// Render repaints the framebuffer if anything changed since the last call.
func (p *Pad) Render() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.dirty {
		return
	}
	p.dirty = false
	p.draw()
}

func (p *Pad) draw() {
	if p.fb == nil || p.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := p.fb.Buffer()
	if buf == nil {
		return
	}

	p.fb.ClearRGB(0x10, 0x10, 0x14)

	w := p.fb.Width()
	stride := p.fb.StrideBytes()

	// Cell backgrounds: unmarked cells slightly lighter than the frame so
	// the drawable area reads as a surface.
	base := rgb565From888(0x1E, 0x1E, 0x24)
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			v := p.g.At(row, col)
			pixel := base
			if v > 0 {
				shade := uint8(v * 0xFF)
				pixel = rgb565From888(shade, shade, shade)
			}
			fillCellRGB565(buf, w, stride,
				p.originX+col*p.cellPx,
				p.originY+row*p.cellPx,
				p.cellPx, pixel)
		}
	}

	caption := "inkpad " + p.version + "  [tap here / c] clear"
	p.drawText(2, 2, caption, color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF})

	_ = p.fb.Present()
}

// fillCellRGB565 paints one cell-sized square, minus a 1px gutter so the grid
// lines stay visible.
func fillCellRGB565(buf []byte, w, stride, x0, y0, cell int, pixel uint16) {
	if cell <= 0 {
		return
	}
	side := cell - 1
	if side < 1 {
		side = 1
	}
	for y := 0; y < side; y++ {
		py := y0 + y
		if py < 0 {
			continue
		}
		row := py * stride
		for x := 0; x < side; x++ {
			px := x0 + x
			if px < 0 || px >= w {
				continue
			}
			off := row + px*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			buf[off] = byte(pixel)
			buf[off+1] = byte(pixel >> 8)
		}
	}
}

func rgb565From888(r, g, b uint8) uint16 {
	return uint16((uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F))
}

func (p *Pad) drawText(x, y int, s string, c color.RGBA) {
	d := &fbDisplayer{fb: p.fb}
	tinyfont.WriteLine(d, p.font, int16(x), int16(y)+10, s, c)
}
