//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostPointer struct {
	ch chan PointerEvent

	w int
	h int

	mouseDown bool
	touching  bool
	touchID   ebiten.TouchID

	lastX float64
	lastY float64
}

func newHostPointer(w, h int) *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 128), w: w, h: h}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) emit(kind PointerKind, x, y, pressure float64) {
	select {
	case p.ch <- PointerEvent{Kind: kind, X: x, Y: y, Pressure: pressure}:
	default:
	}
}

// poll runs once per ebiten tick. A single active touch owns the surface;
// mouse state is only sampled while no touch is in flight (no multi-contact
// tracking by design of the pad).
func (p *hostPointer) poll() {
	if p.pollTouch() {
		return
	}
	p.pollMouse()
}

func (p *hostPointer) pollTouch() bool {
	if p.touching {
		for _, id := range ebiten.AppendTouchIDs(nil) {
			if id != p.touchID {
				continue
			}
			x, y := ebiten.TouchPosition(id)
			fx, fy := float64(x), float64(y)
			if fx != p.lastX || fy != p.lastY {
				p.emit(PointerMove, fx, fy, 1)
				p.lastX, p.lastY = fx, fy
			}
			return true
		}
		// Contact gone: ebiten reports no position for released
		// touches, so close the stroke where it last was.
		p.touching = false
		p.emit(PointerUp, p.lastX, p.lastY, 0)
		return true
	}

	ids := inpututil.AppendJustPressedTouchIDs(nil)
	if len(ids) == 0 {
		return false
	}
	p.touchID = ids[0]
	p.touching = true
	x, y := ebiten.TouchPosition(p.touchID)
	p.lastX, p.lastY = float64(x), float64(y)
	p.emit(PointerDown, p.lastX, p.lastY, 1)
	return true
}

func (p *hostPointer) pollMouse() {
	x, y := ebiten.CursorPosition()
	fx, fy := float64(x), float64(y)
	inside := x >= 0 && x < p.w && y >= 0 && y < p.h
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	switch {
	case pressed && !p.mouseDown:
		if !inside {
			return
		}
		p.mouseDown = true
		p.lastX, p.lastY = fx, fy
		p.emit(PointerDown, fx, fy, 1)

	case pressed && p.mouseDown:
		if !inside {
			// Dragged off the surface: treat like a touch cancel.
			p.mouseDown = false
			p.emit(PointerCancel, p.lastX, p.lastY, 0)
			return
		}
		if fx != p.lastX || fy != p.lastY {
			p.lastX, p.lastY = fx, fy
			p.emit(PointerMove, fx, fy, 1)
		}

	case !pressed && p.mouseDown:
		p.mouseDown = false
		if inside {
			p.lastX, p.lastY = fx, fy
		}
		p.emit(PointerUp, p.lastX, p.lastY, 0)
	}
}
