//go:build tinygo && baremetal && lcdpad

package hal

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/touch/resistive"
)

// Resistive panels report raw 16-bit ADC readings; anything below this
// pressure reading is noise, not a contact.
const touchZThreshold = 6400

type resistivePointer struct {
	ch    chan PointerEvent
	panel *resistive.FourWire

	w int
	h int

	down  bool
	lastX float64
	lastY float64
}

// newResistivePointer configures the four-wire panel and starts a sampling
// loop at roughly 200Hz, emitting Down/Move/Up edges on the event channel.
func newResistivePointer(w, h int) *resistivePointer {
	machine.InitADC()

	panel := new(resistive.FourWire)
	panel.Configure(&resistive.FourWireConfig{
		YP: machine.GP26,
		YM: machine.GP21,
		XP: machine.GP22,
		XM: machine.GP27,
	})

	p := &resistivePointer{
		ch:    make(chan PointerEvent, 128),
		panel: panel,
		w:     w,
		h:     h,
	}
	go p.loop()
	return p
}

func (p *resistivePointer) Events() <-chan PointerEvent { return p.ch }

func (p *resistivePointer) emit(kind PointerKind, x, y, pressure float64) {
	select {
	case p.ch <- PointerEvent{Kind: kind, X: x, Y: y, Pressure: pressure}:
	default:
	}
}

func (p *resistivePointer) loop() {
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		p.sample()
	}
}

func (p *resistivePointer) sample() {
	pt := p.panel.ReadTouchPoint()

	if pt.Z < touchZThreshold {
		if p.down {
			p.down = false
			p.emit(PointerUp, p.lastX, p.lastY, 0)
		}
		return
	}

	// Raw readings span the full 16-bit ADC range; scale to panel pixels.
	x := float64(pt.X) * float64(p.w) / 65535
	y := float64(pt.Y) * float64(p.h) / 65535
	pressure := float64(pt.Z) / 65535

	if !p.down {
		p.down = true
		p.lastX, p.lastY = x, y
		p.emit(PointerDown, x, y, pressure)
		return
	}
	if x != p.lastX || y != p.lastY {
		p.lastX, p.lastY = x, y
		p.emit(PointerMove, x, y, pressure)
	}
}
