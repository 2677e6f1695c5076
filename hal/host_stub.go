//go:build !tinygo && !cgo

package hal

import "errors"

// RunWindow requires the cgo ebiten backend.
func RunWindow(_ string, _ func(h HAL) func() error) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}

type hostPointer struct {
	ch chan PointerEvent
}

func newHostPointer(_, _ int) *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 128)}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) poll() {
	// No pointer support without the window backend.
}

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) poll() {
	// No keyboard support without the window backend.
}
