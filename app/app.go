// Package app wires the HAL to the pad widget.
package app

import (
	"inkpad/hal"
	"inkpad/pad"
)

// Config carries the app tunables.
type Config struct {
	// Radius overrides the brush radius in surface pixels (0 = default).
	Radius float64

	// Version is the string shown in the HUD and served by the API.
	Version string
}

// App owns the pad and the per-tick event pump.
type App struct {
	Pad *pad.Pad

	ptr <-chan hal.PointerEvent
	kbd <-chan hal.KeyEvent
}

// New builds the pad over the HAL. The returned App's Step is called once per
// platform tick.
func New(h hal.HAL, cfg Config) *App {
	a := &App{
		Pad: pad.New(h, pad.Config{Radius: cfg.Radius, Version: cfg.Version}),
	}
	if in := h.Input(); in != nil {
		if p := in.Pointer(); p != nil {
			a.ptr = p.Events()
		}
		if k := in.Keyboard(); k != nil {
			a.kbd = k.Events()
		}
	}
	return a
}

// Step drains pending input events and repaints if needed. It returns
// pad.ErrQuit when the user closes the pad.
func (a *App) Step() error {
	for {
		select {
		case ev := <-a.ptr:
			a.Pad.HandlePointer(ev)
			continue
		default:
		}
		select {
		case ev := <-a.kbd:
			if err := a.Pad.HandleKey(ev); err != nil {
				return err
			}
			continue
		default:
		}
		break
	}
	a.Pad.Render()
	return nil
}

// Run drives the app off the HAL tick stream and blocks forever. This is the
// TinyGo entrypoint; the host uses hal.RunWindow / hal.RunHeadless instead.
func Run(h hal.HAL, cfg Config) {
	a := New(h, cfg)
	ticks := h.Time().Ticks()
	for range ticks {
		if err := a.Step(); err != nil {
			return
		}
	}
}
