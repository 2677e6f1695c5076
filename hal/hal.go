package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// PointerKind distinguishes pointer event transitions.
type PointerKind uint8

const (
	// PointerDown is a press or touch-start on the surface.
	PointerDown PointerKind = iota + 1
	// PointerMove is motion; consumers decide what it means based on
	// their own stroke state.
	PointerMove
	// PointerUp is a release or touch-end.
	PointerUp
	// PointerCancel is an aborted contact: the pointer left the surface
	// or the platform cancelled the touch.
	PointerCancel
)

// PointerEvent is one sample from a mouse, pen or touch panel.
//
// X and Y are in surface pixels relative to the top-left corner and may be
// fractional on backends that report sub-pixel positions. Pressure is 1 for
// mouse buttons, panel-reported for touch hardware, and 0 when the contact is
// not engaged.
type PointerEvent struct {
	Kind     PointerKind
	X        float64
	Y        float64
	Pressure float64
}

// Pointer provides pointer events (best-effort on each platform).
type Pointer interface {
	Events() <-chan PointerEvent
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyEscape
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Pointer() Pointer
	Keyboard() Keyboard
}

// Time provides a base tick stream.
//
// The tick duration is platform-defined; higher-level timing lives in the app.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the pad and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Time() Time
}
