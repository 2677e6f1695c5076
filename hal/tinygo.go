//go:build tinygo && baremetal && !lcdpad

package hal

import "machine"

type tinyGoHAL struct {
	logger *uartLogger
	fb     Framebuffer
	ptr    Pointer
	kbd    Keyboard
	t      *tinyGoTime
}

// New returns a bare-board HAL implementation: serial logging only, no panel.
// Useful for bring-up on boards without the LCD/touch carrier.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		fb:     &stubFramebuffer{w: 320, h: 336, format: PixelFormatRGB565},
		ptr:    &stubPointer{},
		kbd:    &stubKeyboard{},
		t:      newTinyGoTime(),
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Input() Input     { return tinyGoInput{ptr: h.ptr, kbd: h.kbd} }
func (h *tinyGoHAL) Time() Time       { return h.t }
