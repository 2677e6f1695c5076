//go:build tinygo && baremetal && lcdpad

package hal

import "machine"

type lcdPadHAL struct {
	logger *uartLogger
	fb     Framebuffer
	ptr    Pointer
	kbd    Keyboard
	t      *tinyGoTime
}

// New returns the HAL for the LCD pad carrier: an RP2040 with an ILI9488 SPI
// panel and a four-wire resistive touch overlay.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	disp, err := newLCDPadDisplay()
	var fb Framebuffer
	if err != nil {
		fb = &stubFramebuffer{w: lcdPadWidth, h: lcdPadHeight, format: PixelFormatRGB565}
	} else {
		fb = disp
	}

	return &lcdPadHAL{
		logger: &uartLogger{uart: uart},
		fb:     fb,
		ptr:    newResistivePointer(lcdPadWidth, lcdPadHeight),
		kbd:    &stubKeyboard{},
		t:      newTinyGoTime(),
	}
}

func (h *lcdPadHAL) Logger() Logger   { return h.logger }
func (h *lcdPadHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *lcdPadHAL) Input() Input     { return tinyGoInput{ptr: h.ptr, kbd: h.kbd} }
func (h *lcdPadHAL) Time() Time       { return h.t }
