package main

import (
	"io"
	"strings"

	"github.com/hexaflex/chip8/devices"
)

// Display size in pixels.
const (
	screenWidth  = 64
	screenHeight = 32
)

// ANSI control sequences.
const (
	ansiHome       = "\x1b[H"
	ansiClear      = "\x1b[2J"
	ansiClearLine  = "\x1b[K"
	ansiHideCursor = "\x1b[?25l"
	ansiShowCursor = "\x1b[?25h"
	ansiBell       = "\a"
)

// screen renders the display as text, using half block characters to fit
// two pixel rows in one line of text. It sounds the terminal bell whenever
// the sound timer starts.
type screen struct {
	pixels   [screenWidth * screenHeight]bool
	sounding bool
	bell     bool
}

var _ devices.Device = &screen{}

func (s *screen) ID() devices.ID {
	return devices.NewID(devices.ClassDisplay, 0x0002)
}

func (s *screen) Startup() error  { return nil }
func (s *screen) Shutdown() error { return nil }

// Update copies the machine display and sound state.
func (s *screen) Update(m devices.Machine) {
	for y := 0; y < screenHeight; y++ {
		for x := 0; x < screenWidth; x++ {
			s.pixels[y*screenWidth+x] = m.Pixel(x, y)
		}
	}

	on := m.SoundTimer() > 0
	if on && !s.sounding {
		s.bell = true
	}
	s.sounding = on
}

// String returns the display contents, one line per pair of pixel rows.
// Lines end in "\r\n" since the terminal runs in raw mode.
func (s *screen) String() string {
	var sb strings.Builder
	sb.Grow((screenWidth*3 + 2) * screenHeight / 2)

	for y := 0; y < screenHeight; y += 2 {
		for x := 0; x < screenWidth; x++ {
			top := s.pixels[y*screenWidth+x]
			bottom := s.pixels[(y+1)*screenWidth+x]

			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}

	return sb.String()
}

// Render redraws the screen in place, followed by the given status line.
func (s *screen) Render(w io.Writer, status string) error {
	var sb strings.Builder
	sb.WriteString(ansiHome)
	sb.WriteString(s.String())
	sb.WriteString(status)
	sb.WriteString(ansiClearLine)

	if s.bell {
		sb.WriteString(ansiBell)
		s.bell = false
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
