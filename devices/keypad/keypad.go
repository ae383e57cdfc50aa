// Package keypad implements the 16-key hexadecimal keypad.
//
// Several input sources can hold the same key; a key is down while any
// source holds it.
package keypad

import (
	"unicode"

	"github.com/hexaflex/chip8/devices"
)

// KeyCount is the number of keys on the keypad.
const KeyCount = 16

// Known input sources.
const (
	Keyboard uint8 = 1 << iota
	Gamepad
	Terminal
)

// Layout maps host keys onto the conventional 4x4 keypad:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  <-  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var Layout = map[rune]int{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xc,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xd,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xe,
	'z': 0xa, 'x': 0x0, 'c': 0xb, 'v': 0xf,
}

// Lookup returns the keypad key for the given host character.
// Returns false if the character is not part of the layout.
func Lookup(r rune) (int, bool) {
	key, ok := Layout[unicode.ToLower(r)]
	return key, ok
}

// Device defines the keypad state.
type Device struct {
	held   [KeyCount]uint8 // Sources holding each key.
	timers [KeyCount]int   // Frames left for tapped keys.
}

var _ devices.Device = &Device{}

// New creates a new device.
func New() *Device {
	return &Device{}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.ClassInput, 0x0001)
}

// Startup releases all keys.
func (d *Device) Startup() error {
	d.Reset()
	return nil
}

// Shutdown releases all keys.
func (d *Device) Shutdown() error {
	d.Reset()
	return nil
}

// Reset releases all keys.
func (d *Device) Reset() {
	d.held = [KeyCount]uint8{}
	d.timers = [KeyCount]int{}
}

// Set presses or releases the key for the given source.
// Keys outside of the keypad are ignored.
func (d *Device) Set(source uint8, key int, pressed bool) {
	if key < 0 || key >= KeyCount {
		return
	}

	if pressed {
		d.held[key] |= source
	} else {
		d.held[key] &^= source
	}
}

// Tap holds the key down for the given number of frames.
// This serves inputs which report presses but no releases.
func (d *Device) Tap(key, frames int) {
	if key < 0 || key >= KeyCount {
		return
	}

	if frames > d.timers[key] {
		d.timers[key] = frames
	}
}

// Down returns true if the key is currently down.
func (d *Device) Down(key int) bool {
	return d.held[key] != 0 || d.timers[key] > 0
}

// Update copies the keypad state to the machine and advances tapped keys by one frame.
func (d *Device) Update(m devices.Machine) {
	for key := 0; key < KeyCount; key++ {
		m.KeyPress(key, d.Down(key))

		if d.timers[key] > 0 {
			d.timers[key]--
		}
	}
}
