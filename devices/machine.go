package devices

// Machine defines the view of the interpreter a peripheral gets to see.
type Machine interface {
	// Pixel returns true if the display pixel at the given coordinates is lit.
	Pixel(x, y int) bool

	// SoundTimer returns the sound timer. The buzzer sounds while it is non-zero.
	SoundTimer() byte

	// KeyPress sets the state of the given keypad key (0x0-0xF).
	KeyPress(key int, pressed bool) error
}
