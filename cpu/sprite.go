package cpu

import (
	"github.com/hexaflex/chip8/arch"
)

// SpriteWidth is the width of every sprite in pixels. One byte per row.
const SpriteWidth = 8

// draw XORs the N-row sprite at I onto the display at (Vx, Vy) and
// sets VF to 1 if any lit pixel was turned off.
func (c *CPU) draw(instr *arch.Instruction) error {
	rows, err := c.indexSpan(instr, instr.N())
	if err != nil {
		return err
	}

	x := int(c.registers[instr.X()])
	y := int(c.registers[instr.Y()])
	c.registers[arch.VF] = flag(c.display.DrawSprite(x, y, rows))
	return nil
}

// DrawSprite XORs the given sprite rows onto the frame with its top-left corner
// at (x, y). Pixels beyond the right or bottom edge wrap around.
// Returns true if any previously lit pixel was turned off.
func (f *Frame) DrawSprite(x, y int, rows []byte) bool {
	var collision bool

	for row, bits := range rows {
		dy := (y + row) % DisplayHeight

		for col := 0; col < SpriteWidth; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}

			dx := (x + col) % DisplayWidth
			p := &f[dy*DisplayWidth+dx]
			collision = collision || *p
			*p = !*p
		}
	}

	return collision
}
