package cpu

import (
	"github.com/hexaflex/chip8/arch"
)

// execute runs the decoded instruction. The program counter already points
// to the next instruction.
func (c *CPU) execute(instr *arch.Instruction) error {
	v := &c.registers
	x := instr.X()
	y := instr.Y()

	switch instr.Opcode {
	case arch.NOP:
		/* nop */
	case arch.CLS:
		c.display = Frame{}
	case arch.RET:
		addr, err := c.pop(instr)
		if err != nil {
			return err
		}
		c.pc = addr
	case arch.JMP:
		c.pc = instr.NNN()
	case arch.CALL:
		if err := c.push(instr, c.pc); err != nil {
			return err
		}
		c.pc = instr.NNN()

	case arch.SKEQ:
		c.skipIf(v[x] == instr.NN())
	case arch.SKNE:
		c.skipIf(v[x] != instr.NN())
	case arch.SKEQR:
		c.skipIf(v[x] == v[y])
	case arch.SKNER:
		c.skipIf(v[x] != v[y])

	case arch.MOV:
		v[x] = instr.NN()
	case arch.ADD:
		v[x] += instr.NN()
	case arch.MOVR:
		v[x] = v[y]
	case arch.OR:
		v[x] |= v[y]
	case arch.AND:
		v[x] &= v[y]
	case arch.XOR:
		v[x] ^= v[y]

	// The flag is written last, so it wins when x is VF.
	case arch.ADDR:
		sum := uint16(v[x]) + uint16(v[y])
		v[x] = byte(sum)
		v[arch.VF] = byte(sum >> 8)
	case arch.SUB:
		noBorrow := v[x] >= v[y]
		v[x] -= v[y]
		v[arch.VF] = flag(noBorrow)
	case arch.SUBN:
		noBorrow := v[y] >= v[x]
		v[x] = v[y] - v[x]
		v[arch.VF] = flag(noBorrow)
	case arch.SHR:
		lsb := v[x] & 1
		v[x] >>= 1
		v[arch.VF] = lsb
	case arch.SHL:
		msb := (v[x] >> 7) & 1
		v[x] <<= 1
		v[arch.VF] = msb

	case arch.MVI:
		c.index = instr.NNN()
	case arch.JMI:
		target := int(v[0]) + int(instr.NNN())
		if target >= MemoryCapacity {
			return NewError(instr, ErrMemoryRange, "jump to %04x", target)
		}
		c.pc = uint16(target)
	case arch.RAND:
		v[x] = c.rng() & instr.NN()
	case arch.DRAW:
		return c.draw(instr)

	// Only the low nibble of Vx selects a key.
	case arch.SKPR:
		c.skipIf(c.keys[v[x]&0xf])
	case arch.SKUP:
		c.skipIf(!c.keys[v[x]&0xf])
	case arch.KEY:
		for key, pressed := range c.keys {
			if pressed {
				v[x] = byte(key)
				return nil
			}
		}
		c.pc -= arch.InstructionSize

	case arch.GDELAY:
		v[x] = c.delayTimer
	case arch.SDELAY:
		c.delayTimer = v[x]
	case arch.SSOUND:
		c.soundTimer = v[x]

	case arch.ADI:
		c.index += uint16(v[x])
	case arch.FONT:
		c.index = uint16(v[x]) * GlyphSize
	case arch.BCD:
		dst, err := c.indexSpan(instr, 3)
		if err != nil {
			return err
		}
		dst[0] = v[x] / 100
		dst[1] = v[x] / 10 % 10
		dst[2] = v[x] % 10
	case arch.STR:
		dst, err := c.indexSpan(instr, x+1)
		if err != nil {
			return err
		}
		copy(dst, v[:x+1])
	case arch.LDR:
		src, err := c.indexSpan(instr, x+1)
		if err != nil {
			return err
		}
		copy(v[:x+1], src)

	default:
		if c.SkipUnknown {
			return nil
		}
		return NewError(instr, ErrUnknownOpcode, "")
	}

	return nil
}

// skipIf skips the next instruction if cond is true.
func (c *CPU) skipIf(cond bool) {
	if cond {
		c.pc += arch.InstructionSize
	}
}

// indexSpan returns the n bytes of memory starting at the index register.
func (c *CPU) indexSpan(instr *arch.Instruction, n int) ([]byte, error) {
	p, ok := c.memory.Span(int(c.index), n)
	if !ok {
		return nil, NewError(instr, ErrMemoryRange, "%d bytes at I=%04x", n, c.index)
	}
	return p, nil
}

func flag(v bool) byte {
	if v {
		return 1
	}
	return 0
}
