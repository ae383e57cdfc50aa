package arch

import "fmt"

// InstructionSize is the size of an encoded instruction in bytes.
const InstructionSize = 2

// Instruction defines decoded instruction data.
type Instruction struct {
	Address int    // Instruction address.
	Word    uint16 // Raw instruction word.
	Opcode  Opcode // Decoded instruction kind.
}

// Decode decodes the big-endian instruction word in hi and lo, located at the given address.
func (i *Instruction) Decode(address int, hi, lo byte) {
	i.Address = address
	i.Word = uint16(hi)<<8 | uint16(lo)
	i.Opcode = Decode(i.Word)
}

// X returns the second nibble; usually a register index.
func (i *Instruction) X() int { return int(i.Word>>8) & 0xf }

// Y returns the third nibble; usually a register index.
func (i *Instruction) Y() int { return int(i.Word>>4) & 0xf }

// N returns the lowest nibble.
func (i *Instruction) N() int { return int(i.Word) & 0xf }

// NN returns the low byte.
func (i *Instruction) NN() byte { return byte(i.Word) }

// NNN returns the low 12 bits; usually an address.
func (i *Instruction) NNN() uint16 { return i.Word & 0xfff }

// String returns the instruction in conventional assembly notation.
func (i *Instruction) String() string {
	vx := RegisterName(i.X())
	vy := RegisterName(i.Y())

	switch i.Opcode {
	case NOP:
		return "NOP"
	case CLS:
		return "CLS"
	case RET:
		return "RET"
	case JMP:
		return fmt.Sprintf("JP $%03X", i.NNN())
	case CALL:
		return fmt.Sprintf("CALL $%03X", i.NNN())
	case SKEQ:
		return fmt.Sprintf("SE %s, $%02X", vx, i.NN())
	case SKNE:
		return fmt.Sprintf("SNE %s, $%02X", vx, i.NN())
	case SKEQR:
		return fmt.Sprintf("SE %s, %s", vx, vy)
	case MOV:
		return fmt.Sprintf("LD %s, $%02X", vx, i.NN())
	case ADD:
		return fmt.Sprintf("ADD %s, $%02X", vx, i.NN())
	case MOVR:
		return fmt.Sprintf("LD %s, %s", vx, vy)
	case OR:
		return fmt.Sprintf("OR %s, %s", vx, vy)
	case AND:
		return fmt.Sprintf("AND %s, %s", vx, vy)
	case XOR:
		return fmt.Sprintf("XOR %s, %s", vx, vy)
	case ADDR:
		return fmt.Sprintf("ADD %s, %s", vx, vy)
	case SUB:
		return fmt.Sprintf("SUB %s, %s", vx, vy)
	case SHR:
		return fmt.Sprintf("SHR %s", vx)
	case SUBN:
		return fmt.Sprintf("SUBN %s, %s", vx, vy)
	case SHL:
		return fmt.Sprintf("SHL %s", vx)
	case SKNER:
		return fmt.Sprintf("SNE %s, %s", vx, vy)
	case MVI:
		return fmt.Sprintf("LD I, $%03X", i.NNN())
	case JMI:
		return fmt.Sprintf("JP V0, $%03X", i.NNN())
	case RAND:
		return fmt.Sprintf("RND %s, $%02X", vx, i.NN())
	case DRAW:
		return fmt.Sprintf("DRW %s, %s, %d", vx, vy, i.N())
	case SKPR:
		return fmt.Sprintf("SKP %s", vx)
	case SKUP:
		return fmt.Sprintf("SKNP %s", vx)
	case GDELAY:
		return fmt.Sprintf("LD %s, DT", vx)
	case KEY:
		return fmt.Sprintf("LD %s, K", vx)
	case SDELAY:
		return fmt.Sprintf("LD DT, %s", vx)
	case SSOUND:
		return fmt.Sprintf("LD ST, %s", vx)
	case ADI:
		return fmt.Sprintf("ADD I, %s", vx)
	case FONT:
		return fmt.Sprintf("LD F, %s", vx)
	case BCD:
		return fmt.Sprintf("LD B, %s", vx)
	case STR:
		return fmt.Sprintf("LD [I], %s", vx)
	case LDR:
		return fmt.Sprintf("LD %s, [I]", vx)
	}

	return fmt.Sprintf("DW $%04X", i.Word)
}
