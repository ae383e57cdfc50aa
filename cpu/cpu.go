// Package cpu implements the CHIP-8 interpreter: machine state, the
// fetch-decode-execute cycle, sprite drawing and the timers.
//
// A CPU is not safe for concurrent use. The host drives it by calling Step a
// number of times per frame, followed by a single call to TickTimers.
package cpu

import (
	"log"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/arch"
)

// Various machine properties.
const (
	DisplayWidth  = 64 // Display width in pixels.
	DisplayHeight = 32 // Display height in pixels.
	StackCapacity = 16 // Maximum call depth.
	KeyCount      = 16 // Number of keys on the hexadecimal keypad.
)

// TraceFunc represents a callback handler for debug trace output.
// It is called for every decoded instruction, before it is executed.
type TraceFunc func(*arch.Instruction)

// RandFunc yields random bytes for the RAND instruction.
type RandFunc func() byte

// Frame holds the display contents, row-major. A true value is a lit pixel.
type Frame [DisplayWidth * DisplayHeight]bool

// At returns the state of the pixel at the given coordinates.
func (f *Frame) At(x, y int) bool {
	return f[y*DisplayWidth+x]
}

// State is a snapshot of the CPU registers.
type State struct {
	PC         uint16
	Index      uint16
	SP         int
	Registers  [arch.RegisterCount]byte
	Stack      [StackCapacity]uint16
	Keys       [KeyCount]bool
	DelayTimer byte
	SoundTimer byte
}

// CPU implements the runtime.
type CPU struct {
	trace      TraceFunc                // Handler for debug trace output.
	rng        RandFunc                 // Random number source.
	memory     Memory                   // System memory.
	display    Frame                    // Display buffer.
	instr      arch.Instruction         // Decoded instruction data.
	registers  [arch.RegisterCount]byte // V0-VF.
	stack      [StackCapacity]uint16    // Return addresses.
	keys       [KeyCount]bool           // Keypad state.
	sp         int                      // Stack pointer.
	pc         uint16                   // Program counter.
	index      uint16                   // Index register I.
	delayTimer byte
	soundTimer byte

	// SkipUnknown makes Step treat unknown instructions as NOP
	// instead of failing with ErrUnknownOpcode.
	SkipUnknown bool
}

// New creates a new CPU with the font loaded and the program counter at ProgramStart.
// Optionally with the given debug trace handler and random source.
func New(trace TraceFunc, rng RandFunc) *CPU {
	if trace == nil {
		trace = func(*arch.Instruction) { /* nop */ }
	}

	if rng == nil {
		r := rand.New(rand.NewSource(time.Now().UnixNano()))
		rng = func() byte { return byte(r.Intn(256)) }
	}

	c := &CPU{
		trace: trace,
		rng:   rng,
	}

	c.Reset()
	return c
}

// Reset returns the machine to the state it had right after New.
// This clears the loaded program.
func (c *CPU) Reset() {
	c.memory = Memory{}
	c.memory.Write(0, font[:])
	c.display = Frame{}
	c.instr = arch.Instruction{}
	c.registers = [arch.RegisterCount]byte{}
	c.stack = [StackCapacity]uint16{}
	c.keys = [KeyCount]bool{}
	c.sp = 0
	c.pc = ProgramStart
	c.index = 0
	c.delayTimer = 0
	c.soundTimer = 0
}

// Load copies the given program into memory at ProgramStart.
// Returns ErrROMTooLarge without touching memory if the program does not fit.
func (c *CPU) Load(rom []byte) error {
	if len(rom) > MaxROMSize {
		return errors.Wrapf(ErrROMTooLarge, "%d bytes; have room for %d", len(rom), MaxROMSize)
	}

	c.memory.Write(ProgramStart, rom)
	log.Printf("cpu: loaded %d bytes at %04x", len(rom), ProgramStart)
	return nil
}

// KeyPress sets the state of the given key (0x0-0xF).
func (c *CPU) KeyPress(key int, pressed bool) error {
	if key < 0 || key >= KeyCount {
		return errors.Wrapf(ErrInvalidKey, "%d", key)
	}
	c.keys[key] = pressed
	return nil
}

// Display returns a copy of the current display contents.
func (c *CPU) Display() Frame {
	return c.display
}

// Pixel returns the state of the display pixel at the given coordinates.
// Coordinates outside the display are never lit.
func (c *CPU) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	return c.display.At(x, y)
}

// Memory returns a copy of system memory.
func (c *CPU) Memory() Memory {
	return c.memory
}

// PC returns the program counter.
func (c *CPU) PC() uint16 { return c.pc }

// Index returns the index register.
func (c *CPU) Index() uint16 { return c.index }

// Register returns the value of register Vn.
func (c *CPU) Register(n int) byte { return c.registers[n&0xf] }

// DelayTimer returns the current delay timer value.
func (c *CPU) DelayTimer() byte { return c.delayTimer }

// SoundTimer returns the current sound timer value.
// The buzzer should sound for as long as it is non-zero.
func (c *CPU) SoundTimer() byte { return c.soundTimer }

// State returns a snapshot of the CPU registers.
func (c *CPU) State() State {
	return State{
		PC:         c.pc,
		Index:      c.index,
		SP:         c.sp,
		Registers:  c.registers,
		Stack:      c.stack,
		Keys:       c.keys,
		DelayTimer: c.delayTimer,
		SoundTimer: c.soundTimer,
	}
}

// Step performs a single fetch-decode-execute step.
//
// Any error returned is a *Error whose Kind is one of the Err* values
// in this package. The machine is left as it was at the point of failure.
func (c *CPU) Step() error {
	instr := &c.instr

	if err := c.fetch(instr); err != nil {
		return err
	}

	c.trace(instr)
	return c.execute(instr)
}

// TickTimers decrements the delay and sound timers if they are non-zero.
// It should be called at 60Hz, independent of the instruction rate.
func (c *CPU) TickTimers() {
	if c.delayTimer > 0 {
		c.delayTimer--
	}

	if c.soundTimer > 0 {
		c.soundTimer--
	}
}

// RunFrame performs ipf execution steps, followed by one timer tick.
// The timers are not ticked if a step fails.
func (c *CPU) RunFrame(ipf int) error {
	for i := 0; i < ipf; i++ {
		if err := c.Step(); err != nil {
			return err
		}
	}

	c.TickTimers()
	return nil
}

// fetch decodes the instruction at the program counter and advances the
// program counter past it.
func (c *CPU) fetch(instr *arch.Instruction) error {
	pc := int(c.pc)

	if pc+1 >= MemoryCapacity {
		*instr = arch.Instruction{Address: pc}
		return NewError(instr, ErrMemoryRange, "instruction fetch from %04x", pc)
	}

	instr.Decode(pc, c.memory[pc], c.memory[pc+1])
	c.pc += arch.InstructionSize
	return nil
}

// push pushes the given return address onto the callstack.
func (c *CPU) push(instr *arch.Instruction, addr uint16) error {
	if c.sp >= StackCapacity {
		return NewError(instr, ErrStackOverflow, "more than %d nested calls", StackCapacity)
	}

	c.stack[c.sp] = addr
	c.sp++
	return nil
}

// pop returns the top address from the callstack.
func (c *CPU) pop(instr *arch.Instruction) (uint16, error) {
	if c.sp == 0 {
		return 0, NewError(instr, ErrStackUnderflow, "return with empty callstack")
	}

	c.sp--
	return c.stack[c.sp], nil
}
