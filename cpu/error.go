package cpu

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/arch"
)

// Known error kinds. Use errors.Is to test an error returned by the CPU against these.
var (
	ErrUnknownOpcode  = errors.New("unknown opcode")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrMemoryRange    = errors.New("memory access out of range")
	ErrROMTooLarge    = errors.New("program too large")
	ErrInvalidKey     = errors.New("invalid key index")
)

// Error defines a runtime error raised while executing an instruction.
type Error struct {
	arch.Instruction
	Kind error
	Msg  string
}

// NewError creates a new, formatted error of the given kind for the given instruction.
func NewError(instr *arch.Instruction, kind error, f string, argv ...interface{}) *Error {
	return &Error{
		Instruction: *instr,
		Kind:        kind,
		Msg:         fmt.Sprintf(f, argv...),
	}
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%04x: %04x: %v", e.Address, e.Word, e.Kind)
	}
	return fmt.Sprintf("%04x: %04x: %v: %s", e.Address, e.Word, e.Kind, e.Msg)
}

// Cause returns the error kind.
func (e *Error) Cause() error { return e.Kind }

// Unwrap returns the error kind.
func (e *Error) Unwrap() error { return e.Kind }
