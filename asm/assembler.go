// Package asm implements an assembler which turns CHIP-8 source code in
// conventional notation into a binary program, ready for use on a CPU.
//
// Each line holds an optional label definition followed by an optional
// instruction, directive or constant definition:
//
//    loop:  LD   V0, $05     ; comment
//           DRW  V0, V1, 5
//           JP   loop
//    speed = 3 * 2
//    font:  DB   $f0, $90, $90, $90, $f0
//           DW   $1234
//
// Operands may be arbitrary integer expressions over labels and constants.
package asm

import (
	"io"
	"os"
	"strings"

	"github.com/hexaflex/chip8/arch"
	"github.com/hexaflex/chip8/cpu"
	"github.com/hexaflex/chip8/rom"
)

// Program defines an assembled program.
type Program struct {
	Origin  int            // Address of the first byte in Code.
	Code    []byte         // Encoded program.
	Symbols map[string]int // Label and constant values, keyed by lower case name.
}

// AssembleFile assembles the given source file into a program located
// at the given origin.
func AssembleFile(file string, origin int) (*Program, error) {
	fd, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer fd.Close()
	return Assemble(fd, file, origin)
}

// Assemble reads source code from r and assembles it into a program located
// at the given origin. The filename provides source context for errors.
func Assemble(r io.Reader, filename string, origin int) (*Program, error) {
	tokens, err := tokenize(r, filename)
	if err != nil {
		return nil, err
	}

	statements, err := parse(tokens)
	if err != nil {
		return nil, err
	}

	a := assembler{
		origin:  origin,
		symbols: make(map[string]int64),
	}

	if err := a.resolveSymbols(statements); err != nil {
		return nil, err
	}

	if err := a.emit(statements); err != nil {
		return nil, err
	}

	prog := Program{
		Origin:  origin,
		Code:    a.code,
		Symbols: make(map[string]int, len(a.symbols)),
	}

	for k, v := range a.symbols {
		prog.Symbols[k] = int(v)
	}

	return &prog, nil
}

// assembler defines assembler state.
type assembler struct {
	origin  int
	address int
	symbols map[string]int64
	code    []byte
}

// resolveSymbols determines the address of every label and the value of
// every constant. Constants can only refer to symbols defined before them.
func (a *assembler) resolveSymbols(statements []*statement) error {
	a.address = a.origin

	for _, st := range statements {
		if st.label != "" {
			if err := a.define(st.pos, st.label, int64(a.address)); err != nil {
				return err
			}
		}

		if st.constant {
			v, err := evaluate(st.operands[0], a.resolve)
			if err != nil {
				return err
			}

			if err := a.define(st.pos, st.name, v); err != nil {
				return err
			}
			continue
		}

		if st.name == "" {
			continue
		}

		n, err := encodedLen(st)
		if err != nil {
			return err
		}

		a.address += n
		if a.address > cpu.MemoryCapacity {
			return newError(st.pos, "program does not fit in memory")
		}
	}

	return nil
}

// emit encodes all instructions and data.
func (a *assembler) emit(statements []*statement) error {
	a.code = make([]byte, 0, cpu.MaxROMSize)

	for _, st := range statements {
		if st.constant || st.name == "" {
			continue
		}

		switch strings.ToUpper(st.name) {
		case "DB":
			for _, expr := range st.operands {
				v, err := a.value(expr, -128, 0xff)
				if err != nil {
					return err
				}
				a.code = append(a.code, byte(v))
			}

		case "DW":
			for _, expr := range st.operands {
				v, err := a.value(expr, -32768, 0xffff)
				if err != nil {
					return err
				}
				a.code = append(a.code, byte(v>>8), byte(v))
			}

		default:
			word, err := a.encode(st)
			if err != nil {
				return err
			}
			a.code = append(a.code, byte(word>>8), byte(word))
		}
	}

	return nil
}

// encodedLen returns the number of bytes the given statement occupies.
func encodedLen(st *statement) (int, error) {
	name := strings.ToUpper(st.name)

	switch name {
	case "DB", "DW":
		if len(st.operands) == 0 {
			return 0, newError(st.pos, "%s requires at least one value", name)
		}
		if name == "DW" {
			return 2 * len(st.operands), nil
		}
		return len(st.operands), nil
	}

	if _, ok := forms[name]; !ok {
		return 0, newError(st.pos, "unknown instruction %q", st.name)
	}

	return arch.InstructionSize, nil
}

// define adds a new symbol with the given value.
func (a *assembler) define(pos Position, name string, value int64) error {
	if arch.IsRegister(name) || isKeyword(name) {
		return newError(pos, "reserved name %q can not be used as a symbol", name)
	}

	key := strings.ToLower(name)
	if _, ok := a.symbols[key]; ok {
		return newError(pos, "duplicate symbol definition %q", name)
	}

	a.symbols[key] = value
	return nil
}

// resolve returns the value of the given symbol.
func (a *assembler) resolve(name string) (int64, bool) {
	v, ok := a.symbols[strings.ToLower(name)]
	return v, ok
}

// value evaluates expr and ensures the result lies in the range [min, max].
func (a *assembler) value(expr expression, min, max int64) (int64, error) {
	if kw := keyword(expr); kw != "" {
		return 0, newError(expr[0].pos, "unexpected %s; expected value", kw)
	}

	v, err := evaluate(expr, a.resolve)
	if err != nil {
		return 0, err
	}

	if v < min || v > max {
		return 0, newError(expr[0].pos, "value %d out of range [%d, %d]", v, min, max)
	}

	return v, nil
}

// Save writes the program code to w, optionally gzip compressed.
func (p *Program) Save(w io.Writer, compress bool) error {
	return rom.Write(w, p.Code, compress)
}
