package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hexaflex/chip8/arch"
	"github.com/hexaflex/chip8/rom"
)

func main() {
	config := parseArgs()

	program, err := rom.Load(config.Input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	w, close := makeWriter(config)
	defer close()

	bw := bufio.NewWriter(w)
	defer bw.Flush()

	var labels map[int]bool
	if config.Labels {
		labels = targets(program, config.Origin)
	}

	if err := disassemble(bw, program, config.Origin, labels); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// disassemble writes one line per instruction word: address, raw word and
// assembly. Lines at addresses in labels are marked with a label name.
// A trailing odd byte is written as a data byte.
func disassemble(w io.Writer, program []byte, origin int, labels map[int]bool) error {
	var instr arch.Instruction

	for i := 0; i < len(program); i += arch.InstructionSize {
		addr := origin + i

		label := ""
		if labels[addr] {
			label = fmt.Sprintf("L%03X:", addr)
		}

		if i+1 >= len(program) {
			_, err := fmt.Fprintf(w, "%04x  %02x    %-6s DB $%02X\n", addr, program[i], label, program[i])
			return err
		}

		instr.Decode(addr, program[i], program[i+1])
		if _, err := fmt.Fprintf(w, "%04x  %04x  %-6s %s\n", addr, instr.Word, label, &instr); err != nil {
			return err
		}
	}

	return nil
}

// targets returns the addresses referenced by jumps and calls in the program
// which fall inside of it.
func targets(program []byte, origin int) map[int]bool {
	set := make(map[int]bool)

	var instr arch.Instruction
	for i := 0; i+1 < len(program); i += arch.InstructionSize {
		instr.Decode(origin+i, program[i], program[i+1])

		if instr.Opcode != arch.JMP && instr.Opcode != arch.CALL {
			continue
		}

		addr := int(instr.NNN())
		if addr >= origin && addr < origin+len(program) {
			set[addr] = true
		}
	}

	return set
}

// makeWriter creates an output writer and a cleanup function for it.
func makeWriter(c *Config) (io.Writer, func()) {
	if c.Output == "" {
		return os.Stdout, func() {}
	}

	dir, _ := filepath.Split(c.Output)
	if len(dir) > 0 {
		if err := os.MkdirAll(dir, 0744); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	fd, err := os.Create(c.Output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	return fd, func() { fd.Close() }
}
