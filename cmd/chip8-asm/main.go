package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/hexaflex/chip8/asm"
	"github.com/hexaflex/chip8/cpu"
)

func main() {
	config := parseArgs()

	prog, err := asm.AssembleFile(config.Input, cpu.ProgramStart)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	w, close := makeWriter(config)
	defer close()

	if err := prog.Save(w, config.Compress); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if config.Symbols {
		writeSymbols(os.Stdout, prog.Symbols)
	}
}

// writeSymbols writes the symbol table ordered by value, then name.
func writeSymbols(w io.Writer, symbols map[string]int) {
	names := make([]string, 0, len(symbols))
	for k := range symbols {
		names = append(names, k)
	}

	sort.Slice(names, func(i, j int) bool {
		a, b := symbols[names[i]], symbols[names[j]]
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		fmt.Fprintf(w, "%04x  %s\n", symbols[name], name)
	}
}

// makeWriter creates an output writer and a cleanup function for it.
func makeWriter(c *Config) (io.Writer, func()) {
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
