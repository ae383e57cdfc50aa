package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hexaflex/chip8/cpu"
)

// Config defines program configuration.
type Config struct {
	Input  string // Program image to disassemble.
	Output string // Output file. Leave empty for stdout.
	Origin int    // Address at which the program is loaded.
	Labels bool   // Mark jump and call targets?
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.Origin = cpu.ProgramStart

	origin := fmt.Sprintf("%03x", c.Origin)

	flag.Usage = func() {
		fmt.Printf("%s [options] <program file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.StringVar(&c.Output, "out", c.Output, "File path to write output to. Leave empty to use stdout.")
	flag.StringVar(&origin, "origin", origin, "Load address of the program, in hex.")
	flag.BoolVar(&c.Labels, "labels", c.Labels, "Mark the targets of jumps and calls.")
	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	v, err := strconv.ParseUint(strings.TrimPrefix(origin, "0x"), 16, 12)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid origin %q\n", origin)
		os.Exit(1)
	}

	c.Origin = int(v)
	c.Input = flag.Arg(0)
	return &c
}
