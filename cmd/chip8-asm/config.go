package main

import (
	"flag"
	"fmt"
	"os"
)

// Config defines program configuration.
type Config struct {
	Input    string // Input source file to build.
	Output   string // Path to store output in.
	Compress bool   // Write a gzip compressed image?
	Symbols  bool   // Print the symbol table to stdout.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.Output = "out.ch8"

	flag.Usage = func() {
		fmt.Printf("%s [options] <input source file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.StringVar(&c.Output, "out", c.Output, "Output file.")
	flag.BoolVar(&c.Compress, "gz", c.Compress, "Write a gzip compressed program image.")
	flag.BoolVar(&c.Symbols, "sym", c.Symbols, "Print the addresses of all labels and values of all constants to stdout.")
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

	c.Input = flag.Arg(0)
	return &c
}
