package main

import (
	"flag"
	"fmt"
	"os"
)

// Config defines program configuration.
type Config struct {
	Program string // Path to the program image to load.
	Device  string // Terminal device to read keys from.
	IPF     int    // Instructions executed per frame.
	Hold    int    // Frames for which a key stays down after it is typed.
	Lenient bool   // Treat unknown instructions as no-ops?
	Record  string // Optional WAV file to record the buzzer to.
	Log     string // File to write log output to; the terminal is in use.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.Device = "/dev/tty"
	c.IPF = 10
	c.Hold = 6

	flag.Usage = func() {
		fmt.Printf("%s [options] <program file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.StringVar(&c.Device, "tty", c.Device, "Terminal device to read keys from.")
	flag.IntVar(&c.IPF, "ipf", c.IPF, "Instructions executed per 60Hz frame.")
	flag.IntVar(&c.Hold, "hold", c.Hold, "Number of frames a typed key is held down.")
	flag.BoolVar(&c.Lenient, "lenient", c.Lenient, "Treat unknown instructions as no-ops instead of stopping.")
	flag.StringVar(&c.Record, "record", c.Record, "Record the buzzer output to the given WAV file.")
	flag.StringVar(&c.Log, "log", c.Log, "Write log output to the given file.")

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

	if c.IPF < 1 {
		c.IPF = 1
	}

	if c.Hold < 1 {
		c.Hold = 1
	}

	c.Program = flag.Arg(0)
	return &c
}
