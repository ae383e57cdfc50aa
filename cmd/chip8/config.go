package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices/display"
)

// Config defines program configuration.
type Config struct {
	Program     string        // Path to the program image to load.
	IPF         int           // Instructions executed per frame.
	ScaleFactor int           // Amount by which each pixel is scaled.
	Fullscreen  bool          // Run in fullscreen?
	Foreground  display.Color // Color of lit pixels.
	Background  display.Color // Color of unlit pixels.
	Fade        int           // Frames over which unlit pixels fade out.
	Debug       bool          // Enable debug mode? This handles breakpoints if enabled.
	PrintTrace  bool          // Print instruction trace data?
	Breakpoints map[int]bool  // Addresses at which execution pauses in debug mode.
	Lenient     bool          // Treat unknown instructions as no-ops?
	Mute        bool          // Disable audio output?
	Beep        string        // Optional WAV or MP3 sample to use for the buzzer.
	Record      string        // Optional WAV file to record the buzzer to.
	StatsView   string        // Optional address for the runtime statistics server.
	MemViz      string        // File to which F6 writes a machine state graph.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.IPF = 10
	c.ScaleFactor = 12
	c.Fade = 3
	c.MemViz = "chip8.dot"

	fg := "#e0f0e0"
	bg := "#102010"
	breakpoints := ""

	flag.Usage = func() {
		fmt.Printf("%s [options] <program file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.IntVar(&c.IPF, "ipf", c.IPF, "Instructions executed per 60Hz frame.")
	flag.IntVar(&c.ScaleFactor, "scale-factor", c.ScaleFactor, "Pixel scale factor for the display.")
	flag.BoolVar(&c.Fullscreen, "fullscreen", c.Fullscreen, "Run the display in fullscreen or windowed mode.")
	flag.StringVar(&fg, "fg", fg, "Foreground color as #rrggbb.")
	flag.StringVar(&bg, "bg", bg, "Background color as #rrggbb.")
	flag.IntVar(&c.Fade, "fade", c.Fade, "Number of frames over which pixels fade out; 0 disables fading.")
	flag.BoolVar(&c.Debug, "debug", c.Debug, "Run in debug mode.")
	flag.StringVar(&breakpoints, "break", breakpoints, "Comma separated list of hex addresses to pause at in debug mode.")
	flag.BoolVar(&c.Lenient, "lenient", c.Lenient, "Treat unknown instructions as no-ops instead of stopping.")
	flag.BoolVar(&c.Mute, "mute", c.Mute, "Disable audio output.")
	flag.StringVar(&c.Beep, "beep", c.Beep, "WAV or MP3 file to play as the buzzer sound.")
	flag.StringVar(&c.Record, "record", c.Record, "Record the buzzer output to the given WAV file.")
	flag.StringVar(&c.StatsView, "statsview", c.StatsView, "Serve runtime statistics on the given address, e.g. localhost:12600.")
	flag.StringVar(&c.MemViz, "memviz", c.MemViz, "Output file for machine state graphs written with F6.")

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

	var err error
	if c.Foreground, err = display.ParseColor(fg); err != nil {
		exit(err)
	}

	if c.Background, err = display.ParseColor(bg); err != nil {
		exit(err)
	}

	if c.Breakpoints, err = parseBreakpoints(breakpoints); err != nil {
		exit(err)
	}

	if c.IPF < 1 {
		c.IPF = 1
	}

	if c.ScaleFactor < 1 {
		c.ScaleFactor = 1
	}

	c.Program = flag.Arg(0)
	c.PrintTrace = c.Debug
	return &c
}

// parseBreakpoints parses a comma separated list of hex addresses.
func parseBreakpoints(s string) (map[int]bool, error) {
	set := make(map[int]bool)

	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if len(field) == 0 {
			continue
		}

		field = strings.TrimPrefix(strings.TrimPrefix(field, "0x"), "$")
		addr, err := strconv.ParseUint(field, 16, 12)
		if err != nil {
			return nil, errors.Errorf("invalid breakpoint %q", field)
		}

		set[int(addr)] = true
	}

	return set, nil
}

func exit(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
