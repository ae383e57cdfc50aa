package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/pkg/term"

	"github.com/hexaflex/chip8/cpu"
	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/clock"
	"github.com/hexaflex/chip8/devices/keypad"
	"github.com/hexaflex/chip8/devices/wavrec"
	"github.com/hexaflex/chip8/rom"
)

func main() {
	config := parseArgs()

	if err := setupLog(config.Log); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(config); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLog sends log output to the given file, or discards it.
func setupLog(path string) error {
	if len(path) == 0 {
		log.SetOutput(ioutil.Discard)
		return nil
	}

	fd, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return errors.Wrapf(err, "failed to open log file")
	}

	log.SetOutput(fd)
	return nil
}

// run executes the program until it fails or the user quits.
func run(config *Config) error {
	log.Println(Version())

	program, err := rom.Load(config.Program)
	if err != nil {
		return err
	}

	c := cpu.New(nil, nil)
	c.SkipUnknown = config.Lenient

	if err := c.Load(program); err != nil {
		return err
	}

	tty, err := term.Open(config.Device, term.RawMode)
	if err != nil {
		return errors.Wrapf(err, "failed to open terminal")
	}

	defer func() {
		io.WriteString(os.Stdout, ansiShowCursor+"\r\n")
		tty.Restore()
		tty.Close()
	}()

	pad := keypad.New()
	scr := &screen{}
	tick := clock.New(clock.DefaultRate)

	var dm devices.Map
	dm.Connect(tick)
	dm.Connect(pad)
	dm.Connect(scr)

	if len(config.Record) > 0 {
		dm.Connect(wavrec.New(config.Record, nil, wavrec.DefaultRate, clock.DefaultRate))
	}

	if err := dm.Startup(); err != nil {
		dm.Shutdown()
		return err
	}

	defer func() {
		if err := dm.Shutdown(); err != nil {
			log.Println(err)
		}
	}()

	input := make(chan []byte, 16)
	go readInput(tty, input)

	io.WriteString(os.Stdout, ansiClear+ansiHideCursor)

	paused := false
	var failure error

	for {
		select {
		case chunk, ok := <-input:
			if !ok {
				return errors.New("terminal input closed")
			}

			cmd := parseInput(chunk)
			if cmd.quit {
				return failure
			}

			if cmd.pause {
				paused = !paused
			}

			for _, key := range cmd.keys {
				pad.Tap(key, config.Hold)
			}

		case <-tick.C():
			if !paused && failure == nil {
				if err := c.RunFrame(config.IPF); err != nil {
					log.Println(err)
					failure = err
				}
			}

			dm.Update(c)

			if err := scr.Render(os.Stdout, status(c, paused, failure)); err != nil {
				return err
			}
		}
	}
}

// status returns the status line shown below the display.
func status(c *cpu.CPU, paused bool, failure error) string {
	st := c.State()
	line := fmt.Sprintf("PC=%04x I=%04x DT=%02x ST=%02x SP=%d", st.PC, st.Index, st.DelayTimer, st.SoundTimer, st.SP)

	switch {
	case failure != nil:
		line += "  stopped: " + failure.Error()
	case paused:
		line += "  paused"
	}

	return line + "  [ESC quits, SPACE pauses]"
}
