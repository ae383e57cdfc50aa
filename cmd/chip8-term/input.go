package main

import (
	"io"

	"github.com/hexaflex/chip8/devices/keypad"
)

// Control characters.
const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b
	keySpace  = ' '
)

// command holds the actions requested by one chunk of terminal input.
type command struct {
	keys  []int // Keypad keys pressed.
	quit  bool
	pause bool // Toggle execution.
}

// parseInput interprets a chunk of bytes read from a raw terminal.
//
// A lone escape byte quits. Escape sequences, such as those sent by the
// arrow and function keys, start with an escape byte followed by more
// data in the same chunk; they are ignored.
func parseInput(p []byte) command {
	var cmd command

	if len(p) > 1 && p[0] == keyEscape {
		return cmd
	}

	for _, b := range p {
		switch b {
		case keyCtrlC, keyEscape:
			cmd.quit = true
		case keySpace:
			cmd.pause = !cmd.pause
		default:
			if key, ok := keypad.Lookup(rune(b)); ok {
				cmd.keys = append(cmd.keys, key)
			}
		}
	}

	return cmd
}

// readInput forwards chunks read from r until reading fails.
// The channel is closed on exit.
func readInput(r io.Reader, out chan<- []byte) {
	defer close(out)

	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			out <- chunk
		}

		if err != nil {
			return
		}
	}
}
