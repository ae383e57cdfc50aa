package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hexaflex/chip8/cpu"
)

type testMachine struct {
	lit map[[2]int]bool
	st  byte
}

func (m *testMachine) Pixel(x, y int) bool                 { return m.lit[[2]int{x, y}] }
func (m *testMachine) SoundTimer() byte                    { return m.st }
func (m *testMachine) KeyPress(key int, pressed bool) error { return nil }

func TestScreen(t *testing.T) {
	var s screen
	s.Update(&testMachine{lit: map[[2]int]bool{
		{0, 0}: true,
		{1, 1}: true,
		{2, 0}: true, {2, 1}: true,
		{63, 31}: true,
	}})

	lines := strings.Split(s.String(), "\r\n")
	if len(lines) != screenHeight/2+1 || lines[len(lines)-1] != "" {
		t.Fatalf("unexpected line count %d", len(lines))
	}

	first := []rune(lines[0])
	if len(first) != screenWidth {
		t.Fatalf("want %d columns, have %d", screenWidth, len(first))
	}

	if string(first[:4]) != "▀▄█ " {
		t.Fatalf("unexpected first line: %q", string(first[:4]))
	}

	last := []rune(lines[screenHeight/2-1])
	if last[screenWidth-1] != '▄' {
		t.Fatalf("unexpected last pixel: %q", last[screenWidth-1])
	}
}

func TestScreenBell(t *testing.T) {
	var s screen
	var buf bytes.Buffer
	m := &testMachine{st: 3}

	s.Update(m)
	if err := s.Render(&buf, "status"); err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(buf.String(), ansiHome) || !strings.Contains(buf.String(), "status") {
		t.Fatalf("unexpected render output")
	}
	if !strings.HasSuffix(buf.String(), ansiBell) {
		t.Fatalf("want bell when the sound timer starts")
	}

	// No bell while the sound keeps going.
	buf.Reset()
	s.Update(m)
	s.Render(&buf, "")
	if strings.Contains(buf.String(), ansiBell) {
		t.Fatalf("bell should only sound once per beep")
	}
}

func TestParseInput(t *testing.T) {
	cmd := parseInput([]byte("1wXp"))
	if cmd.quit || cmd.pause {
		t.Fatalf("unexpected command flags")
	}

	want := []int{0x1, 0x5, 0x0}
	if len(cmd.keys) != len(want) {
		t.Fatalf("want keys %v, have %v", want, cmd.keys)
	}
	for i := range want {
		if cmd.keys[i] != want[i] {
			t.Fatalf("want keys %v, have %v", want, cmd.keys)
		}
	}

	if !parseInput([]byte{keyEscape}).quit || !parseInput([]byte{keyCtrlC}).quit {
		t.Fatalf("want quit")
	}

	// Arrow key escape sequence.
	if cmd := parseInput([]byte("\x1b[A")); cmd.quit || len(cmd.keys) != 0 {
		t.Fatalf("escape sequences should be ignored")
	}

	if !parseInput([]byte(" ")).pause {
		t.Fatalf("want pause toggle")
	}
}

func TestReadInput(t *testing.T) {
	out := make(chan []byte, 4)
	readInput(strings.NewReader("qw"), out)

	var all []byte
	for chunk := range out {
		all = append(all, chunk...)
	}

	if string(all) != "qw" {
		t.Fatalf("want %q, have %q", "qw", all)
	}
}

func TestStatus(t *testing.T) {
	c := cpu.New(nil, nil)

	line := status(c, true, nil)
	if !strings.HasPrefix(line, "PC=0200 I=0000") || !strings.Contains(line, "paused") {
		t.Fatalf("unexpected status line: %q", line)
	}
}
