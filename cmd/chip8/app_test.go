package main

import (
	"strings"
	"testing"

	"github.com/hexaflex/chip8/arch"
	"github.com/hexaflex/chip8/cpu"
)

func TestParseBreakpoints(t *testing.T) {
	set, err := parseBreakpoints("200, 0x2a4,$3fe,")
	if err != nil {
		t.Fatal(err)
	}

	if len(set) != 3 || !set[0x200] || !set[0x2a4] || !set[0x3fe] {
		t.Fatalf("unexpected breakpoints: %v", set)
	}

	if set, err := parseBreakpoints(""); err != nil || len(set) != 0 {
		t.Fatalf("unexpected result for an empty list: %v, %v", set, err)
	}

	for _, s := range []string{"xyz", "1000"} {
		if _, err := parseBreakpoints(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestFormatTrace(t *testing.T) {
	var i arch.Instruction
	i.Decode(0x204, 0x81, 0x24)

	var st cpu.State
	st.Index = 0x300
	st.Registers[1] = 0x10
	st.Registers[2] = 0x20

	have := formatTrace(&i, st)
	if !strings.HasPrefix(have, "0204 8124  ADD V1, V2") {
		t.Fatalf("unexpected trace prefix: %q", have)
	}

	if !strings.HasSuffix(have, "I=0300 V1=10 V2=20 VF=00") {
		t.Fatalf("unexpected trace suffix: %q", have)
	}

	if idx := strings.Index(have, "I="); idx != 30 {
		t.Fatalf("want state at column 30, have %d", idx)
	}
}

func TestPrettyFrequency(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0.00 Hz"},
		{600, "600.00 Hz"},
		{1500, "1.50 KHz"},
		{2.5e6, "2.50 MHz"},
	}

	for _, tt := range tests {
		if have := prettyFrequency(tt.v); have != tt.want {
			t.Fatalf("%f: want %q, have %q", tt.v, tt.want, have)
		}
	}
}

func TestControllerRunFrame(t *testing.T) {
	c := NewCPUController(nil, false)

	//         LD V0, $03
	//         LD ST, V0
	//   loop: ADD V1, $01
	//         JP loop
	if err := c.Load([]byte{0x60, 0x03, 0xf0, 0x18, 0x71, 0x01, 0x12, 0x04}); err != nil {
		t.Fatal(err)
	}

	// Not running: nothing happens.
	if err := c.RunFrame(10); err != nil {
		t.Fatal(err)
	}
	if c.State().PC != cpu.ProgramStart {
		t.Fatalf("paused controller executed instructions")
	}

	c.Start()
	if err := c.RunFrame(10); err != nil {
		t.Fatal(err)
	}

	st := c.State()
	if st.Registers[1] != 4 || st.SoundTimer != 2 {
		t.Fatalf("unexpected state after one frame: V1=%d ST=%d", st.Registers[1], st.SoundTimer)
	}

	if !c.Running() {
		t.Fatalf("controller should still be running")
	}
}

func TestControllerStopsOnError(t *testing.T) {
	c := NewCPUController(nil, false)

	// RET with an empty callstack.
	if err := c.Load([]byte{0x00, 0xee}); err != nil {
		t.Fatal(err)
	}

	c.Start()
	if err := c.RunFrame(10); err == nil {
		t.Fatalf("expected stack underflow")
	}

	if c.Running() {
		t.Fatalf("controller should stop after a failed step")
	}
}

func TestControllerBreakpoint(t *testing.T) {
	var c *CPUController

	trace := func(i *arch.Instruction) {
		if i.Address == 0x204 {
			c.Stop()
		}
	}

	c = NewCPUController(trace, true)

	if err := c.Load([]byte{0x60, 0x01, 0x61, 0x02, 0x62, 0x03, 0x63, 0x04}); err != nil {
		t.Fatal(err)
	}

	c.Start()
	if err := c.RunFrame(10); err != nil {
		t.Fatal(err)
	}

	// The instruction at the breakpoint completes before execution pauses.
	st := c.State()
	if st.PC != 0x206 || st.Registers[2] != 3 || st.Registers[3] != 0 {
		t.Fatalf("unexpected state at breakpoint: pc=%04x V2=%d V3=%d", st.PC, st.Registers[2], st.Registers[3])
	}
}
