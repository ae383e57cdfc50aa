package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestDisassemble(t *testing.T) {
	program := []byte{
		0x60, 0x05, // LD V0, $05
		0x22, 0x06, // CALL $206
		0x12, 0x02, // JP $202
		0x00, 0xee, // RET
		0x51, 0x21, // invalid
		0xff, // trailing byte
	}

	var buf bytes.Buffer
	if err := disassemble(&buf, program, 0x200, targets(program, 0x200)); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"0200  6005         LD V0, $05",
		"0202  2206  L202:  CALL $206",
		"0204  1202         JP $202",
		"0206  00ee  L206:  RET",
		"0208  5121         DW $5121",
		"020a  ff           DB $FF",
	}

	have := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(have) != len(want) {
		t.Fatalf("want %d lines, have %d:\n%s", len(want), len(have), buf.String())
	}

	for i := range want {
		if have[i] != want[i] {
			t.Fatalf("line %d:\nwant %q\nhave %q", i, want[i], have[i])
		}
	}
}

func TestTargets(t *testing.T) {
	// Jumps outside of the program are not labeled.
	program := []byte{0x13, 0x00, 0x12, 0x00}

	set := targets(program, 0x200)
	if len(set) != 1 || !set[0x200] {
		t.Fatalf("unexpected targets: %v", set)
	}
}
