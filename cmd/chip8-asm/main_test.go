package main

import (
	"bytes"
	"testing"
)

func TestWriteSymbols(t *testing.T) {
	var buf bytes.Buffer
	writeSymbols(&buf, map[string]int{
		"loop":  0x204,
		"start": 0x200,
		"speed": 3,
		"entry": 0x200,
	})

	want := "0003  speed\n0200  entry\n0200  start\n0204  loop\n"
	if buf.String() != want {
		t.Fatalf("want:\n%s\nhave:\n%s", want, buf.String())
	}
}
