package main

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestTranslate(t *testing.T) {
	// Two 8x2 sprites side by side, plus a partial column which is skipped.
	img := image.NewGray(image.Rect(0, 0, 20, 2))
	img.SetGray(0, 0, color.Gray{Y: 0xff})
	img.SetGray(7, 0, color.Gray{Y: 0xff})
	img.SetGray(3, 1, color.Gray{Y: 0x40})
	img.SetGray(4, 1, color.Gray{Y: 0xc0})
	img.SetGray(8, 1, color.Gray{Y: 0xff})

	var buf bytes.Buffer
	translate(&buf, img, 2, false)

	want := strings.Join([]string{
		"; 2 sprites, 2 bytes each",
		"",
		"; sprite 0",
		"DB $81 ; #......#",
		"DB $08 ; ....#...",
		"",
		"; sprite 1",
		"DB $00 ; ........",
		"DB $80 ; #.......",
		"",
	}, "\n")

	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestLit(t *testing.T) {
	if !lit(color.White, false) || lit(color.Black, false) {
		t.Fatalf("unexpected result for black and white")
	}

	if lit(color.White, true) || !lit(color.Black, true) {
		t.Fatalf("unexpected result for inverted black and white")
	}

	if lit(color.RGBA{0xff, 0xff, 0xff, 0}, false) {
		t.Fatalf("transparent pixels should not be lit")
	}
}
