package main

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/hexaflex/chip8/cpu"
)

// These define pixel dimensions for a single sprite.
const (
	SpriteWidth     = cpu.SpriteWidth
	MaxSpriteHeight = 15
)

func main() {
	config := parseArgs()
	img := loadImage(config)

	out, close := makeWriter(config)
	defer close()

	translate(out, img, config.Height, config.Invert)
}

// translate reads sprites of the given height from the image, left to right
// and top to bottom, and writes them to the output as byte listings.
// Partial tiles at the right and bottom edges are skipped.
func translate(out io.Writer, img image.Image, height int, invert bool) {
	r := img.Bounds()
	w := r.Dx() / SpriteWidth
	h := r.Dy() / height

	fmt.Fprintf(out, "; %d sprites, %d bytes each\n", w*h, height)

	var art strings.Builder

	for y := 0; y < h; y++ {
		sy := r.Min.Y + y*height

		for x := 0; x < w; x++ {
			sx := r.Min.X + x*SpriteWidth

			fmt.Fprintf(out, "\n; sprite %d\n", y*w+x)

			for py := sy; py < sy+height; py++ {
				var row byte
				art.Reset()

				for px := sx; px < sx+SpriteWidth; px++ {
					row <<= 1

					if lit(img.At(px, py), invert) {
						row |= 1
						art.WriteByte('#')
					} else {
						art.WriteByte('.')
					}
				}

				fmt.Fprintf(out, "DB $%02X ; %s\n", row, art.String())
			}
		}
	}
}

// lit returns true if the given color counts as a lit pixel.
func lit(c color.Color, invert bool) bool {
	g := color.GrayModel.Convert(c).(color.Gray)
	_, _, _, a := c.RGBA()
	on := a > 0 && g.Y >= 0x80
	return on != invert
}

// loadImage loads an image from the input file.
func loadImage(c *Config) image.Image {
	fd, err := os.Open(c.Input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	defer fd.Close()

	img, _, err := image.Decode(fd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	r := img.Bounds()
	if r.Dx() < SpriteWidth || r.Dy() < c.Height {
		fmt.Fprintf(os.Stderr, "source image is too small; expected at least %d x %d pixels\n", SpriteWidth, c.Height)
		os.Exit(1)
	}

	return img
}

// makeWriter creates an output writer and a cleanup function for it.
func makeWriter(c *Config) (io.Writer, func()) {
	if c.Output == "" {
		return os.Stdout, func() {}
	}

	dir, _ := filepath.Split(c.Output)
	if len(dir) > 0 {
		if err := os.MkdirAll(dir, 0744); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	fd, err := os.Create(c.Output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	return fd, func() { fd.Close() }
}
