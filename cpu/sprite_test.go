package cpu

import (
	"testing"

	"github.com/hexaflex/chip8/arch"
)

func TestDrawSpriteTwiceRestores(t *testing.T) {
	var f Frame
	f.DrawSprite(10, 10, []byte{0xff, 0x81, 0x81, 0xff})

	before := f
	sprite := []byte{0x3c, 0x42, 0x81, 0x7e, 0x18}

	f.DrawSprite(12, 11, sprite)
	if f == before {
		t.Fatalf("first draw did not change the frame")
	}

	f.DrawSprite(12, 11, sprite)
	if f != before {
		t.Fatalf("second draw did not restore the frame")
	}
}

func TestDrawSpriteWraps(t *testing.T) {
	var f Frame

	// Two lit columns at x=63 wrap the second one to x=0.
	if f.DrawSprite(63, 0, []byte{0xc0}) {
		t.Fatalf("unexpected collision on an empty frame")
	}

	if !f.At(63, 0) || !f.At(0, 0) {
		t.Fatalf("want pixels (63,0) and (0,0) lit")
	}
	if f.At(1, 0) || f.At(62, 0) {
		t.Fatalf("unexpected neighbouring pixels lit")
	}

	// Two rows at y=31 wrap the second one to y=0.
	f = Frame{}
	f.DrawSprite(5, 31, []byte{0x80, 0x80})

	if !f.At(5, 31) || !f.At(5, 0) {
		t.Fatalf("want pixels (5,31) and (5,0) lit")
	}

	// Origins beyond the display wrap as well.
	f = Frame{}
	f.DrawSprite(64+3, 32+2, []byte{0x80})

	if !f.At(3, 2) {
		t.Fatalf("want pixel (3,2) lit")
	}
}

func TestDrawSpriteCollision(t *testing.T) {
	var f Frame

	if f.DrawSprite(0, 0, []byte{0x80}) {
		t.Fatalf("collision on an empty frame")
	}

	// Lighting pixels next to a lit one is not a collision.
	if f.DrawSprite(0, 0, []byte{0x40}) {
		t.Fatalf("collision without any pixel turned off")
	}

	// Zero bits leave lit pixels alone.
	if f.DrawSprite(0, 0, []byte{0x00}) {
		t.Fatalf("collision from an empty sprite row")
	}
	if !f.At(0, 0) || !f.At(1, 0) {
		t.Fatalf("zero bits modified the frame")
	}

	if !f.DrawSprite(0, 0, []byte{0x80}) {
		t.Fatalf("want collision when a lit pixel is turned off")
	}
	if f.At(0, 0) || !f.At(1, 0) {
		t.Fatalf("unexpected frame after collision")
	}
}

func TestDRAW(t *testing.T) {
	//   LD V0, $00
	//   LD F, V0
	//   LD V1, $02
	//   LD V2, $03
	//   DRW V1, V2, 5

	c := New(nil, nil)
	if err := c.Load(program(0x6000, 0xf029, 0x6102, 0x6203, 0xd125, 0xd125)); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		if err := c.Step(); err != nil {
			t.Fatal(err)
		}
	}

	// Glyph "0": F0 90 90 90 F0
	for x := 0; x < 4; x++ {
		if !c.Pixel(2+x, 3) || !c.Pixel(2+x, 7) {
			t.Fatalf("top and bottom rows of glyph 0 should be lit at column %d", x)
		}
	}
	if !c.Pixel(2, 5) || c.Pixel(3, 5) || c.Pixel(4, 5) || !c.Pixel(5, 5) {
		t.Fatalf("unexpected middle row of glyph 0")
	}
	if c.Register(arch.VF) != 0 {
		t.Fatalf("want VF=0, have %d", c.Register(arch.VF))
	}

	if err := c.Step(); err != nil {
		t.Fatal(err)
	}

	if c.Register(arch.VF) != 1 {
		t.Fatalf("want VF=1 after redraw, have %d", c.Register(arch.VF))
	}
	if c.Display() != (Frame{}) {
		t.Fatalf("want empty display after redraw")
	}
}

func TestCLS(t *testing.T) {
	c := New(nil, nil)
	c.display.DrawSprite(0, 0, []byte{0xff})

	if err := c.Load(program(0x00e0)); err != nil {
		t.Fatal(err)
	}
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Display() != (Frame{}) {
		t.Fatalf("want empty display")
	}
}

func TestDRAWOutOfRange(t *testing.T) {
	//   LD I, $FFE
	//   DRW V0, V0, 5

	ct := newCodeTest()
	ct.emit(0xaffe)
	ct.emit(0xd005)
	runFailTest(t, ct, ErrMemoryRange)
}

func TestPixelOutOfRange(t *testing.T) {
	c := New(nil, nil)
	c.display.DrawSprite(0, 0, []byte{0x80})

	if c.Pixel(-1, 0) || c.Pixel(DisplayWidth, 0) || c.Pixel(0, DisplayHeight) {
		t.Fatalf("pixels outside the display should never be lit")
	}
}
