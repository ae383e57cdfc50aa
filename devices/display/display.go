// Package display renders the 64x32 monochrome display through OpenGL.
package display

import (
	"strconv"
	"strings"

	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
)

// Display dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Color is an RGBA color with components in the range [0, 1].
type Color [4]float32

// ParseColor parses a hex color of the form "rrggbb" or "#rrggbb".
func ParseColor(s string) (Color, error) {
	v := strings.TrimPrefix(s, "#")
	if len(v) != 6 {
		return Color{}, errors.Errorf("invalid color %q: want rrggbb", s)
	}

	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return Color{}, errors.Wrapf(err, "invalid color %q", s)
	}

	return Color{
		float32((n>>16)&0xff) / 255,
		float32((n>>8)&0xff) / 255,
		float32(n&0xff) / 255,
		1,
	}, nil
}

// Device defines all internal doodads for the display.
type Device struct {
	pixels      [Width * Height]byte
	fg, bg      Color
	fade        byte // Intensity lost per frame by unlit pixels.
	shader      uint32
	vao         uint32
	vbo         uint32
	tex         uint32
	dirty       bool
	colorsDirty bool
	initialized bool
}

var _ devices.Device = &Device{}

// New creates a new device with the given colors.
//
// Pixels which are switched off fade out over the given number of frames.
// This hides the flicker of programs which erase and redraw their sprites
// every frame. A value of zero or one turns pixels off immediately.
func New(fg, bg Color, fadeFrames int) *Device {
	d := &Device{fg: fg, bg: bg, fade: 255}
	if fadeFrames > 1 {
		d.fade = byte(255 / fadeFrames)
		if d.fade == 0 {
			d.fade = 1
		}
	}
	return d
}

// ID returns the device identifier.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.ClassDisplay, 0x0001)
}

// SetColors changes the display colors.
func (d *Device) SetColors(fg, bg Color) {
	d.fg, d.bg = fg, bg
	d.colorsDirty = true
}

// Intensity returns the current brightness of the given pixel in the range [0, 255].
func (d *Device) Intensity(x, y int) byte {
	return d.pixels[y*Width+x]
}

// Update copies the machine display into the device buffer.
func (d *Device) Update(m devices.Machine) {
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			p := &d.pixels[y*Width+x]
			old := *p

			switch {
			case m.Pixel(x, y):
				*p = 255
			case *p > d.fade:
				*p -= d.fade
			default:
				*p = 0
			}

			if *p != old {
				d.dirty = true
			}
		}
	}
}

// Draw renders the display contents into the current framebuffer.
func (d *Device) Draw() {
	if !d.initialized {
		return
	}

	gl.UseProgram(d.shader)

	if d.colorsDirty {
		gl.Uniform4fv(gl.GetUniformLocation(d.shader, glStr("foreground")), 1, &d.fg[0])
		gl.Uniform4fv(gl.GetUniformLocation(d.shader, glStr("background")), 1, &d.bg[0])
		d.colorsDirty = false
	}

	if d.dirty {
		uploadTexture(d.tex, Width, Height, d.pixels[:])
		d.dirty = false
	}

	gl.BindVertexArray(d.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.tex)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// Startup initializes device resources.
// It requires a current OpenGL context.
func (d *Device) Startup() error {
	var err error

	d.shader, err = compileProgram(vertex, fragment)
	if err != nil {
		return errors.Wrapf(err, "failed to compile shaders")
	}

	gl.UseProgram(d.shader)

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	vertAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertPos")))
	texCoordAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertTexCoord")))

	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))

	gl.EnableVertexAttribArray(texCoordAttrib)
	gl.VertexAttribPointer(texCoordAttrib, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))

	d.tex = makeTexture()
	d.dirty = true
	d.colorsDirty = true
	d.initialized = true

	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	if !d.initialized {
		return nil
	}

	d.initialized = false
	gl.DeleteTextures(1, &d.tex)
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteProgram(d.shader)
	return nil
}

var quadVertices = []float32{
	//  X, Y, Z, U, V
	-1.0, -1.0, 0.0, 0.0, 1.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	1.0, 1.0, 0.0, 1.0, 0.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
}
