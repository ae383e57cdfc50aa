// Package wavrec records the buzzer output to a WAV file.
package wavrec

import (
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/buzzer"
)

// Recording properties.
const (
	DefaultRate = 22050
	bitDepth    = 16
	channels    = 1
	pcmFormat   = 1
)

// Device defines the recorder state.
type Device struct {
	path      string
	source    buzzer.Source
	rate      int
	frameRate int
	fd        *os.File
	enc       *wav.Encoder
	frame     []uint8
	buf       *audio.IntBuffer
	sounding  bool
	frames    int
}

var _ devices.Device = &Device{}

// New creates a recorder which writes to the given file. The sound
// timer is sampled frameRate times per second. A nil source records
// the default tone.
func New(path string, source buzzer.Source, rate, frameRate int) *Device {
	if rate <= 0 {
		rate = DefaultRate
	}

	if frameRate <= 0 {
		frameRate = 60
	}

	if source == nil {
		source = buzzer.NewTone(rate, buzzer.DefaultFrequency, buzzer.DefaultVolume)
	}

	return &Device{
		path:      path,
		source:    source,
		rate:      rate,
		frameRate: frameRate,
	}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.ClassAudio, 0x0002)
}

// Startup creates the output file.
func (d *Device) Startup() error {
	fd, err := os.Create(d.path)
	if err != nil {
		return errors.Wrapf(err, "failed to create recording")
	}

	n := d.rate / d.frameRate
	d.fd = fd
	d.enc = wav.NewEncoder(fd, d.rate, bitDepth, channels, pcmFormat)
	d.frame = make([]uint8, n)
	d.buf = &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: d.rate},
		Data:           make([]int, n),
		SourceBitDepth: bitDepth,
	}
	d.sounding = false
	d.frames = 0

	log.Println(d.ID(), "recording to", d.path)
	return nil
}

// Shutdown finalizes the recording.
func (d *Device) Shutdown() error {
	if d.enc == nil {
		return nil
	}

	err := d.enc.Close()
	if cerr := d.fd.Close(); err == nil {
		err = cerr
	}

	log.Printf("%s recorded %d frames", d.ID(), d.frames)

	d.enc = nil
	d.fd = nil
	return errors.Wrapf(err, "failed to finalize recording")
}

// Update appends one frame of sound, or silence, to the recording.
func (d *Device) Update(m devices.Machine) {
	if d.enc == nil {
		return
	}

	on := m.SoundTimer() > 0
	if on && !d.sounding {
		d.source.Rewind()
	}
	d.sounding = on

	for i := range d.frame {
		d.frame[i] = 128
	}

	if on {
		d.source.Fill(d.frame)
	}

	for i, v := range d.frame {
		d.buf.Data[i] = (int(v) - 128) << 8
	}

	if err := d.enc.Write(d.buf); err != nil {
		log.Println(d.ID(), err)
		return
	}

	d.frames++
}
