// Package buzzer sounds a tone for as long as the sound timer is non-zero.
package buzzer

import (
	"log"

	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/hexaflex/chip8/devices"
)

// Default audio properties.
const (
	DefaultRate      = 44100 // Output sample rate in Hz.
	DefaultFrequency = 440   // Tone frequency in Hz.
	DefaultVolume    = 0.25
)

// maxQueuedFrames limits how far the audio queue may run ahead of the machine.
const maxQueuedFrames = 3

// Device defines the buzzer state.
type Device struct {
	source      Source
	id          sdl.AudioDeviceID
	spec        sdl.AudioSpec
	rate        int
	frameRate   int
	frame       []uint8 // One frame worth of samples.
	sounding    bool
	initialized bool
}

var _ devices.Device = &Device{}

// New creates a buzzer at the given output rate, updated frameRate times
// per second. A nil source plays the default tone.
func New(source Source, rate, frameRate int) *Device {
	if rate <= 0 {
		rate = DefaultRate
	}

	if frameRate <= 0 {
		frameRate = 60
	}

	if source == nil {
		source = NewTone(rate, DefaultFrequency, DefaultVolume)
	}

	return &Device{
		source:    source,
		rate:      rate,
		frameRate: frameRate,
	}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.ClassAudio, 0x0001)
}

// Startup opens the audio device.
func (d *Device) Startup() error {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return errors.Wrapf(err, "failed to initialize audio")
	}

	spec := &sdl.AudioSpec{
		Freq:     int32(d.rate),
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  512,
	}

	var err error
	d.id, err = sdl.OpenAudioDevice("", false, spec, &d.spec, 0)
	if err != nil {
		sdl.QuitSubSystem(sdl.INIT_AUDIO)
		return errors.Wrapf(err, "failed to open audio device")
	}

	d.frame = make([]uint8, int(d.spec.Freq)/d.frameRate)
	d.sounding = false
	d.initialized = true

	sdl.PauseAudioDevice(d.id, false)
	log.Println(d.ID(), "audio output:", d.spec.Freq, "Hz")
	return nil
}

// Shutdown closes the audio device.
func (d *Device) Shutdown() error {
	if !d.initialized {
		return nil
	}

	d.initialized = false
	sdl.CloseAudioDevice(d.id)
	sdl.QuitSubSystem(sdl.INIT_AUDIO)
	return nil
}

// Update queues one frame of sound while the sound timer is active.
// The device plays silence once the queue runs dry.
func (d *Device) Update(m devices.Machine) {
	if !d.initialized {
		return
	}

	if m.SoundTimer() == 0 {
		if d.sounding {
			sdl.ClearQueuedAudio(d.id)
			d.sounding = false
		}
		return
	}

	if !d.sounding {
		d.source.Rewind()
		d.sounding = true
	}

	if sdl.GetQueuedAudioSize(d.id) > uint32(maxQueuedFrames*len(d.frame)) {
		return
	}

	d.source.Fill(d.frame)
	if err := sdl.QueueAudio(d.id, d.frame); err != nil {
		log.Println(d.ID(), err)
	}
}
