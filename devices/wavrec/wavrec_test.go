package wavrec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"

	"github.com/hexaflex/chip8/devices/buzzer"
)

type testMachine struct {
	st byte
}

func (m *testMachine) Pixel(x, y int) bool                 { return false }
func (m *testMachine) SoundTimer() byte                    { return m.st }
func (m *testMachine) KeyPress(key int, pressed bool) error { return nil }

func TestRecording(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	d := New(path, buzzer.NewTone(600, 100, 1), 600, 60)

	if err := d.Startup(); err != nil {
		t.Fatal(err)
	}

	m := &testMachine{}
	d.Update(m)
	m.st = 2
	d.Update(m)
	m.st = 0
	d.Update(m)

	if err := d.Shutdown(); err != nil {
		t.Fatal(err)
	}

	fd, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer fd.Close()

	dec := wav.NewDecoder(fd)
	if !dec.IsValidFile() {
		t.Fatalf("recording is not a valid wav file")
	}

	if dec.SampleRate != 600 || dec.NumChans != 1 || dec.BitDepth != 16 {
		t.Fatalf("unexpected format: %d Hz, %d channels, %d bits", dec.SampleRate, dec.NumChans, dec.BitDepth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatal(err)
	}

	// Three frames of 10 samples each.
	if len(buf.Data) != 30 {
		t.Fatalf("want 30 samples, have %d", len(buf.Data))
	}

	for i, v := range buf.Data {
		sounding := i >= 10 && i < 20
		if sounding && v == 0 {
			t.Fatalf("sample %d: want tone, have silence", i)
		}
		if !sounding && v != 0 {
			t.Fatalf("sample %d: want silence, have %d", i, v)
		}
	}

	// A full period of the tone: 3 high samples, then 3 low.
	if buf.Data[10] != 127<<8 || buf.Data[13] != -127<<8 {
		t.Fatalf("unexpected tone samples: %v", buf.Data[10:20])
	}
}

func TestShutdownWithoutStartup(t *testing.T) {
	d := New(filepath.Join(t.TempDir(), "unused.wav"), nil, 0, 0)
	if err := d.Shutdown(); err != nil {
		t.Fatal(err)
	}
}
