package rom

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/cpu"
)

var program = []byte{0x60, 0x05, 0x70, 0x01, 0x12, 0x02}

func TestReadRaw(t *testing.T) {
	data, err := Read(bytes.NewReader(program))
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(data, program) {
		t.Fatalf("want %x, have %x", program, data)
	}
}

func TestReadCompressed(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, program, true); err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(buf.Bytes(), program) {
		t.Fatalf("image was not compressed")
	}

	data, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(data, program) {
		t.Fatalf("want %x, have %x", program, data)
	}
}

func TestReadLimits(t *testing.T) {
	if _, err := Read(bytes.NewReader(nil)); err != ErrEmpty {
		t.Fatalf("want ErrEmpty, have %v", err)
	}

	// A single byte is too short to hold the gzip magic but is a valid image.
	if data, err := Read(bytes.NewReader([]byte{0x1f})); err != nil || len(data) != 1 {
		t.Fatalf("unexpected result: %x, %v", data, err)
	}

	full := make([]byte, cpu.MaxROMSize)
	if _, err := Read(bytes.NewReader(full)); err != nil {
		t.Fatal(err)
	}

	large := make([]byte, cpu.MaxROMSize+1)
	if _, err := Read(bytes.NewReader(large)); !errors.Is(err, cpu.ErrROMTooLarge) {
		t.Fatalf("want ErrROMTooLarge, have %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, large, true); !errors.Is(err, cpu.ErrROMTooLarge) {
		t.Fatalf("want ErrROMTooLarge from Write, have %v", err)
	}

	// Corrupt gzip data.
	if _, err := Read(bytes.NewReader([]byte{0x1f, 0x8b, 0x00})); err == nil {
		t.Fatalf("expected error for a broken gzip stream")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.ch8")
	if err := os.WriteFile(path, program, 0644); err != nil {
		t.Fatal(err)
	}

	data, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(data, program) {
		t.Fatalf("want %x, have %x", program, data)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.ch8")); err == nil {
		t.Fatalf("expected error for a missing file")
	}
}
