// Package rom reads program images from disk.
//
// Images are raw CHIP-8 programs, optionally gzip compressed. Compression
// is detected from the stream contents, not the file name.
package rom

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/cpu"
)

// ErrEmpty is returned for images without any program data.
var ErrEmpty = errors.New("empty program")

var gzipMagic = []byte{0x1f, 0x8b}

// Load reads the program image at the given path.
func Load(path string) ([]byte, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer fd.Close()

	data, err := Read(fd)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	return data, nil
}

// Read reads a program image from the given stream.
// Images larger than cpu.MaxROMSize yield cpu.ErrROMTooLarge.
func Read(r io.Reader) ([]byte, error) {
	br := bufio.NewReader(r)

	magic, err := br.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		return nil, err
	}

	var src io.Reader = br
	if bytes.Equal(magic, gzipMagic) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.Wrapf(err, "rom: invalid gzip stream")
		}

		defer gz.Close()
		src = gz
	}

	// Read one byte past the limit to detect oversized images
	// without buffering all of them.
	data, err := io.ReadAll(io.LimitReader(src, cpu.MaxROMSize+1))
	if err != nil {
		return nil, errors.Wrapf(err, "rom")
	}

	if len(data) == 0 {
		return nil, ErrEmpty
	}

	if len(data) > cpu.MaxROMSize {
		return nil, errors.Wrapf(cpu.ErrROMTooLarge, "more than %d bytes", cpu.MaxROMSize)
	}

	return data, nil
}

// Write writes the program image to w, gzip compressed if requested.
func Write(w io.Writer, data []byte, compress bool) error {
	if len(data) > cpu.MaxROMSize {
		return errors.Wrapf(cpu.ErrROMTooLarge, "%d bytes", len(data))
	}

	if !compress {
		_, err := w.Write(data)
		return err
	}

	gz := gzip.NewWriter(w)
	if _, err := gz.Write(data); err != nil {
		gz.Close()
		return err
	}

	return gz.Close()
}
