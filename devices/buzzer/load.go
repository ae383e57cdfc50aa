package buzzer

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/pkg/errors"
)

// LoadSample reads a WAV or MP3 file, depending on its extension, and
// converts it for a device running at the given rate.
func LoadSample(path string, rate int, volume float64) (*Sample, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer fd.Close()

	var pcm []float32
	var srcRate int

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		pcm, srcRate, err = DecodeWAV(fd)
	case ".mp3":
		pcm, srcRate, err = DecodeMP3(fd)
	default:
		return nil, errors.Errorf("%s: unsupported sample format; want .wav or .mp3", path)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	log.Printf("buzzer: loaded %s: %d samples at %dHz", filepath.Base(path), len(pcm), srcRate)
	return NewSample(pcm, srcRate, rate, volume), nil
}

// DecodeWAV reads the first channel of a WAV stream.
// It returns samples in the range [-1, 1] and the sample rate.
func DecodeWAV(r io.ReadSeeker) ([]float32, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, errors.New("wav: not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, errors.Wrapf(err, "wav")
	}

	chans := int(dec.NumChans)
	if chans < 1 {
		chans = 1
	}

	scale := float32(int(1) << (dec.BitDepth - 1))
	if dec.BitDepth == 8 {
		// 8-bit WAV data is unsigned.
		scale = 0
	}

	floatBuf := buf.AsFloat32Buffer()
	pcm := make([]float32, 0, len(floatBuf.Data)/chans)

	for i := 0; i < len(floatBuf.Data); i += chans {
		v := floatBuf.Data[i]
		if scale == 0 {
			v = (v - 128) / 128
		} else {
			v /= scale
		}
		pcm = append(pcm, v)
	}

	return pcm, int(dec.SampleRate), nil
}

// DecodeMP3 reads the left channel of an MP3 stream.
// It returns samples in the range [-1, 1] and the sample rate.
func DecodeMP3(r io.Reader) ([]float32, int, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "mp3")
	}

	// The decoder always yields 16-bit little endian stereo frames.
	const frameSize = 4

	var pcm []float32
	chunk := make([]byte, 4096)

	for {
		n, err := io.ReadFull(dec, chunk)

		for i := 0; i+frameSize <= n; i += frameSize {
			v := int16(uint16(chunk[i]) | uint16(chunk[i+1])<<8)
			pcm = append(pcm, float32(v)/32768)
		}

		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}

		if err != nil {
			return nil, 0, errors.Wrapf(err, "mp3")
		}
	}

	return pcm, dec.SampleRate(), nil
}
