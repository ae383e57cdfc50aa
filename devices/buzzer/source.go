package buzzer

// Source produces unsigned 8-bit mono samples for the buzzer.
type Source interface {
	// Fill writes the next len(p) samples into p.
	Fill(p []uint8)

	// Rewind restarts the source from its beginning.
	Rewind()
}

// Tone is a square wave.
type Tone struct {
	period int   // Samples per full wave.
	phase  int   // Position within the current period.
	high   uint8 // Sample value for the upper half of the wave.
	low    uint8 // Sample value for the lower half of the wave.
}

var _ Source = &Tone{}

// NewTone creates a square wave of the given frequency for a device
// running at the given sample rate. Volume is in the range [0, 1].
func NewTone(rate, freq int, volume float64) *Tone {
	period := 2
	if freq > 0 && rate/freq > period {
		period = rate / freq
	}

	amp := int(clamp(volume) * 127)
	return &Tone{
		period: period,
		high:   uint8(128 + amp),
		low:    uint8(128 - amp),
	}
}

// Fill writes the next len(p) samples into p.
// Consecutive calls continue the wave without discontinuities.
func (t *Tone) Fill(p []uint8) {
	half := t.period / 2

	for i := range p {
		if t.phase < half {
			p[i] = t.high
		} else {
			p[i] = t.low
		}

		t.phase++
		if t.phase >= t.period {
			t.phase = 0
		}
	}
}

// Rewind restarts the wave at the beginning of a period.
func (t *Tone) Rewind() {
	t.phase = 0
}

// Sample plays a recorded sound in a loop.
type Sample struct {
	data []uint8
	pos  int
}

var _ Source = &Sample{}

// NewSample converts the given PCM data, with values in the range [-1, 1]
// recorded at srcRate, into a sample for a device running at dstRate.
// Volume is in the range [0, 1].
func NewSample(pcm []float32, srcRate, dstRate int, volume float64) *Sample {
	vol := clamp(volume)
	data := resample(pcm, srcRate, dstRate)
	out := make([]uint8, len(data))

	for i, v := range data {
		out[i] = uint8(128 + clamp(float64(v)*vol)*127)
	}

	return &Sample{data: out}
}

// Len returns the sample length in device samples.
func (s *Sample) Len() int {
	return len(s.data)
}

// Fill writes the next len(p) samples into p, looping at the end.
// An empty sample yields silence.
func (s *Sample) Fill(p []uint8) {
	if len(s.data) == 0 {
		for i := range p {
			p[i] = 128
		}
		return
	}

	for i := range p {
		p[i] = s.data[s.pos]

		s.pos++
		if s.pos >= len(s.data) {
			s.pos = 0
		}
	}
}

// Rewind restarts the sample.
func (s *Sample) Rewind() {
	s.pos = 0
}

// resample converts p from srcRate to dstRate using nearest neighbour selection.
func resample(p []float32, srcRate, dstRate int) []float32 {
	if srcRate <= 0 || dstRate <= 0 || srcRate == dstRate {
		return p
	}

	n := int(int64(len(p)) * int64(dstRate) / int64(srcRate))
	out := make([]float32, n)

	for i := range out {
		out[i] = p[int64(i)*int64(srcRate)/int64(dstRate)]
	}

	return out
}

// clamp limits v to the range [-1, 1].
func clamp(v float64) float64 {
	switch {
	case v < -1:
		return -1
	case v > 1:
		return 1
	}
	return v
}
