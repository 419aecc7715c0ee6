// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic sources and misbehaving streams for tests.
package audiotest

import (
	"io"
	"math"
)

// Waveform returns the value of channel ch at frame.
type Waveform func(frame, ch int) float32

// MockSource produces a fixed number of frames from a Waveform. It has the
// method set of audio.Source without importing the audio package.
type MockSource struct {
	rate     int
	channels int
	frames   int
	pos      int
	wave     Waveform
}

// NewMockSource returns a source of frames frames at rate Hz.
func NewMockSource(rate, channels, frames int, wave Waveform) *MockSource {
	return &MockSource{rate: rate, channels: channels, frames: frames, wave: wave}
}

// NewSilentSource returns frames of zeros.
func NewSilentSource(rate, channels, frames int) *MockSource {
	return NewConstantSource(rate, channels, frames, 0)
}

// NewSineSource returns a full-scale sine at freq Hz on every channel.
func NewSineSource(rate, channels, frames int, freq float64) *MockSource {
	step := 2 * math.Pi * freq / float64(rate)
	return NewMockSource(rate, channels, frames, func(frame, _ int) float32 {
		return float32(math.Sin(step * float64(frame)))
	})
}

// NewConstantSource returns frames holding value on every channel.
func NewConstantSource(rate, channels, frames int, value float32) *MockSource {
	return NewMockSource(rate, channels, frames, func(int, int) float32 { return value })
}

func (m *MockSource) SampleRate() int { return m.rate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

// Reset starts the waveform over.
func (m *MockSource) Reset() { m.pos = 0 }

// ReadSamples writes whole frames and returns io.EOF together with the last of them.
func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.pos >= m.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, m.frames-m.pos)
	for f := range n {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.wave(m.pos+f, ch)
		}
	}
	m.pos += n

	if m.pos >= m.frames {
		return n * m.channels, io.EOF
	}
	return n * m.channels, nil
}
