// SPDX-License-Identifier: EPL-2.0

// Package intpcm turns the integer PCM buffers of the go-audio decoders into
// session output.
//
// 16-bit material is passed on as native-order int16. Every other bit depth is
// normalized to float32.
package intpcm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/sounddec/audio"
)

// Reader is the part of a go-audio decoder that yields samples.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// OpenFunc returns a reader positioned at the first sample.
type OpenFunc func() (Reader, error)

// Layout describes the integer samples a Reader produces.
type Layout struct {
	Channels int
	Rate     int
	BitDepth int
	// Unsigned8 marks 8-bit samples stored as 0..255 around 128.
	Unsigned8 bool
}

// SampleFormat is the session format the layout is delivered in.
func (l Layout) SampleFormat() (audio.SampleFormat, error) {
	switch l.BitDepth {
	case 16:
		return audio.FormatS16Sys, nil
	case 8, 24, 32:
		return audio.FormatF32Sys, nil
	default:
		return audio.FormatUnknown, fmt.Errorf("%w: %d", audio.ErrUnsupportedBitDepth, l.BitDepth)
	}
}

// Source is an audio.State over an integer PCM reader.
type Source struct {
	open   OpenFunc
	dec    Reader
	layout Layout
	format audio.SampleFormat
	scale  float32
	buf    *goaudio.IntBuffer
}

// New opens the first reader and validates the layout.
func New(open OpenFunc, layout Layout) (*Source, error) {
	if layout.Channels < 1 || layout.Rate < 1 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", audio.ErrBadFormat, layout.Channels, layout.Rate)
	}
	sf, err := layout.SampleFormat()
	if err != nil {
		return nil, err
	}
	dec, err := open()
	if err != nil {
		return nil, err
	}

	return &Source{
		open:   open,
		dec:    dec,
		layout: layout,
		format: sf,
		scale:  float32(1.0 / float64(uint64(1)<<(layout.BitDepth-1))),
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{NumChannels: layout.Channels, SampleRate: layout.Rate},
		},
	}, nil
}

// Format is the negotiated session format.
func (s *Source) Format() audio.Format {
	return audio.Format{Format: s.format, Channels: s.layout.Channels, Rate: s.layout.Rate}
}

// fill reads up to n samples into s.buf; the count is a whole number of frames.
func (s *Source) fill(n int) (int, error) {
	if cap(s.buf.Data) < n {
		s.buf.Data = make([]int, n)
	}
	data := s.buf.Data[:n]

	got := 0
	for got < n {
		s.buf.Data = data[got:]
		m, err := s.dec.PCMBuffer(s.buf)
		got += m
		if err != nil {
			s.buf.Data = data
			if errors.Is(err, io.EOF) {
				break
			}
			return got - got%s.layout.Channels, err
		}
		if m == 0 {
			break
		}
	}
	s.buf.Data = data
	return got - got%s.layout.Channels, nil
}

func (s *Source) Read(dst []byte) (int, audio.Flags) {
	width := s.format.Bytes()
	want := len(dst) / (width * s.layout.Channels) * s.layout.Channels

	got, err := s.fill(want)
	if err != nil && got == 0 {
		audio.Debugf("PCM: read failed: %v", err)
		return 0, audio.FlagError
	}

	data := s.buf.Data[:got]
	if s.format == audio.FormatS16Sys {
		for i, v := range data {
			binary.NativeEndian.PutUint16(dst[2*i:], uint16(int16(v)))
		}
	} else {
		for i, v := range data {
			if s.layout.Unsigned8 {
				v -= 128
			}
			binary.NativeEndian.PutUint32(dst[4*i:], math.Float32bits(float32(v)*s.scale))
		}
	}

	var flags audio.Flags
	if got < want {
		flags |= audio.FlagEOF
	}
	return got * width, flags
}

// Rewind starts a fresh reader at the first sample.
func (s *Source) Rewind() error {
	dec, err := s.open()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	s.dec = dec
	return nil
}

// Seek rewinds and decodes forward to the frame at ms.
func (s *Source) Seek(ms uint32) error {
	if err := s.Rewind(); err != nil {
		return err
	}

	const chunkFrames = 4096
	skip := audio.MillisToFrame(ms, s.layout.Rate)
	for skip > 0 {
		frames := int(min(skip, chunkFrames))
		got, err := s.fill(frames * s.layout.Channels)
		if err != nil {
			return fmt.Errorf("%w", err)
		}
		if got == 0 {
			// Past the end: the next read reports EOF.
			return nil
		}
		skip -= uint64(got / s.layout.Channels)
	}
	return nil
}

func (s *Source) Close() {
	s.dec = nil
	s.buf = nil
}
