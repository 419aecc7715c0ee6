// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ik5/sounddec/audio"
	"github.com/ik5/sounddec/internal/engineio"
	"github.com/jfreymuth/oggvorbis"
)

const sampleWidth = 4

var info = audio.Info{
	Extensions:  []string{"OGG", "OGA"},
	Description: "Ogg Vorbis audio",
	Author:      "Ido Kanner",
	URL:         "https://github.com/jfreymuth/oggvorbis",
}

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read returns the number of float32 values written, interleaved.
	Read([]float32) (int, error)
	// Length is the number of frames, 0 when unknown.
	Length() int64
	SetPosition(frame int64) error
}

type source struct {
	dec      oggReader
	rate     int
	channels int
	values   []float32
}

func (s *source) Read(dst []byte) (int, audio.Flags) {
	want := len(dst) / (s.channels * sampleWidth)
	need := want * s.channels
	if cap(s.values) < need {
		s.values = make([]float32, need)
	}
	values := s.values[:need]

	got := 0
	for got < need {
		n, err := s.dec.Read(values[got:])
		got += n
		if err != nil || n == 0 {
			break
		}
	}
	got -= got % s.channels

	for i, v := range values[:got] {
		binary.NativeEndian.PutUint32(dst[sampleWidth*i:], math.Float32bits(v))
	}

	var flags audio.Flags
	if got < need {
		flags |= audio.FlagEOF
	}
	return got * sampleWidth, flags
}

func (s *source) Seek(ms uint32) error {
	frame := audio.MillisToFrame(ms, s.rate)
	if err := s.dec.SetPosition(int64(frame)); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (s *source) Rewind() error {
	return s.Seek(0)
}

func (s *source) Close() {
	s.dec = nil
}

type Decoder struct {
	// newEngine replaces oggvorbis, for tests.
	newEngine func(io.Reader) (oggReader, error)
}

func (d Decoder) engine(r io.Reader) (oggReader, error) {
	if d.newEngine != nil {
		return d.newEngine(r)
	}
	return oggvorbis.NewReader(r)
}

func (Decoder) Info() audio.Info { return info }
func (Decoder) Init() error      { return nil }
func (Decoder) Quit()            {}

func (d Decoder) Open(s *audio.Session, ext string) (audio.State, error) {
	adapter := engineio.New(s.Stream())
	dec, err := d.engine(adapter.Reader())
	if err != nil {
		return nil, fmt.Errorf("vorbis: %w", adapter.Classify(err))
	}

	channels := dec.Channels()
	if channels < 1 {
		return nil, fmt.Errorf("vorbis: %w", ErrNoChannels)
	}

	// One float32 per output sample.
	if err := s.Reserve(len(s.Buffer())); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	src := &source{
		dec:      dec,
		rate:     dec.SampleRate(),
		channels: channels,
		values:   make([]float32, 0, len(s.Buffer())/sampleWidth),
	}

	s.SetActual(audio.Format{Format: audio.FormatF32Sys, Channels: channels, Rate: src.rate})
	if adapter.Seekable() {
		s.SetCanSeek()
	}

	var frames uint64
	if l := dec.Length(); l > 0 {
		frames = uint64(l)
	}
	s.SetDuration(audio.FramesToMillis(frames, src.rate))

	audio.Debugf("VORBIS: accepting data stream (%d Hz, %d ch)", src.rate, channels)
	return src, nil
}
