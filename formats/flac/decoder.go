// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ik5/sounddec/audio"
	"github.com/ik5/sounddec/internal/engineio"
	"github.com/mewkiz/flac"
)

const sampleWidth = 4

var info = audio.Info{
	Extensions:  []string{"FLAC", "FLA"},
	Description: "Free Lossless Audio Codec",
	Author:      "Ido Kanner",
	URL:         "https://github.com/mewkiz/flac",
}

// streamInfo is what the engine reports once the metadata blocks are parsed.
type streamInfo struct {
	rate          int
	channels      int
	bitsPerSample int
	frames        uint64 // 0 when unknown
}

// flacReader is an interface for flac.Stream to allow testing
type flacReader interface {
	Info() streamInfo
	// Next decodes one frame and returns its samples per channel.
	Next() ([][]int32, error)
	// Seek moves to the frame holding sample frame n and returns the first frame number
	// of that block.
	Seek(n uint64) (uint64, error)
	Close() error
}

type flacStream struct {
	st *flac.Stream
}

func (e flacStream) Info() streamInfo {
	return streamInfo{
		rate:          int(e.st.Info.SampleRate),
		channels:      int(e.st.Info.NChannels),
		bitsPerSample: int(e.st.Info.BitsPerSample),
		frames:        e.st.Info.NSamples,
	}
}

func (e flacStream) Next() ([][]int32, error) {
	f, err := e.st.ParseNext()
	if err != nil {
		return nil, err
	}
	out := make([][]int32, len(f.Subframes))
	for i, sub := range f.Subframes {
		out[i] = sub.Samples
	}
	return out, nil
}

func (e flacStream) Seek(n uint64) (uint64, error) { return e.st.Seek(n) }
func (e flacStream) Close() error                  { return e.st.Close() }

func newEngine(r io.Reader, seekable bool) (flacReader, error) {
	if rs, ok := r.(io.ReadSeeker); ok && seekable {
		st, err := flac.NewSeek(rs)
		if err != nil {
			return nil, err
		}
		return flacStream{st: st}, nil
	}
	st, err := flac.New(r)
	if err != nil {
		return nil, err
	}
	return flacStream{st: st}, nil
}

type source struct {
	dec      flacReader
	info     streamInfo
	scale    float32
	block    [][]int32 // current decoded block, per channel
	blockPos int
	skip     uint64 // frames still to drop after a seek
	done     bool
}

// nextBlock loads the next decoded block; false at end of stream or on a decode error.
func (s *source) nextBlock() bool {
	if s.done {
		return false
	}
	block, err := s.dec.Next()
	if err != nil || len(block) < s.info.channels {
		if err != nil && !errors.Is(err, io.EOF) {
			audio.Debugf("FLAC: decode stopped: %v", err)
		}
		s.done = true
		return false
	}
	s.block, s.blockPos = block, 0
	return true
}

func (s *source) blockLen() int {
	if len(s.block) == 0 {
		return 0
	}
	return len(s.block[0])
}

func (s *source) Read(dst []byte) (int, audio.Flags) {
	want := len(dst) / (s.info.channels * sampleWidth)
	got := 0

	for got < want {
		if s.blockPos >= s.blockLen() {
			if !s.nextBlock() {
				break
			}
		}
		if s.skip > 0 {
			drop := min(s.skip, uint64(s.blockLen()-s.blockPos))
			s.blockPos += int(drop)
			s.skip -= drop
			continue
		}

		n := min(want-got, s.blockLen()-s.blockPos)
		for f := range n {
			for c := range s.info.channels {
				v := float32(s.block[c][s.blockPos+f]) * s.scale
				off := ((got+f)*s.info.channels + c) * sampleWidth
				binary.NativeEndian.PutUint32(dst[off:], math.Float32bits(v))
			}
		}
		got += n
		s.blockPos += n
	}

	var flags audio.Flags
	if got < want {
		flags |= audio.FlagEOF
	}
	return got * s.info.channels * sampleWidth, flags
}

func (s *source) Seek(ms uint32) error {
	target := audio.MillisToFrame(ms, s.info.rate)
	start, err := s.dec.Seek(target)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	s.block, s.blockPos, s.done = nil, 0, false
	if start < target {
		s.skip = target - start
	} else {
		s.skip = 0
	}
	return nil
}

func (s *source) Rewind() error {
	return s.Seek(0)
}

func (s *source) Close() {
	if s.dec != nil {
		_ = s.dec.Close()
		s.dec = nil
	}
}

type Decoder struct {
	// newEngine replaces mewkiz/flac, for tests.
	newEngine func(r io.Reader, seekable bool) (flacReader, error)
}

func (d Decoder) engine(r io.Reader, seekable bool) (flacReader, error) {
	if d.newEngine != nil {
		return d.newEngine(r, seekable)
	}
	return newEngine(r, seekable)
}

func (Decoder) Info() audio.Info { return info }
func (Decoder) Init() error      { return nil }
func (Decoder) Quit()            {}

func (d Decoder) Open(s *audio.Session, ext string) (audio.State, error) {
	adapter := engineio.New(s.Stream())
	dec, err := d.engine(adapter.Reader(), adapter.Seekable())
	if err != nil {
		return nil, fmt.Errorf("flac: %w", adapter.Classify(err))
	}

	si := dec.Info()
	if si.channels < 1 || si.rate < 1 {
		_ = dec.Close()
		return nil, fmt.Errorf("flac: %w", ErrInvalidStreamInfo)
	}
	if si.bitsPerSample < 4 || si.bitsPerSample > 32 {
		_ = dec.Close()
		return nil, fmt.Errorf("flac: %w: %d", audio.ErrUnsupportedBitDepth, si.bitsPerSample)
	}

	src := &source{
		dec:   dec,
		info:  si,
		scale: float32(1.0 / float64(uint64(1)<<(si.bitsPerSample-1))),
	}

	s.SetActual(audio.Format{Format: audio.FormatF32Sys, Channels: si.channels, Rate: si.rate})
	if adapter.Seekable() {
		s.SetCanSeek()
	}
	s.SetDuration(audio.FramesToMillis(si.frames, si.rate))

	audio.Debugf("FLAC: accepting data stream (%d Hz, %d ch, %d bit)", si.rate, si.channels, si.bitsPerSample)
	return src, nil
}
