// SPDX-License-Identifier: EPL-2.0

package au

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/sounddec/audio"
)

// unbounded is the remaining-bytes value for streams that end only when the source does.
const unbounded = uint32(UnknownSize)

// Headerless files with a recognized extension are taken as raw mu-law at this rate, mono.
const (
	fallbackRate     = 8000
	fallbackChannels = 1
)

var info = audio.Info{
	// ".snd" files carry the same magic, but the name clashes with other formats.
	Extensions:  []string{"AU"},
	Description: "Sun/NeXT audio file format",
	Author:      "Mattias Engdegård <f91-men@nada.kth.se>",
	URL:         "https://icculus.org/SDL_sound/",
}

type source struct {
	src       audio.Stream
	encoding  Encoding
	remaining uint32
}

// Read issues exactly one source read. Mu-law bytes land in the second half of dst
// and are expanded into the first half, two output bytes per input byte.
func (s *source) Read(dst []byte) (int, audio.Flags) {
	raw := dst
	if s.encoding == EncodingULaw8 {
		half := len(dst) / 2
		raw = dst[half : half*2]
	}
	if s.remaining != unbounded && uint64(len(raw)) > uint64(s.remaining) {
		raw = raw[:s.remaining]
	}
	if len(raw) == 0 {
		return 0, audio.FlagEOF
	}

	n, err := s.src.Read(raw)
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, audio.FlagError
		}
		return 0, audio.FlagEOF
	}

	var flags audio.Flags
	if s.remaining != unbounded {
		s.remaining -= uint32(n)
	}
	if n < len(raw) {
		flags |= audio.FlagEAgain
	}

	if s.encoding != EncodingULaw8 {
		return n, flags
	}
	for i, code := range raw[:n] {
		binary.NativeEndian.PutUint16(dst[2*i:], uint16(ulawTable[code]))
	}
	return n * 2, flags
}

func (s *source) Close() {}

type Decoder struct{}

func (Decoder) Info() audio.Info { return info }
func (Decoder) Init() error      { return nil }
func (Decoder) Quit()            {}

func (Decoder) Open(s *audio.Session, ext string) (audio.State, error) {
	hdrBuf, err := s.Alloc(HeaderSize)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	st := s.Stream()
	if _, err := io.ReadFull(st, hdrBuf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrShortHeader
		}
		return nil, fmt.Errorf("%w: reading .au header: %w", audio.ErrIO, err)
	}
	hdr, err := ParseHeader(hdrBuf)
	if err != nil {
		return nil, err
	}

	dec := &source{src: st}
	format := audio.Format{}

	switch {
	case hdr.Valid():
		sf, ok := hdr.Encoding.SampleFormat()
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, hdr.Encoding)
		}
		dec.encoding = hdr.Encoding
		dec.remaining = hdr.DataSize
		format = audio.Format{Format: sf, Channels: int(hdr.Channels), Rate: int(hdr.SampleRate)}

		// Skip the rest of the header by reading; the input may not seek.
		if hdr.HeaderSize > HeaderSize {
			audio.Discard(st, int64(hdr.HeaderSize-HeaderSize))
		}

	case info.Handles(ext):
		audio.Debugf("AU: invalid header, assuming raw 8kHz mu-law")
		// If this fails the first HeaderSize samples are lost.
		_, _ = st.Seek(-HeaderSize, io.SeekCurrent)
		dec.encoding = EncodingULaw8
		dec.remaining = unbounded
		format = audio.Format{Format: audio.FormatS16Sys, Channels: fallbackChannels, Rate: fallbackRate}

	default:
		return nil, ErrNotAuFile
	}

	s.SetActual(format)
	if dec.remaining != unbounded && format.Channels > 0 {
		frameBytes := uint64(dec.encoding.bytesPerSample() * format.Channels)
		s.SetDuration(audio.FramesToMillis(uint64(dec.remaining)/frameBytes, format.Rate))
	}

	audio.Debugf("AU: accepting data stream (%s, %s)", dec.encoding, format)
	return dec, nil
}
