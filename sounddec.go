// SPDX-License-Identifier: EPL-2.0

package sounddec

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/sounddec/audio"
	"github.com/ik5/sounddec/formats/aiff"
	"github.com/ik5/sounddec/formats/au"
	"github.com/ik5/sounddec/formats/flac"
	"github.com/ik5/sounddec/formats/mp3"
	"github.com/ik5/sounddec/formats/vorbis"
	"github.com/ik5/sounddec/formats/wav"
)

// DefaultBufferSize is the session output buffer used by OpenStream when none is given.
const DefaultBufferSize = 16384

// Decoders returns the built-in decoders in the order Registry.Open tries them.
func Decoders() []audio.Decoder {
	return []audio.Decoder{
		au.Decoder{},
		wav.Decoder{},
		aiff.Decoder{},
		flac.Decoder{},
		vorbis.Decoder{},
		// MPEG audio has no magic of its own and would claim almost anything.
		mp3.Decoder{},
	}
}

// NewRegistry returns a registry holding every built-in decoder.
func NewRegistry() (*audio.Registry, error) {
	reg := audio.NewRegistry()
	for _, d := range Decoders() {
		if err := reg.Register(d); err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}
	return reg, nil
}

// OpenStream opens r with the first decoder of reg that accepts it. ext is a hint and
// may be empty; bufSize <= 0 selects DefaultBufferSize.
func OpenStream(reg *audio.Registry, r io.Reader, ext string, bufSize int) (*audio.Session, error) {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	s := audio.NewSession(r, make([]byte, bufSize))
	if err := reg.Open(s, ext); err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return s, nil
}

// DecodeAll reads s until the decoder reports the end of the stream and returns every
// byte it produced, in the session's actual format.
func DecodeAll(s *audio.Session) ([]byte, error) {
	if !s.IsOpen() {
		return nil, audio.ErrNotOpen
	}

	var out []byte
	for {
		n := s.Read()
		out = append(out, s.Buffer()[:n]...)

		flags := s.Flags()
		switch {
		case flags.Has(audio.FlagError):
			return out, fmt.Errorf("%w: decoder stopped after %d bytes", audio.ErrIO, len(out))
		case flags.Has(audio.FlagEOF):
			return out, nil
		case n == 0 && !flags.Has(audio.FlagEAgain):
			return out, fmt.Errorf("%w", io.ErrNoProgress)
		}
	}
}

// IsFormatError reports whether err means no decoder understood the data, as opposed
// to an I/O or memory failure.
func IsFormatError(err error) bool {
	return errors.Is(err, audio.ErrBadFormat) && !errors.Is(err, audio.ErrIO) && !errors.Is(err, audio.ErrOutOfMemory)
}
