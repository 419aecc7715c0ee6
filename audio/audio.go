// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"strings"
)

// Info describes a decoder module.
type Info struct {
	// Extensions this decoder claims, matched case-insensitively.
	Extensions  []string
	Description string
	Author      string
	URL         string
}

// Handles reports whether ext (with or without a leading dot) is one of i.Extensions.
func (i Info) Handles(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return false
	}
	for _, e := range i.Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// Decoder is a codec module. One value serves any number of sessions.
type Decoder interface {
	Info() Info

	// Init runs once before the decoder is registered. A failing decoder is not registered.
	Init() error
	// Quit releases whatever Init set up.
	Quit()

	// Open recognizes the stream attached to s and starts decoding it. ext is the
	// caller's extension hint and may be empty.
	//
	// On success Open has set the actual format (and FlagCanSeek when the returned
	// State supports repositioning) and returns the decoder-private State.
	// On failure Open has released everything it allocated and returns an error
	// wrapping ErrOutOfMemory, ErrBadFormat or ErrIO.
	Open(s *Session, ext string) (State, error)
}

// State is the decoder-private state of one open session.
type State interface {
	// Read fills dst with decoded bytes in the session's actual format and returns
	// how many bytes were produced together with the flags describing this call.
	Read(dst []byte) (int, Flags)
	// Close releases the state. It is called exactly once.
	Close()
}

// Rewinder is implemented by states that can restart from the beginning.
type Rewinder interface {
	Rewind() error
}

// Seeker is implemented by states that can reposition to a timestamp in milliseconds.
type Seeker interface {
	Seek(ms uint32) error
}

// Source is a stream of interleaved float32 samples in [-1,1].
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples.
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}
