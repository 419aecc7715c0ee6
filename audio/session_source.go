// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// SessionSource exposes an open Session as a float32 Source so it can feed a Resampler or MonoMixer.
type SessionSource struct {
	s       *Session
	format  Format
	pending []byte // decoded bytes not yet turned into samples
	scratch []byte
	eof     bool
}

// NewSessionSource wraps s, which must already be open.
func NewSessionSource(s *Session) (*SessionSource, error) {
	if !s.IsOpen() {
		return nil, ErrNotOpen
	}
	f := s.Actual()
	if f.Format.Bytes() == 0 || f.Channels < 1 || f.Rate < 1 {
		return nil, fmt.Errorf("%w: cannot convert %s", ErrBadFormat, f)
	}
	return &SessionSource{
		s:       s,
		format:  f,
		scratch: make([]byte, 0, len(s.Buffer())+f.Format.Bytes()),
	}, nil
}

func (ss *SessionSource) SampleRate() int { return ss.format.Rate }
func (ss *SessionSource) Channels() int   { return ss.format.Channels }
func (ss *SessionSource) BufSize() int    { return len(ss.s.Buffer()) / ss.format.Format.Bytes() }

// Close closes the underlying session.
func (ss *SessionSource) Close() error {
	ss.s.Close()
	return nil
}

// fill pulls one more buffer from the session, retrying while it reports EAGAIN without data.
func (ss *SessionSource) fill() error {
	for {
		got := ss.s.Read()
		flags := ss.s.Flags()

		if got > 0 {
			ss.pending = append(ss.scratch[:0], ss.pending...)
			ss.pending = append(ss.pending, ss.s.Buffer()[:got]...)
			ss.scratch = ss.pending
		}

		switch {
		case flags.Has(FlagError):
			return fmt.Errorf("%w: decoder reported an error", ErrIO)
		case flags.Has(FlagEOF):
			ss.eof = true
			return nil
		case got > 0:
			return nil
		case !flags.Has(FlagEAgain):
			return io.ErrNoProgress
		}
	}
}

func (ss *SessionSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if len(dst) < ss.format.Channels {
		return 0, ErrInvalidDstSize
	}

	// Hand out whole frames only, so downstream stages stay channel aligned.
	width := ss.format.Format.Bytes()
	frameSize := ss.format.FrameSize()
	for len(ss.pending) < frameSize && !ss.eof {
		if err := ss.fill(); err != nil {
			return 0, err
		}
	}

	n := min(len(ss.pending)/frameSize, len(dst)/ss.format.Channels) * ss.format.Channels
	for i := range n {
		dst[i] = ss.format.Format.Float32(ss.pending[i*width:])
	}
	ss.pending = ss.pending[n*width:]

	if n == 0 && ss.eof {
		return 0, io.EOF
	}
	return n, nil
}
