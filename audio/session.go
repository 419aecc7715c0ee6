// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// Session is one decode of one stream.
//
// The caller supplies the output buffer and pulls with Read until FlagEOF or
// FlagError shows up in Flags. A Session is not safe for concurrent use.
type Session struct {
	src Stream
	buf []byte

	desired  Format
	actual   Format
	flags    Flags
	duration int64

	dec     Decoder
	state   State
	opening bool

	memLimit int // 0 means no limit
	memUsed  int
}

// NewSession attaches src and the caller's output buffer. Every Read fills at most len(buf) bytes.
func NewSession(src io.Reader, buf []byte) *Session {
	return &Session{
		src:      NewStream(src),
		buf:      buf,
		duration: UnknownDuration,
	}
}

// SetDesired records the format the caller would like. Decoders may ignore it.
func (s *Session) SetDesired(f Format) { s.desired = f }

func (s *Session) Desired() Format { return s.desired }
func (s *Session) Actual() Format  { return s.actual }
func (s *Session) Flags() Flags    { return s.flags }
func (s *Session) Stream() Stream  { return s.src }
func (s *Session) Buffer() []byte  { return s.buf }
func (s *Session) IsOpen() bool    { return s.state != nil }

// Duration is the total play time in milliseconds, or UnknownDuration.
func (s *Session) Duration() int64 { return s.duration }

// Decoder returns the decoder that opened the session, or nil.
func (s *Session) Decoder() Decoder { return s.dec }

// SetMemoryLimit caps the scratch memory decoders may take through Alloc. 0 removes the cap.
func (s *Session) SetMemoryLimit(n int) { s.memLimit = n }

// Reserve counts n bytes of decoder scratch memory against the session budget.
// The budget is returned when the session closes or its Open fails.
func (s *Session) Reserve(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative allocation %d", ErrOutOfMemory, n)
	}
	if s.memLimit > 0 && s.memUsed+n > s.memLimit {
		return fmt.Errorf("%w: %d bytes requested, %d of %d in use", ErrOutOfMemory, n, s.memUsed, s.memLimit)
	}
	s.memUsed += n
	return nil
}

// Alloc reserves n bytes and returns them.
func (s *Session) Alloc(n int) ([]byte, error) {
	if err := s.Reserve(n); err != nil {
		return nil, err
	}
	return make([]byte, n), nil
}

// MemoryUsed is the scratch memory currently reserved by the open decoder.
func (s *Session) MemoryUsed() int { return s.memUsed }

// SetActual records the negotiated format. It only has an effect while Open runs.
func (s *Session) SetActual(f Format) {
	if s.opening {
		s.actual = f
	}
}

// SetCanSeek marks the session as seekable. It only has an effect while Open runs.
func (s *Session) SetCanSeek() {
	if s.opening {
		s.flags |= FlagCanSeek
	}
}

// SetDuration records the total play time. It only has an effect while Open runs.
func (s *Session) SetDuration(ms int64) {
	if s.opening {
		s.duration = ms
	}
}

// Open lets d recognize the stream. On failure the session stays closed.
func (s *Session) Open(d Decoder, ext string) error {
	if s.state != nil {
		return ErrAlreadyOpen
	}
	if len(s.buf) == 0 {
		return ErrEmptyBuffer
	}

	s.reset()
	s.opening = true
	state, err := d.Open(s, ext)
	s.opening = false

	if err != nil {
		if state != nil {
			state.Close()
		}
		s.reset()
		Debugf("%s: rejected stream: %v", d.Info().Description, err)
		return err
	}

	s.dec = d
	s.state = state
	return nil
}

// Read decodes into Buffer and returns the number of bytes produced.
// The outcome of the call is in Flags; Read itself never fails.
func (s *Session) Read() int {
	s.flags &= FlagCanSeek
	if s.state == nil {
		s.flags |= FlagError
		return 0
	}

	n, f := s.state.Read(s.buf)
	s.flags |= f &^ FlagCanSeek
	return n
}

// Rewind restarts decoding from the beginning of the stream.
func (s *Session) Rewind() error {
	if err := s.canReposition(); err != nil {
		return err
	}

	var err error
	switch st := s.state.(type) {
	case Rewinder:
		err = st.Rewind()
	case Seeker:
		err = st.Seek(0)
	default:
		err = ErrNotSeekable
	}
	return s.repositioned(err)
}

// Seek moves decoding to ms milliseconds from the start.
func (s *Session) Seek(ms uint32) error {
	if err := s.canReposition(); err != nil {
		return err
	}

	st, ok := s.state.(Seeker)
	if !ok {
		return fmt.Errorf("%w: %w", ErrSeekFailed, ErrNotSeekable)
	}
	return s.repositioned(st.Seek(ms))
}

func (s *Session) canReposition() error {
	if s.state == nil {
		return fmt.Errorf("%w: %w", ErrSeekFailed, ErrNotOpen)
	}
	if !s.flags.Has(FlagCanSeek) {
		return fmt.Errorf("%w: %w", ErrSeekFailed, ErrNotSeekable)
	}
	return nil
}

func (s *Session) repositioned(err error) error {
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSeekFailed, err)
	}
	s.flags &= FlagCanSeek
	return nil
}

// Close releases the decoder state. It is safe to call on a session that never opened,
// whose Open failed, or that is already closed.
func (s *Session) Close() {
	if s.state != nil {
		s.state.Close()
	}
	s.reset()
}

func (s *Session) reset() {
	s.state = nil
	s.dec = nil
	s.actual = Format{}
	s.flags = FlagNone
	s.duration = UnknownDuration
	s.memUsed = 0
}
