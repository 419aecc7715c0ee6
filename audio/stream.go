// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
)

// Stream is the byte source a Session decodes from.
//
// Read follows io.Reader: 0 bytes with io.EOF is end of data, 0 bytes with any other
// error is an I/O failure. Seek may fail at runtime for sources that cannot reposition.
type Stream interface {
	io.Reader
	io.Seeker
}

type unseekable struct {
	io.Reader
}

func (unseekable) Seek(int64, int) (int64, error) {
	return 0, ErrNotSeekable
}

// NewStream returns r as a Stream, giving plain readers a Seek that always fails.
func NewStream(r io.Reader) Stream {
	if st, ok := r.(Stream); ok {
		return st
	}
	return unseekable{Reader: r}
}

// CanSeek probes st with a no-op seek.
func CanSeek(st Stream) bool {
	_, err := st.Seek(0, io.SeekCurrent)
	return err == nil
}

// Tell returns the current position of st.
func Tell(st Stream) (int64, error) {
	return st.Seek(0, io.SeekCurrent)
}

// Discard reads and drops up to n bytes from r and returns how many were dropped.
// A short source is not an error here; callers that care compare the result with n.
func Discard(r io.Reader, n int64) int64 {
	if n <= 0 {
		return 0
	}
	dropped, _ := io.CopyN(io.Discard, r, n)
	return dropped
}
