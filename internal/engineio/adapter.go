// SPDX-License-Identifier: EPL-2.0

// Package engineio adapts an audio.Stream to the read/seek/tell callbacks an
// embedded bitstream engine expects.
package engineio

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/sounddec/audio"
)

var ErrInvalidWhence = errors.New("invalid whence")

// Adapter forwards an engine's I/O to a session stream and remembers the first
// read failure, so a rejected stream can be classified as an I/O problem rather
// than a format mismatch. Failed seeks are returned to the engine but not recorded:
// engines probe positions that a short stream does not have.
type Adapter struct {
	src      audio.Stream
	seekable bool
	err      error
}

func New(src audio.Stream) *Adapter {
	return &Adapter{
		src:      src,
		seekable: audio.CanSeek(src),
	}
}

// Seekable reports whether the stream accepted a probe seek when the adapter was built.
func (a *Adapter) Seekable() bool { return a.seekable }

// Err returns the first read error the source reported, not counting end of stream.
func (a *Adapter) Err() error { return a.err }

func (a *Adapter) record(err error) {
	if a.err == nil && err != nil && !errors.Is(err, io.EOF) {
		a.err = err
	}
}

// Read keeps reading until p is full or the source runs dry. Engines treat a short
// read as the end of the stream and never come back for the rest.
func (a *Adapter) Read(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		n, err := a.src.Read(p[total:])
		total += n
		if err != nil {
			a.record(err)
			if total == 0 {
				return 0, err
			}
			break
		}
		if n == 0 {
			break
		}
	}

	if total == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return total, nil
}

// Seek repositions relative to the start, the current position or the end.
func (a *Adapter) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart, io.SeekCurrent, io.SeekEnd:
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidWhence, whence)
	}

	pos, err := a.src.Seek(offset, whence)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	return pos, nil
}

// Tell returns the current stream position.
func (a *Adapter) Tell() (int64, error) {
	return a.Seek(0, io.SeekCurrent)
}

type readOnly struct{ a *Adapter }

func (r readOnly) Read(p []byte) (int, error) { return r.a.Read(p) }

// Reader returns the view to hand to an engine: an io.ReadSeeker whose offset 0 is
// the current stream position when the stream can seek, a plain io.Reader otherwise.
// Engines probe for io.Seeker and would otherwise fail on the first seek of a pipe.
func (a *Adapter) Reader() io.Reader {
	if a.seekable {
		if base, err := a.Tell(); err == nil {
			return &based{a: a, base: base}
		}
	}
	return readOnly{a: a}
}

// based presents a seekable stream with the position it had when the view was built as offset 0.
type based struct {
	a    *Adapter
	base int64
}

func (b *based) Read(p []byte) (int, error) { return b.a.Read(p) }

func (b *based) Seek(offset int64, whence int) (int64, error) {
	if whence == io.SeekStart {
		offset += b.base
	}
	pos, err := b.a.Seek(offset, whence)
	if err != nil {
		return 0, err
	}
	return pos - b.base, nil
}

// ReadSeeker returns a view whose offset 0 is the current stream position. Decoders
// that must seek around their container get the rest of an unseekable stream read
// into memory instead; reserve is charged with its size first.
func (a *Adapter) ReadSeeker(reserve func(n int) error) (io.ReadSeeker, error) {
	if a.seekable {
		base, err := a.Tell()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", audio.ErrIO, err)
		}
		return &based{a: a, base: base}, nil
	}

	data, err := io.ReadAll(readOnly{a: a})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}
	if err := reserve(len(data)); err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// Classify turns an engine's Open failure into ErrIO when the source misbehaved and
// ErrBadFormat otherwise.
func (a *Adapter) Classify(engineErr error) error {
	if a.err != nil {
		return fmt.Errorf("%w: %w", audio.ErrIO, a.err)
	}
	return fmt.Errorf("%w: stream not recognized: %w", audio.ErrBadFormat, engineErr)
}
