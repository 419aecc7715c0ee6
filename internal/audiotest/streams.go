// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"io"
)

// ErrInjected is what FailingReader returns once its data is used up.
var ErrInjected = errors.New("injected read failure")

// ChunkReader returns at most Chunk bytes per Read, like a pipe or socket would.
type ChunkReader struct {
	R     io.Reader
	Chunk int
}

func (c *ChunkReader) Read(p []byte) (int, error) {
	if len(p) > c.Chunk {
		p = p[:c.Chunk]
	}
	return c.R.Read(p)
}

// FailingReader serves Data and then fails every Read with Err (ErrInjected when nil).
type FailingReader struct {
	Data []byte
	Err  error
	off  int
}

func (f *FailingReader) Read(p []byte) (int, error) {
	if f.off < len(f.Data) {
		n := copy(p, f.Data[f.off:])
		f.off += n
		return n, nil
	}
	if f.Err != nil {
		return 0, f.Err
	}
	return 0, ErrInjected
}

// NoSeek hides any Seek method of the wrapped reader.
type NoSeek struct {
	R io.Reader
}

func (n NoSeek) Read(p []byte) (int, error) { return n.R.Read(p) }

// SeekFailer is seekable in type but rejects every Seek.
type SeekFailer struct {
	R io.Reader
}

func (s SeekFailer) Read(p []byte) (int, error) { return s.R.Read(p) }

func (SeekFailer) Seek(int64, int) (int64, error) {
	return 0, errors.New("seek rejected")
}
