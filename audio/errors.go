// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

// Error kinds a decoder's Open may report. Detail errors wrap exactly one of these.
var (
	ErrOutOfMemory = errors.New("out of memory")
	ErrBadFormat   = errors.New("bad format")
	ErrIO          = errors.New("i/o error")
)

var (
	ErrUnsupportedEncoding = fmt.Errorf("%w: unsupported encoding", ErrBadFormat)
	ErrUnsupportedBitDepth = fmt.Errorf("%w: unsupported bit depth", ErrBadFormat)

	ErrSeekFailed  = errors.New("seek failed")
	ErrNotSeekable = errors.New("stream is not seekable")
	ErrNotOpen     = errors.New("session is not open")
	ErrAlreadyOpen = errors.New("session is already open")
	ErrNoDecoder   = errors.New("no decoder accepted the stream")
	ErrEmptyBuffer = errors.New("session buffer is empty")

	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
)
