// SPDX-License-Identifier: EPL-2.0

package au

import (
	"fmt"

	"github.com/ik5/sounddec/audio"
)

var (
	// ErrShortHeader indicates the stream ended before a full header was read
	ErrShortHeader = fmt.Errorf("%w: no .au file (bad header)", audio.ErrBadFormat)

	// ErrNotAuFile indicates the magic number did not match and the extension gave no fallback
	ErrNotAuFile = fmt.Errorf("%w: not an .au file", audio.ErrBadFormat)

	// ErrUnsupportedEncoding indicates a known but unimplemented .au encoding
	ErrUnsupportedEncoding = fmt.Errorf("%w: .au", audio.ErrUnsupportedEncoding)
)
