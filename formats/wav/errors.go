// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"

	"github.com/ik5/sounddec/audio"
)

var (
	ErrNotWavFile = fmt.Errorf("%w: not a WAV file", audio.ErrBadFormat)
	// ErrUnsupportedWavLayout is returned for WAV files whose samples are not integer PCM.
	ErrUnsupportedWavLayout = fmt.Errorf("%w: WAV data is not integer PCM", audio.ErrUnsupportedEncoding)
	ErrInvalidChannels      = errors.New("invalid channel count")
	ErrTooLarge             = errors.New("PCM data does not fit a RIFF chunk")
)
