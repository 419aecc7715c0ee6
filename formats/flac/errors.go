// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"

	"github.com/ik5/sounddec/audio"
)

var (
	// ErrInvalidStreamInfo indicates the STREAMINFO block has no channels or no sample rate
	ErrInvalidStreamInfo = fmt.Errorf("%w: invalid FLAC stream info", audio.ErrBadFormat)
)
