// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"

	"github.com/ik5/sounddec/audio"
)

var (
	// ErrNoChannels indicates the identification header declares zero channels
	ErrNoChannels = fmt.Errorf("%w: stream declares no channels", audio.ErrBadFormat)
)
