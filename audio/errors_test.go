// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		kind error
	}{
		{ErrUnsupportedEncoding, ErrBadFormat},
		{ErrUnsupportedBitDepth, ErrBadFormat},
		{fmt.Errorf("mp3: %w", ErrUnsupportedEncoding), ErrBadFormat},
	}
	for _, tt := range tests {
		if !errors.Is(tt.err, tt.kind) {
			t.Errorf("%v does not wrap %v", tt.err, tt.kind)
		}
	}

	kinds := []error{ErrOutOfMemory, ErrBadFormat, ErrIO}
	for i, a := range kinds {
		for j, b := range kinds {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v wraps %v", a, b)
			}
		}
	}
}

func TestErrInvalidDstSize_Wrapping(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("resample: %w", ErrInvalidDstSize)
	if !errors.Is(wrapped, ErrInvalidDstSize) {
		t.Error("errors.Is() failed to match wrapped ErrInvalidDstSize")
	}
	if ErrInvalidDstSize.Error() != "dst size must be multiple of channels" {
		t.Errorf("ErrInvalidDstSize.Error() = %q", ErrInvalidDstSize.Error())
	}
}
