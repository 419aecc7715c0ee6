// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF (Audio Interchange File Format) files.
//
// Parsing is done by github.com/go-audio/aiff. AIFF stores big-endian integer
// PCM; 16-bit files are delivered as native-order int16 and 8, 24 and 32-bit
// files as native-order float32 in [-1, 1].
//
//	s := audio.NewSession(file, make([]byte, 16384))
//	if err := s.Open(aiff.Decoder{}, "aif"); err != nil {
//	    // errors.Is(err, aiff.ErrNotAiffFile)
//	}
//
// Like WAV, the container is walked with seeks. A stream that cannot seek is
// read into memory first and counted against the session memory limit.
//
// Compressed AIFF-C is not handled.
package aiff
