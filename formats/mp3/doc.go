// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG audio through github.com/hajimehoshi/go-mp3.
//
// The engine always produces interleaved stereo, so sessions opened by this
// decoder report two channels of native-order float32 at the stream's rate.
// Mono streams come out with both channels equal.
//
//	s := audio.NewSession(file, make([]byte, 16384))
//	if err := s.Open(mp3.Decoder{}, "mp3"); err != nil {
//	    // errors.Is(err, audio.ErrBadFormat) when no frame sync was found
//	}
//
// # Duration and seeking
//
// On a seekable stream the engine scans the frame headers up front. That gives
// the total length, so the session reports a duration and CANSEEK. Seek
// converts milliseconds to a frame index and positions the engine on the
// frame holding it.
//
// A pipe can still be decoded front to back, but it has an unknown duration
// and no seeking.
//
// The engine output buffer is allocated through the session, so it counts
// against the session memory limit.
package mp3
