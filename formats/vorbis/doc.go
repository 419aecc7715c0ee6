// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis through github.com/jfreymuth/oggvorbis.
//
// Samples are delivered as interleaved native-order float32 with the channel
// count and rate of the first logical stream.
//
//	s := audio.NewSession(file, make([]byte, 16384))
//	if err := s.Open(vorbis.Decoder{}, "ogg"); err != nil {
//	    // errors.Is(err, audio.ErrBadFormat) for anything that is not Vorbis
//	}
//
// Seeking and a known duration need a seekable stream; on a pipe the session
// decodes front to back with an unknown duration.
package vorbis
