// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes RIFF WAVE files.
//
// Decoding goes through github.com/go-audio/wav. Integer PCM of 8, 16, 24 and
// 32 bits is accepted, in plain or extensible fmt chunks:
//   - 16-bit samples are delivered as native-order int16
//   - every other depth is normalized to native-order float32
//
// # Decoding
//
//	s := audio.NewSession(file, make([]byte, 16384))
//	if err := s.Open(wav.Decoder{}, "wav"); err != nil {
//	    // errors.Is(err, audio.ErrBadFormat) for anything that is not PCM WAV
//	}
//	defer s.Close()
//
// The container has to be walked with seeks, so a stream that cannot seek is
// read into memory and charged to the session memory budget. Sessions opened
// by this decoder can always seek.
//
// # Writing
//
// WriteWAV16 writes a complete 16-bit PCM file:
//
//	err := wav.WriteWAV16(out, 8000, 1, samples)
//
// # Errors
//
//   - ErrNotWavFile: the input has no RIFF/WAVE header
//   - ErrUnsupportedWavLayout: the fmt chunk is not integer PCM
//   - ErrInvalidChannels: WriteWAV16 got a bad channel count
package wav
