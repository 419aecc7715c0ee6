// SPDX-License-Identifier: EPL-2.0

// Package sounddec wires the built-in decoders into a ready to use registry and
// provides whole-stream helpers on top of it.
//
// The building blocks live in sub packages:
//   - audio: sessions, the decoder plugin contract, the registry and the
//     float32 Source pipeline (Resampler, MonoMixer)
//   - formats/au: Sun/NeXT .au, with a raw mu-law fallback for headerless files
//   - formats/mp3, formats/vorbis, formats/flac: frame based codecs with seeking
//   - formats/wav, formats/aiff: uncompressed PCM containers
//
// # Quick Start
//
//	reg, _ := sounddec.NewRegistry()
//	f, _ := os.Open("voice.au")
//	s, err := sounddec.OpenStream(reg, f, "au", 0)
//	if err != nil {
//	    // errors.Is(err, audio.ErrBadFormat), audio.ErrIO, audio.ErrOutOfMemory
//	}
//	defer s.Close()
//
//	for {
//	    n := s.Read()
//	    consume(s.Buffer()[:n], s.Actual())
//	    if s.Flags().Has(audio.FlagEOF) || s.Flags().Has(audio.FlagError) {
//	        break
//	    }
//	}
//
// To get telephony style output use SessionToMono16 and write it with
// wav.WriteWAV16.
package sounddec
