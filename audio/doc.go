// SPDX-License-Identifier: EPL-2.0

// Package audio defines the decoder plugin interface and the session that
// drives it, plus the float32 processing primitives used downstream.
//
// # Decoders
//
// A Decoder recognizes one container or codec. The registry initializes each
// decoder once and hands a Session to Open, which either accepts the stream
// and returns a State or rejects it with an error wrapping ErrBadFormat,
// ErrIO or ErrOutOfMemory:
//
//	type Decoder interface {
//	    Info() Info
//	    Init() error
//	    Quit()
//	    Open(s *Session, ext string) (State, error)
//	}
//
// During Open a decoder reports what it found through the session setters:
//   - SetActual: the sample format, channel count and rate it will produce
//   - SetCanSeek: the stream supports Seek and Rewind
//   - SetDuration: the total length in milliseconds, when it is known
//
// Setters called outside Open are ignored.
//
// # Sessions
//
// A Session owns the decode buffer. Each Read fills the buffer with whole
// frames and leaves the outcome in Flags:
//
//	s := audio.NewSession(file, make([]byte, 16384))
//	if err := registry.Open(s, "au"); err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	for {
//	    n := s.Read()
//	    consume(s.Buffer()[:n])
//	    if s.Flags().Has(audio.FlagEOF) || s.Flags().Has(audio.FlagError) {
//	        break
//	    }
//	}
//
// FlagEAgain means the source had nothing ready; the caller may Read again.
//
// Registry.Open tries the decoder registered for the extension hint first and
// then every other decoder in registration order, rewinding the stream
// between attempts. A stream that cannot seek gets a single attempt.
//
// # Durations
//
// FramesToMillis and MillisToFrame convert between frame counts and
// milliseconds without overflowing on long streams. UnknownDuration is -1.
//
// # Processing
//
// NewSessionSource turns an open session into a Source of float32 samples in
// [-1, 1]. Resampler changes the rate with cubic interpolation and MonoMixer
// averages channels down to one:
//
//	src, _ := audio.NewSessionSource(s)
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 8000))
//	n, err := mono.ReadSamples(buf)
//
// Sources return io.EOF once the stream is exhausted.
//
// # Logging
//
// Decoders write diagnostics through Debugf. Nothing is printed until a logger
// is installed with SetLogger.
package audio
