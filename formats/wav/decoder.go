// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"
	"github.com/ik5/sounddec/audio"
	"github.com/ik5/sounddec/internal/engineio"
	"github.com/ik5/sounddec/internal/intpcm"
)

const (
	formatPCM        = 1
	formatExtensible = 0xfffe
)

var info = audio.Info{
	Extensions:  []string{"WAV", "WAVE"},
	Description: "Microsoft WAVE PCM audio",
	Author:      "Ido Kanner",
	URL:         "https://github.com/go-audio/wav",
}

// openPCM returns a go-audio decoder positioned on the first sample of rs.
func openPCM(rs io.ReadSeeker) (*wav.Decoder, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}
	dec := wav.NewDecoder(rs)
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	return dec, nil
}

type Decoder struct{}

func (Decoder) Info() audio.Info { return info }
func (Decoder) Init() error      { return nil }
func (Decoder) Quit()            {}

func (Decoder) Open(s *audio.Session, ext string) (audio.State, error) {
	// go-audio needs io.ReadSeeker; a pipe is read into memory.
	adapter := engineio.New(s.Stream())
	rs, err := adapter.ReadSeeker(s.Reserve)
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	var pcmBytes int64

	probe := wav.NewDecoder(rs)
	if !probe.IsValidFile() {
		if adapter.Err() != nil {
			return nil, fmt.Errorf("wav: %w", adapter.Classify(ErrNotWavFile))
		}
		return nil, ErrNotWavFile
	}
	if probe.WavAudioFormat != formatPCM && probe.WavAudioFormat != formatExtensible {
		return nil, fmt.Errorf("wav: %w (format %#x)", ErrUnsupportedWavLayout, probe.WavAudioFormat)
	}

	layout := intpcm.Layout{
		Channels:  int(probe.NumChans),
		Rate:      int(probe.SampleRate),
		BitDepth:  int(probe.BitDepth),
		Unsigned8: true,
	}
	src, err := intpcm.New(func() (intpcm.Reader, error) {
		dec, err := openPCM(rs)
		if err != nil {
			return nil, err
		}
		pcmBytes = dec.PCMLen()
		return dec, nil
	}, layout)
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	s.SetActual(src.Format())
	// The container is always reachable from its start, in memory or on the stream.
	s.SetCanSeek()
	if frameBytes := int64(layout.Channels * layout.BitDepth / 8); pcmBytes > 0 && frameBytes > 0 {
		s.SetDuration(audio.FramesToMillis(uint64(pcmBytes/frameBytes), layout.Rate))
	}

	audio.Debugf("WAV: accepting data stream (%s, %d bit)", src.Format(), layout.BitDepth)
	return src, nil
}
