// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	"github.com/ik5/sounddec/audio"
	"github.com/ik5/sounddec/internal/engineio"
	"github.com/ik5/sounddec/internal/intpcm"
)

var info = audio.Info{
	Extensions:  []string{"AIFF", "AIF"},
	Description: "Audio Interchange File Format",
	Author:      "Ido Kanner",
	URL:         "https://github.com/go-audio/aiff",
}

// openPCM returns a go-audio decoder at the first sample of rs.
func openPCM(rs io.ReadSeeker) (intpcm.Reader, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}
	dec := aiff.NewDecoder(rs)
	dec.ReadInfo()
	return dec, nil
}

type Decoder struct{}

func (Decoder) Info() audio.Info { return info }
func (Decoder) Init() error      { return nil }
func (Decoder) Quit()            {}

func (Decoder) Open(s *audio.Session, ext string) (audio.State, error) {
	// go-audio requires io.ReadSeeker; a pipe is read into memory.
	adapter := engineio.New(s.Stream())
	rs, err := adapter.ReadSeeker(s.Reserve)
	if err != nil {
		return nil, fmt.Errorf("aiff: %w", err)
	}

	probe := aiff.NewDecoder(rs)
	if !probe.IsValidFile() {
		if adapter.Err() != nil {
			return nil, fmt.Errorf("aiff: %w", adapter.Classify(ErrNotAiffFile))
		}
		return nil, ErrNotAiffFile
	}
	probe.ReadInfo()
	format := probe.Format()
	if format == nil {
		return nil, ErrUnsupportedAiffLayout
	}

	layout := intpcm.Layout{
		Channels: format.NumChannels,
		Rate:     format.SampleRate,
		BitDepth: int(probe.BitDepth),
	}
	src, err := intpcm.New(func() (intpcm.Reader, error) { return openPCM(rs) }, layout)
	if err != nil {
		return nil, fmt.Errorf("aiff: %w", err)
	}

	s.SetActual(src.Format())
	s.SetCanSeek()
	s.SetDuration(audio.FramesToMillis(uint64(probe.NumSampleFrames), layout.Rate))

	audio.Debugf("AIFF: accepting data stream (%s, %d bit)", src.Format(), layout.BitDepth)
	return src, nil
}
