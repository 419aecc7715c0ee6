// SPDX-License-Identifier: EPL-2.0

package sounddec

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/sounddec/audio"
	"github.com/ik5/sounddec/utils"
)

// ResampleToMono16 resamples src to targetRate, folds it to mono and collects the whole
// stream as 16-bit PCM.
//
// The pipeline is src -> Resampler (cubic) -> MonoMixer (average) -> Float32ToInt16.
// bufferSize is the number of float32 values pulled per read.
//
// Example:
//
//	s, _ := sounddec.OpenStream(reg, file, "au", 0)
//	src, _ := audio.NewSessionSource(s)
//	pcm16, rate, err := sounddec.ResampleToMono16(src, 8000, 4096)
func ResampleToMono16(src audio.Source, targetRate int, bufferSize int) ([]int16, int, error) {
	if bufferSize < 1 {
		return nil, targetRate, audio.ErrInvalidDstSize
	}

	resampler := audio.NewResampler(src, targetRate)
	mono := audio.NewMonoMixer(resampler)

	// Starts at about two seconds and grows by doubling.
	pcm16 := make([]int16, 0, targetRate*2)
	buf := make([]float32, bufferSize)

	for {
		n, err := mono.ReadSamples(buf)
		for _, x := range buf[:n] {
			pcm16 = append(pcm16, utils.Float32ToInt16(x))
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, targetRate, fmt.Errorf("%w", err)
		}
	}

	return pcm16, targetRate, nil
}

// SessionToMono16 is ResampleToMono16 over an open session. The session is left open.
func SessionToMono16(s *audio.Session, targetRate int, bufferSize int) ([]int16, int, error) {
	src, err := audio.NewSessionSource(s)
	if err != nil {
		return nil, targetRate, fmt.Errorf("%w", err)
	}
	return ResampleToMono16(src, targetRate, bufferSize)
}
