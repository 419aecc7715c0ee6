// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/sounddec/audio"
	"github.com/ik5/sounddec/internal/engineio"
	"github.com/ik5/sounddec/utils"
)

const (
	// go-mp3 always produces interleaved stereo 16-bit little-endian PCM.
	engineChannels  = 2
	engineFrameSize = engineChannels * 2

	// Output samples are float32.
	sampleWidth = 4
)

var info = audio.Info{
	// Layer I and II streams decode too.
	Extensions:  []string{"MP3", "MP2", "MP1"},
	Description: "MPEG-1 Audio Layer I-III",
	Author:      "Ryan C. Gordon <icculus@icculus.org>",
	URL:         "https://icculus.org/SDL_sound/",
}

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	Seek(offset int64, whence int) (int64, error)
	SampleRate() int
	// Length is the decoded size in bytes, or a negative value when unknown.
	Length() int64
}

type source struct {
	dec      mp3Reader
	rate     int
	channels int
	pcm      []byte // engine output, int16 little-endian
}

// Read decodes as many whole frames as fit in dst. Fewer frames than asked for means
// the stream ended; decode errors and I/O errors are not told apart here.
func (s *source) Read(dst []byte) (int, audio.Flags) {
	want := len(dst) / s.channels / sampleWidth
	need := min(want*engineFrameSize, len(s.pcm))
	want = need / engineFrameSize

	n, _ := io.ReadFull(s.dec, s.pcm[:need])
	got := n / engineFrameSize

	samples := got * s.channels
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.pcm[2*i:]))
		binary.NativeEndian.PutUint32(dst[sampleWidth*i:], math.Float32bits(utils.Int16ToFloat32(v)))
	}

	var flags audio.Flags
	if got < want {
		flags |= audio.FlagEOF
	}
	return samples * sampleWidth, flags
}

// Seek moves to the frame at ms; frame = trunc(rate/1000 * ms).
func (s *source) Seek(ms uint32) error {
	frame := audio.MillisToFrame(ms, s.rate)
	if _, err := s.dec.Seek(int64(frame)*engineFrameSize, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (s *source) Rewind() error {
	return s.Seek(0)
}

func (s *source) Close() {
	s.dec = nil
	s.pcm = nil
}

type Decoder struct {
	// newEngine replaces go-mp3, for tests.
	newEngine func(io.Reader) (mp3Reader, error)
}

func (d Decoder) engine(r io.Reader) (mp3Reader, error) {
	if d.newEngine != nil {
		return d.newEngine(r)
	}
	return gomp3.NewDecoder(r)
}

func (Decoder) Info() audio.Info { return info }
func (Decoder) Init() error      { return nil }
func (Decoder) Quit()            {}

func (d Decoder) Open(s *audio.Session, ext string) (audio.State, error) {
	// One int16 engine sample per float32 output sample: half the output buffer.
	pcm, err := s.Alloc(len(s.Buffer()) / 2)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	adapter := engineio.New(s.Stream())
	dec, err := d.engine(adapter.Reader())
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", adapter.Classify(err))
	}

	src := &source{
		dec:      dec,
		rate:     dec.SampleRate(),
		channels: engineChannels,
		pcm:      pcm,
	}

	s.SetActual(audio.Format{Format: audio.FormatF32Sys, Channels: src.channels, Rate: src.rate})
	if adapter.Seekable() {
		s.SetCanSeek()
	}

	var frames uint64
	if l := dec.Length(); l > 0 {
		frames = uint64(l / engineFrameSize)
	}
	s.SetDuration(audio.FramesToMillis(frames, src.rate))

	audio.Debugf("MP3: accepting data stream (%d Hz)", src.rate)
	return src, nil
}
