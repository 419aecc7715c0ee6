// SPDX-License-Identifier: EPL-2.0

package sounddec

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/ik5/sounddec/audio"
	"github.com/ik5/sounddec/formats/au"
	"github.com/ik5/sounddec/internal/audiotest"
)

func TestResampleToMono16_Rates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		srcRate  int
		channels int
		dstRate  int
	}{
		{"44.1kHz stereo to 8kHz", 44100, 2, 8000},
		{"48kHz stereo to 16kHz", 48000, 2, 16000},
		{"22.05kHz mono to 8kHz", 22050, 1, 8000},
		{"8kHz stereo to 16kHz", 8000, 2, 16000},
		{"16kHz mono unchanged", 16000, 1, 16000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// One second of input.
			src := audiotest.NewSineSource(tt.srcRate, tt.channels, tt.srcRate, 440)
			pcm16, rate, err := ResampleToMono16(src, tt.dstRate, 4096)
			if err != nil {
				t.Fatalf("ResampleToMono16() error = %v", err)
			}
			if rate != tt.dstRate {
				t.Errorf("rate = %d, want %d", rate, tt.dstRate)
			}

			tolerance := tt.dstRate / 100
			if len(pcm16) < tt.dstRate-tolerance || len(pcm16) > tt.dstRate+tolerance {
				t.Errorf("got %d samples, want %d (±%d)", len(pcm16), tt.dstRate, tolerance)
			}
		})
	}
}

func TestResampleToMono16_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   *audiotest.MockSource
		want  int16
		slack float64
	}{
		{"silence", audiotest.NewSilentSource(44100, 2, 44100), 0, 0},
		{"half scale", audiotest.NewConstantSource(16000, 1, 16000, 0.5), 16383, 2},
		{"opposite channels cancel", audiotest.NewMockSource(8000, 2, 8000, func(_, ch int) float32 {
			if ch == 0 {
				return 0.75
			}
			return -0.75
		}), 0, 1},
		{"clipped high", audiotest.NewConstantSource(8000, 1, 800, 2), 32767, 0},
		{"clipped low", audiotest.NewConstantSource(8000, 1, 800, -2), -32768, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pcm16, _, err := ResampleToMono16(tt.src, 8000, 1024)
			if err != nil {
				t.Fatalf("ResampleToMono16() error = %v", err)
			}
			if len(pcm16) == 0 {
				t.Fatal("no samples")
			}
			// Interpolation edges are left out.
			for i, v := range pcm16[4 : len(pcm16)-4] {
				if math.Abs(float64(v)-float64(tt.want)) > tt.slack {
					t.Fatalf("pcm16[%d] = %d, want %d", i+4, v, tt.want)
				}
			}
		})
	}
}

func TestResampleToMono16_EmptySource(t *testing.T) {
	t.Parallel()

	pcm16, rate, err := ResampleToMono16(audiotest.NewSilentSource(44100, 2, 0), 8000, 4096)
	if err != nil {
		t.Fatalf("ResampleToMono16() error = %v", err)
	}
	if rate != 8000 || len(pcm16) != 0 {
		t.Errorf("ResampleToMono16() = %d samples at %d Hz, want none at 8000", len(pcm16), rate)
	}
}

func TestResampleToMono16_InvalidBufferSize(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 1, 100)
	for _, size := range []int{0, -1} {
		if _, _, err := ResampleToMono16(src, 8000, size); !errors.Is(err, audio.ErrInvalidDstSize) {
			t.Errorf("ResampleToMono16(bufferSize %d) error = %v, want ErrInvalidDstSize", size, err)
		}
	}
}

func TestSessionToMono16(t *testing.T) {
	t.Parallel()

	// One second of 16 kHz stereo linear PCM at half scale.
	frames := 16000
	data := make([]byte, 0, frames*4)
	for range frames * 2 {
		data = append(data, 0x40, 0x00)
	}
	hdr := au.Header{
		Magic:      au.Magic,
		HeaderSize: au.HeaderSize,
		DataSize:   uint32(len(data)),
		Encoding:   au.EncodingLinear16,
		SampleRate: 16000,
		Channels:   2,
	}
	file := append(hdr.Bytes(), data...)

	s := audio.NewSession(bytes.NewReader(file), make([]byte, 4096))
	if err := s.Open(au.Decoder{}, "au"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	pcm16, rate, err := SessionToMono16(s, 8000, 1024)
	if err != nil {
		t.Fatalf("SessionToMono16() error = %v", err)
	}
	if rate != 8000 {
		t.Errorf("rate = %d, want 8000", rate)
	}
	if len(pcm16) < 7900 || len(pcm16) > 8100 {
		t.Errorf("got %d samples, want about 8000", len(pcm16))
	}
	for i, v := range pcm16[10 : len(pcm16)-10] {
		if math.Abs(float64(v)-16384) > 200 {
			t.Errorf("pcm16[%d] = %d, want about 16384", i+10, v)
			break
		}
	}
}

func TestSessionToMono16_NotOpen(t *testing.T) {
	t.Parallel()

	s := audio.NewSession(bytes.NewReader(nil), make([]byte, 64))
	if _, _, err := SessionToMono16(s, 8000, 1024); !errors.Is(err, audio.ErrNotOpen) {
		t.Errorf("SessionToMono16() error = %v, want ErrNotOpen", err)
	}
}

func BenchmarkResampleToMono16(b *testing.B) {
	b.ReportAllocs()

	for b.Loop() {
		src := audiotest.NewSineSource(44100, 2, 44100, 440)
		_, _, _ = ResampleToMono16(src, 8000, 4096)
	}
}

func BenchmarkResampleToMono16_Upsample(b *testing.B) {
	b.ReportAllocs()

	for b.Loop() {
		src := audiotest.NewSineSource(8000, 2, 8000, 440)
		_, _, _ = ResampleToMono16(src, 44100, 4096)
	}
}

func BenchmarkSessionToMono16(b *testing.B) {
	data := make([]byte, 16000*2)
	hdr := au.Header{Magic: au.Magic, DataSize: uint32(len(data)), Encoding: au.EncodingLinear16, SampleRate: 16000, Channels: 1}
	file := append(hdr.Bytes(), data...)

	b.ReportAllocs()
	for b.Loop() {
		s := audio.NewSession(bytes.NewReader(file), make([]byte, 4096))
		if err := s.Open(au.Decoder{}, "au"); err != nil {
			b.Fatal(err)
		}
		_, _, _ = SessionToMono16(s, 8000, 1024)
		s.Close()
	}
}
