// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/ik5/sounddec/internal/audiotest"
)

func TestFramesToMillis(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		frames uint64
		rate   int
		want   int64
	}{
		{"mp3 example", 100000, 44100, 2267},
		{"one second", 8000, 8000, 1000},
		{"sub millisecond", 1, 44100, 0},
		{"zero frames", 0, 44100, UnknownDuration},
		{"zero rate", 100, 0, UnknownDuration},
		{"no overflow", 1 << 60, 48000, int64((uint64(1<<60)/48000)*1000 + ((uint64(1<<60)%48000)*1000)/48000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FramesToMillis(tt.frames, tt.rate); got != tt.want {
				t.Errorf("FramesToMillis(%d, %d) = %d, want %d", tt.frames, tt.rate, got, tt.want)
			}
		})
	}
}

func TestMillisToFrame(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ms   uint32
		rate int
		want uint64
	}{
		{1000, 44100, 44100},
		{0, 44100, 0},
		{1, 44100, 44},
		{1500, 8000, 12000},
		{360, 11025, 3968},
		{100, 22050, 2205},
		{10, 0, 0},
	}

	for _, tt := range tests {
		if got := MillisToFrame(tt.ms, tt.rate); got != tt.want {
			t.Errorf("MillisToFrame(%d, %d) = %d, want %d", tt.ms, tt.rate, got, tt.want)
		}
	}
}

func TestNewStream(t *testing.T) {
	t.Parallel()

	seekable := NewStream(bytes.NewReader([]byte("abcdef")))
	if !CanSeek(seekable) {
		t.Error("bytes.Reader reported unseekable")
	}
	if _, err := seekable.Seek(2, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	if pos, _ := Tell(seekable); pos != 2 {
		t.Errorf("Tell() = %d, want 2", pos)
	}

	plain := NewStream(audiotest.NoSeek{R: strings.NewReader("abc")})
	if CanSeek(plain) {
		t.Error("plain reader reported seekable")
	}
	if _, err := plain.Seek(0, io.SeekStart); !errors.Is(err, ErrNotSeekable) {
		t.Errorf("Seek() error = %v, want ErrNotSeekable", err)
	}
	if CanSeek(NewStream(audiotest.SeekFailer{R: strings.NewReader("abc")})) {
		t.Error("failing seeker reported seekable")
	}
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	r := strings.NewReader("0123456789")
	if got := Discard(r, 4); got != 4 {
		t.Errorf("Discard() = %d, want 4", got)
	}
	rest, _ := io.ReadAll(r)
	if string(rest) != "456789" {
		t.Errorf("remaining = %q", rest)
	}

	if got := Discard(strings.NewReader("ab"), 10); got != 2 {
		t.Errorf("Discard() short source = %d, want 2", got)
	}
	if got := Discard(r, -3); got != 0 {
		t.Errorf("Discard() negative = %d, want 0", got)
	}
}
