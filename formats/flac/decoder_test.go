// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/sounddec/audio"
	"github.com/ik5/sounddec/internal/audiotest"
)

// mockFlacReader serves fixed-size blocks of a ramp, value = frame index, on every channel.
type mockFlacReader struct {
	info      streamInfo
	blockSize int
	next      uint64 // first frame of the next block
	total     uint64
	closed    int
	seeks     []uint64
	decodeErr error
}

func (m *mockFlacReader) Info() streamInfo { return m.info }

func (m *mockFlacReader) Next() ([][]int32, error) {
	if m.decodeErr != nil {
		return nil, m.decodeErr
	}
	if m.next >= m.total {
		return nil, io.EOF
	}
	n := min(uint64(m.blockSize), m.total-m.next)
	block := make([][]int32, m.info.channels)
	for c := range block {
		block[c] = make([]int32, n)
		for i := range block[c] {
			block[c][i] = int32(m.next) + int32(i)
		}
	}
	m.next += n
	return block, nil
}

func (m *mockFlacReader) Seek(n uint64) (uint64, error) {
	m.seeks = append(m.seeks, n)
	if n >= m.total {
		return 0, errors.New("seek past end")
	}
	m.next = n - n%uint64(m.blockSize)
	return m.next, nil
}

func (m *mockFlacReader) Close() error {
	m.closed++
	return nil
}

func newMock(rate, channels, bps int, total uint64) *mockFlacReader {
	return &mockFlacReader{
		info:      streamInfo{rate: rate, channels: channels, bitsPerSample: bps, frames: total},
		blockSize: 16,
		total:     total,
	}
}

func withEngine(m *mockFlacReader) Decoder {
	return Decoder{newEngine: func(io.Reader, bool) (flacReader, error) { return m, nil }}
}

func openMock(t *testing.T, m *mockFlacReader, r io.Reader, bufLen int) *audio.Session {
	t.Helper()

	s := audio.NewSession(r, make([]byte, bufLen))
	if err := s.Open(withEngine(m), "flac"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s
}

func floats(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.NativeEndian.Uint32(b[4*i:]))
	}
	return out
}

func TestDecoder_OpenMetadata(t *testing.T) {
	t.Parallel()

	m := newMock(44100, 2, 16, 100000)
	s := openMock(t, m, bytes.NewReader(nil), 64)
	defer s.Close()

	want := audio.Format{Format: audio.FormatF32Sys, Channels: 2, Rate: 44100}
	if s.Actual() != want {
		t.Errorf("Actual() = %v, want %v", s.Actual(), want)
	}
	if s.Duration() != 2267 {
		t.Errorf("Duration() = %d, want 2267", s.Duration())
	}
	if !s.Flags().Has(audio.FlagCanSeek) {
		t.Error("CANSEEK not set")
	}
}

func TestDecoder_PipeNotSeekable(t *testing.T) {
	t.Parallel()

	var seekable bool
	m := newMock(8000, 1, 16, 0)
	dec := Decoder{newEngine: func(_ io.Reader, s bool) (flacReader, error) {
		seekable = s
		return m, nil
	}}
	s := audio.NewSession(audiotest.NoSeek{R: bytes.NewReader(nil)}, make([]byte, 64))
	if err := s.Open(dec, ""); err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if seekable || s.Flags().Has(audio.FlagCanSeek) {
		t.Error("pipe treated as seekable")
	}
	if s.Duration() != audio.UnknownDuration {
		t.Errorf("Duration() = %d, want unknown for a zero frame count", s.Duration())
	}
}

func TestDecoder_ReadAcrossBlocks(t *testing.T) {
	t.Parallel()

	m := newMock(8000, 2, 16, 40)
	s := openMock(t, m, bytes.NewReader(nil), 25*2*4) // 25 frames span two blocks
	defer s.Close()

	n := s.Read()
	if n != 200 || s.Flags().Has(audio.FlagEOF) {
		t.Fatalf("Read() = %d, %v; want 200 without EOF", n, s.Flags())
	}
	got := floats(s.Buffer()[:n])
	for f := range 25 {
		want := float32(f) / 32768
		if got[2*f] != want || got[2*f+1] != want {
			t.Fatalf("frame %d = (%v, %v), want %v", f, got[2*f], got[2*f+1], want)
		}
	}

	if n := s.Read(); n != 15*2*4 || !s.Flags().Has(audio.FlagEOF) {
		t.Errorf("Read() = %d, %v; want 120 with EOF", n, s.Flags())
	}
}

func TestDecoder_SeekSkipsInsideBlock(t *testing.T) {
	t.Parallel()

	m := newMock(1000, 1, 16, 100) // one frame per millisecond
	s := openMock(t, m, bytes.NewReader(nil), 4)
	defer s.Close()

	if err := s.Seek(37); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	if len(m.seeks) != 1 || m.seeks[0] != 37 {
		t.Errorf("engine seeks = %v, want [37]", m.seeks)
	}

	n := s.Read()
	if n != 4 {
		t.Fatalf("Read() = %d, want 4", n)
	}
	if got := floats(s.Buffer()[:n])[0]; got != float32(37)/32768 {
		t.Errorf("first sample after seek = %v, want frame 37", got*32768)
	}

	if err := s.Rewind(); err != nil {
		t.Fatal(err)
	}
	s.Read()
	if got := floats(s.Buffer()[:4])[0]; got != 0 {
		t.Errorf("first sample after rewind = %v, want 0", got)
	}
}

func TestDecoder_SeekPastEnd(t *testing.T) {
	t.Parallel()

	m := newMock(1000, 1, 16, 100)
	s := openMock(t, m, bytes.NewReader(nil), 4)
	defer s.Close()

	if err := s.Seek(5000); !errors.Is(err, audio.ErrSeekFailed) {
		t.Errorf("Seek() error = %v, want ErrSeekFailed", err)
	}
}

func TestDecoder_DecodeErrorEndsStream(t *testing.T) {
	t.Parallel()

	m := newMock(8000, 1, 16, 100)
	m.decodeErr = errors.New("crc mismatch")
	s := openMock(t, m, bytes.NewReader(nil), 64)
	defer s.Close()

	if n := s.Read(); n != 0 || !s.Flags().Has(audio.FlagEOF) {
		t.Errorf("Read() = %d, %v; want 0 with EOF", n, s.Flags())
	}
}

func TestDecoder_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		m    *mockFlacReader
		want error
	}{
		{"no channels", newMock(8000, 0, 16, 10), ErrInvalidStreamInfo},
		{"no rate", newMock(0, 1, 16, 10), ErrInvalidStreamInfo},
		{"bit depth", newMock(8000, 1, 33, 10), audio.ErrUnsupportedBitDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := audio.NewSession(bytes.NewReader(nil), make([]byte, 64))
			err := s.Open(withEngine(tt.m), "")
			if !errors.Is(err, tt.want) || !errors.Is(err, audio.ErrBadFormat) {
				t.Errorf("Open() error = %v, want %v", err, tt.want)
			}
			if tt.m.closed != 1 {
				t.Errorf("engine closed %d times, want 1", tt.m.closed)
			}
		})
	}
}

func TestDecoder_RejectsGarbage(t *testing.T) {
	t.Parallel()

	s := audio.NewSession(bytes.NewReader([]byte("This is not FLAC data")), make([]byte, 64))
	if err := s.Open(Decoder{}, "flac"); !errors.Is(err, audio.ErrBadFormat) {
		t.Errorf("Open() error = %v, want ErrBadFormat", err)
	}
}

func TestDecoder_CloseReleasesEngine(t *testing.T) {
	t.Parallel()

	m := newMock(8000, 1, 16, 10)
	s := openMock(t, m, bytes.NewReader(nil), 64)
	s.Close()
	s.Close()

	if m.closed != 1 {
		t.Errorf("engine closed %d times, want 1", m.closed)
	}
}

func TestDecoder_Scale24Bit(t *testing.T) {
	t.Parallel()

	m := newMock(8000, 1, 24, 4)
	s := openMock(t, m, bytes.NewReader(nil), 16)
	defer s.Close()

	n := s.Read()
	got := floats(s.Buffer()[:n])
	if len(got) != 4 || got[3] != float32(3)/(1<<23) {
		t.Errorf("samples = %v", got)
	}
}
