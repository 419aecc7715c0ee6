// SPDX-License-Identifier: EPL-2.0

package au

import (
	"encoding/binary"
	"fmt"

	"github.com/ik5/sounddec/audio"
)

const (
	// HeaderSize is the fixed part of every header.
	HeaderSize = 24
	// Magic is ".snd" read as a big-endian word.
	Magic uint32 = 0x2e736e64
	// UnknownSize in the payload field marks a stream of unknown length.
	UnknownSize uint32 = 0xffffffff
)

// Encoding identifies the sample coding of the payload.
type Encoding uint32

const (
	EncodingULaw8    Encoding = 1
	EncodingLinear8  Encoding = 2
	EncodingLinear16 Encoding = 3

	// Known identifiers this decoder does not implement.
	EncodingLinear24   Encoding = 4
	EncodingLinear32   Encoding = 5
	EncodingFloat      Encoding = 6
	EncodingDouble     Encoding = 7
	EncodingADPCMG721  Encoding = 23
	EncodingADPCMG722  Encoding = 24
	EncodingADPCMG7233 Encoding = 25
	EncodingADPCMG7235 Encoding = 26
	EncodingALaw8      Encoding = 27
)

var encodingNames = map[Encoding]string{
	EncodingULaw8:      "8-bit mu-law",
	EncodingLinear8:    "8-bit linear",
	EncodingLinear16:   "16-bit linear",
	EncodingLinear24:   "24-bit linear",
	EncodingLinear32:   "32-bit linear",
	EncodingFloat:      "32-bit float",
	EncodingDouble:     "64-bit float",
	EncodingADPCMG721:  "G.721 ADPCM",
	EncodingADPCMG722:  "G.722 ADPCM",
	EncodingADPCMG7233: "G.723 3-bit ADPCM",
	EncodingADPCMG7235: "G.723 5-bit ADPCM",
	EncodingALaw8:      "8-bit A-law",
}

func (e Encoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}
	return fmt.Sprintf("encoding %d", uint32(e))
}

// SampleFormat is the decoded layout for e. ok is false for encodings this decoder cannot produce.
func (e Encoding) SampleFormat() (audio.SampleFormat, bool) {
	switch e {
	case EncodingULaw8:
		return audio.FormatS16Sys, true
	case EncodingLinear8:
		return audio.FormatS8, true
	case EncodingLinear16:
		// Passed through as stored; no byte swap.
		return audio.FormatS16MSB, true
	default:
		return audio.FormatUnknown, false
	}
}

// bytesPerSample is the payload width of one sample for the supported encodings.
func (e Encoding) bytesPerSample() int {
	if e == EncodingLinear16 {
		return 2
	}
	return 1
}

// Header is the fixed 24-byte big-endian file header.
type Header struct {
	Magic      uint32
	HeaderSize uint32
	DataSize   uint32
	Encoding   Encoding
	SampleRate uint32
	Channels   uint32
}

// ParseHeader decodes the first HeaderSize bytes of b.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrShortHeader, len(b))
	}
	return Header{
		Magic:      binary.BigEndian.Uint32(b[0:4]),
		HeaderSize: binary.BigEndian.Uint32(b[4:8]),
		DataSize:   binary.BigEndian.Uint32(b[8:12]),
		Encoding:   Encoding(binary.BigEndian.Uint32(b[12:16])),
		SampleRate: binary.BigEndian.Uint32(b[16:20]),
		Channels:   binary.BigEndian.Uint32(b[20:24]),
	}, nil
}

// Valid reports whether the magic number matches.
func (h Header) Valid() bool {
	return h.Magic == Magic
}

// Bytes encodes h. A zero HeaderSize is written as HeaderSize.
func (h Header) Bytes() []byte {
	size := h.HeaderSize
	if size == 0 {
		size = HeaderSize
	}
	b := make([]byte, HeaderSize)
	binary.BigEndian.PutUint32(b[0:4], h.Magic)
	binary.BigEndian.PutUint32(b[4:8], size)
	binary.BigEndian.PutUint32(b[8:12], h.DataSize)
	binary.BigEndian.PutUint32(b[12:16], uint32(h.Encoding))
	binary.BigEndian.PutUint32(b[16:20], h.SampleRate)
	binary.BigEndian.PutUint32(b[20:24], h.Channels)
	return b
}
