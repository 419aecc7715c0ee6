// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ik5/sounddec/utils"
)

// SampleFormat identifies how one sample is laid out in a decoded buffer.
type SampleFormat uint8

const (
	FormatUnknown SampleFormat = iota
	FormatU8
	FormatS8
	FormatS16LSB
	FormatS16MSB
	FormatS32LSB
	FormatS32MSB
	FormatF32LSB
	FormatF32MSB
)

// Host byte order variants.
var (
	FormatS16Sys = hostOrder(FormatS16LSB, FormatS16MSB)
	FormatS32Sys = hostOrder(FormatS32LSB, FormatS32MSB)
	FormatF32Sys = hostOrder(FormatF32LSB, FormatF32MSB)
)

func hostOrder(little, big SampleFormat) SampleFormat {
	var probe [2]byte
	binary.NativeEndian.PutUint16(probe[:], 1)
	if probe[0] == 1 {
		return little
	}
	return big
}

var sampleFormatNames = map[SampleFormat]string{
	FormatUnknown: "unknown",
	FormatU8:      "u8",
	FormatS8:      "s8",
	FormatS16LSB:  "s16le",
	FormatS16MSB:  "s16be",
	FormatS32LSB:  "s32le",
	FormatS32MSB:  "s32be",
	FormatF32LSB:  "f32le",
	FormatF32MSB:  "f32be",
}

func (f SampleFormat) String() string {
	if name, ok := sampleFormatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("SampleFormat(%d)", uint8(f))
}

// Bytes returns the width of one sample, or 0 for FormatUnknown.
func (f SampleFormat) Bytes() int {
	switch f {
	case FormatU8, FormatS8:
		return 1
	case FormatS16LSB, FormatS16MSB:
		return 2
	case FormatS32LSB, FormatS32MSB, FormatF32LSB, FormatF32MSB:
		return 4
	default:
		return 0
	}
}

func (f SampleFormat) byteOrder() binary.ByteOrder {
	switch f {
	case FormatS16MSB, FormatS32MSB, FormatF32MSB:
		return binary.BigEndian
	default:
		return binary.LittleEndian
	}
}

// Float32 decodes the sample at the start of b into [-1, 1].
// b must hold at least f.Bytes() bytes.
func (f SampleFormat) Float32(b []byte) float32 {
	switch f {
	case FormatU8:
		return float32(int(b[0])-128) / 128.0
	case FormatS8:
		return float32(int8(b[0])) / 128.0
	case FormatS16LSB, FormatS16MSB:
		return utils.Int16ToFloat32(int16(f.byteOrder().Uint16(b)))
	case FormatS32LSB, FormatS32MSB:
		return float32(float64(int32(f.byteOrder().Uint32(b))) / 2147483648.0)
	case FormatF32LSB, FormatF32MSB:
		return math.Float32frombits(f.byteOrder().Uint32(b))
	default:
		return 0
	}
}

// Format is the negotiated layout of a decoded stream.
type Format struct {
	Format   SampleFormat
	Channels int
	Rate     int
}

// FrameSize is the number of bytes one frame (one sample per channel) occupies.
func (f Format) FrameSize() int {
	return f.Format.Bytes() * f.Channels
}

// IsZero reports whether no field was set, which for a desired format means "no preference".
func (f Format) IsZero() bool {
	return f == Format{}
}

func (f Format) String() string {
	return fmt.Sprintf("%s %dch %dHz", f.Format, f.Channels, f.Rate)
}
