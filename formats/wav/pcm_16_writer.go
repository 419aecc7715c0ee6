// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	headerSize = 44
	// samplesPerWrite bounds the scratch buffer of WriteWAV16.
	samplesPerWrite = 8192
)

// putHeader fills b with a canonical 44-byte PCM header.
func putHeader(b []byte, sampleRate, channels, bitsPerSample int, dataSize uint32) {
	blockAlign := channels * bitsPerSample / 8

	copy(b[0:4], "RIFF")
	binary.LittleEndian.PutUint32(b[4:8], headerSize-8+dataSize)
	copy(b[8:12], "WAVE")

	copy(b[12:16], "fmt ")
	binary.LittleEndian.PutUint32(b[16:20], 16)
	binary.LittleEndian.PutUint16(b[20:22], formatPCM)
	binary.LittleEndian.PutUint16(b[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(b[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(b[28:32], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(b[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(b[34:36], uint16(bitsPerSample))

	copy(b[36:40], "data")
	binary.LittleEndian.PutUint32(b[40:44], dataSize)
}

// WriteWAV16 writes a 16-bit PCM WAV at sampleRate. samples are interleaved across
// channels and must hold whole frames.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels < 1 || channels > math.MaxUint16 || len(samples)%channels != 0 {
		return fmt.Errorf("%w: %d channels for %d samples", ErrInvalidChannels, channels, len(samples))
	}
	if uint64(len(samples))*2 > math.MaxUint32-headerSize {
		return fmt.Errorf("%w: %d samples", ErrTooLarge, len(samples))
	}

	buf := make([]byte, max(headerSize, 2*min(len(samples), samplesPerWrite)))
	putHeader(buf, sampleRate, channels, 16, uint32(len(samples)*2))
	if _, err := w.Write(buf[:headerSize]); err != nil {
		return fmt.Errorf("%w", err)
	}

	for len(samples) > 0 {
		chunk := samples[:min(len(samples), samplesPerWrite)]
		samples = samples[len(chunk):]

		out := buf[:2*len(chunk)]
		for i, v := range chunk {
			binary.LittleEndian.PutUint16(out[2*i:], uint16(v))
		}
		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("%w", err)
		}
	}
	return nil
}
