// SPDX-License-Identifier: EPL-2.0

package audio

// UnknownDuration is reported when a stream's length cannot be determined.
const UnknownDuration int64 = -1

// FramesToMillis converts a frame count at rate Hz into milliseconds.
// The split into whole seconds and remainder keeps frames*1000 from overflowing.
// Zero frames or a non-positive rate give UnknownDuration.
func FramesToMillis(frames uint64, rate int) int64 {
	if frames == 0 || rate <= 0 {
		return UnknownDuration
	}
	r := uint64(rate)
	ms := (frames / r) * 1000
	ms += ((frames % r) * 1000) / r
	return int64(ms)
}

// MillisToFrame returns the frame index at ms for a stream running at rate Hz, truncated.
// The product is taken in single precision, so 360 ms at 11025 Hz is frame 3968.
func MillisToFrame(ms uint32, rate int) uint64 {
	if rate <= 0 {
		return 0
	}
	framesPerMs := float32(rate) / 1000.0
	return uint64(framesPerMs * float32(ms))
}
