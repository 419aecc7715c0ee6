// SPDX-License-Identifier: EPL-2.0

package utils

// Int16ToFloat32 maps a 16-bit sample onto [-1, 1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}

// Float32ToInt16 clamps x to [-1, 1] and scales it to the full int16 range.
// Negative values scale by 32768 so that -1 reaches math.MinInt16.
func Float32ToInt16(x float32) int16 {
	switch {
	case x >= 1:
		return 32767
	case x <= -1:
		return -32768
	case x < 0:
		return int16(x * 32768.0)
	default:
		return int16(x * 32767.0)
	}
}
