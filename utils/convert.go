// SPDX-License-Identifier: EPL-2.0

package utils

// Clamp limits x to [-1, 1].
func Clamp(x float32) float32 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// Float32ToInt16 converts a normalized sample to signed 16-bit PCM.
// Out of range input is clamped, so 1 maps to 32767 and -1 to -32767.
func Float32ToInt16(x float32) int16 {
	return int16(Clamp(x) * 32767.0)
}

// Float32ToUint16 converts a normalized sample to unsigned 16-bit PCM with
// silence at the 32768 midpoint.
func Float32ToUint16(x float32) uint16 {
	return uint16(int32(Float32ToInt16(x)) + 32768)
}
