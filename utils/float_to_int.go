// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"encoding/binary"

	"github.com/chewxy/math32"
)

// Float32ToInt16 quantizes a sample in [-1, 1] to 16 bits, rounding to the
// nearest value and clamping to [-32768, 32767]. NaN maps to 0.
func Float32ToInt16(x float32) int16 {
	if math32.IsNaN(x) {
		return 0
	}
	v := math32.Max(-32768, math32.Min(x*32768, 32767))
	return int16(math32.Floor(0.5 + v))
}

// Int16ToFloat32 is the inverse scaling of Float32ToInt16.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768
}

// AppendPCM16 quantizes samples and appends them to dst as 16-bit
// little-endian PCM.
func AppendPCM16(dst []byte, samples []float32) []byte {
	for _, s := range samples {
		dst = binary.LittleEndian.AppendUint16(dst, uint16(Float32ToInt16(s)))
	}
	return dst
}

// DecodePCM16 converts 16-bit little-endian PCM in src to floats in dst and
// returns the number of samples written.
func DecodePCM16(dst []float32, src []byte) int {
	n := min(len(dst), len(src)/2)
	for i := range n {
		dst[i] = Int16ToFloat32(int16(binary.LittleEndian.Uint16(src[2*i:])))
	}
	return n
}
