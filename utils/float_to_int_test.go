// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"bytes"
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{name: "zero", input: 0.0, want: 0},
		{name: "max positive", input: 1.0, want: math.MaxInt16},
		{name: "max negative", input: -1.0, want: math.MinInt16},
		{name: "half positive", input: 0.5, want: 16384},
		{name: "half negative", input: -0.5, want: -16384},
		{name: "rounds up at half step", input: 1.5 / 32768, want: 2},
		{name: "rounds negative half step up", input: -1.5 / 32768, want: -1},
		{name: "just below one step", input: 0.9 / 32768, want: 1},
		{name: "clamp over max", input: 1.5, want: math.MaxInt16},
		{name: "clamp over min", input: -1.5, want: math.MinInt16},
		{name: "clamp way over max", input: 100.0, want: math.MaxInt16},
		{name: "clamp way under min", input: -100.0, want: math.MinInt16},
		{name: "infinity", input: float32(math.Inf(1)), want: math.MaxInt16},
		{name: "nan", input: float32(math.NaN()), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToInt16(tt.input); got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// Every 16-bit value survives a trip through float32.
func TestFloat32ToInt16_Inverse(t *testing.T) {
	t.Parallel()

	for v := math.MinInt16; v <= math.MaxInt16; v++ {
		if got := Float32ToInt16(Int16ToFloat32(int16(v))); got != int16(v) {
			t.Fatalf("round trip of %d = %d", v, got)
		}
	}
}

func TestAppendDecodePCM16(t *testing.T) {
	t.Parallel()

	in := []float32{0, 0.5, -0.5, 1, -1}
	raw := AppendPCM16(nil, in)

	want := []byte{0x00, 0x00, 0x00, 0x40, 0x00, 0xC0, 0xFF, 0x7F, 0x00, 0x80}
	if !bytes.Equal(raw, want) {
		t.Fatalf("AppendPCM16() = % x, want % x", raw, want)
	}

	out := make([]float32, 8)
	n := DecodePCM16(out, raw)
	if n != len(in) {
		t.Fatalf("DecodePCM16() = %d, want %d", n, len(in))
	}
	if out[1] != 0.5 || out[2] != -0.5 || out[4] != -1 {
		t.Errorf("DecodePCM16() = %v", out[:n])
	}
}

func BenchmarkFloat32ToInt16(b *testing.B) {
	samples := make([]float32, 1024)
	for i := range samples {
		samples[i] = float32(i)/512 - 1
	}
	buf := make([]byte, 0, 2048)

	for b.Loop() {
		buf = AppendPCM16(buf[:0], samples)
	}
}
