// SPDX-License-Identifier: EPL-2.0

package ogg

import (
	"bytes"
	"slices"
	"testing"
)

func TestLacing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want []byte
	}{
		{0, []byte{0}},
		{1, []byte{1}},
		{254, []byte{254}},
		{255, []byte{255, 0}},
		{256, []byte{255, 1}},
		{510, []byte{255, 255, 0}},
		{600, []byte{255, 255, 90}},
	}

	for _, tt := range tests {
		got := Lacing(tt.n)
		if !bytes.Equal(got, tt.want) {
			t.Errorf("Lacing(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestLacing_Law(t *testing.T) {
	t.Parallel()

	for n := 1; n < 2000; n++ {
		l := Lacing(n)
		full := 0
		for _, v := range l[:len(l)-1] {
			if v != 255 {
				t.Fatalf("Lacing(%d) has inner value %d", n, v)
			}
			full++
		}
		if full != n/255 {
			t.Fatalf("Lacing(%d) has %d full segments, want %d", n, full, n/255)
		}
		if last := l[len(l)-1]; int(last) != n%255 {
			t.Fatalf("Lacing(%d) ends with %d, want %d", n, last, n%255)
		}
	}
}

func TestPacketLengths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		segments  []byte
		want      []int
		continued bool
	}{
		{"empty", nil, nil, false},
		{"single", []byte{10}, []int{10}, false},
		{"several", []byte{255, 10, 0, 5}, []int{265, 0, 5}, false},
		{"continues", []byte{3, 255, 255}, []int{3, 510}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, continued := PacketLengths(tt.segments)
			if !slices.Equal(got, tt.want) || continued != tt.continued {
				t.Errorf("PacketLengths(%v) = %v, %v, want %v, %v",
					tt.segments, got, continued, tt.want, tt.continued)
			}
		})
	}
}
