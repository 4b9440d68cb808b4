// SPDX-License-Identifier: EPL-2.0

package ogg

// MaxSegments is the largest number of lacing values a single page can hold.
const MaxSegments = 255

// Lacing returns the lacing values for a packet of n bytes: n/255 values of
// 255 followed by one value of n%255. A packet whose length is a multiple of
// 255 therefore ends with an explicit 0, and an empty packet is a single 0.
func Lacing(n int) []byte {
	return appendLacing(make([]byte, 0, n/255+1), n)
}

func appendLacing(dst []byte, n int) []byte {
	for range n / 255 {
		dst = append(dst, 255)
	}
	return append(dst, byte(n%255))
}

// PacketLengths splits a segment table into packet lengths. When the table
// ends with a 255 the last length belongs to a packet that continues on the
// next page, and continued reports true.
func PacketLengths(segments []byte) (lengths []int, continued bool) {
	acc := 0
	for _, v := range segments {
		acc += int(v)
		if v < 255 {
			lengths = append(lengths, acc)
			acc = 0
		}
	}
	if len(segments) > 0 && segments[len(segments)-1] == 255 {
		lengths = append(lengths, acc)
		continued = true
	}
	return lengths, continued
}
