// SPDX-License-Identifier: EPL-2.0

package ogg

// Pages use CRC-32 with polynomial 0x04C11DB7, no reflection, zero initial
// value and no final xor. hash/crc32 only ships the reflected variants.
const crcPoly = uint32(0x04C11DB7)

var crcTable = func() (t [256]uint32) {
	for i := range t {
		r := uint32(i) << 24
		for range 8 {
			if r&0x80000000 != 0 {
				r = r<<1 ^ crcPoly
			} else {
				r <<= 1
			}
		}
		t[i] = r
	}
	return t
}()

func crcUpdate(crc uint32, p []byte) uint32 {
	for _, b := range p {
		crc = crc<<8 ^ crcTable[byte(crc>>24)^b]
	}
	return crc
}

// Checksum returns the page checksum of p.
func Checksum(p []byte) uint32 {
	return crcUpdate(0, p)
}
