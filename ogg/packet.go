// SPDX-License-Identifier: EPL-2.0

package ogg

// Packet is one logical unit of a stream, before lacing or after reassembly.
type Packet struct {
	Data []byte
	BOS  bool
	EOS  bool
	// GranulePos is -1 for packets that do not finish a page on the decode
	// side.
	GranulePos int64
	PacketNo   int64
}
