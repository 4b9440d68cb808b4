// SPDX-License-Identifier: EPL-2.0

package opus

// StreamState is the bookkeeping of one logical stream, owned by a single
// Encoder or StreamDecoder.
type StreamState struct {
	Serial int32
	// PacketNo is the number of the next packet.
	PacketNo int64
	// Granule is in 48 kHz samples.
	Granule int64
	// Started is set once the encoder has written the header packets, or
	// once the decoder has accepted the identification header.
	Started bool
}
