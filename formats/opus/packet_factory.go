// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"encoding/binary"
	"fmt"

	"github.com/ik5/oggopus/ogg"
)

// MaxPacketSize bounds a single compressed packet.
const MaxPacketSize = 4000

// PacketFactory turns PCM frames into Ogg packets through a FrameEncoder,
// advancing the stream packet number and granule position.
type PacketFactory struct {
	codec        FrameEncoder
	state        *StreamState
	rate         int
	channels     int
	frameSamples int

	pcm []int16
	buf []byte
}

func NewPacketFactory(codec FrameEncoder, state *StreamState, rate, channels, frameSamples int) *PacketFactory {
	return &PacketFactory{
		codec:        codec,
		state:        state,
		rate:         rate,
		channels:     channels,
		frameSamples: frameSamples,
		pcm:          make([]int16, frameSamples*channels),
		buf:          make([]byte, MaxPacketSize),
	}
}

// Packet encodes one full frame of 16-bit little-endian PCM. samples is the
// number of real sample frames in it, which is less than the frame size only
// for the silence-padded last frame; only real samples advance the granule.
func (f *PacketFactory) Packet(frame []byte, samples int, eos bool) (ogg.Packet, error) {
	if len(frame) != len(f.pcm)*2 {
		return ogg.Packet{}, fmt.Errorf("%w: frame of %d bytes, want %d", ErrBadArgument, len(frame), len(f.pcm)*2)
	}
	for i := range f.pcm {
		f.pcm[i] = int16(binary.LittleEndian.Uint16(frame[2*i:]))
	}

	n, err := f.codec.Encode(f.pcm, f.buf)
	if err != nil {
		return ogg.Packet{}, classify(err)
	}
	if n < 0 || n > len(f.buf) {
		return ogg.Packet{}, fmt.Errorf("%w: codec returned %d bytes", ErrInternal, n)
	}

	f.state.Granule += int64(samples) * GranuleRate / int64(f.rate)
	p := ogg.Packet{
		Data:       append([]byte(nil), f.buf[:n]...),
		EOS:        eos,
		GranulePos: f.state.Granule,
		PacketNo:   f.state.PacketNo,
	}
	f.state.PacketNo++
	return p, nil
}
