// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"errors"
)

var (
	ErrShortBuffer = errors.New("audiotest: buffer too small")
	ErrReleased    = errors.New("audiotest: codec used after Close")
	ErrRejected    = errors.New("audiotest: packet rejected")
)

// LosslessEncoder "compresses" a frame by storing its samples as 16-bit
// little-endian bytes. With FailAfter set, every frame after the first
// FailAfter ones is refused.
type LosslessEncoder struct {
	FailAfter int
	Frames    int
	Closes    int
}

func (e *LosslessEncoder) Encode(pcm []int16, data []byte) (int, error) {
	if e.Closes > 0 {
		return 0, ErrReleased
	}
	if e.FailAfter > 0 && e.Frames >= e.FailAfter {
		return 0, ErrRejected
	}
	if len(data) < 2*len(pcm) {
		return 0, ErrShortBuffer
	}
	for i, s := range pcm {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(s))
	}
	e.Frames++
	return 2 * len(pcm), nil
}

func (e *LosslessEncoder) Close() error {
	e.Closes++
	return nil
}

// LosslessDecoder inverts LosslessEncoder. Packets whose first byte equals
// Reject, when set, are refused.
type LosslessDecoder struct {
	Channels int
	Reject   *byte
	Packets  int
	Closes   int
}

func (d *LosslessDecoder) DecodeFloat32(data []byte, pcm []float32) (int, error) {
	if d.Closes > 0 {
		return 0, ErrReleased
	}
	if d.Reject != nil && len(data) > 0 && data[0] == *d.Reject {
		return 0, ErrRejected
	}
	samples := len(data) / 2
	if samples > len(pcm) {
		return 0, ErrShortBuffer
	}
	for i := range samples {
		pcm[i] = float32(int16(binary.LittleEndian.Uint16(data[2*i:]))) / 32768
	}
	d.Packets++
	return samples / d.Channels, nil
}

func (d *LosslessDecoder) Close() error {
	d.Closes++
	return nil
}
