// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// HeaderSize is the size of the canonical RIFF/WAVE header written here.
	HeaderSize    = 44
	bitsPerSample = 16
)

// NewHeader builds the 44-byte header of a 16-bit PCM WAV file holding
// dataLen bytes of samples.
func NewHeader(dataLen, sampleRate, channels int) []byte {
	blockAlign := channels * bitsPerSample / 8
	byteRate := sampleRate * blockAlign

	h := make([]byte, HeaderSize)

	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], uint32(dataLen+HeaderSize-8))
	copy(h[8:12], "WAVE")

	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16)
	binary.LittleEndian.PutUint16(h[20:22], 1) // linear PCM
	binary.LittleEndian.PutUint16(h[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(h[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(h[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(h[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(h[34:36], bitsPerSample)

	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], uint32(dataLen))

	return h
}

// WritePCM16 writes a WAV file around pcm, 16-bit little-endian samples
// interleaved by channel.
func WritePCM16(w io.Writer, sampleRate, channels int, pcm []byte) error {
	if channels < 1 {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedWavLayout, channels)
	}
	if len(pcm)%(channels*2) != 0 {
		return fmt.Errorf("%w: %d bytes for %d channels", ErrOddPCMLength, len(pcm), channels)
	}

	if _, err := w.Write(NewHeader(len(pcm), sampleRate, channels)); err != nil {
		return fmt.Errorf("%w", err)
	}
	if _, err := w.Write(pcm); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// WriteWAV16 writes interleaved int16 samples as a WAV file.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels < 1 {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedWavLayout, channels)
	}
	if len(samples)%channels != 0 {
		return fmt.Errorf("%w: %d samples for %d channels", ErrOddPCMLength, len(samples), channels)
	}

	if _, err := w.Write(NewHeader(len(samples)*2, sampleRate, channels)); err != nil {
		return fmt.Errorf("%w", err)
	}

	// Convert in chunks to bound the scratch buffer.
	const chunkSize = 8192
	buf := make([]byte, 0, min(len(samples), chunkSize)*2)
	for i := 0; i < len(samples); i += chunkSize {
		buf = buf[:0]
		for _, s := range samples[i:min(i+chunkSize, len(samples))] {
			buf = binary.LittleEndian.AppendUint16(buf, uint16(s))
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}
	return nil
}
