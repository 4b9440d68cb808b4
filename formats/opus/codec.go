// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"io"
	"slices"
)

// FrameEncoder compresses exactly one frame of interleaved 16-bit samples
// into data and returns the packet length.
type FrameEncoder interface {
	Encode(pcm []int16, data []byte) (int, error)
}

// FrameDecoder decompresses one packet into interleaved float32 samples in
// [-1, 1] and returns the number of samples per channel.
type FrameDecoder interface {
	DecodeFloat32(data []byte, pcm []float32) (int, error)
}

// CodecConfig is what an encoder factory gets to build its codec from.
type CodecConfig struct {
	SampleRate  int
	Channels    int
	Application Application
	// Bitrate in bits per second, 0 leaves the codec default.
	Bitrate int
	// Complexity 0-10, -1 leaves the codec default.
	Complexity     int
	MaxBandwidth   Bandwidth
	InBandFEC      bool
	PacketLossPerc int
	DTX            bool
}

type (
	EncoderFactory func(cfg CodecConfig) (FrameEncoder, error)
	DecoderFactory func(sampleRate, channels int) (FrameDecoder, error)
)

// NativeRates are the sample rates the codec runs at.
var NativeRates = []int{8000, 12000, 16000, 24000, 48000}

func isNativeRate(rate int) bool {
	return slices.Contains(NativeRates, rate)
}

// releaseCodec closes c if it holds resources.
func releaseCodec(c any) error {
	if cl, ok := c.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}
