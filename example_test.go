// SPDX-License-Identifier: EPL-2.0

package oggopus_test

import (
	"bytes"
	"fmt"

	"github.com/ik5/oggopus"
	"github.com/ik5/oggopus/formats/opus"
	"github.com/ik5/oggopus/formats/wav"
	"github.com/ik5/oggopus/internal/audiotest"
)

// Example encodes a WAV file to Ogg Opus and decodes it again. A lossless
// stand-in codec keeps the output reproducible.
func Example() {
	codec := []opus.Option{
		opus.WithEncoderFactory(func(opus.CodecConfig) (opus.FrameEncoder, error) {
			return &audiotest.LosslessEncoder{}, nil
		}),
		opus.WithDecoderFactory(func(_ int, channels int) (opus.FrameDecoder, error) {
			return &audiotest.LosslessDecoder{Channels: channels}, nil
		}),
	}

	// Half a second of 16 kHz mono.
	var in bytes.Buffer
	_ = wav.WritePCM16(&in, 16000, 1, audiotest.RampPCM(8000, 1))

	src, err := wav.Decoder{}.Decode(&in)
	if err != nil {
		fmt.Println(err)
		return
	}

	var encoded bytes.Buffer
	if _, err := oggopus.EncodeSource(&encoded, src, oggopus.EncodeConfig{}, codec...); err != nil {
		fmt.Println(err)
		return
	}

	var out bytes.Buffer
	n, err := oggopus.DecodeToWAV(&out, &encoded, codec...)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("WAV bytes:", n)
	fmt.Println("identical:", bytes.Equal(out.Bytes()[wav.HeaderSize:], audiotest.RampPCM(8000, 1)))
	// Output:
	// WAV bytes: 16044
	// identical: true
}

func ExampleDefaultRegistry() {
	fmt.Println(oggopus.DefaultRegistry().Formats())
	// Output:
	// [aif aiff mp3 oga ogg opus wav wave]
}
