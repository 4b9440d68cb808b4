// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"
	"io"

	"github.com/ik5/oggopus/audio"
	"github.com/ik5/oggopus/internal/audiotest"
)

func ExampleMonoMixer() {
	stereo := audiotest.NewMockSource(48000, 2, 4, func(_, ch int) float32 {
		if ch == 0 {
			return 1
		}
		return 0
	})
	mono := audio.NewMonoMixer(stereo)

	buf := make([]float32, 4)
	n, _ := mono.ReadSamples(buf)
	fmt.Println(mono.Channels(), buf[:n])
	// Output:
	// 1 [0.5 0.5 0.5 0.5]
}

func ExamplePCM16Reader() {
	src := audiotest.NewConstantSource(8000, 1, 3, 0.5)
	pcm, _ := io.ReadAll(audio.NewPCM16Reader(src))
	fmt.Printf("% x\n", pcm)
	// Output:
	// 00 40 00 40 00 40
}

func ExampleRegistry_ForPath() {
	reg := audio.NewRegistry()
	reg.Register("wav", nil)

	_, err := reg.ForPath("clip.flac")
	fmt.Println(err)
	// Output:
	// no decoder registered for format: "flac"
}
