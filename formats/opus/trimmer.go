// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"encoding/binary"

	"github.com/ik5/oggopus/utils"
)

// SampleTrimmer quantizes decoded frames to 16-bit PCM, drops the pre-skip
// and keeps the output from running ahead of the page granule position, which
// is how the silence padding of the last frame is removed.
type SampleTrimmer struct {
	rate     int
	channels int
	// offset is the header pre-skip in 48 kHz samples.
	offset  int64
	skip    int
	emitted int64
}

// NewSampleTrimmer trims for output at rate with the given header pre-skip.
func NewSampleTrimmer(rate, channels int, preSkip uint16) *SampleTrimmer {
	return &SampleTrimmer{
		rate:     rate,
		channels: channels,
		offset:   int64(preSkip),
		skip:     int(int64(preSkip) * int64(rate) / GranuleRate),
	}
}

// Emitted is the number of sample frames written so far.
func (t *SampleTrimmer) Emitted() int64 { return t.emitted }

// Limit is how many more sample frames may be written once the page with
// granule position gran is reached. It is never negative.
func (t *SampleTrimmer) Limit(gran int64) int64 {
	return max((gran-t.offset)*int64(t.rate)/GranuleRate-t.emitted, 0)
}

// Append writes the permitted part of pcm, frames sample frames of
// interleaved floats, to dst as 16-bit little-endian samples. It returns the
// grown slice and the number of sample frames written.
func (t *SampleTrimmer) Append(dst []byte, pcm []float32, frames int, gran int64) ([]byte, int) {
	limit := t.Limit(gran)

	skip := min(t.skip, frames)
	t.skip -= skip

	out := int64(frames - skip)
	if out > limit {
		out = limit
	}
	if out <= 0 {
		return dst, 0
	}

	start := skip * t.channels
	for _, v := range pcm[start : start+int(out)*t.channels] {
		dst = binary.LittleEndian.AppendUint16(dst, uint16(utils.Float32ToInt16(v)))
	}
	t.emitted += out
	return dst, int(out)
}
