// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/oggopus/utils"
)

// PCM16Reader exposes a Source as an io.Reader of 16-bit little-endian
// interleaved PCM. Reads return whole sample frames whenever p can hold one.
type PCM16Reader struct {
	src     Source
	samples []float32
	pending []byte
	err     error
}

func NewPCM16Reader(src Source) *PCM16Reader {
	return &PCM16Reader{
		src:     src,
		samples: make([]float32, max(src.BufSize(), src.Channels())),
	}
}

func (r *PCM16Reader) Read(p []byte) (int, error) {
	frame := 2 * r.src.Channels()
	for len(r.pending) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		buf := r.samples[:len(r.samples)-len(r.samples)%r.src.Channels()]
		n, err := r.src.ReadSamples(buf)
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.err = io.EOF
			} else {
				r.err = fmt.Errorf("%w", err)
			}
		}
		n -= n % r.src.Channels()
		r.pending = utils.AppendPCM16(r.pending[:0], buf[:n])
	}

	n := min(len(p), len(r.pending))
	if n >= frame {
		n -= n % frame
	}
	copy(p, r.pending[:n])
	r.pending = r.pending[n:]
	return n, nil
}
