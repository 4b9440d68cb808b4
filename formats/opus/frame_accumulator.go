// SPDX-License-Identifier: EPL-2.0

package opus

// FrameAccumulator cuts a PCM byte stream into fixed size frames, keeping
// the leftover bytes between calls.
type FrameAccumulator struct {
	frameBytes int
	pending    []byte
}

func NewFrameAccumulator(frameBytes int) *FrameAccumulator {
	return &FrameAccumulator{
		frameBytes: frameBytes,
		pending:    make([]byte, 0, frameBytes),
	}
}

func (a *FrameAccumulator) FrameBytes() int { return a.frameBytes }

// Pending is the number of buffered bytes short of a full frame.
func (a *FrameAccumulator) Pending() int { return len(a.pending) }

// Write appends p and calls fn once per complete frame, in order. fn must
// not keep the frame slice. If fn fails, the bytes after the failing frame
// are dropped.
func (a *FrameAccumulator) Write(p []byte, fn func(frame []byte) error) error {
	if len(a.pending) > 0 {
		n := min(a.frameBytes-len(a.pending), len(p))
		a.pending = append(a.pending, p[:n]...)
		p = p[n:]
		if len(a.pending) < a.frameBytes {
			return nil
		}
		err := fn(a.pending)
		a.pending = a.pending[:0]
		if err != nil {
			return err
		}
	}

	for len(p) >= a.frameBytes {
		if err := fn(p[:a.frameBytes]); err != nil {
			return err
		}
		p = p[a.frameBytes:]
	}
	a.pending = append(a.pending, p...)
	return nil
}

// Pad returns the pending bytes zero-filled to a full frame, along with how
// many of them were real input, and empties the accumulator.
func (a *FrameAccumulator) Pad() (frame []byte, n int) {
	n = len(a.pending)
	frame = make([]byte, a.frameBytes)
	copy(frame, a.pending)
	a.pending = a.pending[:0]
	return frame, n
}
