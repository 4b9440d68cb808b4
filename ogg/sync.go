// SPDX-License-Identifier: EPL-2.0

package ogg

import (
	"bytes"
	"errors"
	"fmt"
)

// Sync frames pages out of a byte stream that arrives in arbitrary chunks.
//
// Bytes are handed over either with Write, or with the Buffer/Wrote pair
// that lets the caller fill the internal buffer in place. PageOut then
// returns complete, checksummed pages one at a time.
type Sync struct {
	data     []byte
	fill     int
	returned int
	unsynced bool
	skipped  int
	eof      bool
}

// NewSync returns an empty synchronizer.
func NewSync() *Sync {
	return &Sync{}
}

// Buffer returns a writable region of at least size bytes placed right after
// the data already buffered. Call Wrote with the number of bytes filled in.
func (s *Sync) Buffer(size int) []byte {
	if s.returned > 0 {
		s.fill = copy(s.data, s.data[s.returned:s.fill])
		s.returned = 0
	}
	if need := s.fill + size; need > len(s.data) {
		grown := make([]byte, need+size+4096)
		copy(grown, s.data[:s.fill])
		s.data = grown
	}
	return s.data[s.fill : s.fill+size]
}

// Wrote commits n bytes previously written into the region from Buffer.
func (s *Sync) Wrote(n int) error {
	if n < 0 || s.fill+n > len(s.data) {
		return fmt.Errorf("%w: %d bytes", ErrBufferOverrun, n)
	}
	s.fill += n
	return nil
}

// Write buffers p. It never fails short.
func (s *Sync) Write(p []byte) (int, error) {
	copy(s.Buffer(len(p)), p)
	if err := s.Wrote(len(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Buffered is the number of bytes waiting to be framed.
func (s *Sync) Buffered() int { return s.fill - s.returned }

// Skipped is the total number of bytes discarded while hunting for pages.
func (s *Sync) Skipped() int { return s.skipped }

// PageOut returns the next page. It returns ErrNeedMore when the buffered
// bytes do not hold a full page, and ErrLostSync once each time it has to
// discard garbage before finding the next page boundary; the caller should
// simply call PageOut again after ErrLostSync.
func (s *Sync) PageOut() (*Page, error) {
	for {
		p, n := s.seek()
		switch {
		case p != nil:
			s.unsynced = false
			return p, nil
		case n == 0:
			return nil, ErrNeedMore
		case !s.unsynced:
			s.unsynced = true
			return nil, ErrLostSync
		}
	}
}

// seek tries to frame a page at the current position. It returns the page,
// or nil with the number of bytes it skipped over (0 when it needs more).
func (s *Sync) seek() (*Page, int) {
	b := s.data[s.returned:s.fill]
	p, size, err := ParsePage(b)
	if err == nil {
		s.returned += size
		return p, size
	}
	if errors.Is(err, ErrNeedMore) && (!s.eof || len(b) == 0) {
		return nil, 0
	}

	skip := len(b)
	if i := bytes.IndexByte(b[1:], capturePattern[0]); i >= 0 {
		skip = i + 1
	}
	s.returned += skip
	s.skipped += skip
	return nil, skip
}

// Flush marks the end of input. From then on a truncated page candidate is
// garbage: PageOut skips past it and keeps framing the bytes behind it
// instead of waiting for data that will never come.
func (s *Sync) Flush() { s.eof = true }

// Reset drops all buffered data and clears Flush.
func (s *Sync) Reset() {
	s.fill = 0
	s.returned = 0
	s.unsynced = false
	s.eof = false
}
