// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/oggopus/audio"
	"github.com/ik5/oggopus/utils"
)

const readChunk = 4096

// source streams the PCM of a StreamDecoder as float32 samples, pulling
// more encoded bytes from r as needed.
type source struct {
	r   io.Reader
	dec *StreamDecoder
	buf []byte
	eof bool
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.dec.Channels() }
func (s *source) BufSize() int    { return readChunk }
func (s *source) Close() error    { return s.dec.Close() }

// fill reads from r until at least want PCM bytes are ready or r is
// exhausted.
func (s *source) fill(want int) error {
	for !s.eof && len(s.dec.PCM()) < want {
		n, err := s.r.Read(s.buf)
		if n > 0 {
			if _, werr := s.dec.Write(s.buf[:n]); werr != nil {
				return werr
			}
		}
		if errors.Is(err, io.EOF) {
			s.eof = true
			return s.dec.Finish()
		}
		if err != nil {
			return fmt.Errorf("%w", err)
		}
	}
	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	dst = dst[:len(dst)-len(dst)%s.Channels()]
	if len(dst) == 0 {
		return 0, audio.ErrInvalidDstSize
	}

	if err := s.fill(len(dst) * 2); err != nil {
		return 0, err
	}
	pcm := s.dec.TakePCM(len(dst) * 2)
	if len(pcm) == 0 {
		return 0, io.EOF
	}
	return utils.DecodePCM16(dst, pcm), nil
}

// Decoder adapts StreamDecoder to audio.Decoder so Ogg Opus can sit in an
// audio.Registry next to the other formats.
type Decoder struct {
	Options []Option
}

// Decode reads until the first decoded samples are available and returns a
// source that decodes the rest on demand.
func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := NewStreamDecoder(d.Options...)
	if err != nil {
		return nil, err
	}

	s := &source{r: r, dec: dec, buf: make([]byte, readChunk)}
	if err := s.fill(1); err != nil {
		_ = dec.Close()
		return nil, err
	}
	if dec.Channels() == 0 {
		_ = dec.Close()
		return nil, fmt.Errorf("%w: no opus stream found", ErrInvalidState)
	}
	return s, nil
}
