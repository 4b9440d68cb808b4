// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/oggopus/audio"
	"github.com/ik5/oggopus/utils"
)

// go-mp3 always produces 16-bit little-endian stereo.
const (
	channels   = 2
	frameBytes = 2 * channels
)

var ErrNotMP3File = errors.New("not an MP3 file")

// pcmReader is the part of go-mp3's Decoder the source needs.
type pcmReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type mp3Source struct {
	dec  pcmReader
	rate int
	buf  []byte
	// carry holds a trailing partial sample frame between reads.
	carry []byte
	err   error
}

func newSource(dec pcmReader) *mp3Source {
	return &mp3Source{
		dec:  dec,
		rate: dec.SampleRate(),
		buf:  make([]byte, 8192),
	}
}

func (s *mp3Source) SampleRate() int { return s.rate }
func (s *mp3Source) Channels() int   { return channels }
func (s *mp3Source) Close() error    { return nil }
func (s *mp3Source) BufSize() int    { return len(s.buf) / 2 }

func (s *mp3Source) ReadSamples(dst []float32) (int, error) {
	dst = dst[:len(dst)-len(dst)%channels]
	if len(dst) == 0 {
		return 0, nil
	}
	if s.err != nil {
		return 0, s.err
	}

	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	buf := s.buf[:need]
	k := copy(buf, s.carry)
	s.carry = s.carry[:0]

	for k < frameBytes && s.err == nil {
		n, err := s.dec.Read(buf[k:])
		k += n
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.err = io.EOF
			} else {
				s.err = fmt.Errorf("%w", err)
			}
		}
		if n == 0 && err == nil {
			break
		}
	}

	whole := k - k%frameBytes
	s.carry = append(s.carry, buf[whole:k]...)
	n := utils.DecodePCM16(dst, buf[:whole])
	if n == 0 {
		return 0, s.err
	}
	return n, nil
}

// Decoder reads MPEG-1/2 Layer III files. The output is always stereo;
// mono files are duplicated onto both channels by go-mp3.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}
	return newSource(dec), nil
}
