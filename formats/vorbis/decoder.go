// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/oggopus/audio"
	"github.com/jfreymuth/oggvorbis"
)

var ErrNotVorbisFile = errors.New("not an Ogg Vorbis file")

// sampleReader is the part of oggvorbis.Reader the source needs. Read
// returns the number of interleaved values decoded.
type sampleReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type vorbisSource struct {
	dec      sampleReader
	rate     int
	channels int
	err      error
}

func newSource(dec sampleReader) *vorbisSource {
	return &vorbisSource{
		dec:      dec,
		rate:     dec.SampleRate(),
		channels: dec.Channels(),
	}
}

func (s *vorbisSource) SampleRate() int { return s.rate }
func (s *vorbisSource) Channels() int   { return s.channels }
func (s *vorbisSource) Close() error    { return nil }
func (s *vorbisSource) BufSize() int    { return 4096 }

func (s *vorbisSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	dst = dst[:len(dst)-len(dst)%s.channels]
	if len(dst) == 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if s.err != nil {
		return 0, s.err
	}

	n, err := s.dec.Read(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			s.err = io.EOF
		} else {
			s.err = fmt.Errorf("%w", err)
		}
	}
	if n == 0 {
		return 0, s.err
	}
	return n, nil
}

// Decoder reads Ogg Vorbis files.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}
	return newSource(dec), nil
}
