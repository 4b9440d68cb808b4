// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/oggopus/audio"
)

// mockReader decodes a fixed sample slice, returning whole frames.
type mockReader struct {
	channels int
	samples  []float32
	err      error
}

func (m *mockReader) SampleRate() int { return 44100 }
func (m *mockReader) Channels() int   { return m.channels }

func (m *mockReader) Read(p []float32) (int, error) {
	if len(m.samples) == 0 {
		if m.err != nil {
			return 0, m.err
		}
		return 0, io.EOF
	}
	n := copy(p[:len(p)-len(p)%m.channels], m.samples)
	m.samples = m.samples[n:]
	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for name, data := range map[string][]byte{
		"empty": nil,
		"text":  []byte("This is not Vorbis data"),
		"opus":  []byte("OggS\x00\x02\x00\x00\x00\x00\x00\x00\x00\x00"),
	} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); !errors.Is(err, ErrNotVorbisFile) {
			t.Errorf("%s: Decode() error = %v, want ErrNotVorbisFile", name, err)
		}
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	samples := make([]float32, 1000)
	for i := range samples {
		samples[i] = float32(i) / 1000
	}
	s := newSource(&mockReader{channels: 2, samples: samples})
	if s.SampleRate() != 44100 || s.Channels() != 2 {
		t.Fatalf("source is %d Hz x %d", s.SampleRate(), s.Channels())
	}

	var got []float32
	dst := make([]float32, 333)
	for {
		n, err := s.ReadSamples(dst)
		got = append(got, dst[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if n%2 != 0 {
			t.Fatalf("ReadSamples() = %d, not whole frames", n)
		}
	}
	if len(got) != len(samples) {
		t.Fatalf("read %d samples, want %d", len(got), len(samples))
	}
	for i := range samples {
		if got[i] != samples[i] {
			t.Fatalf("sample %d = %v, want %v", i, got[i], samples[i])
		}
	}
}

func TestSource_Errors(t *testing.T) {
	t.Parallel()

	s := newSource(&mockReader{channels: 2, err: io.ErrUnexpectedEOF})
	if n, err := s.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v", n, err)
	}
	if _, err := s.ReadSamples(make([]float32, 1)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples(1) error = %v, want ErrInvalidDstSize", err)
	}
	for range 2 {
		if _, err := s.ReadSamples(make([]float32, 8)); !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("ReadSamples() error = %v, want ErrUnexpectedEOF", err)
		}
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]float32, 4096)
	dst := make([]float32, 4096)

	for b.Loop() {
		s := newSource(&mockReader{channels: 2, samples: samples})
		_, _ = s.ReadSamples(dst)
	}
}
