// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"errors"
	"io"
	"slices"
	"sync"
	"testing"

	"github.com/ik5/oggopus/audio"
)

type nopDecoder struct{ name string }

func (nopDecoder) Decode(io.Reader) (audio.Source, error) { return nil, nil }

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := audio.NewRegistry()
	r.Register("WAV", nopDecoder{"wav"})
	r.Register("opus", nopDecoder{"opus"})
	r.Register("ogg", nopDecoder{"ogg"})

	if got, want := r.Formats(), []string{"ogg", "opus", "wav"}; !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
	if d, ok := r.Get("wav"); !ok || d.(nopDecoder).name != "wav" {
		t.Errorf("Get(wav) = %v, %v", d, ok)
	}
	if _, ok := r.Get("flac"); ok {
		t.Error("Get(flac) found a decoder")
	}
}

func TestRegistry_ForPath(t *testing.T) {
	t.Parallel()

	r := audio.NewRegistry()
	r.Register("wav", nopDecoder{"wav"})
	r.Register("opus", nopDecoder{"opus"})

	tests := []struct {
		path    string
		want    string
		wantErr error
	}{
		{"speech.wav", "wav", nil},
		{"/tmp/Music.OPUS", "opus", nil},
		{"archive.tar.wav", "wav", nil},
		{"song.flac", "", audio.ErrUnknownFormat},
		{"README", "", audio.ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			d, err := r.ForPath(tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ForPath() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && d.(nopDecoder).name != tt.want {
				t.Errorf("ForPath() = %v, want %s", d, tt.want)
			}
		})
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	t.Parallel()

	r := audio.NewRegistry()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Go(func() {
			name := string(rune('a' + i))
			r.Register(name, nopDecoder{name})
			_, _ = r.Get(name)
			_ = r.Formats()
		})
	}
	wg.Wait()

	if n := len(r.Formats()); n != 16 {
		t.Errorf("registered %d formats, want 16", n)
	}
}
