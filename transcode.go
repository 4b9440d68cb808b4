// SPDX-License-Identifier: EPL-2.0

package oggopus

import (
	"fmt"
	"io"

	"github.com/ik5/oggopus/audio"
	"github.com/ik5/oggopus/formats/aiff"
	"github.com/ik5/oggopus/formats/mp3"
	"github.com/ik5/oggopus/formats/opus"
	"github.com/ik5/oggopus/formats/wav"
)

// EncodeConfig controls EncodeSource.
type EncodeConfig struct {
	// Mono folds the source down to one channel before encoding. Sources
	// with more than two channels are always folded.
	Mono        bool
	Application opus.Application
}

// EncodeSource encodes src as a single Ogg Opus stream and writes the pages
// to w as they are produced. The Opus rate is the source rate, which must be
// one the codec runs at natively. It returns the number of bytes written.
func EncodeSource(w io.Writer, src audio.Source, cfg EncodeConfig, opts ...opus.Option) (int64, error) {
	if cfg.Mono || src.Channels() > 2 {
		src = audio.NewMonoMixer(src)
	}

	enc, err := opus.NewEncoder(opus.EncoderConfig{
		PCMRate:     src.SampleRate(),
		OpusRate:    src.SampleRate(),
		Channels:    src.Channels(),
		Application: cfg.Application,
	}, opts...)
	if err != nil {
		return 0, err
	}
	defer enc.Close()

	pw := &pageWriter{enc: enc, w: w}
	if err := pw.flush(); err != nil {
		return pw.n, err
	}
	if _, err := io.Copy(pw, audio.NewPCM16Reader(src)); err != nil {
		return pw.n, fmt.Errorf("encoding: %w", err)
	}

	tail, err := enc.EndStream(0)
	if err != nil {
		return pw.n, err
	}
	return pw.n, pw.write(tail)
}

// pageWriter feeds PCM to an encoder and forwards every finished page.
type pageWriter struct {
	enc *opus.Encoder
	w   io.Writer
	n   int64
}

func (p *pageWriter) Write(pcm []byte) (int, error) {
	if err := p.enc.Encode(pcm); err != nil {
		return 0, err
	}
	if err := p.flush(); err != nil {
		return 0, err
	}
	return len(pcm), nil
}

func (p *pageWriter) flush() error {
	return p.write(p.enc.Bitstream(false, 0))
}

func (p *pageWriter) write(b []byte) error {
	n, err := p.w.Write(b)
	p.n += int64(n)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// DecodeToWAV decodes the Ogg Opus stream read from r, chained links
// included, and writes it to w as a 16-bit WAV file. It returns the number
// of bytes written.
func DecodeToWAV(w io.Writer, r io.Reader, opts ...opus.Option) (int64, error) {
	dec, err := opus.NewStreamDecoder(opts...)
	if err != nil {
		return 0, err
	}
	defer dec.Close()

	if _, err := io.Copy(dec, r); err != nil {
		return 0, fmt.Errorf("decoding: %w", err)
	}
	if err := dec.Finish(); err != nil {
		return 0, err
	}

	pcm := dec.PCM()
	if err := wav.WritePCM16(w, dec.SampleRate(), dec.Channels(), pcm); err != nil {
		return 0, err
	}
	return int64(wav.HeaderSize + len(pcm)), nil
}

// DefaultRegistry knows every input format of the module, keyed by file
// extension. opts are handed to the Opus decoder.
func DefaultRegistry(opts ...opus.Option) *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("opus", opus.Decoder{Options: opts})
	r.Register("ogg", OggDecoder{Options: opts})
	r.Register("oga", OggDecoder{Options: opts})
	return r
}
