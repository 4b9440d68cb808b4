// SPDX-License-Identifier: EPL-2.0

// Package audio defines the sample stream shared by every input format and
// the small processors that sit between a decoder and the Opus encoder.
//
// # Source Interface
//
// A Source yields interleaved float32 samples in [-1, 1]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadSamples returns io.EOF once the stream is exhausted, possibly together
// with the last samples.
//
// # Channel Mixing
//
// MonoMixer folds any number of channels into one by averaging:
//
//	mono := audio.NewMonoMixer(src)
//
// # PCM Bytes
//
// The Ogg Opus encoder takes 16-bit little-endian PCM. PCM16Reader turns a
// Source into an io.Reader of exactly that, quantizing each sample:
//
//	r := audio.NewPCM16Reader(src)
//	_, err := io.Copy(encoder, r)
//
// # Format Registry
//
// A Registry maps file extensions to decoders:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	dec, err := reg.ForPath("speech.wav")
//
// Lookups are case-insensitive. ForPath fails with ErrUnknownFormat when no
// decoder claims the extension.
package audio
