// SPDX-License-Identifier: EPL-2.0

// Package oggopus encodes audio into Ogg Opus files and decodes them back to
// PCM.
//
// The heavy lifting lives in the subpackages:
//   - ogg: pages, CRC, lacing, page assembly, byte synchronization and
//     demultiplexing
//   - formats/opus: the OpusHead/OpusTags headers, the encoder and the
//     streaming decoder state machine
//   - formats/wav, formats/aiff, formats/mp3, formats/vorbis: input decoders
//   - audio: the Source contract, channel mixing and PCM conversion
//
// This package ties them together.
//
// # Encoding
//
// Any audio.Source at a native Opus rate (8, 12, 16, 24 or 48 kHz) can be
// encoded:
//
//	in, _ := os.Open("speech.wav")
//	src, _ := wav.Decoder{}.Decode(in)
//	out, _ := os.Create("speech.opus")
//	_, err := oggopus.EncodeSource(out, src, oggopus.EncodeConfig{Mono: true},
//	    opus.WithBitrate(24000))
//
// There is no resampling; a 44.1 kHz source is rejected with
// opus.ErrBadArgument.
//
// # Decoding
//
// DecodeToWAV turns a whole Ogg Opus file, chained streams included, into a
// 16-bit WAV file:
//
//	in, _ := os.Open("speech.opus")
//	out, _ := os.Create("speech.wav")
//	_, err := oggopus.DecodeToWAV(out, in)
//
// # Format Registry
//
// DefaultRegistry maps file extensions to decoders. ".ogg" files are
// inspected and handed to the Opus or Vorbis decoder as appropriate:
//
//	dec, err := oggopus.DefaultRegistry().ForPath(path)
//	src, err := dec.Decode(f)
package oggopus
