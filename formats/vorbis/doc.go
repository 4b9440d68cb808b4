// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files into an audio.Source.
//
// The bitstream is decoded by github.com/jfreymuth/oggvorbis, a pure Go
// implementation, so no C library is needed. This package adapts its
// float32 output to audio.Source.
//
// # Supported Formats
//
// The decoder supports:
//   - Ogg Vorbis I streams
//   - Any channel count and sample rate the stream declares
//   - Files read from any io.Reader; seeking is not required
//
// # Decoding Vorbis Files
//
// Use the Decoder to open a file:
//
//	file, _ := os.Open("music.ogg")
//	defer file.Close()
//
//	source, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    // errors.Is(err, vorbis.ErrNotVorbisFile)
//	}
//
//	buf := make([]float32, source.BufSize())
//	for {
//	    n, err := source.ReadSamples(buf)
//	    process(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	}
//
// ReadSamples returns the number of interleaved values written, always a
// multiple of Channels. A buffer shorter than one sample frame is rejected
// with audio.ErrInvalidDstSize.
//
// # Output Format
//
// Vorbis decoder output:
//   - Sample format: float32, nominally in [-1.0, 1.0]
//   - Channels: as declared by the identification header
//   - Sample rate: as declared by the identification header
//
// Vorbis is a floating point codec, so decoded peaks can slightly exceed
// full scale. Conversion to 16-bit PCM clamps them.
//
// # Ogg Files With Other Codecs
//
// The ".ogg" extension is shared by Vorbis, Opus and other codecs. This
// decoder only understands Vorbis and rejects anything else with
// ErrNotVorbisFile. oggopus.OggDecoder looks at the first packet of the
// file and picks this package or the opus package accordingly:
//
//	dec, _ := oggopus.DefaultRegistry().ForPath("unknown.ogg")
//	source, err := dec.Decode(file)
//
// # Transcoding to Opus
//
// Vorbis files at an Opus rate (8, 12, 16, 24 or 48 kHz) can be encoded
// directly. Files with more than two channels are folded to mono:
//
//	out, _ := os.Create("music.opus")
//	_, err = oggopus.EncodeSource(out, source, oggopus.EncodeConfig{})
//
// # Errors
//
// Errors are sticky: once ReadSamples has returned an error, including
// io.EOF, every later call returns it again.
//
// # Limitations
//
// Note:
//   - Decoding only
//   - Comments (artist, title) are not exposed
package vorbis
