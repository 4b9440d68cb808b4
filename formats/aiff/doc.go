// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF files into an audio.Source.
//
// Chunk parsing and sample extraction are done by github.com/go-audio/aiff.
// This package checks the format, scales the integer samples to float32
// and presents the result as an audio.Source.
//
// # Supported Formats
//
// The decoder supports:
//   - AIFF with 8, 16, 24 or 32-bit signed integer samples
//   - Mono, stereo and multi-channel files
//   - Any sample rate in the COMM chunk
//
// Other bit depths are rejected. Compressed AIFF-C data is not decoded.
//
// # Decoding AIFF Files
//
// Use the Decoder to open a file:
//
//	file, _ := os.Open("take1.aiff")
//	defer file.Close()
//
//	source, err := aiff.Decoder{}.Decode(file)
//	switch {
//	case errors.Is(err, aiff.ErrNotAiffFile):
//	    // No FORM/AIFF header
//	case errors.Is(err, aiff.ErrUnsupportedBitDepth):
//	    // 12-bit, 20-bit, ...
//	case errors.Is(err, aiff.ErrUnsupportedAiffLayout):
//	    // No channels or no sample rate
//	}
//
//	buf := make([]float32, source.BufSize())
//	n, err := source.ReadSamples(buf)
//
// # Sample Scaling
//
// An integer sample s of bit depth b becomes s / 2^(b-1):
//
//	 8-bit: s / 128
//	16-bit: s / 32768
//	24-bit: s / 8388608
//	32-bit: s / 2147483648
//
// The result lies in [-1.0, 1.0). Writing it back as 16-bit PCM through
// utils.Float32ToInt16 is lossless for 8 and 16-bit input.
//
// # Seeking
//
// go-audio jumps between the COMM and SSND chunks, so it needs an
// io.ReadSeeker. An *os.File is used as is. Any other io.Reader is read
// into memory first, which is fine for clips but not for hour-long
// recordings.
//
// # Encoding to Opus
//
// AIFF files at an Opus rate can be encoded directly:
//
//	out, _ := os.Create("take1.opus")
//	_, err = oggopus.EncodeSource(out, source, oggopus.EncodeConfig{Mono: true})
//
// Recording equipment often writes 44.1 kHz, which has to be resampled
// elsewhere before encoding.
//
// # Errors
//
// ReadSamples returns io.EOF once the SSND chunk is exhausted and keeps
// returning it afterwards.
//
// # Limitations
//
// Note:
//   - Decoding only
//   - AIFF-C (compressed or float) is not supported
//   - Markers, instrument and comment chunks are ignored
package aiff
