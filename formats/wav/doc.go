// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes 16-bit PCM WAV files.
//
// Output is what the Opus decoder produces: 16-bit little-endian PCM behind
// the canonical 44-byte header. Input goes through github.com/go-audio/wav
// so real-world files with extra chunks can be encoded.
//
// # Writing
//
// NewHeader builds the 44-byte RIFF/WAVE header for a block of PCM;
// WritePCM16 and WriteWAV16 write a whole file:
//
//	h := wav.NewHeader(len(pcm), 48000, 2)
//	err := wav.WritePCM16(w, 48000, 2, pcm)
//
//	// or from samples
//	err = wav.WriteWAV16(w, 16000, 1, []int16{0, 1200, -1200})
//
// The writers need only an io.Writer, so a file can be streamed to a pipe
// or a network connection. The data length must be known up front.
//
// # Header Layout
//
// All header fields are little-endian:
//
//	offset  size  field
//	 0      4     "RIFF"
//	 4      4     data length + 36
//	 8      4     "WAVE"
//	12      4     "fmt "
//	16      4     16
//	20      2     1 (linear PCM)
//	22      2     channels
//	24      4     sample rate
//	28      4     sample rate * channels * 2
//	32      2     channels * 2
//	34      2     16
//	36      4     "data"
//	40      4     data length
//
// WritePCM16 rejects PCM whose length is not a whole number of sample
// frames with ErrOddPCMLength.
//
// # Reading
//
// Decoder parses input with github.com/go-audio/wav and returns an
// audio.Source of float32 samples in [-1, 1). Only 16-bit linear PCM is
// accepted; chunks other than "fmt " and "data" are skipped.
//
//	src, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrOnlyPCM16bitSupported) {
//	    // 8/24/32-bit or float file
//	}
//
// Files that are not RIFF/WAVE fail with ErrNotWavFile, and headers with
// no channels or no sample rate with ErrUnsupportedWavLayout.
//
// # Round Trip
//
// Decoding an Opus file to WAV and encoding the WAV again is how the
// command line tool chains conversions:
//
//	oggopus decode in.opus tmp.wav
//	oggopus encode --bitrate 32000 tmp.wav out.opus
package wav
