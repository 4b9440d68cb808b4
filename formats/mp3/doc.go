// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files into an audio.Source.
//
// Decoding is done by github.com/hajimehoshi/go-mp3. This package only
// turns its 16-bit byte stream into the float32 samples audio.Source deals
// in, so MP3 files can be fed to the Opus encoder like any other input.
//
// # Supported Formats
//
// The decoder supports:
//   - MPEG-1 and MPEG-2 Audio Layer 3
//   - Constant and variable bitrates
//   - Mono and stereo files, both decoded as stereo
//
// # Decoding MP3 Files
//
// Use the Decoder to open a file:
//
//	file, _ := os.Open("talk.mp3")
//	defer file.Close()
//
//	source, err := mp3.Decoder{}.Decode(file)
//	if errors.Is(err, mp3.ErrNotMP3File) {
//	    // Not MP3, or a damaged first frame
//	}
//	defer source.Close()
//
//	// Read interleaved samples in [-1.0, 1.0)
//	buf := make([]float32, source.BufSize())
//	n, err := source.ReadSamples(buf)
//
// ReadSamples returns a whole number of sample frames per call. Reads
// that end inside a frame of the underlying decoder keep the leftover bytes
// for the next call, so any buffer size that holds at least one sample frame
// works.
//
// # Output Format
//
// MP3 decoder output:
//   - Sample format: float32, 16-bit resolution
//   - Channels: always 2
//   - Sample rate: that of the file, commonly 44.1 kHz or 48 kHz
//
// go-mp3 duplicates the single channel of a mono file, so fold the source
// back down before encoding:
//
//	mono := audio.NewMonoMixer(source)
//
// # Encoding to Opus
//
// Opus runs at 8, 12, 16, 24 or 48 kHz and the encoder does not resample,
// so only MP3 files at one of those rates can be encoded directly:
//
//	out, _ := os.Create("talk.opus")
//	_, err = oggopus.EncodeSource(out, source, oggopus.EncodeConfig{
//	    Mono:        true,
//	    Application: opus.AppVoIP,
//	})
//
// A 44.1 kHz file makes EncodeSource fail with opus.ErrBadArgument.
//
// # Errors
//
// Decode wraps go-mp3's failure in ErrNotMP3File. Read errors after
// that are returned by ReadSamples and repeated on every later call;
// the end of the file is io.EOF.
//
// # Limitations
//
// Note:
//   - Decoding only, there is no MP3 writer
//   - Output is always stereo
//   - ID3 tags are skipped, not exposed
package mp3
