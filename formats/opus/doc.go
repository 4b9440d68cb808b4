// SPDX-License-Identifier: EPL-2.0

// Package opus encodes PCM into Ogg Opus files and decodes them back.
//
// The package owns the container side of the format: the OpusHead and
// OpusTags header packets, framing PCM into codec frames, granule position
// accounting, pre-skip and end trimming, and stream chaining. Compression
// itself is delegated to a FrameEncoder / FrameDecoder pair, by default
// libopus through gopkg.in/hraban/opus.v2.
//
// # Encoding
//
// PCM is 16-bit signed little-endian, interleaved by channel. The PCM rate
// must equal the Opus rate, which must be one of 8, 12, 16, 24 or 48 kHz:
//
//	enc, err := opus.NewEncoder(opus.EncoderConfig{
//	    PCMRate:  24000,
//	    OpusRate: 24000,
//	    Channels: 1,
//	}, opus.WithBitrate(32000))
//	if err != nil {
//	    // errors.Is(err, opus.ErrBadArgument) ...
//	}
//	defer enc.Close()
//
//	enc.Encode(pcm)
//	out.Write(enc.Bitstream(false, 0))
//	tail, err := enc.EndStream(0)
//	out.Write(tail)
//
// The identification and comment header pages are ready right after
// NewEncoder and come out of the first Bitstream call. The last frame is
// padded with silence, but the final granule position only counts the real
// samples so decoders drop the padding.
//
// # Decoding
//
// StreamDecoder accepts the file in chunks of any size:
//
//	dec, _ := opus.NewStreamDecoder()
//	defer dec.Close()
//	io.Copy(dec, file)
//	if err := dec.Finish(); err != nil {
//	    // errors.Is(err, opus.ErrInvalidState): not an Ogg Opus file
//	}
//	wavBytes := dec.WAV()
//
// DecodeToWAV does the same for a file held in memory. Decoder plugs the
// format into an audio.Registry.
//
// The decoder is an explicit state machine (see State). A new
// identification header after a complete stream starts the next link of a
// chained file; its samples are appended to the output. Reusing the serial
// number of the previous link is reported as ErrInternal. Header pages that
// carry more than their header packet, and granule positions that move
// backwards, are ErrInvalidPacket. Pages with bad checksums are skipped.
//
// # Errors
//
// Every error matches exactly one of ErrBadArgument, ErrBufferTooSmall,
// ErrInternal, ErrInvalidPacket, ErrUnimplemented, ErrInvalidState and
// ErrAllocationFailure. Kind returns its name.
package opus
