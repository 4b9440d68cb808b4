// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"log"
	"time"

	"github.com/ik5/oggopus/ogg"
)

// EncoderConfig holds the mandatory encoder parameters.
type EncoderConfig struct {
	// PCMRate is the rate of the PCM handed to Encode. It must equal
	// OpusRate; there is no resampling.
	PCMRate     int
	OpusRate    int
	Channels    int
	Application Application
}

var frameDurations = []time.Duration{
	2500 * time.Microsecond,
	5 * time.Millisecond,
	10 * time.Millisecond,
	20 * time.Millisecond,
	40 * time.Millisecond,
	60 * time.Millisecond,
}

// Encoder turns 16-bit little-endian interleaved PCM into an Ogg Opus
// bitstream.
//
// Encode buffers PCM and queues one packet per complete frame. Bitstream
// returns the pages assembled so far, and EndStream pads and encodes what is
// left, marks the end of the stream and returns the final pages.
type Encoder struct {
	cfg  EncoderConfig
	opts options
	log  *log.Logger

	head   IdentificationHeader
	codec  FrameEncoder
	state  StreamState
	frames *FrameAccumulator
	pkts   *PacketFactory
	stream *ogg.Stream

	cache  []byte
	ended  bool
	closed bool
	// err is the first codec or paging failure. PCM already handed over is
	// lost by then, so it is returned from every later call.
	err error
}

// NewEncoder validates cfg, creates the codec and queues the identification
// and comment header pages.
func NewEncoder(cfg EncoderConfig, opts ...Option) (*Encoder, error) {
	o := buildOptions(opts)

	if cfg.PCMRate != cfg.OpusRate {
		return nil, fmt.Errorf("%w: pcm rate %d differs from opus rate %d, resampling is not supported",
			ErrBadArgument, cfg.PCMRate, cfg.OpusRate)
	}
	if !isNativeRate(cfg.OpusRate) {
		return nil, fmt.Errorf("%w: unsupported sample rate %d", ErrBadArgument, cfg.OpusRate)
	}
	if cfg.Channels < 1 || cfg.Channels > 2 {
		return nil, fmt.Errorf("%w: unsupported channel count %d", ErrBadArgument, cfg.Channels)
	}
	if !ValidFrameDuration(o.frameDuration) {
		return nil, fmt.Errorf("%w: unsupported frame duration %v", ErrBadArgument, o.frameDuration)
	}
	if o.newEncoder == nil {
		return nil, fmt.Errorf("%w: no encoder factory", ErrBadArgument)
	}

	serial := o.serial
	if !o.serialSet {
		if err := binary.Read(rand.Reader, binary.LittleEndian, &serial); err != nil {
			return nil, fmt.Errorf("%w: serial number: %w", ErrInternal, err)
		}
	}

	codec, err := o.newEncoder(CodecConfig{
		SampleRate:     cfg.OpusRate,
		Channels:       cfg.Channels,
		Application:    cfg.Application,
		Bitrate:        o.bitrate,
		Complexity:     o.complexity,
		MaxBandwidth:   o.maxBandwidth,
		InBandFEC:      o.inBandFEC,
		PacketLossPerc: o.packetLossPerc,
		DTX:            o.dtx,
	})
	if err != nil {
		return nil, classify(err)
	}

	frameSamples := int(int64(cfg.OpusRate) * int64(o.frameDuration) / int64(time.Second))
	e := &Encoder{
		cfg:    cfg,
		opts:   o,
		log:    o.logger,
		codec:  codec,
		state:  StreamState{Serial: serial},
		frames: NewFrameAccumulator(frameSamples * cfg.Channels * 2),
		stream: ogg.NewStream(serial),
		head: IdentificationHeader{
			Version:    HeadVersion,
			Channels:   uint8(cfg.Channels),
			PreSkip:    o.preSkip,
			InputRate:  uint32(cfg.PCMRate),
			OutputGain: o.outputGain,
		},
	}
	e.pkts = NewPacketFactory(codec, &e.state, cfg.OpusRate, cfg.Channels, frameSamples)

	if err := e.writeHeaders(); err != nil {
		_ = releaseCodec(codec)
		return nil, err
	}
	return e, nil
}

// ValidFrameDuration reports whether d is a frame length Opus can encode.
func ValidFrameDuration(d time.Duration) bool {
	for _, fd := range frameDurations {
		if fd == d {
			return true
		}
	}
	return false
}

func (e *Encoder) writeHeaders() error {
	head, err := e.head.Marshal()
	if err != nil {
		return err
	}
	vendor := e.opts.vendor
	if vendor == "" {
		vendor = LibopusVersion()
	}
	tags := CommentHeader{Vendor: vendor, Comments: e.opts.comments}

	for i, data := range [][]byte{head, tags.Marshal()} {
		err := e.stream.PacketIn(ogg.Packet{
			Data:     data,
			BOS:      i == 0,
			PacketNo: e.state.PacketNo,
		})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}
		e.state.PacketNo++
		e.assemble(true, 0)
	}
	e.state.Started = true
	e.log.Printf("opus: stream %d: %d Hz, %d channel(s), %d samples per frame",
		e.state.Serial, e.cfg.OpusRate, e.cfg.Channels, e.pkts.frameSamples)
	return nil
}

// Encode queues pcm, 16-bit little-endian samples interleaved by channel.
// Its length must be a whole number of sample frames. After a codec failure
// every call returns that error.
func (e *Encoder) Encode(pcm []byte) error {
	if e.err != nil {
		return e.err
	}
	if e.ended || e.closed {
		return fmt.Errorf("%w: stream already ended", ErrInvalidState)
	}
	if frame := e.cfg.Channels * 2; len(pcm)%frame != 0 {
		return fmt.Errorf("%w: %d bytes is not a multiple of %d-byte sample frames", ErrBadArgument, len(pcm), frame)
	}

	samples := e.pkts.frameSamples
	err := e.frames.Write(pcm, func(frame []byte) error {
		p, err := e.pkts.Packet(frame, samples, false)
		if err != nil {
			return err
		}
		if err := e.stream.PacketIn(p); err != nil {
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		e.err = err
	}
	return err
}

// Write implements io.Writer on top of Encode.
func (e *Encoder) Write(p []byte) (int, error) {
	if err := e.Encode(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Bitstream returns the pages produced since the previous call. With flush
// set every queued packet is put on a page, otherwise only full pages are
// cut. fill overrides the page fill threshold when positive.
func (e *Encoder) Bitstream(flush bool, fill int) []byte {
	e.assemble(flush, fill)
	out := e.cache
	e.cache = nil
	return out
}

// EndStream encodes the buffered tail padded with silence as the final
// packet and returns every remaining page. The granule position only
// accounts for the real samples, so decoders trim the padding.
func (e *Encoder) EndStream(fill int) ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.ended || e.closed {
		return nil, fmt.Errorf("%w: stream already ended", ErrInvalidState)
	}

	frame, n := e.frames.Pad()
	p, err := e.pkts.Packet(frame, n/(e.cfg.Channels*2), true)
	if err != nil {
		e.err = err
		return nil, err
	}
	if err := e.stream.PacketIn(p); err != nil {
		e.err = fmt.Errorf("%w: %w", ErrInternal, err)
		return nil, e.err
	}
	e.ended = true
	e.log.Printf("opus: stream %d ended at granule %d", e.state.Serial, e.state.Granule)

	return e.Bitstream(true, fill), nil
}

func (e *Encoder) assemble(flush bool, fill int) {
	if fill <= 0 {
		fill = ogg.DefaultFill
	}
	for {
		var (
			p  *ogg.Page
			ok bool
		)
		if flush {
			p, ok = e.stream.FlushFill(fill)
		} else {
			p, ok = e.stream.PageOutFill(fill)
		}
		if !ok {
			return
		}
		// Pages built by ogg.Stream always have consistent lacing.
		e.cache, _ = p.AppendTo(e.cache)
	}
}

// Head returns the identification header written to the stream.
func (e *Encoder) Head() IdentificationHeader { return e.head }

func (e *Encoder) Serial() int32 { return e.state.Serial }

// Granule is the granule position of the last queued packet.
func (e *Encoder) Granule() int64 { return e.state.Granule }

// FrameSamples is the number of samples per channel in each frame.
func (e *Encoder) FrameSamples() int { return e.pkts.frameSamples }

// Close releases the codec. It is safe to call more than once.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	return releaseCodec(e.codec)
}
