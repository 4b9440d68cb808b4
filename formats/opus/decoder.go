// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"bytes"
	"errors"
	"fmt"
	"log"

	"github.com/ik5/oggopus/formats/wav"
	"github.com/ik5/oggopus/ogg"
)

// State is the position of a StreamDecoder within the current logical
// stream.
type State int

const (
	AwaitingFirstStream State = iota
	ReadingIdentification
	ReadingComment
	ReadingAudio
	StreamClosed
)

func (s State) String() string {
	switch s {
	case AwaitingFirstStream:
		return "awaiting-first-stream"
	case ReadingIdentification:
		return "reading-identification"
	case ReadingComment:
		return "reading-comment"
	case ReadingAudio:
		return "reading-audio"
	case StreamClosed:
		return "stream-closed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// maxFrameSamples is 120 ms at 48 kHz, the longest Opus packet.
const maxFrameSamples = 5760

// Link describes one decoded logical stream of a chained file.
type Link struct {
	Serial  int32
	Head    IdentificationHeader
	Tags    CommentHeader
	Samples int64
}

// StreamDecoder turns an Ogg Opus byte stream, fed in chunks of any size,
// into 16-bit little-endian PCM.
//
// Chained streams are decoded one after another into the same output. Other
// logical streams multiplexed alongside the Opus one are skipped. Damaged
// pages are skipped too; malformed headers, codec failures and granule
// positions that go backwards abort decoding.
type StreamDecoder struct {
	opts options
	log  *log.Logger

	sync  *ogg.Sync
	demux *ogg.Demuxer

	state State
	cur   StreamState
	codec FrameDecoder
	trim  *SampleTrimmer
	fbuf  []float32

	rate     int
	channels int
	links    []Link
	ignored  map[int32]bool

	pcm []byte
	err error
}

// NewStreamDecoder returns a decoder waiting for its first stream.
func NewStreamDecoder(opts ...Option) (*StreamDecoder, error) {
	o := buildOptions(opts)
	if o.outputRate != 0 && !isNativeRate(o.outputRate) {
		return nil, fmt.Errorf("%w: unsupported output rate %d", ErrBadArgument, o.outputRate)
	}
	if o.chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d", ErrBadArgument, o.chunkSize)
	}
	if o.newDecoder == nil {
		return nil, fmt.Errorf("%w: no decoder factory", ErrBadArgument)
	}

	return &StreamDecoder{
		opts:    o,
		log:     o.logger,
		sync:    ogg.NewSync(),
		demux:   ogg.NewDemuxer(),
		ignored: make(map[int32]bool),
	}, nil
}

// Write feeds encoded bytes. Complete pages are decoded right away. After a
// fatal error every call returns that error.
func (d *StreamDecoder) Write(p []byte) (int, error) {
	if d.err != nil {
		return 0, d.err
	}

	written := 0
	for len(p) > 0 {
		n := min(len(p), d.opts.chunkSize)
		copy(d.sync.Buffer(n), p[:n])
		if err := d.sync.Wrote(n); err != nil {
			return written, d.fail(fmt.Errorf("%w: %w", ErrInternal, err))
		}
		p = p[n:]
		written += n

		if err := d.pump(); err != nil {
			return written, d.fail(err)
		}
	}
	return written, nil
}

func (d *StreamDecoder) fail(err error) error {
	d.err = classify(err)
	d.release()
	return d.err
}

func (d *StreamDecoder) pump() error {
	for {
		page, err := d.sync.PageOut()
		switch {
		case errors.Is(err, ogg.ErrNeedMore):
			return nil
		case errors.Is(err, ogg.ErrLostSync):
			d.log.Printf("opus: lost sync, skipping to the next page")
			continue
		case err != nil:
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}

		if err := d.page(page); err != nil {
			return err
		}
	}
}

func (d *StreamDecoder) page(p *ogg.Page) error {
	current := d.state != AwaitingFirstStream && p.Serial == d.cur.Serial

	packets, err := d.demux.PageIn(p)
	switch {
	case err == nil:
	case errors.Is(err, ogg.ErrGranuleRegression) && current && d.state != StreamClosed:
		return fmt.Errorf("%w: stream %d: %w", ErrInvalidPacket, p.Serial, err)
	default:
		d.log.Printf("opus: dropping page %d of stream %d: %v", p.Sequence, p.Serial, err)
		return nil
	}

	if p.GranulePos != -1 && p.Serial == d.cur.Serial {
		d.cur.Granule = p.GranulePos
	}

	for i, pkt := range packets {
		// A header packet has to end its page: nothing may follow it, and
		// the page may not carry the start of another packet.
		alone := i == len(packets)-1 && p.Segments[len(p.Segments)-1] != 255
		if err := d.packet(p, pkt, alone); err != nil {
			return err
		}
	}
	return nil
}

// packet is the single transition function of the decoder state machine.
func (d *StreamDecoder) packet(p *ogg.Page, pkt ogg.Packet, alone bool) error {
	if pkt.BOS && IsIdentificationHeader(pkt.Data) {
		if d.state == ReadingAudio {
			d.closeLink()
		}
		switch d.state {
		case AwaitingFirstStream, StreamClosed:
			if len(d.links) > 0 && p.Serial == d.cur.Serial {
				return fmt.Errorf("%w: chained stream reuses serial number %d", ErrInternal, p.Serial)
			}
			d.cur = StreamState{Serial: p.Serial, Granule: p.GranulePos}
			d.state = ReadingIdentification
		default:
			if !d.ignored[p.Serial] {
				d.ignored[p.Serial] = true
				d.log.Printf("opus: ignoring opus stream %d", p.Serial)
			}
		}
	}

	if p.Serial != d.cur.Serial || d.state == AwaitingFirstStream || d.state == StreamClosed {
		return nil
	}

	switch d.state {
	case ReadingIdentification:
		head, err := ParseIdentificationHeader(pkt.Data)
		if err != nil {
			return err
		}
		if !alone {
			return fmt.Errorf("%w: extra packets on identification page", ErrInvalidPacket)
		}
		if err := d.openLink(head); err != nil {
			return err
		}
		d.state = ReadingComment

	case ReadingComment:
		tags, err := ParseCommentHeader(pkt.Data)
		if err != nil {
			return err
		}
		if !alone {
			return fmt.Errorf("%w: extra packets on comment page", ErrInvalidPacket)
		}
		d.links[len(d.links)-1].Tags = *tags
		d.state = ReadingAudio

	case ReadingAudio:
		if err := d.audio(pkt); err != nil {
			return err
		}
		if pkt.EOS {
			d.closeLink()
		}
	}

	d.cur.PacketNo++
	return nil
}

func (d *StreamDecoder) openLink(head *IdentificationHeader) error {
	if head.Streams() != 1 {
		return fmt.Errorf("%w: %d elementary streams", ErrUnimplemented, head.Streams())
	}
	channels := int(head.Channels)
	if channels > 2 {
		return fmt.Errorf("%w: %d channels", ErrUnimplemented, channels)
	}

	if len(d.links) == 0 {
		d.rate = d.opts.outputRate
		if d.rate == 0 {
			d.rate = DefaultOutputRate
			if r := int(head.InputRate); r >= 8000 && r <= 192000 && isNativeRate(r) {
				d.rate = r
			}
		}
		d.channels = channels
	} else if channels != d.channels {
		return fmt.Errorf("%w: chained stream changes channel count from %d to %d", ErrUnimplemented, d.channels, channels)
	}

	codec, err := d.opts.newDecoder(d.rate, channels)
	if err != nil {
		return classify(err)
	}
	d.codec = codec
	d.trim = NewSampleTrimmer(d.rate, channels, head.PreSkip)
	if need := maxFrameSamples * d.rate / GranuleRate * channels; len(d.fbuf) < need {
		d.fbuf = make([]float32, need)
	}

	d.cur.Started = true
	d.links = append(d.links, Link{Serial: d.cur.Serial, Head: *head})
	d.log.Printf("opus: stream %d: %d channel(s), pre-skip %d, decoding at %d Hz",
		d.cur.Serial, channels, head.PreSkip, d.rate)
	return nil
}

func (d *StreamDecoder) audio(pkt ogg.Packet) error {
	n, err := d.codec.DecodeFloat32(pkt.Data, d.fbuf)
	if err != nil {
		return fmt.Errorf("%w: packet %d: %w", ErrInternal, d.cur.PacketNo, err)
	}
	if n < 0 || n*d.channels > len(d.fbuf) {
		return fmt.Errorf("%w: codec returned %d samples", ErrInternal, n)
	}

	var out int
	d.pcm, out = d.trim.Append(d.pcm, d.fbuf[:n*d.channels], n, d.cur.Granule)
	d.links[len(d.links)-1].Samples += int64(out)
	return nil
}

func (d *StreamDecoder) closeLink() {
	if d.state == AwaitingFirstStream || d.state == StreamClosed {
		return
	}
	d.release()
	d.state = StreamClosed
}

func (d *StreamDecoder) release() {
	if d.codec == nil {
		return
	}
	if err := releaseCodec(d.codec); err != nil {
		d.log.Printf("opus: releasing codec: %v", err)
	}
	d.codec = nil
}

// Finish ends decoding. Pages still buffered behind a truncated one are
// decoded first. It fails with ErrInvalidState when no Opus stream was found.
func (d *StreamDecoder) Finish() error {
	if d.err != nil {
		return d.err
	}
	d.sync.Flush()
	if err := d.pump(); err != nil {
		return d.fail(err)
	}
	if len(d.links) == 0 {
		return d.fail(fmt.Errorf("%w: no opus stream found", ErrInvalidState))
	}
	if d.state == ReadingIdentification || d.state == ReadingComment {
		return d.fail(fmt.Errorf("%w: stream %d ended inside its headers", ErrInvalidPacket, d.cur.Serial))
	}
	d.closeLink()
	return nil
}

// Close releases the codec. It is safe to call more than once.
func (d *StreamDecoder) Close() error {
	d.release()
	if d.state != AwaitingFirstStream {
		d.state = StreamClosed
	}
	return nil
}

func (d *StreamDecoder) State() State { return d.state }

// SampleRate and Channels describe the PCM output. Both are 0 until the
// first identification header has been read.
func (d *StreamDecoder) SampleRate() int { return d.rate }
func (d *StreamDecoder) Channels() int   { return d.channels }

// Links lists the logical streams decoded so far.
func (d *StreamDecoder) Links() []Link {
	return append([]Link(nil), d.links...)
}

// Head and Tags return the headers of the most recent stream. ok is false
// before the first identification header has been read.
func (d *StreamDecoder) Head() (head IdentificationHeader, ok bool) {
	if len(d.links) == 0 {
		return head, false
	}
	return d.links[len(d.links)-1].Head, true
}

func (d *StreamDecoder) Tags() (tags CommentHeader, ok bool) {
	if len(d.links) == 0 || d.state == ReadingComment {
		return tags, false
	}
	return d.links[len(d.links)-1].Tags, true
}

// PCM returns all decoded samples not yet taken.
func (d *StreamDecoder) PCM() []byte { return d.pcm }

// TakePCM removes and returns up to n bytes of decoded samples, always a
// whole number of sample frames. n < 0 takes everything.
func (d *StreamDecoder) TakePCM(n int) []byte {
	if n < 0 || n > len(d.pcm) {
		n = len(d.pcm)
	}
	if frame := d.channels * 2; frame > 0 {
		n -= n % frame
	}
	out := bytes.Clone(d.pcm[:n])
	d.pcm = d.pcm[:copy(d.pcm, d.pcm[n:])]
	return out
}

// WAV returns the untaken PCM wrapped in a 44-byte WAVE header.
func (d *StreamDecoder) WAV() []byte {
	out := make([]byte, 0, wav.HeaderSize+len(d.pcm))
	out = append(out, wav.NewHeader(len(d.pcm), d.rate, d.channels)...)
	return append(out, d.pcm...)
}

// DecodeToWAV decodes a complete Ogg Opus file held in memory and returns it
// as a WAV file.
func DecodeToWAV(data []byte, opts ...Option) ([]byte, error) {
	d, err := NewStreamDecoder(opts...)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	if _, err := d.Write(data); err != nil {
		return nil, err
	}
	if err := d.Finish(); err != nil {
		return nil, err
	}
	return d.WAV(), nil
}
