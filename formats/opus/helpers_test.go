// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"bytes"
	"testing"

	"github.com/ik5/oggopus/internal/audiotest"
	"github.com/ik5/oggopus/ogg"
)

// codecs hands out lossless fake codecs and remembers them, so tests can
// compare decoded PCM bit for bit and check that every codec is released.
type codecs struct {
	encoders []*audiotest.LosslessEncoder
	decoders []*audiotest.LosslessDecoder
	reject   *byte
	// failAfter is handed to every encoder.
	failAfter int
}

func (c *codecs) newEncoder(CodecConfig) (FrameEncoder, error) {
	e := &audiotest.LosslessEncoder{FailAfter: c.failAfter}
	c.encoders = append(c.encoders, e)
	return e, nil
}

func (c *codecs) newDecoder(_ int, channels int) (FrameDecoder, error) {
	d := &audiotest.LosslessDecoder{Channels: channels, Reject: c.reject}
	c.decoders = append(c.decoders, d)
	return d, nil
}

func (c *codecs) options(extra ...Option) []Option {
	return append([]Option{
		WithEncoderFactory(c.newEncoder),
		WithDecoderFactory(c.newDecoder),
		WithVendor("test"),
	}, extra...)
}

// encodeStream encodes pcm as one complete logical stream.
func encodeStream(t testing.TB, cfg EncoderConfig, pcm []byte, opts ...Option) []byte {
	t.Helper()

	e, err := NewEncoder(cfg, opts...)
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
	defer e.Close()

	out := e.Bitstream(false, 0)
	if err := e.Encode(pcm); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	out = append(out, e.Bitstream(false, 0)...)
	tail, err := e.EndStream(0)
	if err != nil {
		t.Fatalf("EndStream() error = %v", err)
	}
	return append(out, tail...)
}

func parsePages(t testing.TB, b []byte) []*ogg.Page {
	t.Helper()

	var pages []*ogg.Page
	for len(b) > 0 {
		p, n, err := ogg.ParsePage(b)
		if err != nil {
			t.Fatalf("ParsePage() error = %v", err)
		}
		pages = append(pages, p)
		b = b[n:]
	}
	return pages
}

// rawPage builds a page holding whole packets.
func rawPage(t *testing.T, serial int32, seq uint32, flags byte, gran int64, packets ...[]byte) []byte {
	t.Helper()

	p := &ogg.Page{HeaderType: flags, GranulePos: gran, Serial: serial, Sequence: seq}
	for _, data := range packets {
		p.Segments = append(p.Segments, ogg.Lacing(len(data))...)
		p.Body = append(p.Body, data...)
	}
	b, err := p.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	return b
}

// continuedPage is a page holding pkt followed by the first 255 bytes of a
// packet that goes on in a later page.
func continuedPage(t *testing.T, serial int32, seq uint32, flags byte, gran int64, pkt []byte) []byte {
	t.Helper()

	p := &ogg.Page{HeaderType: flags, GranulePos: gran, Serial: serial, Sequence: seq}
	p.Segments = append(ogg.Lacing(len(pkt)), 255)
	p.Body = append(bytes.Clone(pkt), bytes.Repeat([]byte{0x5a}, 255)...)
	b, err := p.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	return b
}

func mustMarshalHead(t *testing.T, h IdentificationHeader) []byte {
	t.Helper()

	b, err := h.Marshal()
	if err != nil {
		t.Fatalf("IdentificationHeader.Marshal() error = %v", err)
	}
	return b
}

// headerPages returns the two header pages of a mono 48 kHz stream.
func headerPages(t *testing.T, serial int32) []byte {
	t.Helper()

	head := mustMarshalHead(t, IdentificationHeader{Channels: 1, InputRate: 48000})
	tags := (&CommentHeader{Vendor: "test"}).Marshal()
	out := rawPage(t, serial, 0, ogg.FlagBOS, 0, head)
	return append(out, rawPage(t, serial, 1, 0, 0, tags)...)
}

func decodeAll(t *testing.T, data []byte, opts ...Option) (*StreamDecoder, error) {
	t.Helper()

	d, err := NewStreamDecoder(opts...)
	if err != nil {
		t.Fatalf("NewStreamDecoder() error = %v", err)
	}
	if _, err := d.Write(data); err != nil {
		return d, err
	}
	return d, d.Finish()
}
