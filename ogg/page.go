// SPDX-License-Identifier: EPL-2.0

package ogg

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Header type flags.
const (
	FlagContinued = 0x01
	FlagBOS       = 0x02
	FlagEOS       = 0x04
)

const (
	// HeaderSize is the fixed part of a page header, before the segment table.
	HeaderSize = 27
	// MaxPageSize is the largest possible page on the wire.
	MaxPageSize = HeaderSize + MaxSegments + MaxSegments*255

	crcOffset = 22
)

var capturePattern = []byte("OggS")

// Page is one physical page of an Ogg bitstream.
type Page struct {
	Version    byte
	HeaderType byte
	// GranulePos is -1 when no packet finishes on this page.
	GranulePos int64
	Serial     int32
	Sequence   uint32
	Segments   []byte
	Body       []byte
}

func (p *Page) Continued() bool { return p.HeaderType&FlagContinued != 0 }
func (p *Page) BOS() bool       { return p.HeaderType&FlagBOS != 0 }
func (p *Page) EOS() bool       { return p.HeaderType&FlagEOS != 0 }

// Size is the number of bytes the page occupies on the wire.
func (p *Page) Size() int {
	return HeaderSize + len(p.Segments) + len(p.Body)
}

// Packets returns the number of packets that finish on this page.
func (p *Page) Packets() int {
	n := 0
	for _, v := range p.Segments {
		if v < 255 {
			n++
		}
	}
	return n
}

// Marshal serializes the page and fills in its checksum.
func (p *Page) Marshal() ([]byte, error) {
	return p.AppendTo(make([]byte, 0, p.Size()))
}

// AppendTo appends the serialized page to dst.
func (p *Page) AppendTo(dst []byte) ([]byte, error) {
	if len(p.Segments) > MaxSegments {
		return dst, fmt.Errorf("%w: %d segments", ErrInvalidPage, len(p.Segments))
	}
	total := 0
	for _, v := range p.Segments {
		total += int(v)
	}
	if total != len(p.Body) {
		return dst, fmt.Errorf("%w: lacing describes %d bytes, body has %d", ErrInvalidPage, total, len(p.Body))
	}

	start := len(dst)
	dst = append(dst, capturePattern...)
	dst = append(dst, p.Version, p.HeaderType)
	dst = binary.LittleEndian.AppendUint64(dst, uint64(p.GranulePos))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(p.Serial))
	dst = binary.LittleEndian.AppendUint32(dst, p.Sequence)
	dst = binary.LittleEndian.AppendUint32(dst, 0)
	dst = append(dst, byte(len(p.Segments)))
	dst = append(dst, p.Segments...)
	dst = append(dst, p.Body...)

	crc := Checksum(dst[start:])
	binary.LittleEndian.PutUint32(dst[start+crcOffset:], crc)
	return dst, nil
}

// ParsePage decodes the page at the start of b and returns it together with
// the number of bytes it occupies. ErrNeedMore means b holds a plausible but
// truncated page. The returned page does not alias b.
func ParsePage(b []byte) (*Page, int, error) {
	if len(b) < HeaderSize {
		return nil, 0, ErrNeedMore
	}
	if !bytes.Equal(b[:4], capturePattern) {
		return nil, 0, fmt.Errorf("%w: missing capture pattern", ErrInvalidPage)
	}
	if b[4] != 0 {
		return nil, 0, fmt.Errorf("%w: version %d", ErrInvalidPage, b[4])
	}

	nseg := int(b[26])
	if len(b) < HeaderSize+nseg {
		return nil, 0, ErrNeedMore
	}
	segments := b[HeaderSize : HeaderSize+nseg]
	bodyLen := 0
	for _, v := range segments {
		bodyLen += int(v)
	}
	size := HeaderSize + nseg + bodyLen
	if len(b) < size {
		return nil, 0, ErrNeedMore
	}

	want := binary.LittleEndian.Uint32(b[crcOffset:])
	crc := crcUpdate(0, b[:crcOffset])
	crc = crcUpdate(crc, []byte{0, 0, 0, 0})
	crc = crcUpdate(crc, b[crcOffset+4:size])
	if crc != want {
		return nil, 0, fmt.Errorf("%w: got %08x, want %08x", ErrBadCRC, crc, want)
	}

	p := &Page{
		Version:    b[4],
		HeaderType: b[5],
		GranulePos: int64(binary.LittleEndian.Uint64(b[6:14])),
		Serial:     int32(binary.LittleEndian.Uint32(b[14:18])),
		Sequence:   binary.LittleEndian.Uint32(b[18:22]),
		Segments:   bytes.Clone(segments),
		Body:       bytes.Clone(b[HeaderSize+nseg : size]),
	}
	return p, size, nil
}
