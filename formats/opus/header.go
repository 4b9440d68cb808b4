// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

const (
	headMagic = "OpusHead"
	tagsMagic = "OpusTags"

	// HeadVersion is the only identification header version written.
	HeadVersion = 1
	// GranuleRate is the clock of Ogg Opus granule positions.
	GranuleRate = 48000

	headSize = 19
)

// IdentificationHeader is the OpusHead packet that opens every Ogg Opus
// stream.
type IdentificationHeader struct {
	Version    uint8
	Channels   uint8
	PreSkip    uint16
	InputRate  uint32
	OutputGain int16
	// MappingFamily 0 is mono or stereo in a single stream. Other families
	// carry the stream layout below.
	MappingFamily  uint8
	StreamCount    uint8
	CoupledCount   uint8
	ChannelMapping []byte
}

// Streams is the number of elementary Opus streams each packet carries.
func (h *IdentificationHeader) Streams() int {
	if h.MappingFamily == 0 {
		return 1
	}
	return int(h.StreamCount)
}

// Marshal encodes the header. Family 0 headers are 19 bytes.
func (h *IdentificationHeader) Marshal() ([]byte, error) {
	if h.Channels == 0 {
		return nil, fmt.Errorf("%w: zero channels", ErrBadArgument)
	}
	if h.MappingFamily == 0 && h.Channels > 2 {
		return nil, fmt.Errorf("%w: mapping family 0 allows at most 2 channels, got %d", ErrBadArgument, h.Channels)
	}
	if h.MappingFamily != 0 {
		if err := h.validateMapping(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadArgument, err)
		}
	}

	version := h.Version
	if version == 0 {
		version = HeadVersion
	}

	b := make([]byte, 0, headSize+2+len(h.ChannelMapping))
	b = append(b, headMagic...)
	b = append(b, version, h.Channels)
	b = binary.LittleEndian.AppendUint16(b, h.PreSkip)
	b = binary.LittleEndian.AppendUint32(b, h.InputRate)
	b = binary.LittleEndian.AppendUint16(b, uint16(h.OutputGain))
	b = append(b, h.MappingFamily)
	if h.MappingFamily != 0 {
		b = append(b, h.StreamCount, h.CoupledCount)
		b = append(b, h.ChannelMapping...)
	}
	return b, nil
}

func (h *IdentificationHeader) validateMapping() error {
	if h.StreamCount == 0 {
		return fmt.Errorf("zero streams")
	}
	if h.CoupledCount > h.StreamCount {
		return fmt.Errorf("%d coupled streams out of %d", h.CoupledCount, h.StreamCount)
	}
	if len(h.ChannelMapping) != int(h.Channels) {
		return fmt.Errorf("channel mapping has %d entries for %d channels", len(h.ChannelMapping), h.Channels)
	}
	decoded := int(h.StreamCount) + int(h.CoupledCount)
	for i, m := range h.ChannelMapping {
		if m != 255 && int(m) >= decoded {
			return fmt.Errorf("channel %d maps to %d, only %d decoded channels", i, m, decoded)
		}
	}
	return nil
}

// IsIdentificationHeader reports whether b starts with the OpusHead magic.
func IsIdentificationHeader(b []byte) bool {
	return bytes.HasPrefix(b, []byte(headMagic))
}

// ParseIdentificationHeader decodes an OpusHead packet.
func ParseIdentificationHeader(b []byte) (*IdentificationHeader, error) {
	if len(b) < headSize || !IsIdentificationHeader(b) {
		return nil, fmt.Errorf("%w: not an identification header", ErrInvalidPacket)
	}
	h := &IdentificationHeader{
		Version:       b[8],
		Channels:      b[9],
		PreSkip:       binary.LittleEndian.Uint16(b[10:12]),
		InputRate:     binary.LittleEndian.Uint32(b[12:16]),
		OutputGain:    int16(binary.LittleEndian.Uint16(b[16:18])),
		MappingFamily: b[18],
	}
	// The upper nibble is the major version; only 0 is understood.
	if h.Version>>4 != 0 {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidPacket, h.Version)
	}
	if h.Channels == 0 {
		return nil, fmt.Errorf("%w: zero channels", ErrInvalidPacket)
	}

	if h.MappingFamily == 0 {
		if h.Channels > 2 {
			return nil, fmt.Errorf("%w: %d channels in mapping family 0", ErrInvalidPacket, h.Channels)
		}
		return h, nil
	}

	if len(b) < headSize+2+int(h.Channels) {
		return nil, fmt.Errorf("%w: truncated channel mapping", ErrInvalidPacket)
	}
	h.StreamCount = b[19]
	h.CoupledCount = b[20]
	h.ChannelMapping = bytes.Clone(b[21 : 21+int(h.Channels)])
	if err := h.validateMapping(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPacket, err)
	}
	return h, nil
}

// Comment is one TAG=value entry of a comment header.
type Comment struct {
	Tag   string
	Value string
}

func (c Comment) String() string { return c.Tag + "=" + c.Value }

// ParseComment splits "TAG=value". Entries without '=' keep the whole text
// as the tag.
func ParseComment(s string) Comment {
	tag, value, _ := strings.Cut(s, "=")
	return Comment{Tag: tag, Value: value}
}

// CommentHeader is the OpusTags packet, the second packet of a stream.
type CommentHeader struct {
	Vendor   string
	Comments []Comment
}

// Get returns the value of the first comment whose tag matches,
// case-insensitively.
func (c *CommentHeader) Get(tag string) (string, bool) {
	for _, cm := range c.Comments {
		if strings.EqualFold(cm.Tag, tag) {
			return cm.Value, true
		}
	}
	return "", false
}

func (c *CommentHeader) Marshal() []byte {
	size := len(tagsMagic) + 8 + len(c.Vendor)
	for _, cm := range c.Comments {
		size += 4 + len(cm.Tag) + 1 + len(cm.Value)
	}

	b := make([]byte, 0, size)
	b = append(b, tagsMagic...)
	b = binary.LittleEndian.AppendUint32(b, uint32(len(c.Vendor)))
	b = append(b, c.Vendor...)
	b = binary.LittleEndian.AppendUint32(b, uint32(len(c.Comments)))
	for _, cm := range c.Comments {
		s := cm.String()
		b = binary.LittleEndian.AppendUint32(b, uint32(len(s)))
		b = append(b, s...)
	}
	return b
}

// ParseCommentHeader decodes an OpusTags packet. Trailing bytes after the
// last comment are allowed.
func ParseCommentHeader(b []byte) (*CommentHeader, error) {
	if len(b) < len(tagsMagic)+8 || !bytes.HasPrefix(b, []byte(tagsMagic)) {
		return nil, fmt.Errorf("%w: not a comment header", ErrInvalidPacket)
	}
	b = b[len(tagsMagic):]

	next := func(what string) (string, error) {
		if len(b) < 4 {
			return "", fmt.Errorf("%w: truncated %s length", ErrInvalidPacket, what)
		}
		n := binary.LittleEndian.Uint32(b)
		b = b[4:]
		if uint64(n) > uint64(len(b)) {
			return "", fmt.Errorf("%w: %s of %d bytes overruns packet", ErrInvalidPacket, what, n)
		}
		s := string(b[:n])
		b = b[n:]
		return s, nil
	}

	vendor, err := next("vendor")
	if err != nil {
		return nil, err
	}
	if len(b) < 4 {
		return nil, fmt.Errorf("%w: missing comment count", ErrInvalidPacket)
	}
	count := binary.LittleEndian.Uint32(b)
	b = b[4:]
	// Each comment takes at least its 4-byte length.
	if uint64(count)*4 > uint64(len(b)) {
		return nil, fmt.Errorf("%w: %d comments cannot fit", ErrInvalidPacket, count)
	}

	c := &CommentHeader{Vendor: vendor, Comments: make([]Comment, 0, count)}
	for range count {
		s, err := next("comment")
		if err != nil {
			return nil, err
		}
		c.Comments = append(c.Comments, ParseComment(s))
	}
	return c, nil
}
