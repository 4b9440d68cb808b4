// SPDX-License-Identifier: EPL-2.0

package ogg

import "fmt"

// DefaultFill is the body size after which PageOut cuts a page.
const DefaultFill = 4096

type lace struct {
	value   byte
	start   bool
	granule int64
}

// Stream assembles the packets of one logical stream into pages.
//
// Packets go in through PacketIn and sit in the stream until a page is cut
// by PageOut (only once enough data is pending) or Flush (whatever is
// pending). The first page carries the first packet alone and is flagged BOS.
// The page holding the last segment of an EOS packet is flagged EOS.
type Stream struct {
	serial   int32
	sequence uint32

	body   []byte
	lacing []lace

	bosDone bool
	eos     bool

	havePacket bool
	lastNo     int64
	lastGran   int64
}

// NewStream returns an empty assembler for the logical stream serial.
func NewStream(serial int32) *Stream {
	return &Stream{serial: serial}
}

func (s *Stream) Serial() int32 { return s.serial }

// Pending reports the number of packet bytes not yet written to a page.
func (s *Stream) Pending() int { return len(s.body) }

// Ended reports whether an EOS packet was accepted.
func (s *Stream) Ended() bool { return s.eos }

// PacketIn queues p. Packet numbers must be strictly increasing and granule
// positions may not go backwards; nothing is accepted after an EOS packet.
func (s *Stream) PacketIn(p Packet) error {
	if s.eos {
		return ErrStreamClosed
	}
	if s.havePacket {
		if p.PacketNo <= s.lastNo {
			return fmt.Errorf("%w: %d after %d", ErrPacketOrder, p.PacketNo, s.lastNo)
		}
		if p.GranulePos < s.lastGran {
			return fmt.Errorf("%w: %d after %d", ErrGranuleRegression, p.GranulePos, s.lastGran)
		}
	}
	s.havePacket = true
	s.lastNo = p.PacketNo
	s.lastGran = p.GranulePos

	s.body = append(s.body, p.Data...)
	n := len(p.Data)
	for i := 0; ; i++ {
		v := 255
		if n < 255 {
			v = n
		}
		s.lacing = append(s.lacing, lace{value: byte(v), start: i == 0, granule: p.GranulePos})
		n -= v
		if v < 255 {
			break
		}
	}
	if p.EOS {
		s.eos = true
	}
	return nil
}

// PageOut returns the next page if enough data is pending to fill one, or
// if the stream needs one regardless (the BOS page, or the tail of an
// ended stream).
func (s *Stream) PageOut() (*Page, bool) {
	return s.PageOutFill(DefaultFill)
}

// PageOutFill is PageOut with a caller chosen fill threshold.
func (s *Stream) PageOutFill(fill int) (*Page, bool) {
	force := len(s.lacing) > 0 && (s.eos || !s.bosDone)
	return s.cut(force, fill)
}

// Flush returns a page holding whatever is pending, if anything.
func (s *Stream) Flush() (*Page, bool) {
	return s.cut(true, DefaultFill)
}

// FlushFill is Flush, but stops a page once fill bytes and at least four
// packets are on it.
func (s *Stream) FlushFill(fill int) (*Page, bool) {
	return s.cut(true, fill)
}

func (s *Stream) cut(force bool, fill int) (*Page, bool) {
	maxvals := min(len(s.lacing), MaxSegments)
	if maxvals == 0 {
		return nil, false
	}

	vals := 0
	granule := int64(-1)
	bodyLen := 0

	if !s.bosDone {
		granule = 0
		for vals < maxvals {
			bodyLen += int(s.lacing[vals].value)
			vals++
			if s.lacing[vals-1].value < 255 {
				break
			}
		}
	} else {
		done, justDone := 0, 0
		for ; vals < maxvals; vals++ {
			if bodyLen > fill && justDone >= 4 {
				force = true
				break
			}
			l := s.lacing[vals]
			bodyLen += int(l.value)
			if l.value < 255 {
				granule = l.granule
				done++
				justDone = done
			} else {
				justDone = 0
			}
		}
		if vals == MaxSegments {
			force = true
		}
	}
	if !force {
		return nil, false
	}

	p := &Page{
		GranulePos: granule,
		Serial:     s.serial,
		Sequence:   s.sequence,
		Segments:   make([]byte, vals),
		Body:       make([]byte, bodyLen),
	}
	if !s.lacing[0].start {
		p.HeaderType |= FlagContinued
	}
	if !s.bosDone {
		p.HeaderType |= FlagBOS
		s.bosDone = true
	}
	if s.eos && vals == len(s.lacing) {
		p.HeaderType |= FlagEOS
	}
	for i := range vals {
		p.Segments[i] = s.lacing[i].value
	}
	copy(p.Body, s.body)

	s.lacing = s.lacing[:copy(s.lacing, s.lacing[vals:])]
	s.body = s.body[:copy(s.body, s.body[bodyLen:])]
	s.sequence++

	return p, true
}
