// SPDX-License-Identifier: EPL-2.0

package ogg

import (
	"fmt"
	"slices"
)

// Depacketizer rebuilds the packets of one logical stream from its pages.
type Depacketizer struct {
	serial int32

	partial  []byte
	inPacket bool
	seen     bool
	nextSeq  uint32
	packetNo int64
	eos      bool
	gaps     int
	lastGran int64
	haveGran bool
}

// NewDepacketizer tracks the logical stream serial.
func NewDepacketizer(serial int32) *Depacketizer {
	return &Depacketizer{serial: serial}
}

func (d *Depacketizer) Serial() int32 { return d.serial }

// Gaps counts page sequence discontinuities seen so far.
func (d *Depacketizer) Gaps() int { return d.gaps }

// Ended reports whether the EOS page was seen.
func (d *Depacketizer) Ended() bool { return d.eos }

// Reset forgets all state, as if no page had been seen.
func (d *Depacketizer) Reset() {
	*d = Depacketizer{serial: d.serial}
}

// PageIn consumes p and returns the packets that finish on it, in order. A
// packet spanning pages is returned with the page it ends on. The last
// packet finishing on a page carries the page granule position; the others
// carry -1. A BOS page restarts the stream. Data of a packet interrupted by
// a missing page is dropped.
func (d *Depacketizer) PageIn(p *Page) ([]Packet, error) {
	if p.Serial != d.serial {
		return nil, fmt.Errorf("%w: %d, want %d", ErrSerialMismatch, p.Serial, d.serial)
	}
	if p.BOS() && d.seen {
		d.Reset()
	}
	if d.eos {
		return nil, ErrStreamClosed
	}
	if p.GranulePos != -1 {
		if d.haveGran && p.GranulePos < d.lastGran {
			return nil, fmt.Errorf("%w: %d after %d", ErrGranuleRegression, p.GranulePos, d.lastGran)
		}
		d.haveGran = true
		d.lastGran = p.GranulePos
	}

	if d.seen && p.Sequence != d.nextSeq {
		d.gaps++
		d.partial = d.partial[:0]
		d.inPacket = false
	}
	d.seen = true
	d.nextSeq = p.Sequence + 1

	segs := p.Segments
	body := p.Body
	if p.Continued() != d.inPacket {
		// Either the start of this packet was lost, or the page that
		// should have continued ours never came.
		d.partial = d.partial[:0]
		d.inPacket = false
		if p.Continued() {
			for len(segs) > 0 {
				v := segs[0]
				segs = segs[1:]
				body = body[int(v):]
				if v < 255 {
					break
				}
			}
		}
	}

	var out []Packet
	first := p.BOS()
	off := 0
	for _, v := range segs {
		d.partial = append(d.partial, body[off:off+int(v)]...)
		off += int(v)
		d.inPacket = true
		if v == 255 {
			continue
		}
		out = append(out, Packet{
			Data:       slices.Clone(d.partial),
			BOS:        first,
			GranulePos: -1,
			PacketNo:   d.packetNo,
		})
		first = false
		d.packetNo++
		d.partial = d.partial[:0]
		d.inPacket = false
	}
	if n := len(out); n > 0 {
		out[n-1].GranulePos = p.GranulePos
		if p.EOS() && !d.inPacket {
			out[n-1].EOS = true
		}
	}
	if p.EOS() {
		d.eos = true
	}
	return out, nil
}

// Demuxer routes pages of a multiplexed bitstream to one Depacketizer per
// serial number.
type Demuxer struct {
	streams map[int32]*Depacketizer
	order   []int32
}

func NewDemuxer() *Demuxer {
	return &Demuxer{streams: make(map[int32]*Depacketizer)}
}

// PageIn hands p to the depacketizer of its serial, creating it on first
// sight.
func (m *Demuxer) PageIn(p *Page) ([]Packet, error) {
	d, ok := m.streams[p.Serial]
	if !ok {
		d = NewDepacketizer(p.Serial)
		m.streams[p.Serial] = d
		m.order = append(m.order, p.Serial)
	}
	return d.PageIn(p)
}

// Stream returns the depacketizer for serial.
func (m *Demuxer) Stream(serial int32) (*Depacketizer, bool) {
	d, ok := m.streams[serial]
	return d, ok
}

// Serials lists the serial numbers seen, in order of first appearance.
func (m *Demuxer) Serials() []int32 {
	return slices.Clone(m.order)
}

// Remove stops tracking serial.
func (m *Demuxer) Remove(serial int32) {
	delete(m.streams, serial)
	m.order = slices.DeleteFunc(m.order, func(s int32) bool { return s == serial })
}
