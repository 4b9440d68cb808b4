// SPDX-License-Identifier: EPL-2.0

// Package ogg implements the Ogg container: page framing, lacing, page
// assembly for encoders and page synchronization plus packet reassembly for
// decoders.
//
// # Pages
//
// A Page is the unit written to disk or to the wire. It starts with the
// "OggS" capture pattern, carries a granule position, the serial number of
// the logical stream it belongs to, a page sequence number and a checksum,
// then a segment table of lacing values followed by the body.
//
//	raw, err := page.Marshal()
//	page, n, err := ogg.ParsePage(raw)
//
// # Lacing
//
// Packets are cut into segments of at most 255 bytes. A lacing value of 255
// means the packet goes on in the next segment, anything below 255 ends it.
// A packet whose length is a multiple of 255 is closed by an explicit 0.
//
// # Encoding
//
// Stream turns packets into pages:
//
//	s := ogg.NewStream(serial)
//	_ = s.PacketIn(ogg.Packet{Data: head, BOS: true})
//	for p, ok := s.Flush(); ok; p, ok = s.Flush() {
//	    raw, _ := p.Marshal()
//	    w.Write(raw)
//	}
//
// PageOut only cuts a page when about 4 KiB of data (and at least four
// finished packets) are pending, or 255 segments are used. Flush cuts
// whatever is pending.
//
// # Decoding
//
// Sync accepts bytes in chunks of any size and hands back verified pages.
// Garbage and corrupt pages are skipped; ErrLostSync is returned once per
// damaged region so the caller can log it, then framing carries on.
// Depacketizer (or Demuxer, for multiplexed streams) rebuilds the packets.
//
//	sync := ogg.NewSync()
//	demux := ogg.NewDemuxer()
//	sync.Write(chunk)
//	for {
//	    page, err := sync.PageOut()
//	    if errors.Is(err, ogg.ErrLostSync) {
//	        continue
//	    }
//	    if err != nil {
//	        break // ogg.ErrNeedMore
//	    }
//	    packets, err := demux.PageIn(page)
//	    ...
//	}
package ogg
