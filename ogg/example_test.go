// SPDX-License-Identifier: EPL-2.0

package ogg_test

import (
	"errors"
	"fmt"

	"github.com/ik5/oggopus/ogg"
)

// Example_roundTrip writes three packets into pages and reads them back.
func Example_roundTrip() {
	s := ogg.NewStream(1234)
	packets := []string{"first", "second", "third"}
	for i, data := range packets {
		_ = s.PacketIn(ogg.Packet{
			Data:       []byte(data),
			BOS:        i == 0,
			EOS:        i == len(packets)-1,
			PacketNo:   int64(i),
			GranulePos: int64(i),
		})
	}

	var raw []byte
	for p, ok := s.Flush(); ok; p, ok = s.Flush() {
		raw, _ = p.AppendTo(raw)
	}

	sync := ogg.NewSync()
	sync.Write(raw)
	demux := ogg.NewDemuxer()
	for {
		page, err := sync.PageOut()
		if errors.Is(err, ogg.ErrLostSync) {
			continue
		}
		if err != nil {
			break
		}
		got, _ := demux.PageIn(page)
		for _, p := range got {
			fmt.Printf("page %d: %s\n", page.Sequence, p.Data)
		}
	}

	// Output:
	// page 0: first
	// page 1: second
	// page 1: third
}

// ExampleLacing shows how a packet length maps to lacing values.
func ExampleLacing() {
	fmt.Println(ogg.Lacing(600))
	fmt.Println(ogg.Lacing(510))

	// Output:
	// [255 255 90]
	// [255 255 0]
}
