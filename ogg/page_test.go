// SPDX-License-Identifier: EPL-2.0

package ogg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestChecksum(t *testing.T) {
	t.Parallel()

	if got := Checksum([]byte("OggS")); got != 0x5fb0a94f {
		t.Errorf("Checksum(OggS) = %08x, want 5fb0a94f", got)
	}
	if got := Checksum(nil); got != 0 {
		t.Errorf("Checksum(nil) = %08x, want 0", got)
	}
}

func testPage() *Page {
	body := bytes.Repeat([]byte{1, 2, 3}, 100)
	return &Page{
		HeaderType: FlagBOS,
		GranulePos: 48000,
		Serial:     -12345,
		Sequence:   7,
		Segments:   []byte{255, 45},
		Body:       body,
	}
}

func TestPage_MarshalParse(t *testing.T) {
	t.Parallel()

	p := testPage()
	raw, err := p.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v, want nil", err)
	}
	if len(raw) != p.Size() {
		t.Fatalf("len(raw) = %d, want %d", len(raw), p.Size())
	}
	if string(raw[:4]) != "OggS" {
		t.Errorf("capture pattern = %q", raw[:4])
	}

	got, n, err := ParsePage(append(raw, 0xAA, 0xBB))
	if err != nil {
		t.Fatalf("ParsePage() error = %v, want nil", err)
	}
	if n != len(raw) {
		t.Errorf("consumed = %d, want %d", n, len(raw))
	}
	if got.GranulePos != p.GranulePos || got.Serial != p.Serial || got.Sequence != p.Sequence {
		t.Errorf("ParsePage() = %+v, want %+v", got, p)
	}
	if !got.BOS() || got.EOS() || got.Continued() {
		t.Errorf("flags = %02x, want BOS only", got.HeaderType)
	}
	if !bytes.Equal(got.Body, p.Body) || !bytes.Equal(got.Segments, p.Segments) {
		t.Error("body or segments differ after round trip")
	}
	if got.Packets() != 1 {
		t.Errorf("Packets() = %d, want 1", got.Packets())
	}
}

func TestPage_ChecksumOverZeroedField(t *testing.T) {
	t.Parallel()

	raw, err := testPage().Marshal()
	if err != nil {
		t.Fatal(err)
	}
	stored := binary.LittleEndian.Uint32(raw[22:26])
	copy(raw[22:26], []byte{0, 0, 0, 0})
	if got := Checksum(raw); got != stored {
		t.Errorf("stored checksum %08x, recomputed %08x", stored, got)
	}
}

func TestParsePage_Errors(t *testing.T) {
	t.Parallel()

	raw, err := testPage().Marshal()
	if err != nil {
		t.Fatal(err)
	}

	corrupt := bytes.Clone(raw)
	corrupt[len(corrupt)-1] ^= 0xFF

	badMagic := bytes.Clone(raw)
	badMagic[0] = 'X'

	badVersion := bytes.Clone(raw)
	badVersion[4] = 1

	tests := []struct {
		name string
		in   []byte
		want error
	}{
		{"short header", raw[:20], ErrNeedMore},
		{"short segment table", raw[:HeaderSize+1], ErrNeedMore},
		{"short body", raw[:len(raw)-1], ErrNeedMore},
		{"bad crc", corrupt, ErrBadCRC},
		{"bad magic", badMagic, ErrInvalidPage},
		{"bad version", badVersion, ErrInvalidPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := ParsePage(tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParsePage() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPage_MarshalRejectsBadLacing(t *testing.T) {
	t.Parallel()

	p := &Page{Segments: []byte{10}, Body: make([]byte, 9)}
	if _, err := p.Marshal(); !errors.Is(err, ErrInvalidPage) {
		t.Errorf("Marshal() error = %v, want %v", err, ErrInvalidPage)
	}

	p = &Page{Segments: make([]byte, MaxSegments+1)}
	if _, err := p.Marshal(); !errors.Is(err, ErrInvalidPage) {
		t.Errorf("Marshal() error = %v, want %v", err, ErrInvalidPage)
	}
}

func BenchmarkPage_Marshal(b *testing.B) {
	p := testPage()
	buf := make([]byte, 0, p.Size())

	for b.Loop() {
		buf, _ = p.AppendTo(buf[:0])
	}
}
