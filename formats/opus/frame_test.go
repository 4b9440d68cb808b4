// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ik5/oggopus/internal/audiotest"
)

func TestFrameAccumulator(t *testing.T) {
	t.Parallel()

	a := NewFrameAccumulator(4)
	var frames [][]byte
	collect := func(f []byte) error {
		frames = append(frames, bytes.Clone(f))
		return nil
	}

	if err := a.Write([]byte{1, 2, 3}, collect); err != nil {
		t.Fatal(err)
	}
	if len(frames) != 0 || a.Pending() != 3 {
		t.Fatalf("after 3 bytes: %d frames, %d pending", len(frames), a.Pending())
	}
	if err := a.Write([]byte{4, 5, 6, 7, 8, 9, 10}, collect); err != nil {
		t.Fatal(err)
	}
	want := [][]byte{{1, 2, 3, 4}, {5, 6, 7, 8}}
	if len(frames) != len(want) {
		t.Fatalf("got %d frames, want %d", len(frames), len(want))
	}
	for i := range want {
		if !bytes.Equal(frames[i], want[i]) {
			t.Errorf("frame %d = %v, want %v", i, frames[i], want[i])
		}
	}

	frame, n := a.Pad()
	if n != 2 || !bytes.Equal(frame, []byte{9, 10, 0, 0}) {
		t.Errorf("Pad() = %v, %d", frame, n)
	}
	if a.Pending() != 0 {
		t.Errorf("Pending() after Pad = %d", a.Pending())
	}
	if frame, n := a.Pad(); n != 0 || !bytes.Equal(frame, make([]byte, 4)) {
		t.Errorf("empty Pad() = %v, %d", frame, n)
	}
}

func TestFrameAccumulator_CallbackError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	a := NewFrameAccumulator(2)
	calls := 0
	err := a.Write([]byte{1, 2, 3, 4, 5}, func([]byte) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) || calls != 1 {
		t.Errorf("Write() = %v after %d calls", err, calls)
	}
}

func TestPacketFactory(t *testing.T) {
	t.Parallel()

	enc := &audiotest.LosslessEncoder{}
	state := &StreamState{PacketNo: 2}
	f := NewPacketFactory(enc, state, 24000, 1, 480)
	frame := audiotest.RampPCM(480, 1)

	p, err := f.Packet(frame, 480, false)
	if err != nil {
		t.Fatalf("Packet() error = %v", err)
	}
	if p.GranulePos != 960 || p.PacketNo != 2 || p.EOS {
		t.Errorf("first packet = gran %d, no %d, eos %v", p.GranulePos, p.PacketNo, p.EOS)
	}
	if !bytes.Equal(p.Data, frame) {
		t.Error("lossless packet differs from its frame")
	}

	// A padded final frame only advances the granule by its real samples.
	p, err = f.Packet(frame, 100, true)
	if err != nil {
		t.Fatalf("Packet() error = %v", err)
	}
	if p.GranulePos != 1160 || p.PacketNo != 3 || !p.EOS {
		t.Errorf("last packet = gran %d, no %d, eos %v", p.GranulePos, p.PacketNo, p.EOS)
	}
	if state.PacketNo != 4 || state.Granule != 1160 {
		t.Errorf("state = %+v", *state)
	}

	if _, err := f.Packet(frame[:10], 5, false); !errors.Is(err, ErrBadArgument) {
		t.Errorf("short frame error = %v, want ErrBadArgument", err)
	}
}

func TestPacketFactory_CodecError(t *testing.T) {
	t.Parallel()

	enc := &audiotest.LosslessEncoder{}
	_ = enc.Close()
	f := NewPacketFactory(enc, &StreamState{}, 48000, 1, 120)

	_, err := f.Packet(make([]byte, 240), 120, false)
	if !errors.Is(err, ErrInternal) || !errors.Is(err, audiotest.ErrReleased) {
		t.Errorf("error = %v, want ErrInternal wrapping ErrReleased", err)
	}
}

func TestSampleTrimmer(t *testing.T) {
	t.Parallel()

	pcm := make([]float32, 960)
	for i := range pcm {
		pcm[i] = float32(i) / 32768
	}

	tr := NewSampleTrimmer(48000, 1, 100)
	dst, n := tr.Append(nil, pcm, 960, 960)
	if n != 860 || len(dst) != 860*2 {
		t.Fatalf("first Append() wrote %d frames, %d bytes", n, len(dst))
	}
	// The pre-skip is dropped from the front.
	if dst[0] != 100 || dst[1] != 0 {
		t.Errorf("first sample = % x, want 64 00", dst[:2])
	}

	_, n = tr.Append(nil, pcm, 960, 1500)
	if n != 540 {
		t.Errorf("second Append() wrote %d frames, want 540", n)
	}
	if tr.Emitted() != 1400 {
		t.Errorf("Emitted() = %d", tr.Emitted())
	}
	if l := tr.Limit(1000); l != 0 {
		t.Errorf("Limit(1000) = %d, want 0", l)
	}
}

func TestSampleTrimmer_ScaledRate(t *testing.T) {
	t.Parallel()

	// 312 samples of pre-skip at 48 kHz are 156 at 24 kHz.
	tr := NewSampleTrimmer(24000, 2, 312)
	pcm := make([]float32, 480*2)
	_, n := tr.Append(nil, pcm, 480, 1272)
	if n != 480-156 {
		t.Errorf("Append() wrote %d frames, want %d", n, 480-156)
	}
	if l := tr.Limit(1272 + 200); l != 256 {
		t.Errorf("Limit() = %d, want 256", l)
	}
}
