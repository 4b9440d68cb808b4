// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ik5/oggopus/formats/wav"
)

func run(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(args)
	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func writeSineWAV(t *testing.T, path string, rate, frames int) {
	t.Helper()

	samples := make([]int16, frames)
	for i := range samples {
		samples[i] = int16(8000 * math.Sin(2*math.Pi*440*float64(i)/float64(rate)))
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := wav.WriteWAV16(f, rate, 1, samples); err != nil {
		t.Fatal(err)
	}
}

// The commands share RootCmd and the global viper instance, so they run in
// one sequential test.
func TestCommands(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	enc := filepath.Join(dir, "out.opus")
	dec := filepath.Join(dir, "out.wav")
	writeSineWAV(t, in, 16000, 4000)

	run(t, "encode", "--bitrate", "24000", "--comment", "ARTIST=tester", in, enc)
	b, err := os.ReadFile(enc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte("OggS")) {
		t.Fatalf("encoded file starts with %q", b[:4])
	}

	run(t, "decode", enc, dec)
	st, err := os.Stat(dec)
	if err != nil {
		t.Fatal(err)
	}
	if want := int64(wav.HeaderSize + 4000*2); st.Size() != want {
		t.Errorf("decoded size = %d, want %d", st.Size(), want)
	}

	out := run(t, "info", enc)
	for _, want := range []string{
		"16000 Hz output, 1 stream(s)",
		"Channels:        1",
		"Input rate:      16000 Hz",
		"Samples:         4000",
		"Duration:        250ms",
		"ENCODER=github.com/ik5/oggopus",
		"ARTIST=tester",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("info output lacks %q:\n%s", want, out)
		}
	}

	if out := run(t, "version"); !strings.HasPrefix(out, "oggopus Version: dev,") {
		t.Errorf("version output = %q", out)
	}
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()

	tests := [][]string{
		{"encode", filepath.Join(dir, "in.flac"), filepath.Join(dir, "out.opus")},
		{"encode", filepath.Join(dir, "missing.wav"), filepath.Join(dir, "out.opus")},
		{"decode", filepath.Join(dir, "missing.opus"), filepath.Join(dir, "out.wav")},
		{"info"},
	}

	for _, args := range tests {
		RootCmd.SetOut(&bytes.Buffer{})
		RootCmd.SetErr(&bytes.Buffer{})
		RootCmd.SetArgs(args)
		if err := RootCmd.Execute(); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}
