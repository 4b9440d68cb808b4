// SPDX-License-Identifier: EPL-2.0

package oggopus

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/oggopus/audio"
	"github.com/ik5/oggopus/formats/opus"
	"github.com/ik5/oggopus/formats/vorbis"
	"github.com/ik5/oggopus/ogg"
)

// maxSniff bounds how far OggDecoder looks for the first BOS page.
const maxSniff = 64 << 10

// OggDecoder picks the Opus or Vorbis decoder from the first beginning of
// stream page of an Ogg file.
type OggDecoder struct {
	Options []opus.Option
}

func (d OggDecoder) Decode(r io.Reader) (audio.Source, error) {
	codec, rest, err := sniffOgg(r)
	if err != nil {
		return nil, err
	}
	switch codec {
	case "opus":
		return opus.Decoder{Options: d.Options}.Decode(rest)
	case "vorbis":
		return vorbis.Decoder{}.Decode(rest)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownOggCodec, codec)
}

// sniffOgg names the codec of the first logical stream and returns a reader
// that replays everything consumed.
func sniffOgg(r io.Reader) (string, io.Reader, error) {
	var seen bytes.Buffer
	oggSync := ogg.NewSync()
	buf := make([]byte, 4096)

	for seen.Len() < maxSniff {
		n, rerr := r.Read(buf)
		seen.Write(buf[:n])
		_, _ = oggSync.Write(buf[:n])

		for {
			p, err := oggSync.PageOut()
			if errors.Is(err, ogg.ErrLostSync) {
				continue
			}
			if err != nil {
				break
			}
			if p.BOS() {
				return codecOf(p.Body), io.MultiReader(&seen, r), nil
			}
		}

		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return "", nil, fmt.Errorf("%w", rerr)
		}
	}
	return "", nil, fmt.Errorf("%w: no beginning of stream page", ErrUnknownOggCodec)
}

func codecOf(packet []byte) string {
	switch {
	case opus.IsIdentificationHeader(packet):
		return "opus"
	case bytes.HasPrefix(packet, []byte("\x01vorbis")):
		return "vorbis"
	}
	n := min(len(packet), 8)
	return string(bytes.TrimRight(packet[:n], "\x00"))
}
