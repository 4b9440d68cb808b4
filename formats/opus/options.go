// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"io"
	"log"
	"slices"
	"time"
)

// Option tunes an Encoder or a StreamDecoder. Options that do not apply to
// the component they are given to are ignored.
type Option func(*options)

type options struct {
	// encoder
	frameDuration  time.Duration
	bitrate        int
	complexity     int
	maxBandwidth   Bandwidth
	inBandFEC      bool
	packetLossPerc int
	dtx            bool
	preSkip        uint16
	outputGain     int16
	vendor         string
	comments       []Comment
	serial         int32
	serialSet      bool
	newEncoder     EncoderFactory

	// decoder
	outputRate int
	chunkSize  int
	newDecoder DecoderFactory

	logger *log.Logger
}

const (
	DefaultFrameDuration = 20 * time.Millisecond
	// DefaultChunkSize is how many bytes the decoder hands to the page
	// synchronizer at a time.
	DefaultChunkSize = 200
	// DefaultOutputRate is used when the stream does not name a usable rate.
	DefaultOutputRate = 48000
)

func defaultOptions() options {
	return options{
		frameDuration: DefaultFrameDuration,
		complexity:    -1,
		comments:      []Comment{{Tag: "ENCODER", Value: "github.com/ik5/oggopus"}},
		newEncoder:    NewLibopusEncoder,
		chunkSize:     DefaultChunkSize,
		newDecoder:    NewLibopusDecoder,
		logger:        log.New(io.Discard, "", 0),
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithFrameDuration sets the duration of each encoded frame: 2.5, 5, 10, 20,
// 40 or 60 ms.
func WithFrameDuration(d time.Duration) Option {
	return func(o *options) { o.frameDuration = d }
}

func WithBitrate(bps int) Option {
	return func(o *options) { o.bitrate = bps }
}

func WithComplexity(c int) Option {
	return func(o *options) { o.complexity = c }
}

func WithMaxBandwidth(b Bandwidth) Option {
	return func(o *options) { o.maxBandwidth = b }
}

func WithInBandFEC(on bool) Option {
	return func(o *options) { o.inBandFEC = on }
}

// WithPacketLoss tells the encoder the expected packet loss in percent.
func WithPacketLoss(perc int) Option {
	return func(o *options) { o.packetLossPerc = perc }
}

func WithDTX(on bool) Option {
	return func(o *options) { o.dtx = on }
}

// WithPreSkip sets the pre-skip written to the identification header, in
// 48 kHz samples.
func WithPreSkip(samples uint16) Option {
	return func(o *options) { o.preSkip = samples }
}

// WithOutputGain sets the header output gain in Q7.8 dB.
func WithOutputGain(gain int16) Option {
	return func(o *options) { o.outputGain = gain }
}

// WithVendor overrides the comment header vendor string, which defaults to
// the libopus version.
func WithVendor(v string) Option {
	return func(o *options) { o.vendor = v }
}

// WithComments replaces the comment list.
func WithComments(c ...Comment) Option {
	return func(o *options) { o.comments = c }
}

// WithAddedComments appends to the comment list, keeping the ENCODER tag.
func WithAddedComments(c ...Comment) Option {
	return func(o *options) { o.comments = append(slices.Clip(o.comments), c...) }
}

// WithSerial fixes the stream serial number instead of picking a random one.
func WithSerial(serial int32) Option {
	return func(o *options) {
		o.serial = serial
		o.serialSet = true
	}
}

func WithEncoderFactory(f EncoderFactory) Option {
	return func(o *options) { o.newEncoder = f }
}

func WithDecoderFactory(f DecoderFactory) Option {
	return func(o *options) { o.newDecoder = f }
}

// WithOutputRate forces the decoded sample rate. Without it the rate named
// in the first identification header is used when the codec supports it.
func WithOutputRate(rate int) Option {
	return func(o *options) { o.outputRate = rate }
}

func WithChunkSize(n int) Option {
	return func(o *options) { o.chunkSize = n }
}

func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
