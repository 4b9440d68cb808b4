// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/ik5/oggopus/formats/opus"
	"github.com/spf13/viper"
)

type parmError struct {
	parm string
	msg  string
}

func (p *parmError) Error() string {
	return fmt.Sprintf("%v: %v", p.parm, p.msg)
}

// checkEncoderParameters validates the encoder.* keys of v and turns them
// into encoder options.
func checkEncoderParameters(v *viper.Viper) (opus.Application, []opus.Option, error) {
	opts := []opus.Option{opus.WithLogger(streamLogger(v))}

	app, err := opus.ParseApplication(v.GetString("encoder.application"))
	if err != nil {
		return 0, nil, &parmError{"encoder.application", "allowed values are [audio, voip, restricted_lowdelay]"}
	}

	bitrate := v.GetInt("encoder.bitrate")
	if bitrate != 0 && (bitrate < 6000 || bitrate > 510000) {
		return 0, nil, &parmError{"encoder.bitrate", "allowed values are [6000...510000] or 0 for automatic"}
	}
	opts = append(opts, opus.WithBitrate(bitrate))

	complexity := v.GetInt("encoder.complexity")
	if complexity < -1 || complexity > 10 {
		return 0, nil, &parmError{"encoder.complexity", "allowed values are [0...10] or -1 for the codec default"}
	}
	opts = append(opts, opus.WithComplexity(complexity))

	bw, err := opus.ParseBandwidth(v.GetString("encoder.max_bandwidth"))
	if err != nil {
		return 0, nil, &parmError{"encoder.max_bandwidth",
			"allowed values are [auto, narrowband, mediumband, wideband, superwideband, fullband]"}
	}
	opts = append(opts, opus.WithMaxBandwidth(bw))

	fd := v.GetDuration("encoder.frame_duration")
	if !opus.ValidFrameDuration(fd) {
		return 0, nil, &parmError{"encoder.frame_duration", "allowed values are [2.5ms, 5ms, 10ms, 20ms, 40ms, 60ms]"}
	}
	opts = append(opts, opus.WithFrameDuration(fd))

	if tags := v.GetStringSlice("encoder.comments"); len(tags) > 0 {
		var comments []opus.Comment
		for _, t := range tags {
			c := opus.ParseComment(t)
			if c.Tag == "" || !strings.Contains(t, "=") {
				return 0, nil, &parmError{"encoder.comments", fmt.Sprintf("%q is not of the form TAG=value", t)}
			}
			comments = append(comments, c)
		}
		opts = append(opts, opus.WithAddedComments(comments...))
	}

	return app, opts, nil
}

// checkDecoderParameters validates the decoder.* keys.
func checkDecoderParameters(v *viper.Viper) ([]opus.Option, error) {
	opts := []opus.Option{opus.WithLogger(streamLogger(v))}

	switch rate := v.GetInt("decoder.rate"); rate {
	case 0:
	case 8000, 12000, 16000, 24000, 48000:
		opts = append(opts, opus.WithOutputRate(rate))
	default:
		return nil, &parmError{"decoder.rate", "allowed values are [8000, 12000, 16000, 24000, 48000] or 0 for the stream rate"}
	}

	return opts, nil
}
