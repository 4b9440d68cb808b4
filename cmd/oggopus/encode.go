// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ik5/oggopus"
	"github.com/ik5/oggopus/formats/opus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <input> <output.opus>",
	Short: "Encode an audio file to Ogg Opus",
	Long: `Encode a WAV, AIFF, MP3, Ogg Vorbis or Ogg Opus file to Ogg Opus.

The input format is picked by file extension. The Opus stream runs at the
input sample rate, which has to be 8, 12, 16, 24 or 48 kHz.`,
	Args: cobra.ExactArgs(2),
	RunE: encode,
}

func init() {
	RootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().Bool("mono", false, "downmix to a single channel")
	encodeCmd.Flags().IntP("bitrate", "b", 0, "target bitrate in bit/s, 0 lets the codec pick")
	encodeCmd.Flags().IntP("complexity", "c", -1, "encoder complexity [0...10], -1 keeps the codec default")
	encodeCmd.Flags().StringP("application", "a", "audio", "codec tuning (audio, voip, restricted_lowdelay)")
	encodeCmd.Flags().String("max-bandwidth", "auto", "highest coded audio bandwidth")
	encodeCmd.Flags().Duration("frame-duration", opus.DefaultFrameDuration, "length of each Opus frame")
	encodeCmd.Flags().StringArray("comment", nil, "TAG=value comment, may be repeated")

	viper.BindPFlag("encoder.mono", encodeCmd.Flags().Lookup("mono"))
	viper.BindPFlag("encoder.bitrate", encodeCmd.Flags().Lookup("bitrate"))
	viper.BindPFlag("encoder.complexity", encodeCmd.Flags().Lookup("complexity"))
	viper.BindPFlag("encoder.application", encodeCmd.Flags().Lookup("application"))
	viper.BindPFlag("encoder.max_bandwidth", encodeCmd.Flags().Lookup("max-bandwidth"))
	viper.BindPFlag("encoder.frame_duration", encodeCmd.Flags().Lookup("frame-duration"))
	viper.BindPFlag("encoder.comments", encodeCmd.Flags().Lookup("comment"))
}

func encode(cmd *cobra.Command, args []string) error {
	app, opts, err := checkEncoderParameters(viper.GetViper())
	if err != nil {
		return err
	}

	dec, err := oggopus.DefaultRegistry().ForPath(args[0])
	if err != nil {
		return err
	}
	in, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer in.Close()

	src, err := dec.Decode(in)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	defer src.Close()

	out, err := os.Create(args[1])
	if err != nil {
		return err
	}

	cfg := oggopus.EncodeConfig{
		Mono:        viper.GetBool("encoder.mono"),
		Application: app,
	}
	n, err := oggopus.EncodeSource(out, src, cfg, opts...)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%s: %w", args[1], err)
	}

	if viper.GetBool("verbose") {
		log.Printf("wrote %d bytes to %s (%d Hz, %d channel(s) in)", n, args[1], src.SampleRate(), src.Channels())
	}
	return nil
}
