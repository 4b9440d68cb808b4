// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/ik5/oggopus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <input.opus> <output.wav>",
	Short: "Decode an Ogg Opus file to 16-bit WAV",
	Long: `Decode an Ogg Opus file to 16-bit WAV. Chained streams are joined into one
WAV file; every link must have the same channel count.`,
	Args: cobra.ExactArgs(2),
	RunE: decode,
}

func init() {
	RootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().IntP("rate", "r", 0, "output sample rate, 0 uses the rate named in the stream")
	viper.BindPFlag("decoder.rate", decodeCmd.Flags().Lookup("rate"))
}

func decode(cmd *cobra.Command, args []string) error {
	opts, err := checkDecoderParameters(viper.GetViper())
	if err != nil {
		return err
	}

	in, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(args[1])
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(out)

	n, err := oggopus.DecodeToWAV(bw, bufio.NewReader(in), opts...)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	if viper.GetBool("verbose") {
		log.Printf("wrote %d bytes to %s", n, args[1])
	}
	return nil
}
