// SPDX-License-Identifier: EPL-2.0

package main

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// RootCmd is the base command; every subcommand hangs off it.
var RootCmd = &cobra.Command{
	Use:   "oggopus",
	Short: "Encode and decode Ogg Opus files",
	Long: `oggopus converts WAV, AIFF, MP3 and Ogg files to Ogg Opus and decodes
Ogg Opus files, chained ones included, back to 16-bit WAV.

Every flag can also be set in a config file (--config) or through an
OGGOPUS_ environment variable, e.g. OGGOPUS_ENCODER_BITRATE=64000.`,
	SilenceUsage: true,
}

// Execute runs RootCmd and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "log skipped pages and streams")
	viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	viper.SetEnvPrefix("OGGOPUS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile == "" {
		return
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("unable to read config file %s: %v", cfgFile, err)
	}
}

// streamLogger is handed to the library with --verbose, nil otherwise.
func streamLogger(v *viper.Viper) *log.Logger {
	if !v.GetBool("verbose") {
		return nil
	}
	return log.New(os.Stderr, "oggopus: ", log.Lmicroseconds)
}
