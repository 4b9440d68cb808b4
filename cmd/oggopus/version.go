// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"runtime"

	"github.com/ik5/oggopus/formats/opus"
	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X main.version=... -X main.commitHash=...".
var (
	version    = "dev"
	commitHash string
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of oggopus",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "oggopus Version: %s, %s/%s, Commit: %s, %s\n",
			version, runtime.GOOS, runtime.GOARCH, commitHash, opus.LibopusVersion())
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
