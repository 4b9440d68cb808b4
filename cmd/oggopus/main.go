// SPDX-License-Identifier: EPL-2.0

// Command oggopus encodes audio files to Ogg Opus and decodes Ogg Opus files
// to WAV.
package main

import "log"

func main() {
	log.SetFlags(0)
	log.SetPrefix("oggopus: ")
	Execute()
}
