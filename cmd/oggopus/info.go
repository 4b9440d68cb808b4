// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"text/template"
	"time"

	"github.com/ik5/oggopus/formats/opus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var infoCmd = &cobra.Command{
	Use:   "info <input.opus>",
	Short: "Show the streams, headers and tags of an Ogg Opus file",
	Long: `Decode an Ogg Opus file and list every chained stream with its
identification header, comment header and decoded length.`,
	Args: cobra.ExactArgs(1),
	RunE: info,
}

func init() {
	RootCmd.AddCommand(infoCmd)
}

type linkInfo struct {
	opus.Link
	Duration time.Duration
}

var infoTmpl = template.Must(template.New("").Parse(
	`{{.Name}}: {{.Rate}} Hz output, {{len .Links}} stream(s)
{{range $i, $l := .Links}}
Stream {{$i}}:
	Serial:          {{printf "%#08x" $l.Serial}}
	Channels:        {{$l.Head.Channels}}
	Input rate:      {{$l.Head.InputRate}} Hz
	Pre-skip:        {{$l.Head.PreSkip}}
	Output gain:     {{$l.Head.OutputGain}}
	Mapping family:  {{$l.Head.MappingFamily}}
	Vendor:          {{$l.Tags.Vendor}}
	Samples:         {{$l.Samples}}
	Duration:        {{$l.Duration}}
{{- range $l.Tags.Comments}}
	{{.}}
{{- end}}
{{end}}`,
))

func info(cmd *cobra.Command, args []string) error {
	opts, err := checkDecoderParameters(viper.GetViper())
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	dec, err := opus.NewStreamDecoder(opts...)
	if err != nil {
		return err
	}
	defer dec.Close()

	r := bufio.NewReader(f)
	buf := make([]byte, 32*1024)
	for {
		n, rerr := r.Read(buf)
		if _, err := dec.Write(buf[:n]); err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		// Only the stream bookkeeping is needed.
		dec.TakePCM(-1)
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return rerr
		}
	}
	if err := dec.Finish(); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	links := dec.Links()
	data := struct {
		Name  string
		Rate  int
		Links []linkInfo
	}{Name: args[0], Rate: dec.SampleRate()}
	for _, l := range links {
		d := time.Duration(l.Samples) * time.Second / time.Duration(dec.SampleRate())
		data.Links = append(data.Links, linkInfo{Link: l, Duration: d})
	}

	return infoTmpl.Execute(cmd.OutOrStdout(), data)
}
