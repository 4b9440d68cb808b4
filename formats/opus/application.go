// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"fmt"
	"strings"
)

// Application selects the codec tuning.
type Application int

const (
	AppAudio Application = iota
	AppVoIP
	AppRestrictedLowDelay
)

func (a Application) String() string {
	switch a {
	case AppAudio:
		return "audio"
	case AppVoIP:
		return "voip"
	case AppRestrictedLowDelay:
		return "restricted_lowdelay"
	}
	return fmt.Sprintf("Application(%d)", int(a))
}

// ParseApplication accepts the names printed by Application.String.
func ParseApplication(s string) (Application, error) {
	switch strings.ToLower(s) {
	case "audio":
		return AppAudio, nil
	case "voip":
		return AppVoIP, nil
	case "restricted_lowdelay", "lowdelay":
		return AppRestrictedLowDelay, nil
	}
	return 0, fmt.Errorf("%w: unknown application %q", ErrBadArgument, s)
}

// Bandwidth caps the coded audio bandwidth. BandwidthAuto leaves it to the
// codec.
type Bandwidth int

const (
	BandwidthAuto Bandwidth = iota
	Narrowband
	Mediumband
	Wideband
	SuperWideband
	Fullband
)

var bandwidthNames = map[Bandwidth]string{
	BandwidthAuto: "auto",
	Narrowband:    "narrowband",
	Mediumband:    "mediumband",
	Wideband:      "wideband",
	SuperWideband: "superwideband",
	Fullband:      "fullband",
}

func (b Bandwidth) String() string {
	if s, ok := bandwidthNames[b]; ok {
		return s
	}
	return fmt.Sprintf("Bandwidth(%d)", int(b))
}

func ParseBandwidth(s string) (Bandwidth, error) {
	s = strings.ToLower(s)
	for b, name := range bandwidthNames {
		if name == s {
			return b, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown bandwidth %q", ErrBadArgument, s)
}
