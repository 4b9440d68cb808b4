// SPDX-License-Identifier: EPL-2.0

package oggopus

import "errors"

var ErrUnknownOggCodec = errors.New("ogg stream holds neither Opus nor Vorbis")
