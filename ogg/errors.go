// SPDX-License-Identifier: EPL-2.0

package ogg

import "errors"

var (
	ErrInvalidPage       = errors.New("ogg: invalid page")
	ErrBadCRC            = errors.New("ogg: page checksum mismatch")
	ErrNeedMore          = errors.New("ogg: need more data")
	ErrLostSync          = errors.New("ogg: lost sync, skipped bytes")
	ErrBufferOverrun     = errors.New("ogg: wrote past the sync buffer")
	ErrSerialMismatch    = errors.New("ogg: page belongs to another logical stream")
	ErrStreamClosed      = errors.New("ogg: logical stream already ended")
	ErrPacketOrder       = errors.New("ogg: packet numbers must be strictly increasing")
	ErrGranuleRegression = errors.New("ogg: granule position went backwards")
)
