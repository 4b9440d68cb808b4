// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"errors"
	"fmt"
)

// Every error returned by this package matches exactly one of these with
// errors.Is.
var (
	ErrBadArgument       = errors.New("opus: bad argument")
	ErrBufferTooSmall    = errors.New("opus: buffer too small")
	ErrInternal          = errors.New("opus: internal error")
	ErrInvalidPacket     = errors.New("opus: invalid packet")
	ErrUnimplemented     = errors.New("opus: unimplemented")
	ErrInvalidState      = errors.New("opus: invalid state")
	ErrAllocationFailure = errors.New("opus: allocation failure")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrBadArgument, "BadArgument"},
	{ErrBufferTooSmall, "BufferTooSmall"},
	{ErrInternal, "InternalError"},
	{ErrInvalidPacket, "InvalidPacket"},
	{ErrUnimplemented, "Unimplemented"},
	{ErrInvalidState, "InvalidState"},
	{ErrAllocationFailure, "AllocationFailure"},
}

// Kind names the error kind of err, "" for nil and "Unknown" for errors
// that did not come from this package.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "Unknown"
}

// classify makes sure err carries one of the package kinds, falling back to
// ErrInternal.
func classify(err error) error {
	if err == nil || Kind(err) != "Unknown" {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInternal, err)
}
