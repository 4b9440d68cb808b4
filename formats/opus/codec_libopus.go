// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"errors"
	"fmt"
	"sync"

	libopus "gopkg.in/hraban/opus.v2"
)

// LibopusVersion is the version string of the linked libopus.
func LibopusVersion() string {
	return libopus.Version()
}

var libopusApplications = map[Application]libopus.Application{
	AppAudio:              libopus.AppAudio,
	AppVoIP:               libopus.AppVoIP,
	AppRestrictedLowDelay: libopus.AppRestrictedLowdelay,
}

var libopusBandwidths = map[Bandwidth]libopus.Bandwidth{
	Narrowband:    libopus.Narrowband,
	Mediumband:    libopus.Mediumband,
	Wideband:      libopus.Wideband,
	SuperWideband: libopus.SuperWideband,
	Fullband:      libopus.Fullband,
}

// codecError maps a libopus error code onto the package error kinds.
func codecError(op string, err error) error {
	var code libopus.Error
	if !errors.As(err, &code) {
		return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
	}

	kind := ErrInternal
	switch code {
	case libopus.ErrBadArg:
		kind = ErrBadArgument
	case libopus.ErrBufferTooSmall:
		kind = ErrBufferTooSmall
	case libopus.ErrInvalidPacket:
		kind = ErrInvalidPacket
	case libopus.ErrUnimplemented:
		kind = ErrUnimplemented
	case libopus.ErrInvalidState:
		kind = ErrInvalidState
	case libopus.ErrAllocFail:
		kind = ErrAllocationFailure
	}
	return fmt.Errorf("%w: %s: %w", kind, op, err)
}

type libopusEncoder struct {
	mtx sync.Mutex
	enc *libopus.Encoder
}

// NewLibopusEncoder builds a FrameEncoder on top of libopus.
func NewLibopusEncoder(cfg CodecConfig) (FrameEncoder, error) {
	app, ok := libopusApplications[cfg.Application]
	if !ok {
		return nil, fmt.Errorf("%w: application %v", ErrBadArgument, cfg.Application)
	}
	enc, err := libopus.NewEncoder(cfg.SampleRate, cfg.Channels, app)
	if err != nil {
		return nil, codecError("create encoder", err)
	}

	if cfg.Bitrate > 0 {
		if err := enc.SetBitrate(cfg.Bitrate); err != nil {
			return nil, codecError("set bitrate", err)
		}
	}
	if cfg.Complexity >= 0 {
		if err := enc.SetComplexity(cfg.Complexity); err != nil {
			return nil, codecError("set complexity", err)
		}
	}
	if bw, ok := libopusBandwidths[cfg.MaxBandwidth]; ok {
		if err := enc.SetMaxBandwidth(bw); err != nil {
			return nil, codecError("set max bandwidth", err)
		}
	}
	if cfg.InBandFEC {
		if err := enc.SetInBandFEC(true); err != nil {
			return nil, codecError("set inband fec", err)
		}
	}
	if cfg.PacketLossPerc > 0 {
		if err := enc.SetPacketLossPerc(cfg.PacketLossPerc); err != nil {
			return nil, codecError("set packet loss", err)
		}
	}
	if cfg.DTX {
		if err := enc.SetDTX(true); err != nil {
			return nil, codecError("set dtx", err)
		}
	}

	return &libopusEncoder{enc: enc}, nil
}

func (e *libopusEncoder) Encode(pcm []int16, data []byte) (int, error) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if e.enc == nil {
		return 0, fmt.Errorf("%w: encoder released", ErrInvalidState)
	}
	n, err := e.enc.Encode(pcm, data)
	if err != nil {
		return 0, codecError("encode", err)
	}
	return n, nil
}

// Close drops the codec state; later calls fail with ErrInvalidState.
func (e *libopusEncoder) Close() error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	e.enc = nil
	return nil
}

type libopusDecoder struct {
	mtx sync.Mutex
	dec *libopus.Decoder
}

// NewLibopusDecoder builds a FrameDecoder on top of libopus.
func NewLibopusDecoder(sampleRate, channels int) (FrameDecoder, error) {
	dec, err := libopus.NewDecoder(sampleRate, channels)
	if err != nil {
		return nil, codecError("create decoder", err)
	}
	return &libopusDecoder{dec: dec}, nil
}

func (d *libopusDecoder) DecodeFloat32(data []byte, pcm []float32) (int, error) {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if d.dec == nil {
		return 0, fmt.Errorf("%w: decoder released", ErrInvalidState)
	}
	n, err := d.dec.DecodeFloat32(data, pcm)
	if err != nil {
		return 0, codecError("decode", err)
	}
	return n, nil
}

func (d *libopusDecoder) Close() error {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	d.dec = nil
	return nil
}
