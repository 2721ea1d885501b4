package object

import (
	"github.com/dh1tw/audiohal/hal"
	"github.com/dh1tw/audiohal/property"
)

// Stream directions as reported by the HAL.
const (
	DirectionOutput uint32 = 0
	DirectionInput  uint32 = 1
)

// Stream wraps one unidirectional stream of a device.
type Stream struct {
	*Object
}

// IsActive reports whether the stream takes part in the device's IO.
func (s *Stream) IsActive() (bool, error) {
	v, err := property.Scalar[uint32](s.api, s.id, hal.GlobalAddress(hal.SelectorStreamIsActive), nil)
	return v != 0, err
}

// Direction reports whether this is an input or an output stream.
func (s *Stream) Direction() (uint32, error) {
	return property.Scalar[uint32](s.api, s.id, hal.GlobalAddress(hal.SelectorStreamDirection), nil)
}

// TerminalType describes what the stream connects to (speaker,
// microphone, line level, ...).
func (s *Stream) TerminalType() (hal.FourCC, error) {
	t, err := property.Scalar[uint32](s.api, s.id, hal.GlobalAddress(hal.SelectorStreamTerminalType), nil)
	return hal.FourCC(t), err
}

// StartingChannel returns the first device channel this stream covers.
func (s *Stream) StartingChannel() (uint32, error) {
	return property.Scalar[uint32](s.api, s.id, hal.GlobalAddress(hal.SelectorStreamStartingChannel), nil)
}

// Latency reports the stream's additional latency in frames.
func (s *Stream) Latency() (uint32, error) {
	return property.Scalar[uint32](s.api, s.id, hal.GlobalAddress(hal.SelectorLatency), nil)
}

// VirtualFormat returns the format presented to clients.
func (s *Stream) VirtualFormat() (StreamDescription, error) {
	return property.Scalar[StreamDescription](s.api, s.id, hal.GlobalAddress(hal.SelectorStreamVirtualFormat), nil)
}

// SetVirtualFormat changes the format presented to clients.
func (s *Stream) SetVirtualFormat(format StreamDescription) error {
	return property.SetScalar(s.api, s.id, hal.GlobalAddress(hal.SelectorStreamVirtualFormat), nil, format)
}

// PhysicalFormat returns the format the hardware itself runs in.
func (s *Stream) PhysicalFormat() (StreamDescription, error) {
	return property.Scalar[StreamDescription](s.api, s.id, hal.GlobalAddress(hal.SelectorStreamPhysicalFormat), nil)
}

// SetPhysicalFormat changes the hardware format.
func (s *Stream) SetPhysicalFormat(format StreamDescription) error {
	return property.SetScalar(s.api, s.id, hal.GlobalAddress(hal.SelectorStreamPhysicalFormat), nil, format)
}

// AvailableVirtualFormats lists the formats clients may request.
func (s *Stream) AvailableVirtualFormats() ([]StreamRangedDescription, error) {
	return property.Array[StreamRangedDescription](s.api, s.id, hal.GlobalAddress(hal.SelectorStreamAvailVirtual), nil)
}

// AvailablePhysicalFormats lists the formats the hardware supports.
func (s *Stream) AvailablePhysicalFormats() ([]StreamRangedDescription, error) {
	return property.Array[StreamRangedDescription](s.api, s.id, hal.GlobalAddress(hal.SelectorStreamAvailPhysical), nil)
}
