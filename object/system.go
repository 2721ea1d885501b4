package object

import (
	"fmt"

	"github.com/dh1tw/audiohal/hal"
	"github.com/dh1tw/audiohal/property"
)

// System wraps the root object of the HAL. It owns every device,
// plug-in and box and carries the process-wide default device
// properties.
type System struct {
	*Object
}

// NewSystem binds the system object (id 1).
func NewSystem(api hal.API, opts ...Option) (*System, error) {
	o, err := Bind(api, hal.SystemObjectID, opts...)
	if err != nil {
		return nil, err
	}
	if o.Kind() != KindSystem {
		return nil, fmt.Errorf("object %d is not the system object (class %v)",
			o.ID(), o.Class())
	}
	return &System{Object: o}, nil
}

// Devices returns a handle for every device currently present.
func (s *System) Devices() ([]*Device, error) {
	ids, err := property.Array[hal.ObjectID](s.api, s.id, hal.GlobalAddress(hal.SelectorDevices), nil)
	if err != nil {
		return nil, err
	}

	devices := make([]*Device, 0, len(ids))
	for _, id := range ids {
		obj, err := Bind(s.api, id, WithLogger(s.log))
		if err != nil {
			return nil, err
		}
		dev, ok := obj.AsDevice()
		if !ok {
			return nil, fmt.Errorf("object %d in the device list has class %v",
				obj.ID(), obj.Class())
		}
		devices = append(devices, dev)
	}
	return devices, nil
}

func (s *System) defaultDevice(selector hal.FourCC) (*Device, error) {
	id, err := property.Scalar[hal.ObjectID](s.api, s.id, hal.GlobalAddress(selector), nil)
	if err != nil {
		return nil, err
	}
	if id == hal.ObjectUnknown {
		return nil, nil
	}
	obj, err := Bind(s.api, id, WithLogger(s.log))
	if err != nil {
		return nil, err
	}
	dev, ok := obj.AsDevice()
	if !ok {
		return nil, fmt.Errorf("default device %d has class %v", obj.ID(), obj.Class())
	}
	return dev, nil
}

// DefaultInputDevice returns the default input device, or nil if none
// is configured.
func (s *System) DefaultInputDevice() (*Device, error) {
	return s.defaultDevice(hal.SelectorDefaultInputDevice)
}

// DefaultOutputDevice returns the default output device, or nil if
// none is configured.
func (s *System) DefaultOutputDevice() (*Device, error) {
	return s.defaultDevice(hal.SelectorDefaultOutputDevice)
}

// DefaultSystemDevice returns the device used for alerts and sound
// effects, or nil if none is configured.
func (s *System) DefaultSystemDevice() (*Device, error) {
	return s.defaultDevice(hal.SelectorDefaultSystemDevice)
}

// SetDefaultOutputDevice makes dev the default output device.
func (s *System) SetDefaultOutputDevice(dev *Device) error {
	return property.SetScalar(s.api, s.id, hal.GlobalAddress(hal.SelectorDefaultOutputDevice), nil, dev.ID())
}

// SetDefaultInputDevice makes dev the default input device.
func (s *System) SetDefaultInputDevice(dev *Device) error {
	return property.SetScalar(s.api, s.id, hal.GlobalAddress(hal.SelectorDefaultInputDevice), nil, dev.ID())
}

// DeviceForUID looks up a device by its stable UID through the HAL's
// UID translation property. It returns nil when no present device
// carries the UID. HALs without the translator fall back to scanning
// the device list.
func (s *System) DeviceForUID(uid string) (*Device, error) {

	addr := hal.GlobalAddress(hal.SelectorTranslateUIDToDev)
	if !s.HasProperty(addr) {
		return s.scanForUID(uid)
	}

	ref := s.api.NewString(uid)
	if ref == 0 {
		return nil, fmt.Errorf("unable to create a string object for UID %q", uid)
	}
	defer s.api.Release(ref)

	id, err := property.Translate[hal.Ref, hal.ObjectID](s.api, s.id, addr, ref)
	if err != nil {
		return nil, err
	}
	if id == hal.ObjectUnknown {
		return nil, nil
	}

	obj, err := Bind(s.api, id, WithLogger(s.log))
	if err != nil {
		return nil, err
	}
	dev, ok := obj.AsDevice()
	if !ok {
		return nil, fmt.Errorf("UID %q translated to object %d with class %v",
			uid, obj.ID(), obj.Class())
	}
	return dev, nil
}

func (s *System) scanForUID(uid string) (*Device, error) {
	devices, err := s.Devices()
	if err != nil {
		return nil, err
	}
	for _, dev := range devices {
		devUID, err := dev.UID()
		if err != nil {
			if hal.IsUnavailable(err) {
				continue
			}
			return nil, err
		}
		if devUID == uid {
			return dev, nil
		}
	}
	return nil, nil
}
