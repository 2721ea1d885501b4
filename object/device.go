package object

import (
	"fmt"

	"github.com/dh1tw/audiohal/hal"
	"github.com/dh1tw/audiohal/property"
)

// Device wraps an audio device: a collection of streams and controls
// with a shared clock. Aggregate devices and subdevices use the same
// wrapper.
type Device struct {
	*Object
}

// UID returns the stable device UID which survives reboots and
// replugging.
func (d *Device) UID() (string, error) {
	return property.String(d.api, d.id, hal.GlobalAddress(hal.SelectorDeviceUID), nil)
}

// ModelUID returns the UID shared by all devices of the same model.
func (d *Device) ModelUID() (string, error) {
	return property.String(d.api, d.id, hal.GlobalAddress(hal.SelectorModelUID), nil)
}

// TransportType reports how the device is attached (built-in, USB,
// Bluetooth, ...).
func (d *Device) TransportType() (hal.FourCC, error) {
	t, err := property.Scalar[uint32](d.api, d.id, hal.GlobalAddress(hal.SelectorTransportType), nil)
	return hal.FourCC(t), err
}

// IsAlive reports whether the device is still present.
func (d *Device) IsAlive() (bool, error) {
	v, err := property.Scalar[uint32](d.api, d.id, hal.GlobalAddress(hal.SelectorDeviceIsAlive), nil)
	return v != 0, err
}

// IsRunning reports whether the device is currently doing IO for any
// process.
func (d *Device) IsRunning() (bool, error) {
	v, err := property.Scalar[uint32](d.api, d.id, hal.GlobalAddress(hal.SelectorDeviceIsRunning), nil)
	return v != 0, err
}

// NominalSampleRate returns the device clock's nominal rate in Hz.
func (d *Device) NominalSampleRate() (float64, error) {
	return property.Scalar[float64](d.api, d.id, hal.GlobalAddress(hal.SelectorNominalSampleRate), nil)
}

// SetNominalSampleRate asks the device to change its clock rate. The
// rate must lie in one of the ranges reported by AvailableSampleRates.
func (d *Device) SetNominalSampleRate(rate float64) error {
	ranges, err := d.AvailableSampleRates()
	if err == nil {
		supported := false
		for _, r := range ranges {
			if r.Contains(rate) {
				supported = true
				break
			}
		}
		if !supported {
			return fmt.Errorf("device %d does not support %g Hz", d.id, rate)
		}
	}
	return property.SetScalar(d.api, d.id, hal.GlobalAddress(hal.SelectorNominalSampleRate), nil, rate)
}

// AvailableSampleRates returns the supported nominal rate ranges.
// Fixed rates appear as ranges with equal bounds.
func (d *Device) AvailableSampleRates() ([]ValueRange, error) {
	return property.Array[ValueRange](d.api, d.id, hal.GlobalAddress(hal.SelectorAvailableRates), nil)
}

// Streams returns the device streams for one side of the device.
func (d *Device) Streams(scope hal.FourCC) ([]*Stream, error) {
	ids, err := property.Array[hal.ObjectID](d.api, d.id, hal.Address(hal.SelectorStreams, scope, hal.ElementMain), nil)
	if err != nil {
		return nil, err
	}

	streams := make([]*Stream, 0, len(ids))
	for _, id := range ids {
		obj, err := Bind(d.api, id, WithLogger(d.log))
		if err != nil {
			return nil, err
		}
		st, ok := obj.AsStream()
		if !ok {
			return nil, fmt.Errorf("object %d in the stream list has class %v",
				obj.ID(), obj.Class())
		}
		streams = append(streams, st)
	}
	return streams, nil
}

// Controls returns all controls owned by the device.
func (d *Device) Controls() ([]*Object, error) {
	objs, err := d.OwnedObjects()
	if err != nil {
		return nil, err
	}
	var controls []*Object
	for _, obj := range objs {
		switch obj.Kind() {
		case KindLevelControl, KindBooleanControl, KindSelectorControl:
			controls = append(controls, obj)
		}
	}
	return controls, nil
}

// Latency reports the device's presentation latency in frames for the
// given scope.
func (d *Device) Latency(scope hal.FourCC) (uint32, error) {
	return property.Scalar[uint32](d.api, d.id, hal.Address(hal.SelectorLatency, scope, hal.ElementMain), nil)
}

// SafetyOffset reports how many frames ahead of the HAL's IO head a
// client must stay, for the given scope.
func (d *Device) SafetyOffset(scope hal.FourCC) (uint32, error) {
	return property.Scalar[uint32](d.api, d.id, hal.Address(hal.SelectorSafetyOffset, scope, hal.ElementMain), nil)
}

// BufferFrameSize returns the current IO buffer size in frames.
func (d *Device) BufferFrameSize() (uint32, error) {
	return property.Scalar[uint32](d.api, d.id, hal.GlobalAddress(hal.SelectorBufferFrameSize), nil)
}

// SetBufferFrameSize changes the IO buffer size.
func (d *Device) SetBufferFrameSize(frames uint32) error {
	return property.SetScalar(d.api, d.id, hal.GlobalAddress(hal.SelectorBufferFrameSize), nil, frames)
}

// BufferFrameSizeRange returns the allowed IO buffer sizes.
func (d *Device) BufferFrameSizeRange() (ValueRange, error) {
	return property.Scalar[ValueRange](d.api, d.id, hal.GlobalAddress(hal.SelectorBufferFrameSizeRng), nil)
}

// PreferredChannels returns the stereo pair (left, right) used for
// default stereo IO on the given side of the device.
func (d *Device) PreferredChannels(scope hal.FourCC) (uint32, uint32, error) {
	ch, err := property.Array[uint32](d.api, d.id, hal.Address(hal.SelectorPreferredChannels, scope, hal.ElementMain), nil)
	if err != nil {
		return 0, 0, err
	}
	if len(ch) != 2 {
		return 0, 0, fmt.Errorf("device %d reported %d preferred channels, expected 2", d.id, len(ch))
	}
	return ch[0], ch[1], nil
}

// HogPID returns the pid of the process holding exclusive access, or
// -1 if the device is not hogged.
func (d *Device) HogPID() (int32, error) {
	return property.Scalar[int32](d.api, d.id, hal.GlobalAddress(hal.SelectorHogMode), nil)
}

// Mute reports the mute state for a scope. Not every device has a
// master mute; check with HasProperty first or treat the unavailable
// error as "no mute control".
func (d *Device) Mute(scope hal.FourCC) (bool, error) {
	v, err := property.Scalar[uint32](d.api, d.id, hal.Address(hal.SelectorMute, scope, hal.ElementMain), nil)
	return v != 0, err
}

// SetMute changes the mute state for a scope.
func (d *Device) SetMute(scope hal.FourCC, mute bool) error {
	var v uint32
	if mute {
		v = 1
	}
	return property.SetScalar(d.api, d.id, hal.Address(hal.SelectorMute, scope, hal.ElementMain), nil, v)
}

// VolumeScalar returns the volume of one element as a scalar between
// 0 and 1 along the device's fader curve.
func (d *Device) VolumeScalar(scope hal.FourCC, element uint32) (float32, error) {
	return property.Scalar[float32](d.api, d.id, hal.Address(hal.SelectorVolumeScalar, scope, element), nil)
}

// SetVolumeScalar changes the volume of one element.
func (d *Device) SetVolumeScalar(scope hal.FourCC, element uint32, volume float32) error {
	return property.SetScalar(d.api, d.id, hal.Address(hal.SelectorVolumeScalar, scope, element), nil, volume)
}

// VolumeDecibels returns the volume of one element in dB.
func (d *Device) VolumeDecibels(scope hal.FourCC, element uint32) (float32, error) {
	return property.Scalar[float32](d.api, d.id, hal.Address(hal.SelectorVolumeDecibels, scope, element), nil)
}

// DataSource returns the id of the active data source (e.g. internal
// speakers vs. headphones) for a scope.
func (d *Device) DataSource(scope hal.FourCC) (uint32, error) {
	return property.Scalar[uint32](d.api, d.id, hal.Address(hal.SelectorDataSource, scope, hal.ElementMain), nil)
}

// SetDataSource selects a data source.
func (d *Device) SetDataSource(scope hal.FourCC, source uint32) error {
	return property.SetScalar(d.api, d.id, hal.Address(hal.SelectorDataSource, scope, hal.ElementMain), nil, source)
}

// DataSources returns the selectable data source ids for a scope.
func (d *Device) DataSources(scope hal.FourCC) ([]uint32, error) {
	return property.Array[uint32](d.api, d.id, hal.Address(hal.SelectorDataSources, scope, hal.ElementMain), nil)
}

// DataSourceName resolves a data source id to its display name through
// the HAL's translation property.
func (d *Device) DataSourceName(scope hal.FourCC, source uint32) (string, error) {
	addr := hal.Address(hal.SelectorDataSourceNameCF, scope, hal.ElementMain)
	ref, err := property.Translate[uint32, hal.Ref](d.api, d.id, addr, source)
	if err != nil {
		return "", err
	}
	defer d.api.Release(ref)

	name, ok := d.api.StringValue(ref)
	if !ok {
		return "", hal.NewError("string read", d.id, addr, hal.StatusUnspecified)
	}
	return name, nil
}
