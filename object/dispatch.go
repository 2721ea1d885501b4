package object

import "github.com/dh1tw/audiohal/hal"

// Kind is the closed set of wrapper variants. The HAL models its
// object zoo as a deep class hierarchy; here that hierarchy is
// flattened to a tag chosen once at bind time plus per-variant method
// sets.
type Kind int

const (
	KindUnknown Kind = iota
	KindSystem
	KindPlugIn
	KindTransportManager
	KindBox
	KindDevice
	KindAggregateDevice
	KindSubDevice
	KindClockDevice
	KindStream
	KindLevelControl
	KindBooleanControl
	KindSelectorControl
)

func (k Kind) String() string {
	switch k {
	case KindSystem:
		return "system"
	case KindPlugIn:
		return "plug-in"
	case KindTransportManager:
		return "transport manager"
	case KindBox:
		return "box"
	case KindDevice:
		return "device"
	case KindAggregateDevice:
		return "aggregate device"
	case KindSubDevice:
		return "subdevice"
	case KindClockDevice:
		return "clock device"
	case KindStream:
		return "stream"
	case KindLevelControl:
		return "level control"
	case KindBooleanControl:
		return "boolean control"
	case KindSelectorControl:
		return "selector control"
	}
	return "unknown"
}

// kindByClass is the dispatch table from HAL class id to wrapper
// variant. Control subclasses collapse onto their capability variant.
var kindByClass = map[hal.FourCC]Kind{
	hal.ClassSystem:           KindSystem,
	hal.ClassPlugIn:           KindPlugIn,
	hal.ClassTransportManager: KindTransportManager,
	hal.ClassBox:              KindBox,
	hal.ClassDevice:           KindDevice,
	hal.ClassAggregateDevice:  KindAggregateDevice,
	hal.ClassSubDevice:        KindSubDevice,
	hal.ClassClockDevice:      KindClockDevice,
	hal.ClassStream:           KindStream,
	hal.ClassLevelControl:     KindLevelControl,
	hal.ClassVolumeControl:    KindLevelControl,
	hal.ClassBooleanControl:   KindBooleanControl,
	hal.ClassMuteControl:      KindBooleanControl,
	hal.ClassSoloControl:      KindBooleanControl,
	hal.ClassJackControl:      KindBooleanControl,
	hal.ClassSelectorControl:  KindSelectorControl,
	hal.ClassDataSourceCtl:    KindSelectorControl,
	hal.ClassClockSourceCtl:   KindSelectorControl,
}

// Kind maps the object's class to its wrapper variant.
func (o *Object) Kind() Kind {
	return kindByClass[o.class]
}

// AsDevice converts the handle to a device wrapper. Aggregate devices
// and subdevices carry the full device capability set as well.
func (o *Object) AsDevice() (*Device, bool) {
	switch o.Kind() {
	case KindDevice, KindAggregateDevice, KindSubDevice:
		return &Device{Object: o}, true
	}
	return nil, false
}

// AsStream converts the handle to a stream wrapper.
func (o *Object) AsStream() (*Stream, bool) {
	if o.Kind() != KindStream {
		return nil, false
	}
	return &Stream{Object: o}, true
}

// AsLevelControl converts the handle to a level control wrapper.
func (o *Object) AsLevelControl() (*LevelControl, bool) {
	if o.Kind() != KindLevelControl {
		return nil, false
	}
	return &LevelControl{Control: Control{Object: o}}, true
}

// AsBooleanControl converts the handle to a boolean control wrapper.
func (o *Object) AsBooleanControl() (*BooleanControl, bool) {
	if o.Kind() != KindBooleanControl {
		return nil, false
	}
	return &BooleanControl{Control: Control{Object: o}}, true
}

// AsSelectorControl converts the handle to a selector control wrapper.
func (o *Object) AsSelectorControl() (*SelectorControl, bool) {
	if o.Kind() != KindSelectorControl {
		return nil, false
	}
	return &SelectorControl{Control: Control{Object: o}}, true
}
