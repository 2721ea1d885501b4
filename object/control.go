package object

import (
	"encoding/binary"

	"github.com/chewxy/math32"

	"github.com/dh1tw/audiohal/hal"
	"github.com/dh1tw/audiohal/property"
)

// Control is the shared capability of all control variants: every
// control applies to one scope and element of its owning device.
type Control struct {
	*Object
}

// ControlScope reports which signal path of the owning device the
// control acts on.
func (c *Control) ControlScope() (hal.FourCC, error) {
	s, err := property.Scalar[uint32](c.api, c.id, hal.GlobalAddress(hal.SelectorControlScope), nil)
	return hal.FourCC(s), err
}

// ControlElement reports which channel of the owning device the
// control acts on; 0 is the master element.
func (c *Control) ControlElement() (uint32, error) {
	return property.Scalar[uint32](c.api, c.id, hal.GlobalAddress(hal.SelectorControlElement), nil)
}

// LevelControl is a control with a continuous value, e.g. a volume
// fader. Values exist twice: as a scalar between 0 and 1 along the
// fader curve and in decibels.
type LevelControl struct {
	Control
}

// ScalarValue returns the fader position between 0 and 1.
func (l *LevelControl) ScalarValue() (float32, error) {
	return property.Scalar[float32](l.api, l.id, hal.GlobalAddress(hal.SelectorLevelScalar), nil)
}

// SetScalarValue moves the fader.
func (l *LevelControl) SetScalarValue(v float32) error {
	return property.SetScalar(l.api, l.id, hal.GlobalAddress(hal.SelectorLevelScalar), nil, v)
}

// DecibelValue returns the current value in dB.
func (l *LevelControl) DecibelValue() (float32, error) {
	return property.Scalar[float32](l.api, l.id, hal.GlobalAddress(hal.SelectorLevelDecibels), nil)
}

// SetDecibelValue sets the value in dB.
func (l *LevelControl) SetDecibelValue(v float32) error {
	return property.SetScalar(l.api, l.id, hal.GlobalAddress(hal.SelectorLevelDecibels), nil, v)
}

// DecibelRange returns the control's dB range.
func (l *LevelControl) DecibelRange() (ValueRange, error) {
	return property.Scalar[ValueRange](l.api, l.id, hal.GlobalAddress(hal.SelectorLevelDecibelRange), nil)
}

// ConvertScalarToDecibels runs the control's own fader curve, which
// only the HAL knows exactly.
func (l *LevelControl) ConvertScalarToDecibels(scalar float32) (float32, error) {
	return property.Translate[float32, float32](l.api, l.id, hal.GlobalAddress(hal.SelectorLevelScalarToDB), scalar)
}

// ConvertDecibelsToScalar is the inverse of ConvertScalarToDecibels.
func (l *LevelControl) ConvertDecibelsToScalar(db float32) (float32, error) {
	return property.Translate[float32, float32](l.api, l.id, hal.GlobalAddress(hal.SelectorLevelDBToScalar), db)
}

// BooleanControl is a two-state control: mute, solo, jack sense.
type BooleanControl struct {
	Control
}

// Value returns the control state.
func (b *BooleanControl) Value() (bool, error) {
	v, err := property.Scalar[uint32](b.api, b.id, hal.GlobalAddress(hal.SelectorBooleanValue), nil)
	return v != 0, err
}

// SetValue changes the control state.
func (b *BooleanControl) SetValue(on bool) error {
	var v uint32
	if on {
		v = 1
	}
	return property.SetScalar(b.api, b.id, hal.GlobalAddress(hal.SelectorBooleanValue), nil, v)
}

// SelectorControl is a control choosing one item out of a list, e.g.
// a data source or clock source selector.
type SelectorControl struct {
	Control
}

// CurrentItem returns the id of the selected item.
func (s *SelectorControl) CurrentItem() (uint32, error) {
	return property.Scalar[uint32](s.api, s.id, hal.GlobalAddress(hal.SelectorSelectorCurrent), nil)
}

// SetCurrentItem selects an item.
func (s *SelectorControl) SetCurrentItem(item uint32) error {
	return property.SetScalar(s.api, s.id, hal.GlobalAddress(hal.SelectorSelectorCurrent), nil, item)
}

// AvailableItems returns the selectable item ids.
func (s *SelectorControl) AvailableItems() ([]uint32, error) {
	return property.Array[uint32](s.api, s.id, hal.GlobalAddress(hal.SelectorSelectorAvailable), nil)
}

// ItemName resolves an item id to its display name. The item id is
// passed as the read's qualifier.
func (s *SelectorControl) ItemName(item uint32) (string, error) {
	q := make(hal.Qualifier, 4)
	binary.NativeEndian.PutUint32(q, item)
	return property.String(s.api, s.id, hal.GlobalAddress(hal.SelectorSelectorItemName), q)
}

// FaderPosition maps a volume scalar to the cubic fader position used
// by the UI surfaces of this module.
func FaderPosition(scalar float32) float32 {
	if scalar < 0 {
		return 0
	}
	return math32.Pow(scalar, 1.0/3.0)
}

// ScalarFromFader is the inverse of FaderPosition.
func ScalarFromFader(position float32) float32 {
	if position < 0 {
		return 0
	}
	return math32.Pow(position, 3)
}
