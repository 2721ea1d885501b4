package property

import (
	"runtime"
	"unsafe"

	"github.com/dh1tw/audiohal/hal"
)

// Translate performs an input to output conversion through a
// translated property: both slots are allocated here, the input value
// is filled in and the HAL performs the conversion during a single
// read of the translation record. There is no retry or partial result;
// any failure is a hard error.
func Translate[In any, Out any](api hal.API, id hal.ObjectID, addr hal.PropertyAddress, in In) (Out, error) {
	var out Out

	rec := hal.ValueTranslation{
		Input:      unsafe.Pointer(&in),
		InputSize:  uint32(unsafe.Sizeof(in)),
		Output:     unsafe.Pointer(&out),
		OutputSize: uint32(unsafe.Sizeof(out)),
	}

	buf := unsafe.Slice((*byte)(unsafe.Pointer(&rec)), unsafe.Sizeof(rec))
	if _, err := Bytes(api, id, addr, nil, buf); err != nil {
		return out, err
	}

	runtime.KeepAlive(&in)
	runtime.KeepAlive(&out)
	return out, nil
}
