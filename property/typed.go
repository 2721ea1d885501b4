package property

import (
	"runtime"
	"unsafe"

	"github.com/dh1tw/audiohal/hal"
)

// Scalar reads a property as a single value of type T. T must be a
// fixed-size type whose in-memory layout matches the property's native
// encoding (e.g. uint32 for 'mute', float64 for 'nsrt', a format
// descriptor struct for 'sfmt').
func Scalar[T any](api hal.API, id hal.ObjectID, addr hal.PropertyAddress, qualifier hal.Qualifier) (T, error) {
	var v T
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&v)), unsafe.Sizeof(v))

	n, err := Bytes(api, id, addr, qualifier, buf)
	if err != nil {
		return v, err
	}
	if n != len(buf) {
		return v, &hal.Error{
			Kind:    hal.SizeMismatch,
			Op:      "read",
			ID:      id,
			Address: addr,
			Status:  hal.StatusBadPropertySize,
		}
	}
	runtime.KeepAlive(&v)
	return v, nil
}

// SetScalar writes a single value of type T to a property.
func SetScalar[T any](api hal.API, id hal.ObjectID, addr hal.PropertyAddress, qualifier hal.Qualifier, v T) error {
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&v)), unsafe.Sizeof(v))
	err := SetBytes(api, id, addr, qualifier, buf)
	runtime.KeepAlive(&v)
	return err
}

// Array reads a property as a slice of fixed-width elements. The
// element count is computed from the HAL reported byte count; a count
// that is not a whole multiple of T's size yields a SizeMismatch. The
// backing bytes are populated in one read call, so no element is ever
// observable half initialized.
func Array[T any](api hal.API, id hal.ObjectID, addr hal.PropertyAddress, qualifier hal.Qualifier) ([]T, error) {
	size, err := DataSize(api, id, addr, qualifier)
	if err != nil {
		return nil, err
	}

	var zero T
	elem := int(unsafe.Sizeof(zero))
	if size%elem != 0 {
		return nil, &hal.Error{
			Kind:    hal.SizeMismatch,
			Op:      "read",
			ID:      id,
			Address: addr,
			Status:  hal.StatusBadPropertySize,
		}
	}
	count := size / elem
	if count == 0 {
		return []T{}, nil
	}

	vals := make([]T, count)
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&vals[0])), size)
	n, err := Bytes(api, id, addr, qualifier, buf)
	if err != nil {
		return nil, err
	}
	if n != size {
		return nil, hal.NewError("read", id, addr, hal.StatusBadPropertySize)
	}
	runtime.KeepAlive(vals)
	return vals, nil
}

// SetArray writes a slice of fixed-width elements as one contiguous
// property write.
func SetArray[T any](api hal.API, id hal.ObjectID, addr hal.PropertyAddress, qualifier hal.Qualifier, vals []T) error {
	if len(vals) == 0 {
		return SetBytes(api, id, addr, qualifier, nil)
	}
	var zero T
	size := len(vals) * int(unsafe.Sizeof(zero))
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&vals[0])), size)
	err := SetBytes(api, id, addr, qualifier, buf)
	runtime.KeepAlive(vals)
	return err
}
