// Package property implements raw and typed access to HAL object
// properties on top of the primitive hal.API operations.
//
// The raw functions (DataSize, Bytes, SetBytes) are status checked
// pass-throughs; every failure is wrapped into a *hal.Error carrying
// the address and both renderings of the status code. The typed
// functions layer Go's type system on top without changing semantics:
// a value's in-memory layout must exactly match the property's native
// encoding, a contract that is documented per property and not checked
// at runtime.
package property

import (
	"github.com/dh1tw/audiohal/hal"
)

// DataSize reports the size in bytes of a property's data.
func DataSize(api hal.API, id hal.ObjectID, addr hal.PropertyAddress, qualifier hal.Qualifier) (int, error) {
	size, status := api.PropertyDataSize(id, addr, qualifier)
	if !status.OK() {
		return 0, hal.NewError("size query", id, addr, status)
	}
	return int(size), nil
}

// Bytes reads up to len(buf) bytes of property data into buf and
// returns the number of bytes written.
func Bytes(api hal.API, id hal.ObjectID, addr hal.PropertyAddress, qualifier hal.Qualifier, buf []byte) (int, error) {
	n, status := api.PropertyData(id, addr, qualifier, buf)
	if !status.OK() {
		return 0, hal.NewError("read", id, addr, status)
	}
	return int(n), nil
}

// SetBytes writes property data. The settable check happens before any
// bytes are handed to the HAL so that a write against a read-only
// property fails with NotSettable rather than an opaque OS status.
func SetBytes(api hal.API, id hal.ObjectID, addr hal.PropertyAddress, qualifier hal.Qualifier, data []byte) error {
	settable, status := api.PropertyIsSettable(id, addr)
	if !status.OK() {
		return hal.NewError("settable query", id, addr, status)
	}
	if !settable {
		return &hal.Error{
			Kind:    hal.NotSettable,
			Op:      "write",
			ID:      id,
			Address: addr,
			Status:  hal.StatusUnsupportedOperation,
		}
	}

	if status := api.SetPropertyData(id, addr, qualifier, data); !status.OK() {
		return hal.NewError("write", id, addr, status)
	}
	return nil
}

// Exists reports whether the object exposes the property. Existence is
// a plain yes/no question and therefore never returns an error.
func Exists(api hal.API, id hal.ObjectID, addr hal.PropertyAddress) bool {
	return api.HasProperty(id, addr)
}

// IsSettable reports whether the property accepts writes.
func IsSettable(api hal.API, id hal.ObjectID, addr hal.PropertyAddress) (bool, error) {
	settable, status := api.PropertyIsSettable(id, addr)
	if !status.OK() {
		return false, hal.NewError("settable query", id, addr, status)
	}
	return settable, nil
}
