package property

import (
	"sync"

	"github.com/dh1tw/audiohal/hal"
)

// Retained owns one reference to a reference counted object handed out
// by the HAL. The reference is released exactly once, either through
// an explicit Release call or not at all; there is no finalizer magic.
type Retained struct {
	api  hal.API
	ref  hal.Ref
	once sync.Once
}

// Ref exposes the underlying handle, e.g. for passing it back into a
// HAL call. The Retained keeps ownership.
func (r *Retained) Ref() hal.Ref { return r.ref }

// Release gives up the reference. Further calls are no-ops.
func (r *Retained) Release() {
	r.once.Do(func() { r.api.Release(r.ref) })
}

// RetainedRef reads a property backed by a reference counted object.
// The read already produced a +1 reference which the returned Retained
// now owns.
func RetainedRef(api hal.API, id hal.ObjectID, addr hal.PropertyAddress, qualifier hal.Qualifier) (*Retained, error) {
	ref, err := Scalar[hal.Ref](api, id, addr, qualifier)
	if err != nil {
		return nil, err
	}
	if ref == 0 {
		return nil, &hal.Error{
			Kind:    hal.PropertyUnavailable,
			Op:      "read",
			ID:      id,
			Address: addr,
			Status:  hal.StatusUnknownProperty,
		}
	}
	return &Retained{api: api, ref: ref}, nil
}

// String reads a string property. The backing object reference is
// released before returning.
func String(api hal.API, id hal.ObjectID, addr hal.PropertyAddress, qualifier hal.Qualifier) (string, error) {
	r, err := RetainedRef(api, id, addr, qualifier)
	if err != nil {
		return "", err
	}
	defer r.Release()

	s, ok := api.StringValue(r.Ref())
	if !ok {
		return "", hal.NewError("string read", id, addr, hal.StatusUnspecified)
	}
	return s, nil
}
