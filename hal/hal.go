// Package hal defines the boundary to the operating system's audio
// hardware abstraction layer: object identifiers, property addresses,
// four character codes, status codes and the primitive property
// operations every higher layer of this module is built on.
//
// The package itself contains no platform code. Concrete backends live
// in the sub-packages hal/coreaudio (macOS) and hal/sim (an in-memory
// implementation used for testing and demos).
package hal

// ObjectID identifies an object inside the audio HAL. The value is
// assigned by the OS and is only meaningful for the lifetime of the
// HAL instance it came from.
type ObjectID uint32

const (
	// ObjectUnknown is the distinguished "no such object" id.
	ObjectUnknown ObjectID = 0
	// SystemObjectID is the root object owning all devices and plug-ins.
	SystemObjectID ObjectID = 1
)

// Qualifier carries extra input bytes needed to disambiguate some
// property reads (e.g. "name of data source N"). The slice is borrowed
// for the duration of a single call and is never retained.
type Qualifier []byte

// Ref is an opaque handle to a reference counted object returned by the
// HAL (on macOS these are CoreFoundation objects). A Ref obtained from
// a property read is owned by the caller and must be released exactly
// once through API.Release.
type Ref uintptr

// ListenerToken identifies one registered property listener so it can
// be removed again. Tokens are never reused by a backend.
type ListenerToken uint64

// ListenerProc is invoked by a backend whenever one or more properties
// of the object changed. The changed addresses have already been
// converted from the backend's raw notification format.
type ListenerProc func(id ObjectID, changed []PropertyAddress)

// API is the set of primitive operations the OS HAL offers for
// property access. All operations are synchronous; a backend reports
// failure through a non-zero Status which the property package wraps
// into typed errors.
type API interface {
	// PropertyDataSize reports the size in bytes of the property data.
	PropertyDataSize(id ObjectID, addr PropertyAddress, qualifier Qualifier) (uint32, Status)

	// PropertyData reads up to len(buf) bytes of property data into buf
	// and returns the number of bytes written.
	PropertyData(id ObjectID, addr PropertyAddress, qualifier Qualifier, buf []byte) (uint32, Status)

	// SetPropertyData writes the property data.
	SetPropertyData(id ObjectID, addr PropertyAddress, qualifier Qualifier, data []byte) Status

	// HasProperty reports whether the object exposes the property.
	HasProperty(id ObjectID, addr PropertyAddress) bool

	// PropertyIsSettable reports whether the property can be written.
	PropertyIsSettable(id ObjectID, addr PropertyAddress) (bool, Status)

	// AddPropertyListener registers proc to be invoked on changes of
	// the property. The returned token identifies the registration.
	AddPropertyListener(id ObjectID, addr PropertyAddress, proc ListenerProc) (ListenerToken, Status)

	// RemovePropertyListener removes a previously registered listener.
	RemovePropertyListener(id ObjectID, token ListenerToken) Status

	// NewString creates a reference counted string object owned by the
	// caller. Translated properties taking a string input ('uidd')
	// consume such refs. A zero Ref reports failure.
	NewString(s string) Ref

	// Release gives up one reference on a Ref obtained from a property
	// read.
	Release(ref Ref)

	// StringValue extracts the string backing a Ref. It reports false
	// if the Ref does not refer to a string object.
	StringValue(ref Ref) (string, bool)
}
