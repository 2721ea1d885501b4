package hal

import "fmt"

// ErrorKind classifies a failed HAL operation.
type ErrorKind int

const (
	// PropertyUnavailable means the object does not expose the
	// requested property/qualifier combination.
	PropertyUnavailable ErrorKind = iota
	// NotSettable means a write was attempted against a property the
	// HAL reports as read-only.
	NotSettable
	// SizeMismatch means the byte count reported by the HAL does not
	// fit the caller's declared element type. This kind never
	// originates from the OS; it signals a type selection mistake in
	// the calling code.
	SizeMismatch
	// OperationFailed covers every other non-zero status, including
	// unknown object ids.
	OperationFailed
)

func (k ErrorKind) String() string {
	switch k {
	case PropertyUnavailable:
		return "property unavailable"
	case NotSettable:
		return "not settable"
	case SizeMismatch:
		return "size mismatch"
	case OperationFailed:
		return "operation failed"
	}
	return fmt.Sprintf("unknown error kind %d", int(k))
}

// Error describes a failed property operation. It always carries the
// raw status and the address that failed so callers and logs can
// distinguish "asked the wrong question" from "the OS refused".
type Error struct {
	Kind    ErrorKind
	Op      string
	ID      ObjectID
	Address PropertyAddress
	Status  Status
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %v on object %d: %v (status %v / %d)",
		e.Op, e.Address, e.ID, e.Kind, e.Status, int32(e.Status))
}

// NewError wraps a non-zero status into an Error, classifying the
// distinguished "unknown property" status as PropertyUnavailable.
func NewError(op string, id ObjectID, addr PropertyAddress, status Status) *Error {
	kind := OperationFailed
	if status == StatusUnknownProperty {
		kind = PropertyUnavailable
	}
	return &Error{Kind: kind, Op: op, ID: id, Address: addr, Status: status}
}

// IsUnavailable reports whether err wraps a PropertyUnavailable Error.
func IsUnavailable(err error) bool { return kindOf(err) == PropertyUnavailable }

// IsNotSettable reports whether err wraps a NotSettable Error.
func IsNotSettable(err error) bool { return kindOf(err) == NotSettable }

// IsSizeMismatch reports whether err wraps a SizeMismatch Error.
func IsSizeMismatch(err error) bool { return kindOf(err) == SizeMismatch }

func kindOf(err error) ErrorKind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return ErrorKind(-1)
}
