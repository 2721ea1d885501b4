package hal

// Status is the result code of a HAL operation. Zero means success;
// every other value is a packed four character code chosen by the OS.
type Status int32

const (
	StatusOK Status = 0

	StatusNotRunning           Status = 's'<<24 | 't'<<16 | 'o'<<8 | 'p'
	StatusUnspecified          Status = 'w'<<24 | 'h'<<16 | 'a'<<8 | 't'
	StatusUnknownProperty      Status = 'w'<<24 | 'h'<<16 | 'o'<<8 | '?'
	StatusBadPropertySize      Status = '!'<<24 | 's'<<16 | 'i'<<8 | 'z'
	StatusIllegalOperation     Status = 'n'<<24 | 'o'<<16 | 'p'<<8 | 'e'
	StatusBadObject            Status = '!'<<24 | 'o'<<16 | 'b'<<8 | 'j'
	StatusBadDevice            Status = '!'<<24 | 'd'<<16 | 'e'<<8 | 'v'
	StatusBadStream            Status = '!'<<24 | 's'<<16 | 't'<<8 | 'r'
	StatusUnsupportedOperation Status = 'u'<<24 | 'n'<<16 | 'o'<<8 | 'p'
	StatusNotReady             Status = 'n'<<24 | 'r'<<16 | 'd'<<8 | 'y'
	StatusUnsupportedFormat    Status = '!'<<24 | 'd'<<16 | 'a'<<8 | 't'
	StatusPermissions          Status = '!'<<24 | 'h'<<16 | 'o'<<8 | 'g'
)

// OK reports whether the status denotes success.
func (s Status) OK() bool { return s == StatusOK }

// String renders the status as a four character code plus its numeric
// value, the form used throughout this module's logs.
func (s Status) String() string {
	if s == StatusOK {
		return "OK"
	}
	return FourCC(uint32(s)).String()
}
