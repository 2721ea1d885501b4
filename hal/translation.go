package hal

import "unsafe"

// ValueTranslation is the fixed two-slot request/response record used
// by translated properties: the caller provides input bytes and room
// for the output, the HAL performs the conversion in a single property
// read. The field order matches the OS record; on 64-bit targets Go's
// natural alignment reproduces its layout exactly.
type ValueTranslation struct {
	Input      unsafe.Pointer
	InputSize  uint32
	Output     unsafe.Pointer
	OutputSize uint32
}
