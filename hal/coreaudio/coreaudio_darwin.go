//go:build darwin

// Package coreaudio binds the hal.API to the macOS CoreAudio hardware
// abstraction layer. The framework functions are resolved at runtime
// through purego, so the package builds without cgo.
package coreaudio

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/dh1tw/audiohal/hal"
)

const (
	coreAudioPath      = "/System/Library/Frameworks/CoreAudio.framework/CoreAudio"
	coreFoundationPath = "/System/Library/Frameworks/CoreFoundation.framework/CoreFoundation"

	kCFStringEncodingUTF8 = 0x08000100
)

// rawAddress is the wire layout of a property address as the OS hands
// it to listener procs. It matches hal.PropertyAddress field for field.
type rawAddress struct {
	selector uint32
	scope    uint32
	element  uint32
}

type registration struct {
	id   hal.ObjectID
	raw  rawAddress
	proc hal.ListenerProc
}

// listener registrations are process wide since the C callback carries
// only the token as client data
var (
	regMu         sync.Mutex
	registrations = make(map[hal.ListenerToken]*registration)
	nextToken     hal.ListenerToken = 1
)

// HAL implements hal.API against the live CoreAudio HAL of the host.
type HAL struct {
	getPropertyDataSize uintptr
	getPropertyData     uintptr
	setPropertyData     uintptr
	hasProperty         uintptr
	isPropertySettable  uintptr
	addListener         uintptr
	removeListener      uintptr

	cfRelease          uintptr
	cfStringCreate     uintptr
	cfStringGetLength  uintptr
	cfStringGetMaxSize uintptr
	cfStringGetCString uintptr
	listenerCallback   uintptr
}

// the C callback trampoline is created once per process; purego
// callbacks cannot be released again
var (
	callbackOnce sync.Once
	callbackPtr  uintptr
)

// New resolves the CoreAudio and CoreFoundation entry points and
// returns a ready to use HAL.
func New() (hal.API, error) {

	ca, err := purego.Dlopen(coreAudioPath, purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("unable to load CoreAudio: %w", err)
	}
	cf, err := purego.Dlopen(coreFoundationPath, purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("unable to load CoreFoundation: %w", err)
	}

	h := &HAL{}

	symbols := []struct {
		lib  uintptr
		name string
		dst  *uintptr
	}{
		{ca, "AudioObjectGetPropertyDataSize", &h.getPropertyDataSize},
		{ca, "AudioObjectGetPropertyData", &h.getPropertyData},
		{ca, "AudioObjectSetPropertyData", &h.setPropertyData},
		{ca, "AudioObjectHasProperty", &h.hasProperty},
		{ca, "AudioObjectIsPropertySettable", &h.isPropertySettable},
		{ca, "AudioObjectAddPropertyListener", &h.addListener},
		{ca, "AudioObjectRemovePropertyListener", &h.removeListener},
		{cf, "CFRelease", &h.cfRelease},
		{cf, "CFStringCreateWithCString", &h.cfStringCreate},
		{cf, "CFStringGetLength", &h.cfStringGetLength},
		{cf, "CFStringGetMaximumSizeForEncoding", &h.cfStringGetMaxSize},
		{cf, "CFStringGetCString", &h.cfStringGetCString},
	}
	for _, s := range symbols {
		addr, err := purego.Dlsym(s.lib, s.name)
		if err != nil {
			return nil, fmt.Errorf("unable to resolve %s: %w", s.name, err)
		}
		*s.dst = addr
	}

	callbackOnce.Do(func() {
		callbackPtr = purego.NewCallback(propertyListenerProc)
	})
	h.listenerCallback = callbackPtr

	return h, nil
}

// propertyListenerProc is the single C-visible listener entry point.
// It converts the raw changed-address array into value typed property
// addresses before forwarding to the registered Go proc.
func propertyListenerProc(id uint32, numAddresses uint32, addresses *rawAddress, clientData uintptr) int32 {

	regMu.Lock()
	reg, ok := registrations[hal.ListenerToken(clientData)]
	regMu.Unlock()
	if !ok || reg.proc == nil {
		return 0
	}

	raw := unsafe.Slice(addresses, numAddresses)
	changed := make([]hal.PropertyAddress, len(raw))
	for i, a := range raw {
		changed[i] = hal.PropertyAddress{
			Selector: hal.FourCC(a.selector),
			Scope:    hal.FourCC(a.scope),
			Element:  a.element,
		}
	}

	reg.proc(hal.ObjectID(id), changed)
	return 0
}

func toRaw(addr hal.PropertyAddress) rawAddress {
	return rawAddress{
		selector: uint32(addr.Selector),
		scope:    uint32(addr.Scope),
		element:  addr.Element,
	}
}

func qualifierArgs(q hal.Qualifier) (uintptr, uintptr) {
	if len(q) == 0 {
		return 0, 0
	}
	return uintptr(len(q)), uintptr(unsafe.Pointer(&q[0]))
}

// PropertyDataSize implements hal.API.
func (h *HAL) PropertyDataSize(id hal.ObjectID, addr hal.PropertyAddress, qualifier hal.Qualifier) (uint32, hal.Status) {
	raw := toRaw(addr)
	qSize, qPtr := qualifierArgs(qualifier)
	var size uint32
	r1, _, _ := purego.SyscallN(h.getPropertyDataSize,
		uintptr(id),
		uintptr(unsafe.Pointer(&raw)),
		qSize, qPtr,
		uintptr(unsafe.Pointer(&size)))
	return size, hal.Status(int32(uint32(r1)))
}

// PropertyData implements hal.API.
func (h *HAL) PropertyData(id hal.ObjectID, addr hal.PropertyAddress, qualifier hal.Qualifier, buf []byte) (uint32, hal.Status) {
	raw := toRaw(addr)
	qSize, qPtr := qualifierArgs(qualifier)
	ioSize := uint32(len(buf))
	var dataPtr uintptr
	if len(buf) > 0 {
		dataPtr = uintptr(unsafe.Pointer(&buf[0]))
	}
	r1, _, _ := purego.SyscallN(h.getPropertyData,
		uintptr(id),
		uintptr(unsafe.Pointer(&raw)),
		qSize, qPtr,
		uintptr(unsafe.Pointer(&ioSize)),
		dataPtr)
	return ioSize, hal.Status(int32(uint32(r1)))
}

// SetPropertyData implements hal.API.
func (h *HAL) SetPropertyData(id hal.ObjectID, addr hal.PropertyAddress, qualifier hal.Qualifier, data []byte) hal.Status {
	raw := toRaw(addr)
	qSize, qPtr := qualifierArgs(qualifier)
	var dataPtr uintptr
	if len(data) > 0 {
		dataPtr = uintptr(unsafe.Pointer(&data[0]))
	}
	r1, _, _ := purego.SyscallN(h.setPropertyData,
		uintptr(id),
		uintptr(unsafe.Pointer(&raw)),
		qSize, qPtr,
		uintptr(len(data)),
		dataPtr)
	return hal.Status(int32(uint32(r1)))
}

// HasProperty implements hal.API.
func (h *HAL) HasProperty(id hal.ObjectID, addr hal.PropertyAddress) bool {
	raw := toRaw(addr)
	r1, _, _ := purego.SyscallN(h.hasProperty,
		uintptr(id),
		uintptr(unsafe.Pointer(&raw)))
	return r1 != 0
}

// PropertyIsSettable implements hal.API.
func (h *HAL) PropertyIsSettable(id hal.ObjectID, addr hal.PropertyAddress) (bool, hal.Status) {
	raw := toRaw(addr)
	var settable uint32
	r1, _, _ := purego.SyscallN(h.isPropertySettable,
		uintptr(id),
		uintptr(unsafe.Pointer(&raw)),
		uintptr(unsafe.Pointer(&settable)))
	return settable != 0, hal.Status(int32(uint32(r1)))
}

// AddPropertyListener implements hal.API.
func (h *HAL) AddPropertyListener(id hal.ObjectID, addr hal.PropertyAddress, proc hal.ListenerProc) (hal.ListenerToken, hal.Status) {

	regMu.Lock()
	token := nextToken
	nextToken++
	reg := &registration{id: id, raw: toRaw(addr), proc: proc}
	registrations[token] = reg
	regMu.Unlock()

	r1, _, _ := purego.SyscallN(h.addListener,
		uintptr(id),
		uintptr(unsafe.Pointer(&reg.raw)),
		h.listenerCallback,
		uintptr(token))

	status := hal.Status(int32(uint32(r1)))
	if !status.OK() {
		regMu.Lock()
		delete(registrations, token)
		regMu.Unlock()
		return 0, status
	}
	return token, hal.StatusOK
}

// RemovePropertyListener implements hal.API.
func (h *HAL) RemovePropertyListener(id hal.ObjectID, token hal.ListenerToken) hal.Status {

	regMu.Lock()
	reg, ok := registrations[token]
	regMu.Unlock()
	if !ok || reg.id != id {
		return hal.StatusBadObject
	}

	r1, _, _ := purego.SyscallN(h.removeListener,
		uintptr(id),
		uintptr(unsafe.Pointer(&reg.raw)),
		h.listenerCallback,
		uintptr(token))

	status := hal.Status(int32(uint32(r1)))
	if status.OK() {
		regMu.Lock()
		delete(registrations, token)
		regMu.Unlock()
	}
	return status
}

// NewString implements hal.API.
func (h *HAL) NewString(s string) hal.Ref {
	cstr := make([]byte, len(s)+1)
	copy(cstr, s)
	ref, _, _ := purego.SyscallN(h.cfStringCreate,
		0, // default allocator
		uintptr(unsafe.Pointer(&cstr[0])),
		kCFStringEncodingUTF8)
	return hal.Ref(ref)
}

// Release implements hal.API.
func (h *HAL) Release(ref hal.Ref) {
	if ref == 0 {
		return
	}
	purego.SyscallN(h.cfRelease, uintptr(ref))
}

// StringValue implements hal.API.
func (h *HAL) StringValue(ref hal.Ref) (string, bool) {
	if ref == 0 {
		return "", false
	}

	length, _, _ := purego.SyscallN(h.cfStringGetLength, uintptr(ref))
	maxSize, _, _ := purego.SyscallN(h.cfStringGetMaxSize, length, kCFStringEncodingUTF8)

	buf := make([]byte, maxSize+1)
	ok, _, _ := purego.SyscallN(h.cfStringGetCString,
		uintptr(ref),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
		kCFStringEncodingUTF8)
	if ok == 0 {
		return "", false
	}

	// trim at the NUL terminator
	for i, c := range buf {
		if c == 0 {
			return string(buf[:i]), true
		}
	}
	return string(buf), true
}
