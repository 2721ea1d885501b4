// Package sim provides an in-memory implementation of the hal.API. It
// backs the test suites of the higher layers and the --simulated mode
// of the command line tool, where no real audio HAL is available.
//
// A HAL starts out with just the system object (id 1). Test fixtures
// populate it through the Add/Set methods and trigger change
// notifications either implicitly by writing settable properties or
// explicitly through Notify.
package sim

import (
	"encoding/binary"
	"math"
	"sync"
	"unsafe"

	"github.com/dh1tw/audiohal/hal"
)

type prop struct {
	data      []byte
	settable  bool
	str       string
	isStr     bool
	translate func(in []byte) ([]byte, hal.Status)
	qualified func(q hal.Qualifier) ([]byte, hal.Status)
}

type object struct {
	class hal.FourCC
	props map[hal.PropertyAddress]*prop
}

type listener struct {
	id   hal.ObjectID
	addr hal.PropertyAddress
	proc hal.ListenerProc
}

type refEntry struct {
	value string
	count int
}

// HAL is an in-memory hal.API. The zero value is not usable; create
// instances through New.
type HAL struct {
	mu           sync.Mutex
	objects      map[hal.ObjectID]*object
	nextID       hal.ObjectID
	listeners    map[hal.ListenerToken]*listener
	nextToken    hal.ListenerToken
	refs         map[hal.Ref]*refEntry
	nextRef      hal.Ref
	addStatus    hal.Status
	removeStatus hal.Status
}

// New returns a HAL containing only the system object.
func New() *HAL {
	h := &HAL{
		objects:   make(map[hal.ObjectID]*object),
		nextID:    hal.SystemObjectID + 1,
		listeners: make(map[hal.ListenerToken]*listener),
		nextToken: 1,
		refs:      make(map[hal.Ref]*refEntry),
		nextRef:   1,
	}
	h.addObjectLocked(hal.SystemObjectID, hal.ClassSystem)
	return h
}

func (h *HAL) addObjectLocked(id hal.ObjectID, class hal.FourCC) {
	obj := &object{class: class, props: make(map[hal.PropertyAddress]*prop)}
	h.objects[id] = obj

	classBytes := make([]byte, 4)
	binary.NativeEndian.PutUint32(classBytes, uint32(class))
	obj.props[hal.GlobalAddress(hal.SelectorClass)] = &prop{data: classBytes}

	baseBytes := make([]byte, 4)
	binary.NativeEndian.PutUint32(baseBytes, uint32(hal.ClassObject))
	obj.props[hal.GlobalAddress(hal.SelectorBaseClass)] = &prop{data: baseBytes}
}

// AddObject creates a new object of the given class and returns its id.
func (h *HAL) AddObject(class hal.FourCC) hal.ObjectID {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.addObjectLocked(id, class)
	return id
}

// SetBytes installs raw property data on an object.
func (h *HAL) SetBytes(id hal.ObjectID, addr hal.PropertyAddress, data []byte, settable bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if obj, ok := h.objects[id]; ok {
		obj.props[addr] = &prop{data: append([]byte(nil), data...), settable: settable}
	}
}

// SetUint32 installs a 32 bit unsigned property.
func (h *HAL) SetUint32(id hal.ObjectID, addr hal.PropertyAddress, v uint32, settable bool) {
	b := make([]byte, 4)
	binary.NativeEndian.PutUint32(b, v)
	h.SetBytes(id, addr, b, settable)
}

// SetUint32s installs an array property of 32 bit unsigned values.
// Object id lists ('dev#', 'stm#', 'ownd') use this encoding.
func (h *HAL) SetUint32s(id hal.ObjectID, addr hal.PropertyAddress, vs []uint32, settable bool) {
	b := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.NativeEndian.PutUint32(b[4*i:], v)
	}
	h.SetBytes(id, addr, b, settable)
}

// SetFloat32 installs a 32 bit float property.
func (h *HAL) SetFloat32(id hal.ObjectID, addr hal.PropertyAddress, v float32, settable bool) {
	b := make([]byte, 4)
	binary.NativeEndian.PutUint32(b, math.Float32bits(v))
	h.SetBytes(id, addr, b, settable)
}

// SetFloat64 installs a 64 bit float property.
func (h *HAL) SetFloat64(id hal.ObjectID, addr hal.PropertyAddress, v float64, settable bool) {
	b := make([]byte, 8)
	binary.NativeEndian.PutUint64(b, math.Float64bits(v))
	h.SetBytes(id, addr, b, settable)
}

// SetString installs a read-only property backed by a reference counted
// string object. Each read hands out a fresh +1 reference.
func (h *HAL) SetString(id hal.ObjectID, addr hal.PropertyAddress, s string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if obj, ok := h.objects[id]; ok {
		obj.props[addr] = &prop{str: s, isStr: true}
	}
}

// SetTranslation installs a translated property. fn receives the input
// bytes of the translation record and returns the output bytes.
func (h *HAL) SetTranslation(id hal.ObjectID, addr hal.PropertyAddress, fn func(in []byte) ([]byte, hal.Status)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if obj, ok := h.objects[id]; ok {
		obj.props[addr] = &prop{translate: fn}
	}
}

// SetQualified installs a property whose value depends on the
// qualifier bytes of the read.
func (h *HAL) SetQualified(id hal.ObjectID, addr hal.PropertyAddress, fn func(q hal.Qualifier) ([]byte, hal.Status)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if obj, ok := h.objects[id]; ok {
		obj.props[addr] = &prop{qualified: fn}
	}
}

// NewString implements hal.API. Translation and qualifier hooks use it
// to hand out string results the way the real HAL hands out CFStrings.
func (h *HAL) NewString(s string) hal.Ref {
	h.mu.Lock()
	defer h.mu.Unlock()
	ref := h.nextRef
	h.nextRef++
	h.refs[ref] = &refEntry{value: s, count: 1}
	return ref
}

// RefBytes encodes a Ref the way property data carries it.
func RefBytes(ref hal.Ref) []byte {
	b := make([]byte, refSize)
	if refSize == 8 {
		binary.NativeEndian.PutUint64(b, uint64(ref))
	} else {
		binary.NativeEndian.PutUint32(b, uint32(ref))
	}
	return b
}

// FailListenerRemoval makes every subsequent RemovePropertyListener
// call report the given status. Used to exercise teardown behavior.
func (h *HAL) FailListenerRemoval(status hal.Status) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeStatus = status
}

// FailListenerAdd makes every subsequent AddPropertyListener call
// report the given status.
func (h *HAL) FailListenerAdd(status hal.Status) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.addStatus = status
}

// ListenerCount reports the number of registered listeners for an
// object.
func (h *HAL) ListenerCount(id hal.ObjectID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, l := range h.listeners {
		if l.id == id {
			n++
		}
	}
	return n
}

// LiveRefs reports the number of outstanding reference counted objects.
func (h *HAL) LiveRefs() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.refs)
}

// Notify delivers a change notification for the given addresses to
// every listener whose registered address is congruent with one of
// them.
func (h *HAL) Notify(id hal.ObjectID, changed ...hal.PropertyAddress) {
	h.mu.Lock()
	type delivery struct {
		proc  hal.ListenerProc
		addrs []hal.PropertyAddress
	}
	var deliveries []delivery
	for _, l := range h.listeners {
		if l.id != id {
			continue
		}
		var matched []hal.PropertyAddress
		for _, c := range changed {
			if l.addr.Congruent(c) {
				matched = append(matched, c)
			}
		}
		if len(matched) > 0 {
			deliveries = append(deliveries, delivery{l.proc, matched})
		}
	}
	h.mu.Unlock()

	// procs run outside the lock since they may call back into the HAL
	for _, d := range deliveries {
		d.proc(id, d.addrs)
	}
}

func (h *HAL) lookup(id hal.ObjectID, addr hal.PropertyAddress) (*prop, hal.Status) {
	obj, ok := h.objects[id]
	if !ok {
		return nil, hal.StatusBadObject
	}
	p, ok := obj.props[addr]
	if !ok {
		return nil, hal.StatusUnknownProperty
	}
	return p, hal.StatusOK
}

const refSize = uint32(unsafe.Sizeof(hal.Ref(0)))

// PropertyDataSize implements hal.API.
func (h *HAL) PropertyDataSize(id hal.ObjectID, addr hal.PropertyAddress, qualifier hal.Qualifier) (uint32, hal.Status) {
	h.mu.Lock()
	p, status := h.lookup(id, addr)
	h.mu.Unlock()
	if !status.OK() {
		return 0, status
	}

	// hooks run outside the lock since they may call back into the HAL
	switch {
	case p.isStr:
		return refSize, hal.StatusOK
	case p.translate != nil:
		return uint32(unsafe.Sizeof(hal.ValueTranslation{})), hal.StatusOK
	case p.qualified != nil:
		data, status := p.qualified(qualifier)
		if !status.OK() {
			return 0, status
		}
		return uint32(len(data)), hal.StatusOK
	}
	return uint32(len(p.data)), hal.StatusOK
}

// PropertyData implements hal.API.
func (h *HAL) PropertyData(id hal.ObjectID, addr hal.PropertyAddress, qualifier hal.Qualifier, buf []byte) (uint32, hal.Status) {
	h.mu.Lock()
	p, status := h.lookup(id, addr)
	h.mu.Unlock()
	if !status.OK() {
		return 0, status
	}

	switch {
	case p.isStr:
		if uint32(len(buf)) < refSize {
			return 0, hal.StatusBadPropertySize
		}
		copy(buf, RefBytes(h.NewString(p.str)))
		return refSize, hal.StatusOK

	case p.translate != nil:
		return runTranslation(buf, p.translate)

	case p.qualified != nil:
		data, status := p.qualified(qualifier)
		if !status.OK() {
			return 0, status
		}
		n := copy(buf, data)
		return uint32(n), hal.StatusOK
	}

	h.mu.Lock()
	n := copy(buf, p.data)
	h.mu.Unlock()
	return uint32(n), hal.StatusOK
}

// runTranslation interprets buf as a ValueTranslation record, performs
// the conversion and copies the result into the caller's output slot.
func runTranslation(buf []byte, fn func(in []byte) ([]byte, hal.Status)) (uint32, hal.Status) {
	if uintptr(len(buf)) < unsafe.Sizeof(hal.ValueTranslation{}) {
		return 0, hal.StatusBadPropertySize
	}
	rec := (*hal.ValueTranslation)(unsafe.Pointer(&buf[0]))
	if rec.Input == nil || rec.Output == nil {
		return 0, hal.StatusIllegalOperation
	}

	in := unsafe.Slice((*byte)(rec.Input), rec.InputSize)
	out, status := fn(in)
	if !status.OK() {
		return 0, status
	}
	if uint32(len(out)) != rec.OutputSize {
		return 0, hal.StatusBadPropertySize
	}
	copy(unsafe.Slice((*byte)(rec.Output), rec.OutputSize), out)
	return uint32(unsafe.Sizeof(hal.ValueTranslation{})), hal.StatusOK
}

// SetPropertyData implements hal.API.
func (h *HAL) SetPropertyData(id hal.ObjectID, addr hal.PropertyAddress, qualifier hal.Qualifier, data []byte) hal.Status {
	h.mu.Lock()

	p, status := h.lookup(id, addr)
	if !status.OK() {
		h.mu.Unlock()
		return status
	}
	if !p.settable {
		h.mu.Unlock()
		return hal.StatusUnsupportedOperation
	}
	if len(data) != len(p.data) {
		h.mu.Unlock()
		return hal.StatusBadPropertySize
	}
	copy(p.data, data)
	h.mu.Unlock()

	h.Notify(id, addr)
	return hal.StatusOK
}

// HasProperty implements hal.API.
func (h *HAL) HasProperty(id hal.ObjectID, addr hal.PropertyAddress) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, status := h.lookup(id, addr)
	return status.OK()
}

// PropertyIsSettable implements hal.API.
func (h *HAL) PropertyIsSettable(id hal.ObjectID, addr hal.PropertyAddress) (bool, hal.Status) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, status := h.lookup(id, addr)
	if !status.OK() {
		return false, status
	}
	return p.settable, hal.StatusOK
}

// AddPropertyListener implements hal.API.
func (h *HAL) AddPropertyListener(id hal.ObjectID, addr hal.PropertyAddress, proc hal.ListenerProc) (hal.ListenerToken, hal.Status) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.addStatus != hal.StatusOK {
		return 0, h.addStatus
	}
	if _, ok := h.objects[id]; !ok {
		return 0, hal.StatusBadObject
	}
	token := h.nextToken
	h.nextToken++
	h.listeners[token] = &listener{id: id, addr: addr, proc: proc}
	return token, hal.StatusOK
}

// RemovePropertyListener implements hal.API.
func (h *HAL) RemovePropertyListener(id hal.ObjectID, token hal.ListenerToken) hal.Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.removeStatus != hal.StatusOK {
		return h.removeStatus
	}
	l, ok := h.listeners[token]
	if !ok || l.id != id {
		return hal.StatusBadObject
	}
	delete(h.listeners, token)
	return hal.StatusOK
}

// Release implements hal.API.
func (h *HAL) Release(ref hal.Ref) {
	h.mu.Lock()
	defer h.mu.Unlock()
	entry, ok := h.refs[ref]
	if !ok {
		return
	}
	entry.count--
	if entry.count <= 0 {
		delete(h.refs, ref)
	}
}

// StringValue implements hal.API.
func (h *HAL) StringValue(ref hal.Ref) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	entry, ok := h.refs[ref]
	if !ok {
		return "", false
	}
	return entry.value, true
}
