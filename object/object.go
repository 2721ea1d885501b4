// Package object wraps HAL object ids into typed handles: the system
// object, devices, streams and controls. A handle is a thin value
// holding the id, its class and a private listener registry; all
// property state lives in the HAL itself.
package object

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dh1tw/audiohal/hal"
	"github.com/dh1tw/audiohal/property"
)

// Dispatcher hands a change notification to the execution context the
// callback should run on. A nil Dispatcher invokes the callback
// directly on the HAL's notification goroutine.
type Dispatcher func(func())

// ChangeCallback receives the typed addresses whose properties
// changed.
type ChangeCallback func(changed []hal.PropertyAddress)

// Object is the base handle for everything living in the HAL. Two
// handles are equal iff their ids are equal.
type Object struct {
	api   hal.API
	id    hal.ObjectID
	class hal.FourCC
	log   *logrus.Logger

	mu        sync.Mutex
	listeners map[hal.PropertyAddress]hal.ListenerToken
}

type options struct {
	log *logrus.Logger
}

// Option configures a handle during Bind.
type Option func(*options)

// WithLogger sets the logger used for teardown diagnostics. Without it
// the logrus standard logger is used.
func WithLogger(l *logrus.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// Bind wraps an object id into a handle. The object's class is read
// once; it decides which specialized wrapper the handle converts to.
func Bind(api hal.API, id hal.ObjectID, opts ...Option) (*Object, error) {

	o := options{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	class, err := property.Scalar[uint32](api, id, hal.GlobalAddress(hal.SelectorClass), nil)
	if err != nil {
		return nil, err
	}

	return &Object{
		api:       api,
		id:        id,
		class:     hal.FourCC(class),
		log:       o.log,
		listeners: make(map[hal.PropertyAddress]hal.ListenerToken),
	}, nil
}

// ID returns the HAL object id.
func (o *Object) ID() hal.ObjectID { return o.id }

// Class returns the HAL class identifier.
func (o *Object) Class() hal.FourCC { return o.class }

// API returns the HAL this handle lives in.
func (o *Object) API() hal.API { return o.api }

// Equal reports whether both handles refer to the same HAL object.
func (o *Object) Equal(p *Object) bool {
	return p != nil && o.id == p.id
}

// HasProperty reports whether the object exposes the property.
func (o *Object) HasProperty(addr hal.PropertyAddress) bool {
	return property.Exists(o.api, o.id, addr)
}

// Name returns the human readable object name.
func (o *Object) Name() (string, error) {
	return property.String(o.api, o.id, hal.GlobalAddress(hal.SelectorName), nil)
}

// Manufacturer returns the manufacturer name.
func (o *Object) Manufacturer() (string, error) {
	return property.String(o.api, o.id, hal.GlobalAddress(hal.SelectorManufacturer), nil)
}

// OwnedObjects returns handles for all objects owned by this one.
func (o *Object) OwnedObjects() ([]*Object, error) {
	ids, err := property.Array[hal.ObjectID](o.api, o.id, hal.GlobalAddress(hal.SelectorOwnedObjects), nil)
	if err != nil {
		return nil, err
	}
	return o.bindAll(ids)
}

func (o *Object) bindAll(ids []hal.ObjectID) ([]*Object, error) {
	objs := make([]*Object, 0, len(ids))
	for _, id := range ids {
		obj, err := Bind(o.api, id, WithLogger(o.log))
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

// WhenPropertyChanges registers cb to be invoked whenever the property
// at addr changes. A previous registration for the same address is
// dropped first, so calling this repeatedly updates the callback
// rather than accumulating subscriptions. A nil cb removes the
// registration. The dispatcher may be nil, in which case the callback
// runs directly on the notification goroutine.
func (o *Object) WhenPropertyChanges(addr hal.PropertyAddress, dispatch Dispatcher, cb ChangeCallback) error {

	o.mu.Lock()
	defer o.mu.Unlock()

	if token, ok := o.listeners[addr]; ok {
		// drop the map entry only once the HAL let go of the old
		// subscription, otherwise a still firing callback would be left
		// with no record to remove it by
		if status := o.api.RemovePropertyListener(o.id, token); !status.OK() {
			return hal.NewError("remove listener", o.id, addr, status)
		}
		delete(o.listeners, addr)
	}

	if cb == nil {
		return nil
	}

	proc := func(_ hal.ObjectID, changed []hal.PropertyAddress) {
		if dispatch != nil {
			dispatch(func() { cb(changed) })
			return
		}
		cb(changed)
	}

	token, status := o.api.AddPropertyListener(o.id, addr, proc)
	if !status.OK() {
		// the stale entry is already gone, so a failed registration
		// leaves no trace
		return hal.NewError("add listener", o.id, addr, status)
	}
	o.listeners[addr] = token
	return nil
}

// RemoveAllListeners force-removes every registration of this handle.
// It is invoked at handle teardown and therefore never fails: HAL
// errors are logged per entry and the sweep continues. Calling it
// again is a no-op.
func (o *Object) RemoveAllListeners() {

	o.mu.Lock()
	defer o.mu.Unlock()

	for addr, token := range o.listeners {
		if status := o.api.RemovePropertyListener(o.id, token); !status.OK() {
			o.log.Printf("unable to remove listener for %v on object %d: %v",
				addr, o.id, status)
		}
	}
	o.listeners = make(map[hal.PropertyAddress]hal.ListenerToken)
}

// Close tears the handle down. The handle must not be used afterwards.
func (o *Object) Close() {
	o.RemoveAllListeners()
}
