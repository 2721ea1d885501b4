package monitor

import (
	"sync"

	"github.com/cskr/pubsub"
	"github.com/sirupsen/logrus"

	"github.com/dh1tw/audiohal/events"
	"github.com/dh1tw/audiohal/hal"
	"github.com/dh1tw/audiohal/object"
)

// wildcardAddress matches every property of an object.
var wildcardAddress = hal.PropertyAddress{
	Selector: hal.SelectorWildcard,
	Scope:    hal.ScopeWildcard,
	Element:  hal.ElementWildcard,
}

// Watcher registers the HAL listeners that feed the event hub: device
// list and default device changes on the system object plus a wildcard
// listener per device. Consumers subscribe to the pubsub topics in the
// events package.
type Watcher struct {
	sys    *object.System
	events *pubsub.PubSub
	log    *logrus.Logger

	mu      sync.Mutex
	devices map[hal.ObjectID]*object.Object
}

// NewWatcher registers the listeners and returns the running watcher.
func NewWatcher(sys *object.System, ps *pubsub.PubSub, log *logrus.Logger) (*Watcher, error) {

	if log == nil {
		log = logrus.StandardLogger()
	}

	w := &Watcher{
		sys:     sys,
		events:  ps,
		log:     log,
		devices: make(map[hal.ObjectID]*object.Object),
	}

	deviceList := hal.GlobalAddress(hal.SelectorDevices)
	if err := sys.WhenPropertyChanges(deviceList, nil, func([]hal.PropertyAddress) {
		w.events.Pub(true, events.DeviceListChanged)
		if err := w.rescanDevices(); err != nil {
			w.log.Println("watcher: unable to rescan devices:", err)
		}
	}); err != nil {
		return nil, err
	}

	defaultIn := hal.GlobalAddress(hal.SelectorDefaultInputDevice)
	if err := sys.WhenPropertyChanges(defaultIn, nil, func([]hal.PropertyAddress) {
		w.events.Pub(true, events.DefaultInChanged)
	}); err != nil {
		return nil, err
	}

	defaultOut := hal.GlobalAddress(hal.SelectorDefaultOutputDevice)
	if err := sys.WhenPropertyChanges(defaultOut, nil, func([]hal.PropertyAddress) {
		w.events.Pub(true, events.DefaultOutChanged)
	}); err != nil {
		return nil, err
	}

	if err := w.rescanDevices(); err != nil {
		return nil, err
	}

	return w, nil
}

// rescanDevices aligns the watched device set with the HAL's current
// device list. New devices get a wildcard listener; handles of removed
// devices are torn down.
func (w *Watcher) rescanDevices() error {

	devices, err := w.sys.Devices()
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	present := make(map[hal.ObjectID]bool, len(devices))
	for _, dev := range devices {
		present[dev.ID()] = true
	}

	for id, obj := range w.devices {
		if !present[id] {
			obj.Close()
			delete(w.devices, id)
		}
	}

	for _, dev := range devices {
		if _, ok := w.devices[dev.ID()]; ok {
			continue
		}
		obj, err := object.Bind(w.sys.API(), dev.ID(), object.WithLogger(w.log))
		if err != nil {
			return err
		}

		id := obj.ID()
		if err := obj.WhenPropertyChanges(wildcardAddress, nil, func(changed []hal.PropertyAddress) {
			w.events.Pub(events.PropertyChange{ID: id, Addresses: changed}, events.PropertyChanged)
		}); err != nil {
			obj.Close()
			return err
		}
		w.devices[id] = obj
	}

	return nil
}

// Close removes every listener the watcher registered.
func (w *Watcher) Close() {

	w.mu.Lock()
	defer w.mu.Unlock()

	for id, obj := range w.devices {
		obj.Close()
		delete(w.devices, id)
	}
	w.sys.RemoveAllListeners()
}
