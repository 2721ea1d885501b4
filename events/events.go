package events

import (
	"os"
	"os/signal"

	"github.com/cskr/pubsub"

	"github.com/dh1tw/audiohal/hal"
)

// Event channel names used for event Pubsub

// internal
const (
	DeviceListChanged  = "deviceListChanged"  // []hal.ObjectID
	DefaultInChanged   = "defaultInChanged"   // hal.ObjectID
	DefaultOutChanged  = "defaultOutChanged"  // hal.ObjectID
	PropertyChanged    = "propertyChanged"    // PropertyChange
	DeviceAliveChanged = "deviceAliveChanged" // hal.ObjectID
	Shutdown           = "shutdown"           // bool
	OsExit             = "osExit"             // bool
)

// for message handling
const (
	ServerOnline = "serverOnline" // bool
	Ping         = "ping"         // int64
)

// PropertyChange is the payload published on PropertyChanged.
type PropertyChange struct {
	ID        hal.ObjectID
	Addresses []hal.PropertyAddress
}

func WatchSystemEvents(evPS *pubsub.PubSub) {

	// Channel to handle OS signals
	osSignals := make(chan os.Signal, 1)

	//subscribe to os.Interrupt (CTRL-C signal)
	signal.Notify(osSignals, os.Interrupt)

	osSignal := <-osSignals
	if osSignal == os.Interrupt {
		evPS.Pub(true, OsExit)
	}
}
