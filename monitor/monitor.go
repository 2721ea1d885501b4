// Package monitor serves a web view onto the HAL: a REST API plus a
// websocket feed over which connected browsers receive the current
// device state and live property change notifications.
package monitor

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cskr/pubsub"
	ringBuffer "github.com/dh1tw/golang-ring"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/dh1tw/audiohal/events"
	"github.com/dh1tw/audiohal/hal"
	"github.com/dh1tw/audiohal/object"
)

var upgrader = websocket.Upgrader{}

// Monitor is the web monitor server. Create instances through New.
type Monitor struct {
	sync.RWMutex
	options        Options
	sys            *object.System
	router         *mux.Router
	clients        map[*wsClient]bool
	addWsClient    chan *wsClient
	removeWsClient chan *wsClient
	muRing         sync.Mutex
	ring           ringBuffer.Ring
	closeOnce      sync.Once
	closed         chan struct{}
}

// Event is one entry of the recent events ring.
type Event struct {
	Time      time.Time `json:"time"`
	ObjectID  uint32    `json:"objectId"`
	Addresses []string  `json:"addresses"`
}

// New returns a monitor serving the objects of sys.
func New(sys *object.System, opts ...Option) (*Monitor, error) {

	m := &Monitor{
		options: Options{
			Host:         "localhost",
			Port:         8090,
			EventLogSize: 50,
			Events:       pubsub.New(100),
			Log:          defaultLogger(),
		},
		sys:            sys,
		router:         mux.NewRouter(),
		clients:        make(map[*wsClient]bool),
		addWsClient:    make(chan *wsClient),
		removeWsClient: make(chan *wsClient),
		closed:         make(chan struct{}),
	}

	for _, option := range opts {
		option(&m.options)
	}

	m.ring.SetCapacity(m.options.EventLogSize)
	m.routes()

	return m, nil
}

// ListenAndServe starts the hub and blocks serving HTTP until the
// listener fails or the monitor is closed.
func (m *Monitor) ListenAndServe() error {
	go m.start()
	addr := fmt.Sprintf("%s:%d", m.options.Host, m.options.Port)
	m.options.Log.Printf("monitor listening on http://%s", addr)
	return http.ListenAndServe(addr, m.router)
}

// Close shuts the hub down. Connected websocket clients are dropped.
func (m *Monitor) Close() {
	m.closeOnce.Do(func() { close(m.closed) })
}

// start runs the hub loop: it owns the client set and fans events from
// the pubsub out to the connected websockets.
func (m *Monitor) start() {

	propertyCh := m.options.Events.Sub(events.PropertyChanged)
	deviceListCh := m.options.Events.Sub(events.DeviceListChanged)
	defaultInCh := m.options.Events.Sub(events.DefaultInChanged)
	defaultOutCh := m.options.Events.Sub(events.DefaultOutChanged)

	defer func() {
		m.options.Events.Unsub(propertyCh, events.PropertyChanged)
		m.options.Events.Unsub(deviceListCh, events.DeviceListChanged)
		m.options.Events.Unsub(defaultInCh, events.DefaultInChanged)
		m.options.Events.Unsub(defaultOutCh, events.DefaultOutChanged)
	}()

	for {
		select {
		case ev := <-propertyCh:
			change := ev.(events.PropertyChange)
			m.recordEvent(change)
			m.updateWsClients()

		case <-deviceListCh:
			m.updateWsClients()

		case <-defaultInCh:
			m.updateWsClients()

		case <-defaultOutCh:
			m.updateWsClients()

		case client := <-m.addWsClient:
			m.options.Log.Println("websocket connected")
			m.Lock()
			m.clients[client] = true
			m.Unlock()
			m.updateWsClients()

		case client := <-m.removeWsClient:
			m.options.Log.Println("websocket disconnected")
			m.Lock()
			if _, ok := m.clients[client]; ok {
				delete(m.clients, client)
				close(client.send)
			}
			m.Unlock()

		case <-m.closed:
			m.Lock()
			for client := range m.clients {
				delete(m.clients, client)
				close(client.send)
			}
			m.Unlock()
			return
		}
	}
}

func (m *Monitor) recordEvent(change events.PropertyChange) {
	ev := Event{
		Time:     time.Now(),
		ObjectID: uint32(change.ID),
	}
	for _, addr := range change.Addresses {
		ev.Addresses = append(ev.Addresses, addr.String())
	}
	m.muRing.Lock()
	m.ring.Enqueue(ev)
	m.muRing.Unlock()
}

func (m *Monitor) recentEvents() []Event {
	m.muRing.Lock()
	values := m.ring.Values()
	m.muRing.Unlock()

	evs := make([]Event, 0, len(values))
	for _, v := range values {
		if ev, ok := v.(Event); ok {
			evs = append(evs, ev)
		}
	}
	return evs
}

// updateWsClients pushes the current state to all connected clients.
func (m *Monitor) updateWsClients() {

	state, err := m.getState()
	if err != nil {
		m.options.Log.Println("unable to assemble state:", err)
		return
	}
	data, err := json.Marshal(state)
	if err != nil {
		m.options.Log.Println("unable to marshal state:", err)
		return
	}

	m.Lock()
	for client := range m.clients {
		select {
		case client.send <- data:
		default:
		}
	}
	m.Unlock()
}

func (m *Monitor) handleClientMsg(data []byte) {

	msg := ClientMessage{}
	if err := json.Unmarshal(data, &msg); err != nil {
		m.options.Log.Println("unable to unmarshal client message:", string(data))
		return
	}
	if msg.Device == nil {
		return
	}

	dev, err := m.device(hal.ObjectID(*msg.Device))
	if err != nil {
		m.options.Log.Println(err)
		return
	}
	defer dev.Close()

	if msg.SetVolume != nil {
		fader := float32(*msg.SetVolume) / 100
		scalar := object.ScalarFromFader(fader)
		if err := dev.SetVolumeScalar(hal.ScopeOutput, hal.ElementMain, scalar); err != nil {
			m.options.Log.Println("unable to set volume:", err)
		}
	}

	if msg.SetMute != nil {
		if err := dev.SetMute(hal.ScopeOutput, *msg.SetMute); err != nil {
			m.options.Log.Println("unable to set mute:", err)
		}
	}

	m.updateWsClients()
}

func (m *Monitor) device(id hal.ObjectID) (*object.Device, error) {

	obj, err := object.Bind(m.sys.API(), id, object.WithLogger(m.options.Log))
	if err != nil {
		return nil, fmt.Errorf("unable to bind object %d: %v", id, err)
	}
	dev, ok := obj.AsDevice()
	if !ok {
		return nil, fmt.Errorf("object %d is not a device", id)
	}
	return dev, nil
}

type wsClient struct {
	ws           *websocket.Conn
	send         chan []byte
	removeClient chan<- *wsClient
	hubClosed    <-chan struct{}
	handleMsg    func([]byte)
}

func (c *wsClient) write() {
	defer c.ws.Close()

	for message := range c.send {
		c.ws.WriteMessage(websocket.TextMessage, message)
	}
	c.ws.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *wsClient) read() {
	defer func() {
		// the hub loop is gone once the monitor is closed, so the
		// deregistration must not insist on a receiver
		select {
		case c.removeClient <- c:
		case <-c.hubClosed:
		}
		c.ws.Close()
	}()

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			break
		}
		c.handleMsg(data)
	}
}
