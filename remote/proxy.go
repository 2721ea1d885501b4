package remote

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// Proxy is a local object representing a remote audiohal server. It
// can be considered an abstraction layer so you don't have to take
// care of sending and receiving messages to the remote server. In case
// the remote server disappears the doneCh will be closed.
type Proxy struct {
	sync.RWMutex
	name           string
	nc             *nats.Conn
	options        Options
	request        requestFunc
	devices        []DeviceInfo
	defaultInput   *uint32
	defaultOutput  *uint32
	latency        time.Duration
	notifyChangeCb func(ChangeNotification)
	eventsSub      *nats.Subscription
	closePing      chan struct{}
	doneCh         chan struct{}
	doneOnce       sync.Once
}

// requestFunc performs one request/reply round trip to the server.
type requestFunc func(op string, req, resp interface{}) error

const requestTimeout = time.Second * 3

// NewProxy is the constructor for a server proxy. It performs an
// initial enumeration, subscribes to the server's change notifications
// and starts the latency ping loop.
func NewProxy(name string, nc *nats.Conn, doneCh chan struct{}, opts ...Option) (*Proxy, error) {

	options := Options{
		Name: name,
		Log:  defaultLogger(),
	}
	for _, option := range opts {
		option(&options)
	}

	p := &Proxy{
		name:      name,
		nc:        nc,
		options:   options,
		closePing: make(chan struct{}),
		doneCh:    doneCh,
	}
	p.request = p.natsRequest

	if err := p.refresh(); err != nil {
		return nil, err
	}

	sub, err := nc.Subscribe(subject(name, opEvents), p.changeCb)
	if err != nil {
		return nil, err
	}
	p.eventsSub = sub

	// ping the server every few seconds to monitor the latency and to
	// detect when it disappears
	go func() {
		for {
			select {
			case <-time.After(time.Second * 3):
				latency, err := p.ping()
				if err != nil {
					p.options.Log.Println("unable to ping server", p.name)
					p.closeDone()
					return
				}
				p.Lock()
				p.latency = latency
				p.Unlock()
			case <-p.closePing:
				return
			}
		}
	}()

	return p, nil
}

// the doneCh must be closed through this function to avoid closing it
// multiple times. Closing the doneCh signals the application that this
// object can be disposed.
func (p *Proxy) closeDone() {
	p.doneOnce.Do(func() { close(p.doneCh) })
}

// Close shuts the proxy down and all associated go routines so that it
// can be garbage collected.
func (p *Proxy) Close() {
	p.Lock()
	defer p.Unlock()

	if p.eventsSub != nil {
		p.eventsSub.Unsubscribe()
		p.eventsSub = nil
	}
	close(p.closePing)
	p.notifyChangeCb = nil
	p.closeDone()
}

// Name returns the name of the remote server.
func (p *Proxy) Name() string {
	p.RLock()
	defer p.RUnlock()
	return p.name
}

// Latency returns the round trip latency to the remote server.
func (p *Proxy) Latency() time.Duration {
	p.RLock()
	defer p.RUnlock()
	return p.latency
}

// Devices returns the mirrored device list.
func (p *Proxy) Devices() []DeviceInfo {
	p.RLock()
	defer p.RUnlock()
	devices := make([]DeviceInfo, len(p.devices))
	copy(devices, p.devices)
	return devices
}

// DefaultInput returns the id of the remote default input device, or
// nil when none is configured.
func (p *Proxy) DefaultInput() *uint32 {
	p.RLock()
	defer p.RUnlock()
	return p.defaultInput
}

// DefaultOutput returns the id of the remote default output device, or
// nil when none is configured.
func (p *Proxy) DefaultOutput() *uint32 {
	p.RLock()
	defer p.RUnlock()
	return p.defaultOutput
}

// SetNotifyCb sets a callback which will be executed whenever a change
// notification arrives from the remote server.
func (p *Proxy) SetNotifyCb(f func(ChangeNotification)) {
	p.Lock()
	defer p.Unlock()
	p.notifyChangeCb = f
}

// Get reads one property on the remote server.
func (p *Proxy) Get(objectID uint32, addr Address, valueType string) (Value, error) {

	req := GetRequest{Object: objectID, Address: addr, Type: valueType}
	var resp GetResponse
	if err := p.request(opGet, req, &resp); err != nil {
		return Value{}, err
	}
	if resp.Error != "" {
		return Value{}, fmt.Errorf("%s", resp.Error)
	}
	return resp.Value, nil
}

// Set writes one property on the remote server.
func (p *Proxy) Set(objectID uint32, addr Address, value Value) error {

	req := SetRequest{Object: objectID, Address: addr, Value: value}
	var resp SetResponse
	if err := p.request(opSet, req, &resp); err != nil {
		return err
	}
	if resp.Error != "" {
		return fmt.Errorf("%s", resp.Error)
	}
	return nil
}

// Subscribe asks the remote server to watch one property. Changes
// arrive through the notify callback.
func (p *Proxy) Subscribe(objectID uint32, addr Address) error {

	req := SubscribeRequest{Object: objectID, Address: addr}
	var resp SubscribeResponse
	if err := p.request(opSubscribe, req, &resp); err != nil {
		return err
	}
	if resp.Error != "" {
		return fmt.Errorf("%s", resp.Error)
	}
	return nil
}

// Refresh re-enumerates the remote server.
func (p *Proxy) Refresh() error {
	return p.refresh()
}

func (p *Proxy) refresh() error {

	var resp EnumerateResponse
	if err := p.request(opEnumerate, nil, &resp); err != nil {
		return fmt.Errorf("enumerate: %v", err)
	}
	if resp.Error != "" {
		return fmt.Errorf("enumerate: %s", resp.Error)
	}

	p.Lock()
	defer p.Unlock()
	p.devices = resp.Devices
	p.defaultInput = resp.DefaultInput
	p.defaultOutput = resp.DefaultOutput
	return nil
}

func (p *Proxy) natsRequest(op string, req, resp interface{}) error {

	var payload []byte
	if req != nil {
		payload = marshal(req)
	}

	msg, err := p.nc.Request(subject(p.name, op), payload, requestTimeout)
	if err != nil {
		return err
	}
	return json.Unmarshal(msg.Data, resp)
}

// ping measures the round trip time to the remote server.
func (p *Proxy) ping() (time.Duration, error) {

	ping := PingPong{Ping: time.Now().UnixNano()}

	msg, err := p.nc.Request(subject(p.name, opPing), marshal(ping), requestTimeout)
	if err != nil {
		return 0, err
	}

	var pong PingPong
	if err := json.Unmarshal(msg.Data, &pong); err != nil {
		return 0, err
	}

	return time.Duration(time.Now().UnixNano() - pong.Ping), nil
}

// changeCb decodes a change notification coming from the server and
// notifies the parent application through the callback.
func (p *Proxy) changeCb(msg *nats.Msg) {

	var notification ChangeNotification
	if err := json.Unmarshal(msg.Data, &notification); err != nil {
		p.options.Log.Println("unable to unmarshal change notification:", err)
		return
	}

	p.RLock()
	cb := p.notifyChangeCb
	p.RUnlock()

	if cb != nil {
		go cb(notification)
	}
}
