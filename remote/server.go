// Package remote exposes a HAL over NATS request/reply and mirrors a
// remote HAL locally. A Server publishes enumerate/get/set/subscribe
// operations for one machine's audio objects; a Proxy is the client
// side counterpart.
package remote

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/dh1tw/audiohal/hal"
	"github.com/dh1tw/audiohal/object"
	"github.com/dh1tw/audiohal/property"
)

// Server serves the objects of one HAL over NATS. Server is also a
// convenience object which contains all the long living variables &
// objects of this service.
type Server struct {
	sync.RWMutex
	name          string
	sys           *object.System
	nc            *nats.Conn
	options       Options
	subs          []*nats.Subscription
	eventsSubject string
	watched       map[watchKey]*object.Object
	lastPing      time.Time
	closeTimeout  chan struct{}
	closeOnce     sync.Once
}

type watchKey struct {
	id   hal.ObjectID
	addr hal.PropertyAddress
}

// NewServer creates the server, registers the NATS handlers and starts
// the ping timeout watchdog.
func NewServer(sys *object.System, nc *nats.Conn, opts ...Option) (*Server, error) {

	options := Options{
		Name:        "default",
		PingTimeout: time.Minute,
		Log:         defaultLogger(),
	}
	for _, option := range opts {
		option(&options)
	}

	s := &Server{
		name:          options.Name,
		sys:           sys,
		nc:            nc,
		options:       options,
		eventsSubject: subject(options.Name, opEvents),
		watched:       make(map[watchKey]*object.Object),
		lastPing:      time.Now(),
		closeTimeout:  make(chan struct{}),
	}

	handlers := map[string]func([]byte) []byte{
		opEnumerate: s.handleEnumerate,
		opGet:       s.handleGet,
		opSet:       s.handleSet,
		opSubscribe: s.handleSubscribe,
		opPing:      s.handlePing,
	}

	for op, handler := range handlers {
		handler := handler
		sub, err := nc.Subscribe(subject(s.name, op), func(m *nats.Msg) {
			m.Respond(handler(m.Data))
		})
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("subscribe: %v", err)
		}
		s.subs = append(s.subs, sub)
	}

	go s.checkTimeout()

	return s, nil
}

// Close removes the NATS handlers and every property listener
// registered on behalf of remote subscribers.
func (s *Server) Close() {

	s.closeOnce.Do(func() { close(s.closeTimeout) })

	s.Lock()
	defer s.Unlock()

	for _, sub := range s.subs {
		sub.Unsubscribe()
	}
	s.subs = nil
	s.dropWatchesLocked()
}

func (s *Server) dropWatchesLocked() {
	for key, obj := range s.watched {
		obj.Close()
		delete(s.watched, key)
	}
}

// checkTimeout drops the remote subscriptions when no client has
// pinged for the configured timeout; the subscribers are gone.
func (s *Server) checkTimeout() {

	ticker := time.NewTicker(s.options.PingTimeout)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Lock()
			if time.Since(s.lastPing) > s.options.PingTimeout && len(s.watched) > 0 {
				s.options.Log.Println("no ping received, dropping remote subscriptions")
				s.dropWatchesLocked()
			}
			s.Unlock()
		case <-s.closeTimeout:
			return
		}
	}
}

func (s *Server) handleEnumerate([]byte) []byte {

	resp := EnumerateResponse{Devices: []DeviceInfo{}}

	devices, err := s.sys.Devices()
	if err != nil {
		resp.Error = err.Error()
		return marshal(resp)
	}

	for _, dev := range devices {
		info := DeviceInfo{ID: uint32(dev.ID())}
		if name, err := dev.Name(); err == nil {
			info.Name = name
		}
		if uid, err := dev.UID(); err == nil {
			info.UID = uid
		}
		if tt, err := dev.TransportType(); err == nil {
			info.Transport = fourCCText(tt)
		}
		if rate, err := dev.NominalSampleRate(); err == nil {
			info.SampleRate = &rate
		}
		resp.Devices = append(resp.Devices, info)
	}

	if dev, err := s.sys.DefaultInputDevice(); err == nil && dev != nil {
		id := uint32(dev.ID())
		resp.DefaultInput = &id
	}
	if dev, err := s.sys.DefaultOutputDevice(); err == nil && dev != nil {
		id := uint32(dev.ID())
		resp.DefaultOutput = &id
	}

	return marshal(resp)
}

func (s *Server) handleGet(data []byte) []byte {

	var req GetRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return marshal(GetResponse{Error: "invalid request: " + err.Error()})
	}

	addr, err := halAddress(req.Address)
	if err != nil {
		return marshal(GetResponse{Error: err.Error()})
	}

	api := s.sys.API()
	id := hal.ObjectID(req.Object)
	resp := GetResponse{}

	switch req.Type {
	case "uint32":
		v, err := property.Scalar[uint32](api, id, addr, nil)
		if err != nil {
			resp.Error = err.Error()
			break
		}
		resp.Value.Uint32 = &v
	case "float32":
		v, err := property.Scalar[float32](api, id, addr, nil)
		if err != nil {
			resp.Error = err.Error()
			break
		}
		resp.Value.Float32 = &v
	case "float64":
		v, err := property.Scalar[float64](api, id, addr, nil)
		if err != nil {
			resp.Error = err.Error()
			break
		}
		resp.Value.Float64 = &v
	case "string":
		v, err := property.String(api, id, addr, nil)
		if err != nil {
			resp.Error = err.Error()
			break
		}
		resp.Value.String = &v
	case "bytes", "":
		size, err := property.DataSize(api, id, addr, nil)
		if err != nil {
			resp.Error = err.Error()
			break
		}
		buf := make([]byte, size)
		n, err := property.Bytes(api, id, addr, nil, buf)
		if err != nil {
			resp.Error = err.Error()
			break
		}
		resp.Value.Bytes = buf[:n]
	default:
		resp.Error = fmt.Sprintf("unknown value type %q", req.Type)
	}

	return marshal(resp)
}

func (s *Server) handleSet(data []byte) []byte {

	var req SetRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return marshal(SetResponse{Error: "invalid request: " + err.Error()})
	}

	addr, err := halAddress(req.Address)
	if err != nil {
		return marshal(SetResponse{Error: err.Error()})
	}

	api := s.sys.API()
	id := hal.ObjectID(req.Object)

	switch {
	case req.Value.Uint32 != nil:
		err = property.SetScalar(api, id, addr, nil, *req.Value.Uint32)
	case req.Value.Float32 != nil:
		err = property.SetScalar(api, id, addr, nil, *req.Value.Float32)
	case req.Value.Float64 != nil:
		err = property.SetScalar(api, id, addr, nil, *req.Value.Float64)
	case req.Value.Bytes != nil:
		err = property.SetBytes(api, id, addr, nil, req.Value.Bytes)
	default:
		err = fmt.Errorf("no value in set request")
	}

	if err != nil {
		return marshal(SetResponse{Error: err.Error()})
	}
	return marshal(SetResponse{})
}

func (s *Server) handleSubscribe(data []byte) []byte {

	var req SubscribeRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return marshal(SubscribeResponse{Error: "invalid request: " + err.Error()})
	}

	addr, err := halAddress(req.Address)
	if err != nil {
		return marshal(SubscribeResponse{Error: err.Error()})
	}

	id := hal.ObjectID(req.Object)
	key := watchKey{id: id, addr: addr}

	s.Lock()
	defer s.Unlock()

	if _, ok := s.watched[key]; ok {
		return marshal(SubscribeResponse{Subject: s.eventsSubject})
	}

	obj, err := object.Bind(s.sys.API(), id, object.WithLogger(s.options.Log))
	if err != nil {
		return marshal(SubscribeResponse{Error: err.Error()})
	}

	if err := obj.WhenPropertyChanges(addr, nil, func(changed []hal.PropertyAddress) {
		s.publishChange(id, changed)
	}); err != nil {
		obj.Close()
		return marshal(SubscribeResponse{Error: err.Error()})
	}

	s.watched[key] = obj
	return marshal(SubscribeResponse{Subject: s.eventsSubject})
}

func (s *Server) publishChange(id hal.ObjectID, changed []hal.PropertyAddress) {

	if s.nc == nil {
		s.options.Log.Println("publishChange: nats connection not set")
		return
	}

	notification := ChangeNotification{Object: uint32(id)}
	for _, addr := range changed {
		notification.Addresses = append(notification.Addresses, wireAddress(addr))
	}

	if err := s.nc.Publish(s.eventsSubject, marshal(notification)); err != nil {
		s.options.Log.Println("unable to publish change notification:", err)
	}
}

func (s *Server) handlePing(data []byte) []byte {
	s.Lock()
	s.lastPing = time.Now()
	s.Unlock()
	return data
}

func marshal(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		// all message types marshal; this is unreachable
		panic(err)
	}
	return data
}

func fourCCText(f hal.FourCC) string {
	b := [4]byte{byte(f >> 24), byte(f >> 16), byte(f >> 8), byte(f)}
	return string(b[:])
}

func halAddress(a Address) (hal.PropertyAddress, error) {

	selector, err := hal.FourCCFromString(a.Selector)
	if err != nil {
		return hal.PropertyAddress{}, fmt.Errorf("selector: %v", err)
	}

	scope := hal.ScopeGlobal
	if a.Scope != "" {
		scope, err = hal.FourCCFromString(a.Scope)
		if err != nil {
			return hal.PropertyAddress{}, fmt.Errorf("scope: %v", err)
		}
	}

	return hal.Address(selector, scope, a.Element), nil
}

func wireAddress(addr hal.PropertyAddress) Address {
	return Address{
		Selector: fourCCText(addr.Selector),
		Scope:    fourCCText(addr.Scope),
		Element:  addr.Element,
	}
}
