package monitor

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dh1tw/audiohal/hal"
	"github.com/dh1tw/audiohal/object"
)

// State is the message pushed to websocket clients and returned by the
// devices endpoint.
type State struct {
	Devices       []DeviceState `json:"devices"`
	DefaultInput  *uint32       `json:"defaultInput,omitempty"`
	DefaultOutput *uint32       `json:"defaultOutput,omitempty"`
}

// DeviceState describes one device. Fields the device does not expose
// are omitted.
type DeviceState struct {
	ID         uint32   `json:"id"`
	Name       string   `json:"name"`
	UID        string   `json:"uid,omitempty"`
	Transport  string   `json:"transport,omitempty"`
	SampleRate *float64 `json:"sampleRate,omitempty"`
	Volume     *int     `json:"volume,omitempty"`
	Mute       *bool    `json:"mute,omitempty"`
}

// ClientMessage is the message received from websocket clients.
type ClientMessage struct {
	Device    *uint32 `json:"device,omitempty"`
	SetVolume *int    `json:"volume,omitempty"`
	SetMute   *bool   `json:"mute,omitempty"`
}

// ControlVolume is the payload of the volume endpoint. The volume is a
// fader position in percent (0 ... 100).
type ControlVolume struct {
	Volume *int `json:"volume,omitempty"`
}

// ControlMute is the payload of the mute endpoint.
type ControlMute struct {
	Mute *bool `json:"mute,omitempty"`
}

func (m *Monitor) getState() (State, error) {

	state := State{Devices: []DeviceState{}}

	devices, err := m.sys.Devices()
	if err != nil {
		return state, err
	}

	for _, dev := range devices {
		ds := DeviceState{ID: uint32(dev.ID())}

		if name, err := dev.Name(); err == nil {
			ds.Name = name
		}
		if uid, err := dev.UID(); err == nil {
			ds.UID = uid
		}
		if tt, err := dev.TransportType(); err == nil {
			ds.Transport = tt.String()
		}
		if rate, err := dev.NominalSampleRate(); err == nil {
			ds.SampleRate = &rate
		}
		if scalar, err := dev.VolumeScalar(hal.ScopeOutput, hal.ElementMain); err == nil {
			vol := int(object.FaderPosition(scalar) * 100)
			ds.Volume = &vol
		}
		if mute, err := dev.Mute(hal.ScopeOutput); err == nil {
			ds.Mute = &mute
		}

		state.Devices = append(state.Devices, ds)
	}

	if dev, err := m.sys.DefaultInputDevice(); err == nil && dev != nil {
		id := uint32(dev.ID())
		state.DefaultInput = &id
	}
	if dev, err := m.sys.DefaultOutputDevice(); err == nil && dev != nil {
		id := uint32(dev.ID())
		state.DefaultOutput = &id
	}

	return state, nil
}

func (m *Monitor) webSocketHdlr(w http.ResponseWriter, req *http.Request) {

	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		http.NotFound(w, req)
		m.options.Log.Printf("unable to open ws for %v\n", req.RemoteAddr)
		return
	}

	client := &wsClient{
		ws:           conn,
		send:         make(chan []byte, 1),
		removeClient: m.removeWsClient,
		hubClosed:    m.closed,
		handleMsg:    m.handleClientMsg,
	}

	go client.write()
	go client.read()

	select {
	case m.addWsClient <- client:
	case <-m.closed:
		close(client.send)
		conn.Close()
	}
}

func (m *Monitor) devicesHdlr(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")

	state, err := m.getState()
	if err != nil {
		m.options.Log.Println(err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("500 - unable to enumerate devices"))
		return
	}

	if err := json.NewEncoder(w).Encode(state); err != nil {
		m.options.Log.Println(err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("500 - unable to encode State msg"))
	}
}

func (m *Monitor) eventsHdlr(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")

	if err := json.NewEncoder(w).Encode(m.recentEvents()); err != nil {
		m.options.Log.Println(err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("500 - unable to encode events"))
	}
}

func (m *Monitor) deviceFromRequest(w http.ResponseWriter, req *http.Request) *object.Device {

	vars := mux.Vars(req)
	id, err := strconv.ParseUint(vars["device"], 10, 32)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("400 - invalid device id"))
		return nil
	}

	dev, err := m.device(hal.ObjectID(id))
	if err != nil {
		m.options.Log.Println(err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(fmt.Sprintf("500 - unable to find device %d", id)))
		return nil
	}
	return dev
}

func (m *Monitor) deviceVolumeHdlr(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")

	dev := m.deviceFromRequest(w, req)
	if dev == nil {
		return
	}
	defer dev.Close()

	switch req.Method {
	case "GET":
		scalar, err := dev.VolumeScalar(hal.ScopeOutput, hal.ElementMain)
		if err != nil {
			m.options.Log.Println(err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("500 - unable to read volume"))
			return
		}
		vol := int(object.FaderPosition(scalar) * 100)
		volCtlMsg := &ControlVolume{
			Volume: &vol,
		}
		if err := json.NewEncoder(w).Encode(volCtlMsg); err != nil {
			m.options.Log.Println(err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("500 - unable to encode ControlVolume msg"))
		}

	case "PUT":
		var volCtlMsg ControlVolume
		dec := json.NewDecoder(req.Body)

		if err := dec.Decode(&volCtlMsg); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("400 - invalid JSON"))
			return
		}
		if volCtlMsg.Volume == nil || *volCtlMsg.Volume < 0 || *volCtlMsg.Volume > 100 {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("400 - invalid Request"))
			return
		}
		scalar := object.ScalarFromFader(float32(*volCtlMsg.Volume) / 100)
		if err := dev.SetVolumeScalar(hal.ScopeOutput, hal.ElementMain, scalar); err != nil {
			m.options.Log.Println(err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("500 - unable to set volume"))
			return
		}
		m.updateWsClients()

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (m *Monitor) deviceMuteHdlr(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")

	dev := m.deviceFromRequest(w, req)
	if dev == nil {
		return
	}
	defer dev.Close()

	switch req.Method {
	case "GET":
		mute, err := dev.Mute(hal.ScopeOutput)
		if err != nil {
			m.options.Log.Println(err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("500 - unable to read mute state"))
			return
		}
		muteCtlMsg := &ControlMute{
			Mute: &mute,
		}
		if err := json.NewEncoder(w).Encode(muteCtlMsg); err != nil {
			m.options.Log.Println(err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("500 - unable to encode ControlMute msg"))
		}

	case "PUT":
		var muteCtlMsg ControlMute
		dec := json.NewDecoder(req.Body)

		if err := dec.Decode(&muteCtlMsg); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("400 - invalid JSON"))
			return
		}
		if muteCtlMsg.Mute == nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("400 - invalid Request"))
			return
		}
		if err := dev.SetMute(hal.ScopeOutput, *muteCtlMsg.Mute); err != nil {
			m.options.Log.Println(err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("500 - unable to set mute state"))
			return
		}
		m.updateWsClients()

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
