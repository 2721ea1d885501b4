package monitor

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/cskr/pubsub"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/dh1tw/audiohal/events"
	"github.com/dh1tw/audiohal/hal"
	"github.com/dh1tw/audiohal/hal/sim"
	"github.com/dh1tw/audiohal/object"
)

func testMonitor(t *testing.T) (*Monitor, *sim.HAL, hal.ObjectID) {
	t.Helper()

	h := sim.New()

	dev := h.AddObject(hal.ClassDevice)
	h.SetString(dev, hal.GlobalAddress(hal.SelectorName), "Test Speakers")
	h.SetString(dev, hal.GlobalAddress(hal.SelectorDeviceUID), "test-speakers:0")
	h.SetFloat64(dev, hal.GlobalAddress(hal.SelectorNominalSampleRate), 48000, true)
	h.SetFloat32(dev, hal.Address(hal.SelectorVolumeScalar, hal.ScopeOutput, hal.ElementMain), 1, true)
	h.SetUint32(dev, hal.Address(hal.SelectorMute, hal.ScopeOutput, hal.ElementMain), 0, true)

	h.SetUint32s(hal.SystemObjectID, hal.GlobalAddress(hal.SelectorDevices),
		[]uint32{uint32(dev)}, false)
	h.SetUint32(hal.SystemObjectID, hal.GlobalAddress(hal.SelectorDefaultOutputDevice),
		uint32(dev), true)
	h.SetUint32(hal.SystemObjectID, hal.GlobalAddress(hal.SelectorDefaultInputDevice),
		uint32(hal.ObjectUnknown), true)

	log := logrus.New()
	log.SetOutput(io.Discard)

	sys, err := object.NewSystem(h, object.WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}

	m, err := New(sys, EventHub(pubsub.New(10)), Logger(log), EventLogSize(5))
	if err != nil {
		t.Fatal(err)
	}
	return m, h, dev
}

func TestDevicesEndpoint(t *testing.T) {

	m, _, dev := testMonitor(t)
	srv := httptest.NewServer(m.router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1.0/devices")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var state State
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatal(err)
	}

	if len(state.Devices) != 1 {
		t.Fatalf("expected 1 device, got %d", len(state.Devices))
	}
	ds := state.Devices[0]
	if ds.ID != uint32(dev) {
		t.Fatalf("expected device id %d, got %d", dev, ds.ID)
	}
	if ds.Name != "Test Speakers" {
		t.Fatalf("unexpected device name %q", ds.Name)
	}
	if ds.SampleRate == nil || *ds.SampleRate != 48000 {
		t.Fatalf("unexpected sample rate %v", ds.SampleRate)
	}
	if ds.Volume == nil || *ds.Volume != 100 {
		t.Fatalf("unexpected volume %v", ds.Volume)
	}
	if state.DefaultOutput == nil || *state.DefaultOutput != uint32(dev) {
		t.Fatalf("unexpected default output %v", state.DefaultOutput)
	}
	if state.DefaultInput != nil {
		t.Fatalf("expected no default input, got %v", *state.DefaultInput)
	}
}

func TestVolumeEndpoint(t *testing.T) {

	m, _, dev := testMonitor(t)
	srv := httptest.NewServer(m.router)
	defer srv.Close()

	url := srv.URL + "/api/v1.0/device/" + idString(uint32(dev)) + "/volume"

	vol := 50
	body, _ := json.Marshal(ControlVolume{Volume: &vol})
	req, err := http.NewRequest("PUT", url, bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	resp, err = http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var volCtlMsg ControlVolume
	if err := json.NewDecoder(resp.Body).Decode(&volCtlMsg); err != nil {
		t.Fatal(err)
	}
	if volCtlMsg.Volume == nil {
		t.Fatal("expected a volume in the response")
	}
	// the fader position survives the scalar round trip up to integer
	// percent resolution
	if *volCtlMsg.Volume < 49 || *volCtlMsg.Volume > 51 {
		t.Fatalf("expected volume around 50, got %d", *volCtlMsg.Volume)
	}

	// a value out of range is rejected
	vol = 150
	body, _ = json.Marshal(ControlVolume{Volume: &vol})
	req, err = http.NewRequest("PUT", url, bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.StatusCode)
	}
}

func TestMuteEndpoint(t *testing.T) {

	m, _, dev := testMonitor(t)
	srv := httptest.NewServer(m.router)
	defer srv.Close()

	url := srv.URL + "/api/v1.0/device/" + idString(uint32(dev)) + "/mute"

	mute := true
	body, _ := json.Marshal(ControlMute{Mute: &mute})
	req, err := http.NewRequest("PUT", url, bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	resp, err = http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var muteCtlMsg ControlMute
	if err := json.NewDecoder(resp.Body).Decode(&muteCtlMsg); err != nil {
		t.Fatal(err)
	}
	if muteCtlMsg.Mute == nil || !*muteCtlMsg.Mute {
		t.Fatal("expected the device to be muted")
	}
}

func TestClientReadReturnsAfterClose(t *testing.T) {

	m, _, _ := testMonitor(t)

	serverConn := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Error(err)
			return
		}
		serverConn <- conn
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	client := &wsClient{
		ws:           conn,
		send:         make(chan []byte, 1),
		removeClient: m.removeWsClient,
		hubClosed:    m.closed,
		handleMsg:    m.handleClientMsg,
	}

	// the hub loop is gone; nobody receives on removeWsClient anymore
	m.Close()

	done := make(chan struct{})
	go func() {
		client.read()
		close(done)
	}()

	(<-serverConn).Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("the read goroutine must return once the monitor is closed")
	}
}

func TestWatcherPublishesPropertyChanges(t *testing.T) {

	m, h, dev := testMonitor(t)

	watcher, err := NewWatcher(m.sys, m.options.Events, m.options.Log)
	if err != nil {
		t.Fatal(err)
	}
	defer watcher.Close()

	changes := m.options.Events.Sub(events.PropertyChanged)
	defer m.options.Events.Unsub(changes, events.PropertyChanged)

	addr := hal.GlobalAddress(hal.SelectorNominalSampleRate)
	h.Notify(dev, addr)

	select {
	case ev := <-changes:
		change := ev.(events.PropertyChange)
		if change.ID != dev {
			t.Fatalf("expected object %d, got %d", dev, change.ID)
		}
		if len(change.Addresses) != 1 || change.Addresses[0] != addr {
			t.Fatalf("unexpected changed addresses %v", change.Addresses)
		}
	case <-time.After(time.Second):
		t.Fatal("no property change event received")
	}
}

func TestEventRing(t *testing.T) {

	m, _, dev := testMonitor(t)

	// fill the ring beyond its capacity of 5
	for i := 0; i < 8; i++ {
		m.recordEvent(events.PropertyChange{
			ID: dev,
			Addresses: []hal.PropertyAddress{
				hal.GlobalAddress(hal.SelectorNominalSampleRate),
			},
		})
	}

	evs := m.recentEvents()
	if len(evs) != 5 {
		t.Fatalf("expected the ring to cap at 5 events, got %d", len(evs))
	}
}

func idString(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}
