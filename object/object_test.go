package object

import (
	"encoding/binary"
	"io"
	"math"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/dh1tw/audiohal/hal"
	"github.com/dh1tw/audiohal/hal/sim"
)

// rig is a small simulated topology: one output device with a stream,
// a volume control and a mute control.
type rig struct {
	hal    *sim.HAL
	device hal.ObjectID
	stream hal.ObjectID
	volume hal.ObjectID
	mute   hal.ObjectID
}

func newRig() *rig {
	h := sim.New()

	dev := h.AddObject(hal.ClassDevice)
	h.SetString(dev, hal.GlobalAddress(hal.SelectorName), "Test Speakers")
	h.SetString(dev, hal.GlobalAddress(hal.SelectorDeviceUID), "test-speakers:0")
	h.SetUint32(dev, hal.GlobalAddress(hal.SelectorTransportType), uint32(hal.TransportBuiltIn), false)
	h.SetUint32(dev, hal.GlobalAddress(hal.SelectorDeviceIsAlive), 1, false)
	h.SetFloat64(dev, hal.GlobalAddress(hal.SelectorNominalSampleRate), 44100, true)
	h.SetBytes(dev, hal.GlobalAddress(hal.SelectorAvailableRates),
		rateRanges(44100, 48000, 96000), false)
	h.SetUint32s(dev, hal.Address(hal.SelectorPreferredChannels, hal.ScopeOutput, hal.ElementMain),
		[]uint32{1, 2}, false)

	st := h.AddObject(hal.ClassStream)
	h.SetUint32(st, hal.GlobalAddress(hal.SelectorStreamDirection), DirectionOutput, false)
	h.SetUint32(st, hal.GlobalAddress(hal.SelectorStreamIsActive), 1, false)
	h.SetUint32s(dev, hal.Address(hal.SelectorStreams, hal.ScopeOutput, hal.ElementMain),
		[]uint32{uint32(st)}, false)

	vol := h.AddObject(hal.ClassVolumeControl)
	h.SetFloat32(vol, hal.GlobalAddress(hal.SelectorLevelScalar), 0.5, true)
	h.SetTranslation(vol, hal.GlobalAddress(hal.SelectorLevelScalarToDB), scalarToDB)

	mute := h.AddObject(hal.ClassMuteControl)
	h.SetUint32(mute, hal.GlobalAddress(hal.SelectorBooleanValue), 0, true)

	h.SetUint32s(dev, hal.GlobalAddress(hal.SelectorOwnedObjects),
		[]uint32{uint32(st), uint32(vol), uint32(mute)}, false)

	h.SetUint32s(hal.SystemObjectID, hal.GlobalAddress(hal.SelectorDevices),
		[]uint32{uint32(dev)}, false)
	h.SetUint32(hal.SystemObjectID, hal.GlobalAddress(hal.SelectorDefaultOutputDevice),
		uint32(dev), true)
	h.SetUint32(hal.SystemObjectID, hal.GlobalAddress(hal.SelectorDefaultInputDevice),
		uint32(hal.ObjectUnknown), true)

	return &rig{hal: h, device: dev, stream: st, volume: vol, mute: mute}
}

func rateRanges(rates ...float64) []byte {
	b := make([]byte, 16*len(rates))
	for i, r := range rates {
		binary.NativeEndian.PutUint64(b[16*i:], math.Float64bits(r))
		binary.NativeEndian.PutUint64(b[16*i+8:], math.Float64bits(r))
	}
	return b
}

func scalarToDB(in []byte) ([]byte, hal.Status) {
	if len(in) != 4 {
		return nil, hal.StatusBadPropertySize
	}
	scalar := math.Float32frombits(binary.NativeEndian.Uint32(in))
	db := 20 * float32(math.Log10(float64(scalar)))
	out := make([]byte, 4)
	binary.NativeEndian.PutUint32(out, math.Float32bits(db))
	return out, hal.StatusOK
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestBindDispatchesByClass(t *testing.T) {

	r := newRig()

	cases := []struct {
		id   hal.ObjectID
		kind Kind
	}{
		{hal.SystemObjectID, KindSystem},
		{r.device, KindDevice},
		{r.stream, KindStream},
		{r.volume, KindLevelControl},
		{r.mute, KindBooleanControl},
	}

	for _, c := range cases {
		obj, err := Bind(r.hal, c.id, WithLogger(quietLogger()))
		if err != nil {
			t.Fatal(err)
		}
		if obj.Kind() != c.kind {
			t.Fatalf("object %d: expected kind %v, got %v", c.id, c.kind, obj.Kind())
		}
	}
}

func TestHandleEquality(t *testing.T) {

	r := newRig()

	a, err := Bind(r.hal, r.device)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Bind(r.hal, r.device)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Fatal("handles with the same id must be equal")
	}

	s, err := Bind(r.hal, r.stream)
	if err != nil {
		t.Fatal(err)
	}
	if a.Equal(s) {
		t.Fatal("handles with different ids must not be equal")
	}
}

func TestListenerReplaceSemantics(t *testing.T) {

	r := newRig()
	obj, err := Bind(r.hal, r.device)
	if err != nil {
		t.Fatal(err)
	}
	defer obj.Close()

	addr := hal.GlobalAddress(hal.SelectorNominalSampleRate)

	first, second := 0, 0
	if err := obj.WhenPropertyChanges(addr, nil, func([]hal.PropertyAddress) { first++ }); err != nil {
		t.Fatal(err)
	}
	if err := obj.WhenPropertyChanges(addr, nil, func([]hal.PropertyAddress) { second++ }); err != nil {
		t.Fatal(err)
	}

	if n := r.hal.ListenerCount(r.device); n != 1 {
		t.Fatalf("expected exactly one active subscription, got %d", n)
	}

	r.hal.Notify(r.device, addr)

	if first != 0 {
		t.Fatal("the replaced callback must not fire")
	}
	if second != 1 {
		t.Fatalf("the new callback must fire once, fired %d times", second)
	}
}

func TestNilCallbackRemovesListener(t *testing.T) {

	r := newRig()
	obj, err := Bind(r.hal, r.device)
	if err != nil {
		t.Fatal(err)
	}
	defer obj.Close()

	addr := hal.GlobalAddress(hal.SelectorNominalSampleRate)

	fired := false
	if err := obj.WhenPropertyChanges(addr, nil, func([]hal.PropertyAddress) { fired = true }); err != nil {
		t.Fatal(err)
	}
	if err := obj.WhenPropertyChanges(addr, nil, nil); err != nil {
		t.Fatal(err)
	}

	r.hal.Notify(r.device, addr)

	if fired {
		t.Fatal("a removed callback must not fire")
	}
	if n := r.hal.ListenerCount(r.device); n != 0 {
		t.Fatalf("expected no subscriptions, got %d", n)
	}
}

func TestFailedRegistrationLeavesNoEntry(t *testing.T) {

	r := newRig()
	obj, err := Bind(r.hal, r.device)
	if err != nil {
		t.Fatal(err)
	}
	defer obj.Close()

	addr := hal.GlobalAddress(hal.SelectorNominalSampleRate)

	r.hal.FailListenerAdd(hal.StatusIllegalOperation)
	if err := obj.WhenPropertyChanges(addr, nil, func([]hal.PropertyAddress) {}); err == nil {
		t.Fatal("expected registration to fail")
	}
	r.hal.FailListenerAdd(hal.StatusOK)

	// no stale entry may remain: a fresh registration must work and
	// removing all must not trip over leftovers
	if err := obj.WhenPropertyChanges(addr, nil, func([]hal.PropertyAddress) {}); err != nil {
		t.Fatal(err)
	}
	if n := r.hal.ListenerCount(r.device); n != 1 {
		t.Fatalf("expected one subscription, got %d", n)
	}
}

func TestFailedReplacementKeepsOldListener(t *testing.T) {

	r := newRig()
	obj, err := Bind(r.hal, r.device)
	if err != nil {
		t.Fatal(err)
	}
	defer obj.Close()

	addr := hal.GlobalAddress(hal.SelectorNominalSampleRate)

	first, second := 0, 0
	if err := obj.WhenPropertyChanges(addr, nil, func([]hal.PropertyAddress) { first++ }); err != nil {
		t.Fatal(err)
	}

	r.hal.FailListenerRemoval(hal.StatusIllegalOperation)
	if err := obj.WhenPropertyChanges(addr, nil, func([]hal.PropertyAddress) { second++ }); err == nil {
		t.Fatal("expected the replacement to fail")
	}
	r.hal.FailListenerRemoval(hal.StatusOK)

	// the old subscription survived the failed swap, so its record must
	// survive too: the callback still fires and a later replacement can
	// still unregister it
	r.hal.Notify(r.device, addr)
	if first != 1 {
		t.Fatalf("the old callback must keep firing, fired %d times", first)
	}

	if err := obj.WhenPropertyChanges(addr, nil, func([]hal.PropertyAddress) { second++ }); err != nil {
		t.Fatal(err)
	}
	if n := r.hal.ListenerCount(r.device); n != 1 {
		t.Fatalf("expected exactly one active subscription, got %d", n)
	}

	r.hal.Notify(r.device, addr)
	if first != 1 || second != 1 {
		t.Fatalf("expected only the new callback to fire, got first=%d second=%d", first, second)
	}
}

func TestRemoveAllListenersIdempotent(t *testing.T) {

	r := newRig()
	obj, err := Bind(r.hal, r.device, WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}

	addrs := []hal.PropertyAddress{
		hal.GlobalAddress(hal.SelectorNominalSampleRate),
		hal.GlobalAddress(hal.SelectorDeviceIsAlive),
	}
	for _, addr := range addrs {
		if err := obj.WhenPropertyChanges(addr, nil, func([]hal.PropertyAddress) {}); err != nil {
			t.Fatal(err)
		}
	}

	obj.RemoveAllListeners()
	if n := r.hal.ListenerCount(r.device); n != 0 {
		t.Fatalf("expected no subscriptions, got %d", n)
	}

	// second sweep must be a silent no-op
	obj.RemoveAllListeners()
}

func TestTeardownCompletesDespiteFailures(t *testing.T) {

	r := newRig()
	obj, err := Bind(r.hal, r.device, WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}

	addr := hal.GlobalAddress(hal.SelectorNominalSampleRate)
	if err := obj.WhenPropertyChanges(addr, nil, func([]hal.PropertyAddress) {}); err != nil {
		t.Fatal(err)
	}

	r.hal.FailListenerRemoval(hal.StatusIllegalOperation)
	obj.Close()
	r.hal.FailListenerRemoval(hal.StatusOK)

	// the registry is cleared even though the HAL refused; a second
	// Close is a no-op
	obj.Close()
}

func TestDispatcherReceivesCallback(t *testing.T) {

	r := newRig()
	obj, err := Bind(r.hal, r.device)
	if err != nil {
		t.Fatal(err)
	}
	defer obj.Close()

	addr := hal.GlobalAddress(hal.SelectorNominalSampleRate)

	var wg sync.WaitGroup
	dispatched := false
	dispatcher := func(f func()) {
		dispatched = true
		f()
	}

	fired := false
	wg.Add(1)
	if err := obj.WhenPropertyChanges(addr, dispatcher, func(changed []hal.PropertyAddress) {
		defer wg.Done()
		if len(changed) != 1 || changed[0] != addr {
			t.Errorf("expected changed address %v, got %v", addr, changed)
		}
		fired = true
	}); err != nil {
		t.Fatal(err)
	}

	r.hal.Notify(r.device, addr)
	wg.Wait()

	if !dispatched || !fired {
		t.Fatal("callback must run through the dispatcher")
	}
}
