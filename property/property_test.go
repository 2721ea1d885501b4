package property

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/dh1tw/audiohal/hal"
	"github.com/dh1tw/audiohal/hal/sim"
)

func TestScalarRoundTrip(t *testing.T) {

	h := sim.New()
	dev := h.AddObject(hal.ClassDevice)
	addr := hal.GlobalAddress(hal.SelectorNominalSampleRate)
	h.SetFloat64(dev, addr, 44100, true)

	if err := SetScalar(h, dev, addr, nil, float64(48000)); err != nil {
		t.Fatal(err)
	}

	rate, err := Scalar[float64](h, dev, addr, nil)
	if err != nil {
		t.Fatal(err)
	}
	if rate != 48000 {
		t.Fatalf("expected 48000, got %f", rate)
	}
}

func TestScalarUint32RoundTrip(t *testing.T) {

	h := sim.New()
	dev := h.AddObject(hal.ClassDevice)
	addr := hal.Address(hal.SelectorMute, hal.ScopeOutput, hal.ElementMain)
	h.SetUint32(dev, addr, 0, true)

	if err := SetScalar(h, dev, addr, nil, uint32(1)); err != nil {
		t.Fatal(err)
	}

	muted, err := Scalar[uint32](h, dev, addr, nil)
	if err != nil {
		t.Fatal(err)
	}
	if muted != 1 {
		t.Fatalf("expected 1, got %d", muted)
	}
}

func TestArrayRoundTrip(t *testing.T) {

	h := sim.New()
	dev := h.AddObject(hal.ClassDevice)
	addr := hal.GlobalAddress(hal.SelectorPreferredChannels)
	h.SetUint32s(dev, addr, []uint32{0, 0, 0, 0}, true)

	want := []uint32{3, 1, 4, 1}
	if err := SetArray(h, dev, addr, nil, want); err != nil {
		t.Fatal(err)
	}

	got, err := Array[uint32](h, dev, addr, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d elements, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("element %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestArraySizeMismatch(t *testing.T) {

	h := sim.New()
	dev := h.AddObject(hal.ClassDevice)
	addr := hal.GlobalAddress(hal.SelectorAvailableRates)
	// 6 bytes cannot hold a whole number of uint32 elements
	h.SetBytes(dev, addr, make([]byte, 6), false)

	if _, err := Array[uint32](h, dev, addr, nil); !hal.IsSizeMismatch(err) {
		t.Fatalf("expected a size mismatch, got %v", err)
	}
}

func TestSizeQueryOnMissingProperty(t *testing.T) {

	h := sim.New()
	dev := h.AddObject(hal.ClassDevice)

	size, err := DataSize(h, dev, hal.GlobalAddress(hal.SelectorHogMode), nil)
	if !hal.IsUnavailable(err) {
		t.Fatalf("expected property unavailable, got %v", err)
	}
	if size != 0 {
		t.Fatalf("no partial byte count may be returned, got %d", size)
	}
}

func TestWriteToReadOnlyFailsBeforeOS(t *testing.T) {

	h := sim.New()
	dev := h.AddObject(hal.ClassDevice)
	addr := hal.GlobalAddress(hal.SelectorLatency)
	h.SetUint32(dev, addr, 128, false)

	// a congruent listener would fire if bytes reached the store
	fired := false
	h.AddPropertyListener(dev, addr, func(hal.ObjectID, []hal.PropertyAddress) {
		fired = true
	})

	err := SetScalar(h, dev, addr, nil, uint32(256))
	if !hal.IsNotSettable(err) {
		t.Fatalf("expected not settable, got %v", err)
	}
	if fired {
		t.Fatal("no bytes may be transmitted for a rejected write")
	}

	latency, err := Scalar[uint32](h, dev, addr, nil)
	if err != nil {
		t.Fatal(err)
	}
	if latency != 128 {
		t.Fatalf("read-only value must be unchanged, got %d", latency)
	}
}

func TestTranslateScalarToDecibels(t *testing.T) {

	h := sim.New()
	dev := h.AddObject(hal.ClassVolumeControl)
	addr := hal.GlobalAddress(hal.SelectorLevelScalarToDB)
	h.SetTranslation(dev, addr, func(in []byte) ([]byte, hal.Status) {
		if len(in) != 4 {
			return nil, hal.StatusBadPropertySize
		}
		scalar := math.Float32frombits(binary.NativeEndian.Uint32(in))
		db := 20 * float32(math.Log10(float64(scalar)))
		out := make([]byte, 4)
		binary.NativeEndian.PutUint32(out, math.Float32bits(db))
		return out, hal.StatusOK
	})

	db, err := Translate[float32, float32](h, dev, addr, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if math.IsNaN(float64(db)) || math.IsInf(float64(db), 0) {
		t.Fatalf("conversion must produce a finite value, got %f", db)
	}

	again, err := Translate[float32, float32](h, dev, addr, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if db != again {
		t.Fatalf("conversion must be deterministic: %f vs %f", db, again)
	}
}

func TestStringReleasesItsRef(t *testing.T) {

	h := sim.New()
	dev := h.AddObject(hal.ClassDevice)
	addr := hal.GlobalAddress(hal.SelectorName)
	h.SetString(dev, addr, "MacBook Pro Speakers")

	name, err := String(h, dev, addr, nil)
	if err != nil {
		t.Fatal(err)
	}
	if name != "MacBook Pro Speakers" {
		t.Fatalf("expected device name, got %q", name)
	}
	if h.LiveRefs() != 0 {
		t.Fatalf("the string ref must be released, %d still live", h.LiveRefs())
	}
}

func TestRetainedReleaseIsIdempotent(t *testing.T) {

	h := sim.New()
	dev := h.AddObject(hal.ClassDevice)
	addr := hal.GlobalAddress(hal.SelectorDeviceUID)
	h.SetString(dev, addr, "AppleHDAEngineOutput:1B,0,1,2:0")

	r, err := RetainedRef(h, dev, addr, nil)
	if err != nil {
		t.Fatal(err)
	}

	r.Release()
	r.Release()

	if h.LiveRefs() != 0 {
		t.Fatalf("expected no live refs, got %d", h.LiveRefs())
	}
}

func TestQualifiedStringRead(t *testing.T) {

	h := sim.New()
	ctl := h.AddObject(hal.ClassSelectorControl)
	addr := hal.GlobalAddress(hal.SelectorSelectorItemName)

	names := map[uint32]string{1: "Internal Speakers", 2: "Headphones"}
	h.SetQualified(ctl, addr, func(q hal.Qualifier) ([]byte, hal.Status) {
		if len(q) != 4 {
			return nil, hal.StatusBadPropertySize
		}
		name, ok := names[binary.NativeEndian.Uint32(q)]
		if !ok {
			return nil, hal.StatusUnknownProperty
		}
		return sim.RefBytes(h.NewString(name)), hal.StatusOK
	})

	q := make([]byte, 4)
	binary.NativeEndian.PutUint32(q, 2)

	name, err := String(h, ctl, addr, q)
	if err != nil {
		t.Fatal(err)
	}
	if name != "Headphones" {
		t.Fatalf("expected Headphones, got %q", name)
	}
	if h.LiveRefs() != 0 {
		t.Fatalf("qualified string ref must be released, %d live", h.LiveRefs())
	}

	// an unknown item id surfaces as property unavailable
	binary.NativeEndian.PutUint32(q, 9)
	if _, err := String(h, ctl, addr, q); !hal.IsUnavailable(err) {
		t.Fatalf("expected property unavailable, got %v", err)
	}
}
