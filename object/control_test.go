package object

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/dh1tw/audiohal/hal"
	"github.com/dh1tw/audiohal/hal/sim"
)

func bindLevelControl(t *testing.T, r *rig) *LevelControl {
	t.Helper()
	obj, err := Bind(r.hal, r.volume)
	if err != nil {
		t.Fatal(err)
	}
	lc, ok := obj.AsLevelControl()
	if !ok {
		t.Fatal("expected a level control wrapper")
	}
	return lc
}

func TestLevelControlScalar(t *testing.T) {

	r := newRig()
	lc := bindLevelControl(t, r)
	defer lc.Close()

	v, err := lc.ScalarValue()
	if err != nil {
		t.Fatal(err)
	}
	if v != 0.5 {
		t.Fatalf("expected scalar 0.5, got %v", v)
	}

	if err := lc.SetScalarValue(0.75); err != nil {
		t.Fatal(err)
	}
	v, err = lc.ScalarValue()
	if err != nil {
		t.Fatal(err)
	}
	if v != 0.75 {
		t.Fatalf("expected scalar 0.75 after set, got %v", v)
	}
}

func TestConvertScalarToDecibels(t *testing.T) {

	r := newRig()
	lc := bindLevelControl(t, r)
	defer lc.Close()

	db, err := lc.ConvertScalarToDecibels(0.5)
	if err != nil {
		t.Fatal(err)
	}

	expected := 20 * float32(math.Log10(0.5))
	if math.Abs(float64(db-expected)) > 1e-4 {
		t.Fatalf("expected %v dB, got %v", expected, db)
	}
}

func TestBooleanControl(t *testing.T) {

	r := newRig()
	obj, err := Bind(r.hal, r.mute)
	if err != nil {
		t.Fatal(err)
	}
	bc, ok := obj.AsBooleanControl()
	if !ok {
		t.Fatal("expected a boolean control wrapper")
	}
	defer bc.Close()

	on, err := bc.Value()
	if err != nil {
		t.Fatal(err)
	}
	if on {
		t.Fatal("expected the control to start out off")
	}

	if err := bc.SetValue(true); err != nil {
		t.Fatal(err)
	}
	on, err = bc.Value()
	if err != nil {
		t.Fatal(err)
	}
	if !on {
		t.Fatal("expected the control to be on after set")
	}
}

func TestSelectorControl(t *testing.T) {

	r := newRig()

	items := map[uint32]string{
		1: "Internal Speakers",
		2: "Headphones",
	}

	sc := r.hal.AddObject(hal.ClassDataSourceCtl)
	r.hal.SetUint32(sc, hal.GlobalAddress(hal.SelectorSelectorCurrent), 1, true)
	r.hal.SetUint32s(sc, hal.GlobalAddress(hal.SelectorSelectorAvailable), []uint32{1, 2}, false)
	r.hal.SetQualified(sc, hal.GlobalAddress(hal.SelectorSelectorItemName),
		func(q hal.Qualifier) ([]byte, hal.Status) {
			if len(q) != 4 {
				return nil, hal.StatusBadPropertySize
			}
			name, ok := items[binary.NativeEndian.Uint32(q)]
			if !ok {
				return nil, hal.StatusUnknownProperty
			}
			return sim.RefBytes(r.hal.NewString(name)), hal.StatusOK
		})

	obj, err := Bind(r.hal, sc)
	if err != nil {
		t.Fatal(err)
	}
	ctl, ok := obj.AsSelectorControl()
	if !ok {
		t.Fatal("expected a selector control wrapper")
	}
	defer ctl.Close()

	current, err := ctl.CurrentItem()
	if err != nil {
		t.Fatal(err)
	}
	if current != 1 {
		t.Fatalf("expected item 1, got %d", current)
	}

	avail, err := ctl.AvailableItems()
	if err != nil {
		t.Fatal(err)
	}
	if len(avail) != 2 {
		t.Fatalf("expected 2 items, got %d", len(avail))
	}

	name, err := ctl.ItemName(2)
	if err != nil {
		t.Fatal(err)
	}
	if name != "Headphones" {
		t.Fatalf("unexpected item name %q", name)
	}

	if err := ctl.SetCurrentItem(2); err != nil {
		t.Fatal(err)
	}
	current, err = ctl.CurrentItem()
	if err != nil {
		t.Fatal(err)
	}
	if current != 2 {
		t.Fatalf("expected item 2 after set, got %d", current)
	}

	// the name refs handed out above must all have been released
	if n := r.hal.LiveRefs(); n != 0 {
		t.Fatalf("expected no live refs, got %d", n)
	}
}

func TestFaderRoundTrip(t *testing.T) {

	for _, scalar := range []float32{0, 0.1, 0.25, 0.5, 0.75, 1} {
		pos := FaderPosition(scalar)
		if pos < 0 || pos > 1 {
			t.Fatalf("fader position for %v out of range: %v", scalar, pos)
		}
		back := ScalarFromFader(pos)
		if math.Abs(float64(back-scalar)) > 1e-3 {
			t.Fatalf("fader round trip for %v came back as %v", scalar, back)
		}
	}
}
