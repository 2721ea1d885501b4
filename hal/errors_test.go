package hal

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewErrorClassifiesUnknownProperty(t *testing.T) {

	err := NewError("get", 42, GlobalAddress(SelectorName), StatusUnknownProperty)
	if err.Kind != PropertyUnavailable {
		t.Fatalf("expected PropertyUnavailable, got %v", err.Kind)
	}
	if !IsUnavailable(err) {
		t.Fatal("IsUnavailable must recognize the wrapped kind")
	}
}

func TestNewErrorDefaultOperationFailed(t *testing.T) {

	err := NewError("set", 42, GlobalAddress(SelectorName), StatusBadObject)
	if err.Kind != OperationFailed {
		t.Fatalf("expected OperationFailed, got %v", err.Kind)
	}
}

func TestErrorMessageCarriesStatusAndAddress(t *testing.T) {

	err := NewError("get", 7, GlobalAddress(SelectorDeviceUID), StatusUnknownProperty)
	msg := err.Error()

	if !strings.Contains(msg, "'who?'") {
		t.Fatalf("error message must contain the four character status, got %q", msg)
	}
	if !strings.Contains(msg, "'uid '") {
		t.Fatalf("error message must contain the selector, got %q", msg)
	}
}

func TestIsUnavailableSeesThroughWrapping(t *testing.T) {

	inner := NewError("get", 7, GlobalAddress(SelectorName), StatusUnknownProperty)
	wrapped := fmt.Errorf("reading device name: %w", inner)

	if !IsUnavailable(wrapped) {
		t.Fatal("wrapped errors must still report their kind")
	}
	if IsNotSettable(wrapped) {
		t.Fatal("wrong kind reported for wrapped error")
	}
}
