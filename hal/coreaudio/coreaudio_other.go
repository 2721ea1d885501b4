//go:build !darwin

// Package coreaudio binds the hal.API to the macOS CoreAudio hardware
// abstraction layer. On other platforms New always fails; use hal/sim
// instead.
package coreaudio

import (
	"fmt"

	"github.com/dh1tw/audiohal/hal"
)

// New reports that no CoreAudio HAL is available on this platform.
func New() (hal.API, error) {
	return nil, fmt.Errorf("the CoreAudio HAL is only available on macOS")
}
