package cmd

import (
	"github.com/spf13/viper"

	"github.com/dh1tw/audiohal/hal"
	"github.com/dh1tw/audiohal/hal/coreaudio"
	"github.com/dh1tw/audiohal/hal/sim"
	"github.com/dh1tw/audiohal/object"
)

// connectSystem binds the system object of the selected HAL backend:
// the OS audio HAL, or the simulated one with --simulated.
func connectSystem() (*object.System, error) {

	var api hal.API
	var err error

	if viper.GetBool("hal.simulated") {
		api = demoHAL()
	} else {
		api, err = coreaudio.New()
		if err != nil {
			return nil, err
		}
	}

	return object.NewSystem(api)
}

// demoHAL builds a small simulated topology: a builtin output device
// and a USB microphone, both settable, so every subcommand has
// something to work on without OS support.
func demoHAL() *sim.HAL {

	h := sim.New()

	speakers := h.AddObject(hal.ClassDevice)
	h.SetString(speakers, hal.GlobalAddress(hal.SelectorName), "Built-in Output")
	h.SetString(speakers, hal.GlobalAddress(hal.SelectorManufacturer), "audiohal")
	h.SetString(speakers, hal.GlobalAddress(hal.SelectorDeviceUID), "builtin-output:0")
	h.SetUint32(speakers, hal.GlobalAddress(hal.SelectorTransportType), uint32(hal.TransportBuiltIn), false)
	h.SetUint32(speakers, hal.GlobalAddress(hal.SelectorDeviceIsAlive), 1, false)
	h.SetFloat64(speakers, hal.GlobalAddress(hal.SelectorNominalSampleRate), 44100, true)
	h.SetFloat32(speakers, hal.Address(hal.SelectorVolumeScalar, hal.ScopeOutput, hal.ElementMain), 0.65, true)
	h.SetUint32(speakers, hal.Address(hal.SelectorMute, hal.ScopeOutput, hal.ElementMain), 0, true)

	speakerStream := h.AddObject(hal.ClassStream)
	h.SetUint32(speakerStream, hal.GlobalAddress(hal.SelectorStreamDirection), 0, false)
	h.SetUint32(speakerStream, hal.GlobalAddress(hal.SelectorStreamIsActive), 1, false)
	h.SetUint32s(speakers, hal.Address(hal.SelectorStreams, hal.ScopeOutput, hal.ElementMain),
		[]uint32{uint32(speakerStream)}, false)
	h.SetUint32s(speakers, hal.GlobalAddress(hal.SelectorOwnedObjects),
		[]uint32{uint32(speakerStream)}, false)

	mic := h.AddObject(hal.ClassDevice)
	h.SetString(mic, hal.GlobalAddress(hal.SelectorName), "USB Microphone")
	h.SetString(mic, hal.GlobalAddress(hal.SelectorManufacturer), "audiohal")
	h.SetString(mic, hal.GlobalAddress(hal.SelectorDeviceUID), "usb-mic:0")
	h.SetUint32(mic, hal.GlobalAddress(hal.SelectorTransportType), uint32(hal.TransportUSB), false)
	h.SetUint32(mic, hal.GlobalAddress(hal.SelectorDeviceIsAlive), 1, false)
	h.SetFloat64(mic, hal.GlobalAddress(hal.SelectorNominalSampleRate), 48000, true)

	micStream := h.AddObject(hal.ClassStream)
	h.SetUint32(micStream, hal.GlobalAddress(hal.SelectorStreamDirection), 1, false)
	h.SetUint32(micStream, hal.GlobalAddress(hal.SelectorStreamIsActive), 1, false)
	h.SetUint32s(mic, hal.Address(hal.SelectorStreams, hal.ScopeInput, hal.ElementMain),
		[]uint32{uint32(micStream)}, false)
	h.SetUint32s(mic, hal.GlobalAddress(hal.SelectorOwnedObjects),
		[]uint32{uint32(micStream)}, false)

	h.SetUint32s(hal.SystemObjectID, hal.GlobalAddress(hal.SelectorDevices),
		[]uint32{uint32(speakers), uint32(mic)}, false)
	h.SetUint32(hal.SystemObjectID, hal.GlobalAddress(hal.SelectorDefaultOutputDevice),
		uint32(speakers), true)
	h.SetUint32(hal.SystemObjectID, hal.GlobalAddress(hal.SelectorDefaultInputDevice),
		uint32(mic), true)

	return h
}
