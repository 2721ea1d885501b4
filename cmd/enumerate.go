// Copyright © 2016 Tobias Wellnitz, DH1TW <Tobias.Wellnitz@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"os"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/dh1tw/audiohal/hal"
	"github.com/dh1tw/audiohal/object"
)

// enumerateCmd represents the enumerate command
var enumerateCmd = &cobra.Command{
	Use:   "enumerate",
	Short: "List all audio devices with their streams and controls",
	Long:  `List all audio devices with their streams and controls`,
	Run: func(cmd *cobra.Command, args []string) {
		enumerate()
	},
}

func init() {
	RootCmd.AddCommand(enumerateCmd)
}

type deviceDump struct {
	ID            uint32
	Name          string
	UID           string
	Manufacturer  string
	Transport     string
	SampleRate    float64
	DefaultInput  bool
	DefaultOutput bool
	Streams       []streamDump
	Controls      []controlDump
}

type streamDump struct {
	ID        uint32
	Direction string
	Active    bool
}

type controlDump struct {
	ID   uint32
	Kind string
}

var tmpl = template.Must(template.New("").Parse(
	`
Detected {{. | len}} audio device(s): {{range .}}

	Name:           {{.Name}} (id {{.ID}}){{if .DefaultInput}} [default input]{{end}}{{if .DefaultOutput}} [default output]{{end}}
	UID:            {{.UID}}
	Manufacturer:   {{.Manufacturer}}
	Transport:      {{.Transport}}
	Sample Rate:    {{.SampleRate}} Hz
	Streams: {{range .Streams}}
		{{.Direction}} stream (id {{.ID}}, active: {{.Active}}){{end}}
	Controls: {{range .Controls}}
		{{.Kind}} (id {{.ID}}){{end}}
{{end}}`,
))

// enumerate lists all audio devices present in the HAL
func enumerate() {

	sys, err := connectSystem()
	if err != nil {
		exit(err)
	}
	defer sys.Close()

	devices, err := sys.Devices()
	if err != nil {
		exit(err)
	}

	var defaultIn, defaultOut hal.ObjectID
	if dev, err := sys.DefaultInputDevice(); err == nil && dev != nil {
		defaultIn = dev.ID()
	}
	if dev, err := sys.DefaultOutputDevice(); err == nil && dev != nil {
		defaultOut = dev.ID()
	}

	dumps := make([]deviceDump, 0, len(devices))
	for _, dev := range devices {
		dumps = append(dumps, dumpDevice(dev, defaultIn, defaultOut))
	}

	if err := tmpl.Execute(os.Stdout, dumps); err != nil {
		exit(err)
	}
}

func dumpDevice(dev *object.Device, defaultIn, defaultOut hal.ObjectID) deviceDump {

	d := deviceDump{
		ID:            uint32(dev.ID()),
		DefaultInput:  dev.ID() == defaultIn,
		DefaultOutput: dev.ID() == defaultOut,
	}

	d.Name, _ = dev.Name()
	d.UID, _ = dev.UID()
	d.Manufacturer, _ = dev.Manufacturer()
	if tt, err := dev.TransportType(); err == nil {
		d.Transport = tt.String()
	}
	d.SampleRate, _ = dev.NominalSampleRate()

	for _, scope := range []hal.FourCC{hal.ScopeInput, hal.ScopeOutput} {
		streams, err := dev.Streams(scope)
		if err != nil {
			continue
		}
		for _, st := range streams {
			sd := streamDump{ID: uint32(st.ID())}
			if dir, err := st.Direction(); err == nil && dir == object.DirectionInput {
				sd.Direction = "input"
			} else {
				sd.Direction = "output"
			}
			sd.Active, _ = st.IsActive()
			d.Streams = append(d.Streams, sd)
		}
	}

	if controls, err := dev.Controls(); err == nil {
		for _, ctl := range controls {
			d.Controls = append(d.Controls, controlDump{
				ID:   uint32(ctl.ID()),
				Kind: ctl.Kind().String(),
			})
		}
	}

	return d
}
