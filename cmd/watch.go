package cmd

import (
	"fmt"

	"github.com/cskr/pubsub"
	"github.com/spf13/cobra"

	"github.com/dh1tw/audiohal/events"
	"github.com/dh1tw/audiohal/monitor"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print property change notifications",
	Long: `Print property change notifications

Watches the device list, the default devices and every property of
every device, and prints a line for each change until interrupted.
`,
	Run: watchProperties,
}

func init() {
	RootCmd.AddCommand(watchCmd)
}

func watchProperties(cmd *cobra.Command, args []string) {

	sys, err := connectSystem()
	if err != nil {
		exit(err)
	}
	defer sys.Close()

	evPS := pubsub.New(100)

	watcher, err := monitor.NewWatcher(sys, evPS, nil)
	if err != nil {
		exit(err)
	}
	defer watcher.Close()

	go events.WatchSystemEvents(evPS)

	propertyCh := evPS.Sub(events.PropertyChanged)
	deviceListCh := evPS.Sub(events.DeviceListChanged)
	defaultInCh := evPS.Sub(events.DefaultInChanged)
	defaultOutCh := evPS.Sub(events.DefaultOutChanged)
	osExitCh := evPS.Sub(events.OsExit)

	fmt.Println("watching for changes, press ctrl-c to stop")

	for {
		select {
		case ev := <-propertyCh:
			change := ev.(events.PropertyChange)
			for _, addr := range change.Addresses {
				fmt.Printf("object %d: %v changed\n", change.ID, addr)
			}
		case <-deviceListCh:
			fmt.Println("device list changed")
		case <-defaultInCh:
			fmt.Println("default input device changed")
		case <-defaultOutCh:
			fmt.Println("default output device changed")
		case <-osExitCh:
			return
		}
	}
}
