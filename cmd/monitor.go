package cmd

import (
	"github.com/cskr/pubsub"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dh1tw/audiohal/monitor"
)

// monitorCmd represents the monitor command
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Web monitor for the audio devices of this machine",
	Long: `Web monitor for the audio devices of this machine

Serves a web page showing all devices with their volume and mute
controls, live property change notifications over a websocket and a
small REST API.
`,
	Run: runMonitor,
}

func init() {
	RootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().StringP("host", "w", "localhost", "Hostname / IP address the monitor listens on")
	monitorCmd.Flags().IntP("port", "k", 8090, "Port the monitor listens on")
	monitorCmd.Flags().Int("event-log-size", 50, "Number of recent events kept for the events endpoint")
}

func runMonitor(cmd *cobra.Command, args []string) {

	viper.BindPFlag("monitor.host", cmd.Flags().Lookup("host"))
	viper.BindPFlag("monitor.port", cmd.Flags().Lookup("port"))
	viper.BindPFlag("monitor.event-log-size", cmd.Flags().Lookup("event-log-size"))

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

	m, err := monitor.New(sys,
		monitor.Host(viper.GetString("monitor.host")),
		monitor.Port(viper.GetInt("monitor.port")),
		monitor.EventLogSize(viper.GetInt("monitor.event-log-size")),
		monitor.EventHub(evPS),
	)
	if err != nil {
		exit(err)
	}
	defer m.Close()

	if err := m.ListenAndServe(); err != nil {
		exit(err)
	}
}
