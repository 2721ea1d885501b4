package cmd

import (
	"fmt"
	"strings"

	"github.com/cskr/pubsub"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dh1tw/audiohal/events"
	"github.com/dh1tw/audiohal/remote"
)

// natsClientCmd represents the nats command
var natsClientCmd = &cobra.Command{
	Use:   "nats",
	Short: "NATS Client",
	Long: `NATS Client mirroring the audio devices of a remote audiohal
server

The client enumerates the server's devices, subscribes to their
property changes and prints each change notification as it arrives.
You need a NATS broker up and running to which both sides can connect.
`,
	Run: natsAudioClient,
}

func init() {
	clientCmd.AddCommand(natsClientCmd)
	natsClientCmd.Flags().StringP("broker-url", "u", "localhost", "Broker URL")
	natsClientCmd.Flags().IntP("broker-port", "p", 4222, "Broker Port")
	natsClientCmd.Flags().StringP("password", "P", "", "NATS Password")
	natsClientCmd.Flags().StringP("username", "U", "", "NATS Username")
	natsClientCmd.Flags().StringP("server-name", "Y", "", "name of the server to connect to")
}

func natsAudioClient(cmd *cobra.Command, args []string) {

	// bind the pflags to viper settings
	viper.BindPFlag("nats.broker-url", cmd.Flags().Lookup("broker-url"))
	viper.BindPFlag("nats.broker-port", cmd.Flags().Lookup("broker-port"))
	viper.BindPFlag("nats.password", cmd.Flags().Lookup("password"))
	viper.BindPFlag("nats.username", cmd.Flags().Lookup("username"))
	viper.BindPFlag("server.name", cmd.Flags().Lookup("server-name"))

	serverName := viper.GetString("server.name")
	if len(serverName) == 0 {
		exit(fmt.Errorf("server name missing"))
	}
	if strings.ContainsAny(serverName, " ._\n\r") {
		exit(fmt.Errorf("forbidden character in server name '%s'", serverName))
	}

	natsAddr := fmt.Sprintf("nats://%s:%v",
		viper.GetString("nats.broker-url"), viper.GetInt("nats.broker-port"))

	nopts := nats.GetDefaultOptions()
	nopts.Servers = []string{natsAddr}
	nopts.User = viper.GetString("nats.username")
	nopts.Password = viper.GetString("nats.password")
	nopts.Name = "audiohal.client." + serverName

	nc, err := nopts.Connect()
	if err != nil {
		exit(fmt.Errorf("unable to connect to broker: %v", err))
	}
	defer nc.Close()

	// doneCh is closed by the proxy when the server disappears
	doneCh := make(chan struct{})
	proxy, err := remote.NewProxy(serverName, nc, doneCh)
	if err != nil {
		exit(fmt.Errorf("unable to connect to server '%s': %v", serverName, err))
	}
	defer proxy.Close()

	proxy.SetNotifyCb(func(n remote.ChangeNotification) {
		for _, addr := range n.Addresses {
			fmt.Printf("object %d: '%s' ('%s', element %d) changed\n",
				n.Object, addr.Selector, addr.Scope, addr.Element)
		}
	})

	devices := proxy.Devices()
	fmt.Printf("server '%s' serves %d audio device(s):\n", serverName, len(devices))
	for _, dev := range devices {
		marker := ""
		if in := proxy.DefaultInput(); in != nil && *in == dev.ID {
			marker += " [default input]"
		}
		if out := proxy.DefaultOutput(); out != nil && *out == dev.ID {
			marker += " [default output]"
		}
		fmt.Printf("  %s (id %d)%s\n", dev.Name, dev.ID, marker)

		// watch everything the device reports
		wildcard := remote.Address{Selector: "****", Scope: "****", Element: 0xFFFFFFFF}
		if err := proxy.Subscribe(dev.ID, wildcard); err != nil {
			fmt.Printf("  unable to subscribe to device %d: %v\n", dev.ID, err)
		}
	}

	evPS := pubsub.New(10)
	osExitCh := evPS.Sub(events.OsExit)
	go events.WatchSystemEvents(evPS)

	select {
	case <-osExitCh:
	case <-doneCh:
		fmt.Printf("server '%s' disappeared\n", serverName)
	}
}
