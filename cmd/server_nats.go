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

// natsServerCmd represents the nats command
var natsServerCmd = &cobra.Command{
	Use:   "nats",
	Short: "NATS Server",
	Long: `NATS Server exposing the audio devices of this machine

Other machines reach the devices through NATS request/reply on the
subject "audiohal.<server-name>.<operation>". You need a NATS broker
up and running to which the server can connect to.
`,
	Run: natsAudioServer,
}

func init() {
	serverCmd.AddCommand(natsServerCmd)
	natsServerCmd.Flags().StringP("broker-url", "u", "localhost", "Broker URL")
	natsServerCmd.Flags().IntP("broker-port", "p", 4222, "Broker Port")
	natsServerCmd.Flags().StringP("password", "P", "", "NATS Password")
	natsServerCmd.Flags().StringP("username", "U", "", "NATS Username")
	natsServerCmd.Flags().StringP("server-name", "Y", "", "server name (e.g. 'studio')")
}

func natsAudioServer(cmd *cobra.Command, args []string) {

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

	// start from default nats config and add the common options
	nopts := nats.GetDefaultOptions()
	nopts.Servers = []string{natsAddr}
	nopts.User = viper.GetString("nats.username")
	nopts.Password = viper.GetString("nats.password")

	// identifiable in nats-top
	nopts.Name = "audiohal." + serverName

	nc, err := nopts.Connect()
	if err != nil {
		exit(fmt.Errorf("unable to connect to broker: %v", err))
	}
	defer nc.Close()

	sys, err := connectSystem()
	if err != nil {
		exit(err)
	}
	defer sys.Close()

	s, err := remote.NewServer(sys, nc, remote.Name(serverName))
	if err != nil {
		exit(err)
	}
	defer s.Close()

	fmt.Printf("serving audio devices as '%s' through %s\n", serverName, natsAddr)

	// block until ctrl-c
	evPS := pubsub.New(10)
	osExitCh := evPS.Sub(events.OsExit)
	go events.WatchSystemEvents(evPS)
	<-osExitCh
}
