package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// clientCmd represents the client command
var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "audiohal Client",
	Long: `Run an audiohal client

Connect to a remote audiohal server and mirror its audio devices
through a specific transportation protocol.
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Please select a transportation protocol (--help for available options)")
	},
}

func init() {
	RootCmd.AddCommand(clientCmd)
}
