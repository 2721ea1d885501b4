package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dh1tw/audiohal/property"
	"github.com/dh1tw/audiohal/utils"
)

// setCmd represents the set command
var setCmd = &cobra.Command{
	Use:   "set <object-id> <selector> <value>",
	Short: "Write an object property",
	Long: `Write an object property

The selector is given as its four character code. The value is parsed
according to --type; with --type bytes it is a hex string.

Examples:

$ audiohal set 42 nsrt 48000 --type float64
$ audiohal set 42 volm 0.5   --type float32 --scope outp
$ audiohal set 42 mute 1     --type uint32  --scope outp
`,
	Args: cobra.ExactArgs(3),
	Run:  setProperty,
}

func init() {
	RootCmd.AddCommand(setCmd)
	setCmd.Flags().StringP("type", "t", "bytes", "value type (uint32, int32, float32, float64, bytes)")
	setCmd.Flags().StringP("scope", "s", "glob", "property scope as a four character code")
	setCmd.Flags().Uint32P("element", "e", 0, "property element")
}

func setProperty(cmd *cobra.Command, args []string) {

	valueType, _ := cmd.Flags().GetString("type")
	// strings live in reference counted OS objects and cannot be written
	if !utils.StringInSlice(valueType, valueTypes) || valueType == "string" {
		exit(fmt.Errorf("unknown value type %q", valueType))
	}

	id, addr, err := parsePropertyArgs(cmd, args)
	if err != nil {
		exit(err)
	}

	sys, err := connectSystem()
	if err != nil {
		exit(err)
	}
	defer sys.Close()
	api := sys.API()

	raw := args[2]

	switch valueType {
	case "uint32":
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			exit(fmt.Errorf("invalid uint32 %q", raw))
		}
		err = property.SetScalar(api, id, addr, nil, uint32(v))
		if err != nil {
			exit(err)
		}
	case "int32":
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			exit(fmt.Errorf("invalid int32 %q", raw))
		}
		err = property.SetScalar(api, id, addr, nil, int32(v))
		if err != nil {
			exit(err)
		}
	case "float32":
		v, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			exit(fmt.Errorf("invalid float32 %q", raw))
		}
		err = property.SetScalar(api, id, addr, nil, float32(v))
		if err != nil {
			exit(err)
		}
	case "float64":
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			exit(fmt.Errorf("invalid float64 %q", raw))
		}
		err = property.SetScalar(api, id, addr, nil, v)
		if err != nil {
			exit(err)
		}
	case "bytes":
		data, err := hex.DecodeString(raw)
		if err != nil {
			exit(fmt.Errorf("invalid hex value %q", raw))
		}
		if err := property.SetBytes(api, id, addr, nil, data); err != nil {
			exit(err)
		}
	}

	fmt.Println("OK")
}
