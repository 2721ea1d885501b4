package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dh1tw/audiohal/hal"
	"github.com/dh1tw/audiohal/property"
	"github.com/dh1tw/audiohal/utils"
)

var valueTypes = []string{"uint32", "int32", "float32", "float64", "string", "bytes"}

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <object-id> <selector>",
	Short: "Read an object property",
	Long: `Read an object property

The selector is given as its four character code, e.g. 'nsrt' for the
nominal sample rate of a device. Object id 1 is the system object.

Examples:

$ audiohal get 1 dev#  --type bytes
$ audiohal get 42 nsrt --type float64
$ audiohal get 42 lnam --type string
$ audiohal get 42 volm --type float32 --scope outp
`,
	Args: cobra.ExactArgs(2),
	Run:  getProperty,
}

func init() {
	RootCmd.AddCommand(getCmd)
	getCmd.Flags().StringP("type", "t", "bytes", "value type (uint32, int32, float32, float64, string, bytes)")
	getCmd.Flags().StringP("scope", "s", "glob", "property scope as a four character code")
	getCmd.Flags().Uint32P("element", "e", 0, "property element")
}

func parsePropertyArgs(cmd *cobra.Command, args []string) (hal.ObjectID, hal.PropertyAddress, error) {

	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return 0, hal.PropertyAddress{}, fmt.Errorf("invalid object id %q", args[0])
	}

	selector, err := hal.FourCCFromString(args[1])
	if err != nil {
		return 0, hal.PropertyAddress{}, err
	}

	scopeStr, _ := cmd.Flags().GetString("scope")
	scope, err := hal.FourCCFromString(scopeStr)
	if err != nil {
		return 0, hal.PropertyAddress{}, err
	}

	element, _ := cmd.Flags().GetUint32("element")

	return hal.ObjectID(id), hal.Address(selector, scope, element), nil
}

func getProperty(cmd *cobra.Command, args []string) {

	valueType, _ := cmd.Flags().GetString("type")
	if !utils.StringInSlice(valueType, valueTypes) {
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

	switch valueType {
	case "uint32":
		v, err := property.Scalar[uint32](api, id, addr, nil)
		if err != nil {
			exit(err)
		}
		fmt.Println(v)
	case "int32":
		v, err := property.Scalar[int32](api, id, addr, nil)
		if err != nil {
			exit(err)
		}
		fmt.Println(v)
	case "float32":
		v, err := property.Scalar[float32](api, id, addr, nil)
		if err != nil {
			exit(err)
		}
		fmt.Println(v)
	case "float64":
		v, err := property.Scalar[float64](api, id, addr, nil)
		if err != nil {
			exit(err)
		}
		fmt.Println(v)
	case "string":
		v, err := property.String(api, id, addr, nil)
		if err != nil {
			exit(err)
		}
		fmt.Println(v)
	case "bytes":
		size, err := property.DataSize(api, id, addr, nil)
		if err != nil {
			exit(err)
		}
		buf := make([]byte, size)
		n, err := property.Bytes(api, id, addr, nil, buf)
		if err != nil {
			exit(err)
		}
		fmt.Println(hex.EncodeToString(buf[:n]))
	}
}
