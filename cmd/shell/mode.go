package shell

import (
	"fmt"

	"github.com/spf13/cobra"
)

var modeCmd = &cobra.Command{
	Use:   "mode [on|off]",
	Short: "show or set RSP offset normalization",
	Annotations: map[string]string{
		cmdGroupAnnotation: cmdGroupSettings,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		s := Current()
		if len(args) != 0 {
			switch args[0] {
			case "on":
				s.normalizeRSP = true
			case "off":
				s.normalizeRSP = false
			default:
				return fmt.Errorf("invalid mode: %s, must be on or off", args[0])
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "normalize-rsp: %s\n", onOff(s.normalizeRSP))
		return nil
	},
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func init() {
	shellRootCmd.AddCommand(modeCmd)
}
