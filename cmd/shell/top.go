package shell

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

const defaultTop = 10

var topCmd = &cobra.Command{
	Use:   "top [n]",
	Short: "print the n most frequent states",
	Annotations: map[string]string{
		cmdGroupAnnotation: cmdGroupReport,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		n := defaultTop
		if len(args) != 0 {
			v, err := strconv.Atoi(args[0])
			if err != nil || v < 0 {
				return fmt.Errorf("invalid count: %s, must be a non-negative integer", args[0])
			}
			n = v
		}
		return Current().Report().RenderTop(cmd.OutOrStdout(), n)
	},
}

func init() {
	shellRootCmd.AddCommand(topCmd)
}
