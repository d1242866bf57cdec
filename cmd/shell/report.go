package shell

import (
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:     "report",
	Short:   "print the frequency report",
	Aliases: []string{"r"},
	Annotations: map[string]string{
		cmdGroupAnnotation: cmdGroupReport,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return Current().Report().Render(cmd.OutOrStdout())
	},
}

func init() {
	shellRootCmd.AddCommand(reportCmd)
}
