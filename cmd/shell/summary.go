package shell

import (
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:     "summary",
	Short:   "print row counts and redundancy",
	Aliases: []string{"s"},
	Annotations: map[string]string{
		cmdGroupAnnotation: cmdGroupReport,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return Current().Report().RenderSummary(cmd.OutOrStdout())
	},
}

func init() {
	shellRootCmd.AddCommand(summaryCmd)
}
