package shell

import (
	"github.com/spf13/cobra"
)

var exitCmd = &cobra.Command{
	Use:     "exit",
	Short:   "leave the session",
	Aliases: []string{"q", "quit"},
	Annotations: map[string]string{
		cmdGroupAnnotation: cmdGroupOthers,
	},
	Run: func(cmd *cobra.Command, args []string) {
		Current().Stop()
	},
}

func init() {
	shellRootCmd.AddCommand(exitCmd)
}
