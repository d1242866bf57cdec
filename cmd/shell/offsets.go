package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hitzhangjie/cfastates/pkg/cfa"
)

var offsetsCmd = &cobra.Command{
	Use:     "offsets <substring>",
	Short:   "list the RSP offsets folded into matching states",
	Aliases: []string{"o"},
	Annotations: map[string]string{
		cmdGroupAnnotation: cmdGroupReport,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("need a state substring")
		}
		pattern := strings.Join(args, " ")

		// offsets only exist for normalized states, whatever the mode
		normalized := Current().reportFor(true)
		matched := &cfa.Report{Total: normalized.Total, NormalizeRSP: true}
		for _, e := range normalized.Entries {
			if len(e.Offsets) != 0 && strings.Contains(e.State, pattern) {
				matched.Entries = append(matched.Entries, e)
			}
		}

		if len(matched.Entries) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "no normalized state matches %q\n", pattern)
			return nil
		}
		return matched.RenderTop(cmd.OutOrStdout(), len(matched.Entries))
	},
}

func init() {
	shellRootCmd.AddCommand(offsetsCmd)
}
