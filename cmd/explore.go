/*
Copyright © 2020 hit.zhangjie@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hitzhangjie/cfastates/cmd/shell"
	"github.com/hitzhangjie/cfastates/pkg/config"
	"github.com/hitzhangjie/cfastates/pkg/logflags"
)

// newExploreCmd represents the explore command
func newExploreCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "explore [file]",
		Short: "explore CFA states interactively",
		Long: `Load the dump once and query it from a prompt: print the report, the most
frequent states, the RSP offsets folded into a state, or switch the
normalization mode. Type 'help' at the prompt for the list of commands.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			states, err := loadStates(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			session := shell.NewSession(states, opts.conf.NormalizeRSP, cmd.OutOrStdout())
			// input set on the command replaces the terminal prompt
			if in := cmd.InOrStdin(); in != os.Stdin {
				session.WithInput(in)
			}
			if path, err := config.HistoryPath(); err == nil {
				session.WithHistory(path)
			}
			session.AtExit(func() {
				if err := session.SaveHistory(); err != nil {
					logflags.ShellLogger().WithError(err).Debug("history not saved")
				}
			})
			shell.SetCurrent(session)
			return nil
		},
		PostRun: func(cmd *cobra.Command, args []string) {
			shell.Current().Start()
		},
	}
}
