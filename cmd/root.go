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
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hitzhangjie/cfastates/pkg/cfa"
	"github.com/hitzhangjie/cfastates/pkg/config"
	"github.com/hitzhangjie/cfastates/pkg/dump"
	"github.com/hitzhangjie/cfastates/pkg/logflags"
)

const rootLongDesc = `cfastates extracts the CFA state of every unwind table row printed by
'llvm-dwarfdump --eh-frame', counts how often each state occurs and reports
how redundant the table is.

The dump is read from file, or from standard input if no file is given:

	llvm-dwarfdump --eh-frame ./prog | cfastates --normalize-rsp`

// options holds the values of the persistent flags.
type options struct {
	cfgFile string
	v       *viper.Viper
	conf    *config.Config
}

// New returns an initialized command tree.
func New() *cobra.Command {
	opts := &options{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:          "cfastates [file]",
		Short:        "analyze CFA states of an eh_frame dump",
		Long:         rootLongDesc,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			states, err := loadStates(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			return analyze(cmd.OutOrStdout(), states, opts.conf.NormalizeRSP)
		},
	}

	registerFlags(rootCmd.PersistentFlags(), opts)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newExploreCmd(opts))
	return rootCmd
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main().
func Execute() {
	if err := New().Execute(); err != nil {
		os.Exit(1)
	}
}

// registerFlags binds the flags shared by every command to viper keys.
func registerFlags(fs *pflag.FlagSet, opts *options) {
	defaultPath, err := config.DefaultPath()
	if err != nil {
		defaultPath = "$HOME/.cfastates.yaml"
	}

	fs.StringVar(&opts.cfgFile, "config", "", fmt.Sprintf("config file (default is %s)", defaultPath))
	fs.Bool(config.KeyNormalizeRSP, false, "Normalize CFA=RSP+offset entries to group by register pattern only.")
	fs.Bool(config.KeyLog, false, "Enable diagnostic logging on stderr.")
	fs.String(config.KeyLogOutput, "", "Comma separated list of components that should log: input, extract, report, shell.")

	for _, key := range []string{config.KeyNormalizeRSP, config.KeyLog, config.KeyLogOutput} {
		opts.v.BindPFlag(key, fs.Lookup(key))
	}
}

// initConfig reads in config file and sets up logging.
func (opts *options) initConfig() error {
	if err := config.ReadInConfig(opts.v, opts.cfgFile); err != nil {
		return err
	}
	conf, err := config.Load(opts.v)
	if err != nil {
		return err
	}
	if err := logflags.Setup(conf.Log, conf.LogOutput); err != nil {
		return err
	}
	if f := opts.v.ConfigFileUsed(); f != "" {
		logflags.InputLogger().Debugf("using config file %s", f)
	}
	opts.conf = conf
	return nil
}

// loadStates reads the dump named by args and extracts its CFA states.
func loadStates(stdin io.Reader, args []string) ([]string, error) {
	path := ""
	if len(args) != 0 {
		path = args[0]
	}
	lines, err := dump.Load(path, stdin)
	if err != nil {
		return nil, err
	}
	return cfa.Extract(lines), nil
}

func analyze(w io.Writer, states []string, normalizeRSP bool) error {
	return cfa.Tally(states, normalizeRSP).Render(w)
}
