// Command particle-field renders an interactive particle backdrop in the terminal
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/particle-field/config"
)

// options holds flags shared by all subcommands
type options struct {
	configPath string
	seed       uint64
	debug      bool
}

// load reads the config file when given and applies shared flag overrides
func (o *options) load(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = o.seed
	}
	if o.debug {
		cfg.Log.Debug = true
	}
	return cfg, nil
}

// resolveSeed picks a time-based seed for 0
func resolveSeed(seed uint64) uint64 {
	if seed == 0 {
		return uint64(time.Now().UnixNano())
	}
	return seed
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	runOpts := &runOptions{}

	root := &cobra.Command{
		Use:   "particle-field",
		Short: "Interactive particle field backdrop",
		Long: `particle-field draws drifting particles joined by faint lines
when close, pushed away from the mouse pointer. The default command runs it
in the terminal; snapshot renders frames headless into an image.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runField(cmd, opts, runOpts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	pf.Uint64Var(&opts.seed, "seed", 0, "random seed, 0 picks one from the clock")
	pf.BoolVar(&opts.debug, "debug", false, "write debug logs to the log directory")

	runCmd := newRunCmd(opts, runOpts)
	bindRunFlags(root, runOpts)
	root.AddCommand(runCmd, newSnapshotCmd(opts))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
