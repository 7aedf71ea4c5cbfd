package carillon

import (
	"github.com/carillon-io/carillon-core/core"
	"github.com/carillon-io/carillon-core/logger"
	"github.com/carillon-io/carillon-core/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type rootOptions struct {
	verbose  bool
	logLevel logger.Level
	log      core.LogrusAdapter
	ui       ui.UI
}

// levelFromFlags reports the log level requested on the command line, if any
func (o *rootOptions) levelFromFlags(f *pflag.FlagSet) (logger.Level, bool) {
	switch {
	case f.Changed("log-level"):
		return o.logLevel, true
	case o.verbose:
		return logger.LevelDebug, true
	default:
		return o.logLevel, false
	}
}

func (o *rootOptions) registerFlags(f *pflag.FlagSet) {
	f.BoolVarP(&o.verbose, "verbose", "v", false, "Sets the level of verbosity to debug")
	f.TextVarP(&o.logLevel, "log-level", "l", o.logLevel, "Log level: [error, warn, info, debug, trace]")
}

func NewRootCommand() *cobra.Command {
	return newRootCommand(&ui.Terminal{})
}

func newRootCommand(u ui.UI) *cobra.Command {
	opts := rootOptions{
		logLevel: core.DefaultLogLevel,
		ui:       u,
	}

	cmd := cobra.Command{
		Use:           "carillon",
		Short:         "A self-sufficient command line interface for the Carillon runtime",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, _ := opts.levelFromFlags(cmd.Flags())
			opts.log = core.NewLogger(level, cmd.ErrOrStderr())
		},
	}

	opts.registerFlags(cmd.PersistentFlags())

	cmd.AddCommand(newInitCommand(&opts))
	cmd.AddCommand(newStartCommand(&opts))
	cmd.AddCommand(newIdentityCommand(&opts))
	cmd.AddCommand(newAlgorithmsCommand())

	return &cmd
}

func contextDir(args []string) string {
	if len(args) != 0 {
		return args[0]
	}
	return "."
}
