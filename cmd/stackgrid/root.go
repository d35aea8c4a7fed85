package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/stackgrid/internal/logger"
)

type rootFlags struct {
	verbose  bool
	logLevel string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "stackgrid",
		Short:         "stackgrid lays out cards in animated masonry columns",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newLayoutCmd(flags))
	cmd.AddCommand(newDemoCmd(flags))
	cmd.AddCommand(newProfilesCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// logger builds the command logger. --verbose wins over --log-level.
func (f *rootFlags) logger(w io.Writer) (*logger.Logger, error) {
	level := f.logLevel
	if f.verbose {
		level = "debug"
	}
	return logger.New(logger.Options{Level: level, HumanReadable: true, Writer: w})
}
