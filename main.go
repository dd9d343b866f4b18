// Command pypack manages the life cycle of Python packages: scaffolding new
// projects, building and publishing distributions, and keeping an eye on
// their dependencies.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/Nsfr750/pack/pkg/cliutil"
	"github.com/Nsfr750/pack/pkg/logutil"
)

// Version is stamped by the release process ("-ldflags -X main.Version=...").
var Version = "0.0.0-dev"

var argparser = &cobra.Command{
	Use:   "pypack {[flags]|SUBCOMMAND...}",
	Short: "Build, publish, and manage Python packages",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,

	SilenceErrors: true, // main() will handle this after .ExecuteContext() returns
	SilenceUsage:  true, // our FlagErrorFunc will handle it
}

var rootFlags struct {
	LogLevel logutil.LevelFlag
	SaveLogs bool
	Python   string
}

func init() {
	argparser.Version = Version
	argparser.SetFlagErrorFunc(cliutil.FlagErrorFunc)
	argparser.SetHelpTemplate(cliutil.HelpTemplate)

	rootFlags.LogLevel.Level = "info"
	argparser.PersistentFlags().Var(&rootFlags.LogLevel, "log-level",
		"Log `LEVEL` (trace, debug, info, warn, error)")
	argparser.PersistentFlags().BoolVar(&rootFlags.SaveLogs, "save-logs", false,
		"Also append logs to the persistent log file")
	argparser.PersistentFlags().StringVar(&rootFlags.Python, "python", "",
		"Python `INTERPRETER` to use (overrides the python_path configuration key)")

	argparser.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		opts := logutil.Options{Level: rootFlags.LogLevel.Level}
		if rootFlags.SaveLogs {
			file, err := logutil.DefaultLogFile()
			if err != nil {
				return err
			}
			opts.File = file
		}
		logger, err := logutil.Logger(opts)
		if err != nil {
			return cliutil.FlagErrorFunc(cmd, err)
		}
		cmd.SetContext(dlog.WithLogger(cmd.Context(), logger))
		return nil
	}
}

func main() {
	ctx := context.Background()
	if err := argparser.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(argparser.ErrOrStderr(), "%s: error: %v\n", argparser.CommandPath(), err)
		os.Exit(1)
	}
}
