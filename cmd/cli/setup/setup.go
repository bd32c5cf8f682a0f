// Package setup builds the logger and the assistant components for the console commands.
package setup

import (
	"log/slog"
	"os"

	"github.com/myrjola/polyglot/internal/errors"
	"github.com/myrjola/polyglot/internal/logging"
	"github.com/myrjola/polyglot/internal/services"
	"github.com/spf13/cobra"
)

// VerboseFlag is the persistent flag that turns on debug logging.
const VerboseFlag = "verbose"

// Logger logs to stderr so that it does not mix with the console conversation on stdout.
func Logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if verbose, err := cmd.Flags().GetBool(VerboseFlag); err == nil && verbose {
		level = slog.LevelDebug
	}
	return logging.New(cmd.ErrOrStderr(), level, false)
}

// Services loads the configuration from the process environment and builds the components.
func Services(cmd *cobra.Command) (*services.Services, *slog.Logger, error) {
	logger := Logger(cmd)
	svc, _, err := services.Load(os.LookupEnv, logger)
	if err != nil {
		return nil, logger, errors.Wrap(err, "set up services")
	}
	return svc, logger, nil
}
