package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"engulf/internal/config"
	"engulf/internal/errors"
	"engulf/internal/slogutil"
	"engulf/internal/version"
)

var (
	// configFlag is the CLI --config flag value
	configFlag    string
	verboseFlag   int
	quietFlag     bool
	logFormatFlag string
)

// Set by the root PersistentPreRunE before any subcommand runs.
var (
	cfg    = config.DefaultConfig()
	logger = slogutil.NewLogger(os.Stderr, slog.LevelWarn)
	runID  string
)

var rootCmd = &cobra.Command{
	Use:   "engulf",
	Short: "engulf - fold JSON documents into flamegraph stacks",
	Long: `engulf measures where the bytes of a JSON document go. It folds the document
into weighted stacks (one line per leaf path, weight = serialized size) that any
folded-stack flamegraph renderer can draw.

Arrays of objects can be grouped by a discriminant key, and JSON documents
embedded in string values are unfolded as if they were part of the tree.`,
	Version:           version.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRun,
}

func init() {
	rootCmd.SetVersionTemplate("engulf version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"Config file (default: ./.engulf.{json,yaml,toml} if present)")
	rootCmd.PersistentFlags().CountVarP(&verboseFlag, "verbose", "v",
		"Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false,
		"Suppress all log output")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "",
		"Log format: human or json (default: from config, else human)")
}

// setupRun loads the configuration and builds the logger shared by every
// subcommand.
func setupRun(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return errors.Wrap(errors.IOError, "cannot determine working directory", err)
	}

	result, err := config.LoadConfigWithDetails(dir, configFlag)
	if err != nil {
		return errors.Wrap(errors.ConfigInvalid, "failed to load configuration", err)
	}
	if logFormatFlag != "" {
		result.Config.Logging.Format = logFormatFlag
	}
	if err := result.Config.Validate(); err != nil {
		return errors.Wrap(errors.ConfigInvalid, "invalid configuration", err)
	}
	cfg = result.Config

	runID = uuid.NewString()
	level := resolveLogLevel(cfg, verboseFlag, quietFlag)
	logger = slogutil.NewFormatLogger(cmd.ErrOrStderr(), cfg.Logging.Format, level).
		With("run", runID)

	logger.Debug("Configuration loaded",
		"version", version.Info(),
		"path", result.ConfigPath,
		"defaults", result.UsedDefaults,
		"envOverrides", len(result.EnvOverrides),
	)
	return nil
}

// resolveLogLevel determines the effective log level.
// Precedence: -q > -v count > ENGULF_LOG_LEVEL env / config logging.level > warn
func resolveLogLevel(c *config.Config, verbosity int, quiet bool) slog.Level {
	if quiet || verbosity > 0 {
		return slogutil.LevelFromVerbosity(verbosity, quiet)
	}
	if c != nil && c.Logging.Level != "" {
		return slogutil.LevelFromString(c.Logging.Level)
	}
	return slog.LevelWarn
}

// errorLogger returns the logger fatal errors are reported on. It is fixed
// at LevelError so neither -q nor the configured level can hide why a
// command failed.
func errorLogger(w io.Writer, c *config.Config, run string) *slog.Logger {
	format := ""
	if c != nil {
		format = c.Logging.Format
	}
	l := slogutil.NewFormatLogger(w, format, slog.LevelError)
	if run != "" {
		l = l.With("run", run)
	}
	return l
}

// pick returns the flag value when the flag was set on the command line and
// the configured value otherwise. Environment overrides are already merged
// into the configured value.
func pick[T any](cmd *cobra.Command, flag string, flagValue, configured T) T {
	if cmd.Flags().Changed(flag) {
		return flagValue
	}
	return configured
}
