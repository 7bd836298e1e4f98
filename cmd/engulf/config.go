package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"engulf/internal/config"
	"engulf/internal/errors"
)

var (
	configFormat string
	configForce  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage engulf configuration",
	Long:  "View and manage engulf configuration stored in .engulf.{json,yaml,toml}",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Display the configuration after merging defaults, the config file and
ENGULF_* environment variables.

Examples:
  engulf config show
  engulf config show --format json
  engulf --config ci.yaml config show`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configEnvCmd = &cobra.Command{
	Use:   "env",
	Short: "List supported environment variables",
	Args:  cobra.NoArgs,
	RunE:  runConfigEnv,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to .engulf.json",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "human", "Output format (json, human)")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing .engulf.json")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEnvCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// ConfigShowResponse is the response format for config show
type ConfigShowResponse struct {
	ConfigPath   string               `json:"configPath,omitempty"`
	UsedDefaults bool                 `json:"usedDefaults"`
	EnvOverrides []config.EnvOverride `json:"envOverrides,omitempty"`
	Config       *config.Config       `json:"config"`
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return errors.Wrap(errors.IOError, "cannot determine working directory", err)
	}

	result, err := config.LoadConfigWithDetails(dir, configFlag)
	if err != nil {
		return errors.Wrap(errors.ConfigInvalid, "failed to load configuration", err)
	}

	resp := &ConfigShowResponse{
		ConfigPath:   result.ConfigPath,
		UsedDefaults: result.UsedDefaults,
		EnvOverrides: result.EnvOverrides,
		Config:       cfg,
	}

	out, err := FormatResponse(resp, OutputFormat(configFormat))
	if err != nil {
		return errors.Wrap(errors.UnsupportedFormat, "cannot format output", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func runConfigEnv(cmd *cobra.Command, args []string) error {
	fmt.Fprint(cmd.OutOrStdout(), formatEnvBindings(config.EnvBindings, os.LookupEnv))
	return nil
}

// formatEnvBindings renders one aligned line per binding, marking the
// variables that are currently set.
func formatEnvBindings(bindings []config.EnvBinding, lookup func(string) (string, bool)) string {
	width := 0
	for _, b := range bindings {
		if w := runewidth.StringWidth(b.Env); w > width {
			width = w
		}
	}

	var sb strings.Builder
	for _, b := range bindings {
		fmt.Fprintf(&sb, "%s  %s", runewidth.FillRight(b.Env, width), b.Description)
		if val, ok := lookup(b.Env); ok {
			fmt.Fprintf(&sb, " (set: %s)", val)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return errors.Wrap(errors.IOError, "cannot determine working directory", err)
	}

	path, err := initConfig(dir, configForce)
	if err != nil {
		return err
	}
	logger.Info("Wrote configuration", "path", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

// initConfig writes the default configuration into dir, refusing to replace
// an existing file unless force is set.
func initConfig(dir string, force bool) (string, error) {
	path := filepath.Join(dir, config.FileName+".json")
	if _, err := os.Stat(path); err == nil && !force {
		return "", errors.NewEngulfError(errors.ConfigInvalid,
			fmt.Sprintf("%s already exists", path), nil,
			[]errors.FixAction{{
				Type:        errors.ChangeFlag,
				Flag:        "--force",
				Description: "Overwrite the existing file",
			}})
	}

	path, err := config.DefaultConfig().Save(dir)
	if err != nil {
		return "", errors.Wrap(errors.IOError, "cannot write configuration", err)
	}
	return path, nil
}
