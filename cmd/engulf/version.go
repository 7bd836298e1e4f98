package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"engulf/internal/version"
)

var versionFormat string

// VersionResponseCLI is the JSON form of 'engulf version'.
type VersionResponseCLI struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
	Go        string `json:"go"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionFormat == string(FormatJSON) {
			out, err := FormatResponse(&VersionResponseCLI{
				Version:   version.Version,
				Commit:    version.Commit,
				BuildDate: version.BuildDate,
				Go:        runtime.Version(),
			}, FormatJSON)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), version.Full())
		return nil
	},
}

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(versionCmd)
}
