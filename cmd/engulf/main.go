package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		reportError(errorLogger(os.Stderr, cfg, runID), err)
		os.Exit(1)
	}
}
