// Package version holds build information for engulf.
package version

import (
	"runtime"
	"runtime/debug"
)

// These variables can be overridden at build time using ldflags:
// go build -ldflags "-X engulf/internal/version.Version=1.0.0 -X engulf/internal/version.Commit=abc123"
var (
	// Version is the semantic version of engulf
	Version = "0.3.0"

	// Commit is the git commit hash (set at build time)
	Commit = "unknown"

	// BuildDate is the build timestamp (set at build time)
	BuildDate = "unknown"
)

func init() {
	if Commit != "unknown" {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			Commit = s.Value
		case "vcs.time":
			if BuildDate == "unknown" {
				BuildDate = s.Value
			}
		}
	}
}

// shortCommitLen is the number of hash characters shown by Info.
const shortCommitLen = 7

// Info returns the version followed by the abbreviated commit, when known:
// "0.3.0 (1a2b3c4)".
func Info() string {
	if Commit == "unknown" || Commit == "" {
		return Version
	}
	commit := Commit
	if len(commit) > shortCommitLen {
		commit = commit[:shortCommitLen]
	}
	return Version + " (" + commit + ")"
}

// Full returns complete version information
func Full() string {
	return "engulf version " + Version + "\n" +
		"Commit: " + Commit + "\n" +
		"Built: " + BuildDate + "\n" +
		"Go: " + runtime.Version()
}
