package testutil

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// updateGolden controls whether golden files should be updated.
// Use: go test ./... -run TestGolden -update
var updateGolden = flag.Bool("update", false, "update golden files")

// CompareGolden compares got against the fixture's golden file, failing with
// a line diff on mismatch. If -update is set, rewrites the golden file instead.
func CompareGolden(t *testing.T, fixture *FixtureContext, got []byte) {
	t.Helper()

	if *updateGolden {
		UpdateGolden(t, fixture, got)
		t.Logf("Updated golden: %s", fixture.GoldenPath)
		return
	}

	expected, err := os.ReadFile(fixture.GoldenPath)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("Golden file missing: %s\n\nGot:\n%s\n\nRun with -update to create:\n  go test ./... -run %s -update",
				fixture.GoldenPath, got, t.Name())
		}
		t.Fatalf("Failed to read golden file: %v", err)
	}

	if diff := cmp.Diff(splitLines(string(expected)), splitLines(string(got))); diff != "" {
		t.Fatalf("Golden mismatch for %s (-want +got):\n%s\nRun with -update to refresh:\n  go test ./... -run %s -update",
			fixture.Name, diff, t.Name())
	}
}

// UpdateGolden writes data to the fixture's golden file.
// Creates parent directories if they don't exist.
func UpdateGolden(t *testing.T, fixture *FixtureContext, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(fixture.GoldenPath), 0o755); err != nil {
		t.Fatalf("Failed to create expected directory: %v", err)
	}

	if err := os.WriteFile(fixture.GoldenPath, data, 0o644); err != nil {
		t.Fatalf("Failed to write golden file: %v", err)
	}
}

// splitLines keeps a trailing empty element so a missing final newline
// shows up in the diff.
func splitLines(s string) []string {
	return strings.Split(s, "\n")
}
