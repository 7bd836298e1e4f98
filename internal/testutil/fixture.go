// Package testutil provides testing utilities for golden tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
)

// FixtureContext holds information about a loaded fixture.
type FixtureContext struct {
	// Name is the document file name without its extension (e.g., "pods")
	Name string

	// DocPath is the absolute path to the input document
	DocPath string

	// GoldenPath is the path to the expected folded output
	GoldenPath string
}

// documentExts are the extensions recognised as fixture documents.
var documentExts = map[string]bool{
	".json":  true,
	".jsonc": true,
	".yaml":  true,
	".yml":   true,
}

// LoadFixture loads a document fixture by file name, failing the test on error.
func LoadFixture(t *testing.T, file string) *FixtureContext {
	t.Helper()

	root := getFixturesRoot(t)
	docPath := filepath.Join(root, file)

	if _, err := os.Stat(docPath); os.IsNotExist(err) {
		t.Fatalf("Fixture not found: %s", docPath)
	}

	name := strings.TrimSuffix(file, filepath.Ext(file))
	return &FixtureContext{
		Name:       name,
		DocPath:    docPath,
		GoldenPath: filepath.Join(root, "expected", name+".folded"),
	}
}

// getFixturesRoot returns the absolute path to testdata/fixtures/.
func getFixturesRoot(t *testing.T) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get caller information")
	}

	// Navigate from internal/testutil to project root
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
	fixturesRoot := filepath.Join(projectRoot, "testdata", "fixtures")

	if _, err := os.Stat(fixturesRoot); os.IsNotExist(err) {
		t.Fatalf("Fixtures root not found: %s", fixturesRoot)
	}

	return fixturesRoot
}

// AvailableFixtures returns the sorted file names of all fixture documents.
func AvailableFixtures(t *testing.T) []string {
	t.Helper()

	root := getFixturesRoot(t)
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("Failed to read fixtures directory: %v", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		if documentExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	return files
}

// ForEachFixture runs fn as a subtest for every fixture document.
func ForEachFixture(t *testing.T, fn func(t *testing.T, fixture *FixtureContext)) {
	t.Helper()

	files := AvailableFixtures(t)
	if len(files) == 0 {
		t.Skip("No fixture documents found")
	}

	for _, file := range files {
		fixture := LoadFixture(t, file)
		t.Run(fixture.Name, func(t *testing.T) {
			fn(t, fixture)
		})
	}
}

func isHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}
