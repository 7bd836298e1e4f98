package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// WriteFolded writes one "path weight" line per entry, in the given order.
func WriteFolded(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		_, _ = bw.WriteString(e.Path)
		_ = bw.WriteByte(' ')
		_, _ = bw.WriteString(strconv.FormatInt(e.Weight, 10))
		_ = bw.WriteByte('\n')
	}
	return bw.Flush()
}

// FormatFolded returns the folded text of entries as a string.
func FormatFolded(entries []Entry) string {
	var b strings.Builder
	_ = WriteFolded(&b, entries)
	return b.String()
}

// WriteJSON writes entries as a JSON array. An empty indent produces
// minified output terminated by a newline.
func WriteJSON(w io.Writer, entries []Entry, indent string) error {
	if entries == nil {
		entries = []Entry{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if indent != "" {
		encoder.SetIndent("", indent)
	}
	return encoder.Encode(entries)
}

// ParseFolded reads folded text. Each non-empty line is split on its last
// space; the remainder is the path, kept verbatim.
func ParseFolded(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		idx := strings.LastIndexByte(line, ' ')
		if idx < 0 {
			return nil, fmt.Errorf("line %d: missing weight", lineNo)
		}
		weight, err := strconv.ParseInt(line[idx+1:], 10, 64)
		if err != nil || weight < 0 {
			return nil, fmt.Errorf("line %d: invalid weight %q", lineNo, line[idx+1:])
		}
		entries = append(entries, Entry{Path: line[:idx], Weight: weight})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// MergeEntries sums entries that share a path and returns them sorted.
func MergeEntries(entries []Entry) []Entry {
	weights := make(map[string]int64, len(entries))
	for _, e := range entries {
		weights[e.Path] += e.Weight
	}

	paths := make([]string, 0, len(weights))
	for p := range weights {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	merged := make([]Entry, 0, len(paths))
	for _, p := range paths {
		merged = append(merged, Entry{Path: p, Weight: weights[p]})
	}
	SortEntries(merged)
	return merged
}
