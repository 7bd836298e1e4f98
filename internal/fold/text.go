package fold

import (
	"strings"

	"engulf/internal/input"
	"engulf/internal/output"
)

// FoldText decodes a single JSON document and returns its folded stacks in
// the text form written by output.WriteFolded.
func FoldText(doc string, opts Options) (string, error) {
	root, err := input.Decode(strings.NewReader(doc), input.FormatJSON)
	if err != nil {
		return "", err
	}

	entries, err := Fold(root, opts)
	if err != nil {
		return "", err
	}
	return output.FormatFolded(entries), nil
}
