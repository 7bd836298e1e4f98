// Package fold converts a JSON tree into weighted folded stacks.
//
// Every leaf value contributes the size of its minified JSON serialization to
// the path leading to it. Paths are made of object keys, the "[]" marker for
// array elements, and optional "key=value" discriminants that split array
// elements into groups. Strings that hold a JSON document are parsed and
// folded in place, so embedded payloads show up under the key that carried
// them. Container punctuation is never weighed.
package fold

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"engulf/internal/input"
	"engulf/internal/output"
	"engulf/internal/slogutil"
	"engulf/internal/weight"
)

const (
	// Separator joins path segments.
	Separator = ";"
	// ArrayMarker is pushed once per array, around all of its elements.
	ArrayMarker = "[]"
	// NonStringDiscriminant stands in for a group key whose value is not a string.
	NonStringDiscriminant = "<non-str>"
)

// ErrDepthExceeded is returned when a document nests deeper than
// Options.MaxDepth.
var ErrDepthExceeded = errors.New("maximum depth exceeded")

// Options controls a fold.
type Options struct {
	// GroupKeys are tried in order on every object element of an array; the
	// first one present adds a "key=value" segment. Empty disables grouping.
	GroupKeys []string

	// MaxDepth bounds nesting, counting one level per array element, object
	// member and embedded document. Zero means unbounded.
	MaxDepth int
}

// Stats describes a completed fold.
type Stats struct {
	Leaves            int   `json:"leaves"`
	EmbeddedDocuments int   `json:"embeddedDocuments"`
	MaxDepth          int   `json:"maxDepth"`
	TotalWeight       int64 `json:"totalWeight"`
}

// Result holds the sorted entries of a fold and its stats.
type Result struct {
	Entries []output.Entry
	Stats   Stats
}

// Engine folds documents with fixed options. It holds no per-fold state and
// is safe for concurrent use.
type Engine struct {
	opts   Options
	logger *slog.Logger
}

// NewEngine creates an Engine. A nil logger discards all output.
func NewEngine(opts Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	keys := make([]string, len(opts.GroupKeys))
	copy(keys, opts.GroupKeys)
	opts.GroupKeys = keys

	return &Engine{opts: opts, logger: logger}
}

// Fold walks root and returns its entries sorted by weight DESC, path ASC.
func Fold(root any, opts Options) ([]output.Entry, error) {
	res, err := NewEngine(opts, nil).Fold(root)
	if err != nil {
		return nil, err
	}
	return res.Entries, nil
}

// Fold walks root. root must be a tree of nil, bool, json.Number, float64,
// string, []any and map[string]any values; it is not modified.
func (e *Engine) Fold(root any) (*Result, error) {
	w := &walker{
		groupKeys: e.opts.GroupKeys,
		maxDepth:  e.opts.MaxDepth,
		weights:   make(map[string]int64),
	}

	if err := w.visit(root, 0); err != nil {
		e.logger.Debug("Fold aborted",
			"error", err.Error(),
			"leaves", w.stats.Leaves,
		)
		return nil, err
	}

	entries := make([]output.Entry, 0, len(w.weights))
	for path, wt := range w.weights {
		entries = append(entries, output.Entry{Path: path, Weight: wt})
	}
	output.SortEntries(entries)

	e.logger.Debug("Fold completed",
		"paths", len(entries),
		"leaves", w.stats.Leaves,
		"embedded", w.stats.EmbeddedDocuments,
		"maxDepth", w.stats.MaxDepth,
		"totalWeight", w.stats.TotalWeight,
	)

	return &Result{Entries: entries, Stats: w.stats}, nil
}

// walker owns the path stack and accumulator of a single fold.
type walker struct {
	groupKeys []string
	maxDepth  int
	stack     []string
	weights   map[string]int64
	stats     Stats
}

// visit folds v at the current path. On error the walk is abandoned and the
// stack is left as it was when the error occurred.
func (w *walker) visit(v any, depth int) error {
	if w.maxDepth > 0 && depth > w.maxDepth {
		return fmt.Errorf("%w: limit %d reached at %q", ErrDepthExceeded, w.maxDepth, w.path())
	}
	if depth > w.stats.MaxDepth {
		w.stats.MaxDepth = depth
	}

	switch val := v.(type) {
	case []any:
		w.push(ArrayMarker)
		for _, item := range val {
			segment, grouped := w.discriminant(item)
			if grouped {
				w.push(segment)
			}
			if err := w.visit(item, depth+1); err != nil {
				return err
			}
			if grouped {
				w.pop()
			}
		}
		w.pop()

	case map[string]any:
		for _, key := range sortedKeys(val) {
			w.push(key)
			if err := w.visit(val[key], depth+1); err != nil {
				return err
			}
			w.pop()
		}

	case string:
		if nested, ok := input.ParseEmbedded(val); ok {
			w.stats.EmbeddedDocuments++
			return w.visit(nested, depth+1)
		}
		w.add(weight.String(val))

	default:
		w.add(weight.Of(val))
	}

	return nil
}

// discriminant returns the group segment for an array element, if any.
func (w *walker) discriminant(item any) (string, bool) {
	if len(w.groupKeys) == 0 {
		return "", false
	}
	obj, ok := item.(map[string]any)
	if !ok {
		return "", false
	}

	for _, key := range w.groupKeys {
		value, present := obj[key]
		if !present {
			continue
		}
		if s, isString := value.(string); isString {
			return key + "=" + s, true
		}
		return key + "=" + NonStringDiscriminant, true
	}
	return "", false
}

func (w *walker) push(segment string) {
	w.stack = append(w.stack, segment)
}

func (w *walker) pop() {
	w.stack = w.stack[:len(w.stack)-1]
}

func (w *walker) path() string {
	return strings.Join(w.stack, Separator)
}

func (w *walker) add(n int64) {
	w.weights[w.path()] += n
	w.stats.Leaves++
	w.stats.TotalWeight += n
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
