// Package weight measures how many bytes a JSON value occupies once it is
// re-serialized as minified JSON.
//
// Weights describe the canonical serialization produced by encoding/json with
// HTML escaping disabled, not the source text the value was decoded from.
// Numbers are canonicalized: integer literals keep their decimal form, every
// other number is written the way encoding/json writes a float64.
package weight

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// countWriter discards everything written to it and only keeps the byte count.
type countWriter struct {
	n int64
}

func (w *countWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}

// Of returns the minified JSON byte length of v. It never fails: values
// encoding/json refuses to serialize are measured by their fmt rendering.
func Of(v any) int64 {
	switch val := v.(type) {
	case nil:
		return 4
	case bool:
		if val {
			return 4
		}
		return 5
	case string:
		return String(val)
	case json.Number:
		return Number(val)
	case float64:
		return Float(val)
	default:
		return encoded(v)
	}
}

// String returns the byte length of s as a quoted, escaped JSON string.
func String(s string) int64 {
	return encoded(s)
}

// Number returns the byte length of the canonical form of n.
func Number(n json.Number) int64 {
	s := string(n)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return int64(len(strconv.FormatInt(i, 10)))
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return int64(len(strconv.FormatUint(u, 10)))
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return int64(len(s))
	}
	return Float(f)
}

// Float returns the byte length of f as encoding/json writes it.
func Float(f float64) int64 {
	return encoded(f)
}

func encoded(v any) int64 {
	var w countWriter
	enc := json.NewEncoder(&w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return int64(len(fmt.Sprint(v)))
	}
	// Encode terminates every value with a newline.
	return w.n - 1
}
