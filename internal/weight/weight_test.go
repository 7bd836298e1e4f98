package weight

import (
	"encoding/json"
	"math"
	"testing"
)

func TestOf_Scalars(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int64
	}{
		{"null", nil, 4},
		{"true", true, 4},
		{"false", false, 5},
		{"empty string", "", 2},
		{"single char", "a", 3},
		{"html is not escaped", "<>&", 5},
		{"quote is escaped", `a"b`, 6},
		{"newline is escaped", "\n", 4},
		{"control char", "\x01", 8},
		{"multibyte utf8", "é", 4},
		{"line separator", "\u2028", 8},
		{"single digit", json.Number("1"), 1},
		{"two digits", json.Number("10"), 2},
		{"negative", json.Number("-42"), 3},
		{"negative zero", json.Number("-0"), 1},
		{"trailing zero fraction", json.Number("1.50"), 3},
		{"integral float", json.Number("1.0"), 1},
		{"exponent", json.Number("1e3"), 4},
		{"beyond int64", json.Number("12345678901234567890"), 20},
		{"out of float range", json.Number("1e400"), 5},
		{"float64", 0.1, 3},
		{"float64 integral", float64(5), 1},
		{"plain int", 123, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Of(tt.value); got != tt.want {
				t.Errorf("Of(%#v) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestOf_MatchesEncodingJSON(t *testing.T) {
	values := []any{
		"hello world",
		"tab\there",
		"unicode ✓ ok",
		3.25,
		1e21,
		[]any{json.Number("1"), "x", nil},
		map[string]any{"k": true},
	}

	for _, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("json.Marshal(%#v): %v", v, err)
		}
		if got := Of(v); got != int64(len(data)) {
			t.Errorf("Of(%#v) = %d, want %d (%s)", v, got, len(data), data)
		}
	}
}

func TestOf_NonFiniteNeverPanics(t *testing.T) {
	if got := Of(math.Inf(1)); got != int64(len("+Inf")) {
		t.Errorf("Of(+Inf) = %d, want %d", got, len("+Inf"))
	}
	if got := Of(math.NaN()); got != int64(len("NaN")) {
		t.Errorf("Of(NaN) = %d, want %d", got, len("NaN"))
	}
}

func TestString(t *testing.T) {
	if got := String("abc"); got != 5 {
		t.Errorf("String(%q) = %d, want 5", "abc", got)
	}
}
