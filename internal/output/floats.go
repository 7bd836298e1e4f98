package output

import (
	"math"
	"strconv"
	"strings"
)

// RoundFloat rounds a float to max 6 decimal places
func RoundFloat(f float64) float64 {
	multiplier := math.Pow(10, 6)
	return math.Round(f*multiplier) / multiplier
}

// FormatFloat formats a float with at most decimals places and no trailing zeros
func FormatFloat(f float64, decimals int) string {
	str := strconv.FormatFloat(f, 'f', decimals, 64)

	if strings.Contains(str, ".") {
		str = strings.TrimRight(str, "0")
		str = strings.TrimRight(str, ".")
	}

	return str
}

// FormatPercent renders a 0..1 share as a percentage with one decimal place.
func FormatPercent(share float64) string {
	return FormatFloat(share*100, 1) + "%"
}
