// Package numeric coerces noisy numeric cells.
package numeric

import (
	"math"
	"strconv"
	"strings"
)

// Parse returns the number in s, or false when s is not a finite number.
func Parse(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// MaxAge is the largest age accepted as a real value.
const MaxAge = 150

// Age returns completed years, or false for non-numeric values and values
// outside [0, MaxAge]. Fractional ages are truncated.
func Age(s string) (int, bool) {
	f, ok := Parse(s)
	if !ok || f < 0 || f > MaxAge {
		return 0, false
	}
	return int(math.Trunc(f)), true
}

// Coordinate parses a coordinate that may use a decimal comma.
// "-78,5" and "-78.5" both yield -78.5.
func Coordinate(s string) (float64, bool) {
	return Parse(strings.ReplaceAll(s, ",", "."))
}
