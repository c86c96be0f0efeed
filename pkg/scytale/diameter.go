package scytale

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NormalizeDiameter clamps d to at least [MinDiameter].
func NormalizeDiameter(d int) int {
	return max(d, MinDiameter)
}

// DiameterFromFloat converts an untyped numeric diameter: the value is
// floored and then clamped with [NormalizeDiameter].
//
// NaN and infinities return [ErrInvalidDiameter]. This is stricter than
// [Build], which cannot receive such values; finite values below the minimum
// are still clamped without error.
func DiameterFromFloat(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDiameter, f)
	}
	f = math.Floor(f)
	if f > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %v exceeds %d", ErrInvalidDiameter, f, math.MaxInt32)
	}
	if f < MinDiameter {
		return MinDiameter, nil
	}
	return int(f), nil
}

// ParseDiameter parses a decimal diameter such as "7" or "7.5" and applies
// [DiameterFromFloat].
func ParseDiameter(s string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDiameter, s)
	}
	return DiameterFromFloat(f)
}
