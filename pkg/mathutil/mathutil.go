// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/crisk221/jm-peak-performance-sub000/pkg/constants"
)

// Round rounds a value to two decimals. Used for display and for making
// logical comparisons of derived macro totals.
func Round(val float64) float64 {
	return math.Round(val*100) / 100
}

// RoundToStep snaps a value to the nearest multiple of step.
func RoundToStep(val, step float64) float64 {
	if step <= 0 {
		return val
	}
	return math.Round(val/step) * step
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Clamp bounds value to the closed interval [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * 100
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}
