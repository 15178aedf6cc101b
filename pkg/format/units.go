// Package format renders nutrition quantities for display.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/crisk221/jm-peak-performance-sub000/pkg/mathutil"
)

// Kcal returns whole kilocalories with thousands separators (e.g., "2,150 kcal").
func Kcal(value float64) string {
	return groupedInteger(value) + " kcal"
}

// Grams returns a gram amount with one decimal place (e.g., "152.5 g").
func Grams(value float64) string {
	return fmt.Sprintf("%.1f g", value)
}

// Servings returns a serving count without trailing zeros (e.g., "1.25", "2").
func Servings(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// Delta returns a signed percentage difference of actual from target
// (e.g., "+4.4%"). A zero target yields "n/a".
func Delta(actual, target float64) string {
	if target == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%+.1f%%", mathutil.CalculatePercentage(actual-target, target))
}

func groupedInteger(value float64) string {
	rounded := math.Round(value)
	sign := ""
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}
	intPart := strconv.FormatFloat(rounded, 'f', 0, 64)

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return sign + intPart
}
