// Package datetime provides date and time utility functions.
package datetime

import (
	"strings"
	"time"

	"github.com/crisk221/jm-peak-performance-sub000/pkg/constants"
)

const (
	// DateLayout is the format expected in config files and is also the output
	// date format.
	DateLayout = constants.DateLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseOptionalDate parses a plan start date. An empty string yields the zero
// time and no error.
func ParseOptionalDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, trimmed)
}

// DayLabels returns the formatted calendar date of each of days consecutive
// days starting at start. A zero start yields empty labels.
func DayLabels(start time.Time, days int) []string {
	if days <= 0 {
		return nil
	}
	labels := make([]string, days)
	if start.IsZero() {
		return labels
	}
	for i := range labels {
		labels[i] = start.AddDate(0, 0, i).Format(DateLayout)
	}
	return labels
}
