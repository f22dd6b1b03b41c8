package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the marketplace export format for every *_date / *_timestamp column.
const TimestampLayout = "2006-01-02 15:04:05"

// ToFloat parses a numeric cell. Missing cells yield NaN and no error.
func ToFloat(cell string, missing bool) (float64, error) {
	if missing {
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return math.NaN(), fmt.Errorf("invalid number %q: %w", cell, err)
	}
	return f, nil
}

// ToTime parses a timestamp cell. Missing cells yield ok=false and no error;
// date-only values are accepted.
func ToTime(cell string, missing bool) (t time.Time, ok bool, err error) {
	if missing {
		return time.Time{}, false, nil
	}
	s := strings.TrimSpace(cell)
	if t, err = time.Parse(TimestampLayout, s); err == nil {
		return t, true, nil
	}
	if t, err = time.Parse(time.DateOnly, s); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, fmt.Errorf("invalid timestamp %q", cell)
}

// Days converts a duration into fractional days.
func Days(d time.Duration) float64 {
	return d.Hours() / 24
}

// ToBool converts query and flag strings to bool ("1", "true", "yes" are true).
func ToBool(val string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "":
		return fallback
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
