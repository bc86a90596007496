// Package period handles the calendar-month keys ("YYYY-MM") that scope
// expenses and settlement payments.
package period

import (
	"fmt"
	"regexp"
	"time"
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// IsValid reports whether the month key matches YYYY-MM with a real month.
func IsValid(month string) bool {
	if !monthPattern.MatchString(month) {
		return false
	}
	_, err := time.Parse("2006-01", month)
	return err == nil
}

// Range returns the half-open interval [start, start+1month) covered by the
// month key.
func Range(month string) (start, end time.Time, err error) {
	start, err = time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q: %w", month, err)
	}
	return start, start.AddDate(0, 1, 0), nil
}
