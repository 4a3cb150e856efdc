package model

import "time"

// DateLayout is the canonical calendar-date format for all stored dates.
const DateLayout = "2006-01-02"

// ValidDate reports whether s is a well-formed YYYY-MM-DD string denoting a
// real calendar date. time.Parse normalizes out-of-range components
// (2024-02-30 becomes 2024-03-01), so the parsed value must round-trip to
// the original text.
func ValidDate(s string) bool {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return false
	}
	return t.Format(DateLayout) == s
}
