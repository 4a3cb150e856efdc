package model

import "time"

// Expense is a single spending record tagged with a normalized category and
// a YYYY-MM-DD date.
type Expense struct {
	CreatedAt time.Time
	Date      string
	Category  string
	Amount    float64
	ID        int64
}
