package model

import "time"

// Income is a single income record tagged with a normalized source category
// and a YYYY-MM-DD date.
type Income struct {
	CreatedAt time.Time
	Date      string
	Source    string
	Amount    float64
	ID        int64
}
