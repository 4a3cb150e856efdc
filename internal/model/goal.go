package model

// Goal is a savings target with a date window and cumulative progress.
// SavedSoFar only ever grows; completion is derived, never stored.
type Goal struct {
	Name         string
	StartDate    string
	EndDate      string
	TargetAmount float64
	SavedSoFar   float64
	ID           int64
}

// Remaining returns the amount still needed to reach the target, clamped at
// zero once the goal is overfunded.
func (g Goal) Remaining() float64 {
	r := g.TargetAmount - g.SavedSoFar
	if r < 0 {
		return 0
	}
	return r
}

// Completed reports whether the cumulative savings have reached the target.
func (g Goal) Completed() bool {
	return g.SavedSoFar >= g.TargetAmount
}
