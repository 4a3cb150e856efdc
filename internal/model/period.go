package model

// Period selects the calendar bucket used by summary reports.
type Period string

const (
	// PeriodMonthly buckets records by calendar month.
	PeriodMonthly Period = "monthly"
	// PeriodAnnual buckets records by calendar year.
	PeriodAnnual Period = "annually"
)

// Valid reports whether the period is a known bucketing mode.
func (p Period) Valid() bool {
	return p == PeriodMonthly || p == PeriodAnnual
}

// ParsePeriod normalizes a raw period token and reports whether it names a
// known bucketing mode.
func ParsePeriod(s string) (Period, bool) {
	p := Period(Normalize(s))
	return p, p.Valid()
}

// Truncate reduces a YYYY-MM-DD date to the period's bucket key: the
// year-month prefix for monthly, the year prefix for annual. Two dates fall
// in the same bucket iff their truncated representations are equal.
func (p Period) Truncate(date string) string {
	switch p {
	case PeriodMonthly:
		if len(date) >= 7 {
			return date[:7]
		}
	case PeriodAnnual:
		if len(date) >= 4 {
			return date[:4]
		}
	}
	return date
}
