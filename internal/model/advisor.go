package model

import "time"

// TimeRange is a half-open interval [From, To).
type TimeRange struct {
	From  time.Time
	To    time.Time
	Label string
}

// Duration returns the length of the range.
func (r TimeRange) Duration() time.Duration {
	return r.To.Sub(r.From)
}

// Previous returns the window of equal length right before r.
func (r TimeRange) Previous() TimeRange {
	d := r.Duration()
	return TimeRange{From: r.From.Add(-d), To: r.From, Label: "previous " + r.Label}
}

// Contains reports whether t falls in the range.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && t.Before(r.To)
}

// AdvisorQuery is a read-only analytical question.
type AdvisorQuery struct {
	Kind  AnalysisKind
	Range TimeRange
	Focus string
}
