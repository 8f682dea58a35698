package datemath

import "time"

// Range is a half-open interval [From, To) with a human label.
type Range struct {
	From  time.Time
	To    time.Time
	Label string
}
