package repository

import (
	"strings"
	"time"
)

// NormaliseName folds a goal name for uniqueness checks.
func NormaliseName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// InRange reports whether t falls in [from, to). Zero bounds are open.
func InRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}
