package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parser converts relative period phrases into absolute ranges.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string.
// e.g. "Asia/Kolkata"
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

var (
	lastNRe  = regexp.MustCompile(`\b(?:last|past|previous)\s+(\d{1,3})\s+(day|days|week|weeks|month|months)\b`)
	periodRe = regexp.MustCompile(`\b(today|yesterday|(?:this|last|past|previous)\s+(?:week|month|year))\b`)
)

// Range finds the first period phrase in text and resolves it against
// baseTime. ok is false when text names no period. Open periods such as
// "this week" end at the close of baseTime's day.
func (p *Parser) Range(text string, baseTime time.Time) (Range, bool) {
	text = strings.ToLower(text)
	today := p.startOfDay(baseTime)
	tomorrow := today.AddDate(0, 0, 1)

	if m := lastNRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		if n <= 0 {
			return Range{}, false
		}
		label := fmt.Sprintf("last %d %s", n, m[2])
		switch {
		case strings.HasPrefix(m[2], "day"):
			return Range{From: today.AddDate(0, 0, 1-n), To: tomorrow, Label: label}, true
		case strings.HasPrefix(m[2], "week"):
			return Range{From: today.AddDate(0, 0, 1-7*n), To: tomorrow, Label: label}, true
		default:
			return Range{From: tomorrow.AddDate(0, -n, 0), To: tomorrow, Label: label}, true
		}
	}

	m := periodRe.FindString(text)
	if m == "" {
		return Range{}, false
	}
	m = strings.Join(strings.Fields(m), " ")
	m = strings.Replace(strings.Replace(m, "past ", "last ", 1), "previous ", "last ", 1)

	switch m {
	case "today":
		return Range{From: today, To: tomorrow, Label: m}, true
	case "yesterday":
		return Range{From: today.AddDate(0, 0, -1), To: today, Label: m}, true
	case "this week":
		return Range{From: p.startOfWeek(today), To: tomorrow, Label: m}, true
	case "last week":
		start := p.startOfWeek(today)
		return Range{From: start.AddDate(0, 0, -7), To: start, Label: m}, true
	case "this month":
		return Range{From: p.startOfMonth(today), To: tomorrow, Label: m}, true
	case "last month":
		start := p.startOfMonth(today)
		return Range{From: start.AddDate(0, -1, 0), To: start, Label: m}, true
	case "this year":
		return Range{From: time.Date(today.Year(), 1, 1, 0, 0, 0, 0, p.location), To: tomorrow, Label: m}, true
	case "last year":
		start := time.Date(today.Year(), 1, 1, 0, 0, 0, 0, p.location)
		return Range{From: start.AddDate(-1, 0, 0), To: start, Label: m}, true
	}
	return Range{}, false
}

// LastDays is the n-day window ending with baseTime's day.
func (p *Parser) LastDays(n int, baseTime time.Time) Range {
	tomorrow := p.startOfDay(baseTime).AddDate(0, 0, 1)
	return Range{From: tomorrow.AddDate(0, 0, -n), To: tomorrow, Label: fmt.Sprintf("last %d days", n)}
}

// startOfDay returns midnight at the start of the given day in the parser's timezone.
func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// startOfWeek returns the Monday on or before day.
func (p *Parser) startOfWeek(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func (p *Parser) startOfMonth(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, p.location)
}
