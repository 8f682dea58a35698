package datemath_test

import (
	"testing"
	"time"

	"gig-copilot/pkg/datemath"
)

func TestNewParser(t *testing.T) {
	_, err := datemath.NewParser("Asia/Kolkata")
	if err != nil {
		t.Fatalf("unexpected error creating valid parser: %v", err)
	}

	_, err = datemath.NewParser("Invalid/Timezone")
	if err == nil {
		t.Fatalf("expected error for invalid timezone")
	}
}

func TestRange(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	baseTime := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC) // Wednesday, May 1, 2024
	day := func(m time.Month, d int) time.Time { return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name   string
		text   string
		from   time.Time
		to     time.Time
		label  string
		wantOK bool
	}{
		{name: "Today", text: "how much did I make today?", from: day(5, 1), to: day(5, 2), label: "today", wantOK: true},
		{name: "Yesterday", text: "yesterday", from: day(4, 30), to: day(5, 1), label: "yesterday", wantOK: true},
		{name: "This week starts Monday", text: "earnings this week", from: day(4, 29), to: day(5, 2), label: "this week", wantOK: true},
		{name: "Last week", text: "compare last week", from: day(4, 22), to: day(4, 29), label: "last week", wantOK: true},
		{name: "Past week", text: "in the past  week", from: day(4, 22), to: day(4, 29), label: "last week", wantOK: true},
		{name: "This month", text: "this month", from: day(5, 1), to: day(5, 2), label: "this month", wantOK: true},
		{name: "Last month", text: "Last Month", from: day(4, 1), to: day(5, 1), label: "last month", wantOK: true},
		{name: "Last 7 days", text: "last 7 days", from: day(4, 25), to: day(5, 2), label: "last 7 days", wantOK: true},
		{name: "Past 2 weeks", text: "past 2 weeks", from: day(4, 18), to: day(5, 2), label: "last 2 weeks", wantOK: true},
		{name: "Last 3 months", text: "last 3 months", from: day(2, 2), to: day(5, 2), label: "last 3 months", wantOK: true},
		{name: "No period", text: "which zones pay best", wantOK: false},
		{name: "Zero days", text: "last 0 days", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parser.Range(tt.text, baseTime)
			if ok != tt.wantOK {
				t.Fatalf("Range() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !got.From.Equal(tt.from) || !got.To.Equal(tt.to) {
				t.Errorf("Range() got [%v, %v), want [%v, %v)", got.From, got.To, tt.from, tt.to)
			}
			if got.Label != tt.label {
				t.Errorf("Range() label = %q, want %q", got.Label, tt.label)
			}
		})
	}
}

func TestLastDays(t *testing.T) {
	parser, _ := datemath.NewParser("Asia/Kolkata")
	base := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC) // 01:30 on May 2 in Kolkata
	got := parser.LastDays(30, base)

	loc, _ := time.LoadLocation("Asia/Kolkata")
	wantTo := time.Date(2024, 5, 3, 0, 0, 0, 0, loc)
	if !got.To.Equal(wantTo) {
		t.Errorf("LastDays() to = %v, want %v", got.To, wantTo)
	}
	if got.To.Sub(got.From) != 30*24*time.Hour {
		t.Errorf("LastDays() spans %v", got.To.Sub(got.From))
	}
}
