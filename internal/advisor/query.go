package advisor

import (
	"strings"

	"gig-copilot/internal/model"
)

var focusCues = []struct {
	focus string
	words []string
}{
	{FocusZones, []string{"zone", "zones", "area", "areas", "where"}},
	{FocusHours, []string{"hour", "hours", "time", "when", "shift"}},
	{FocusFuel, []string{"fuel", "petrol", "diesel", "cng"}},
	{FocusTrend, []string{"trend", "compare", "compared", "growing", "dropping", "better", "worse"}},
}

func (r *implRouter) Query(kind model.AnalysisKind, text string, slots model.ExtractedSlots) model.AdvisorQuery {
	now := r.now()
	q := model.AdvisorQuery{Kind: kind}

	q.Range = r.defaultRange()
	for _, candidate := range rangeTexts(text, slots) {
		if rg, ok := r.parser.Range(candidate, now); ok {
			q.Range = model.TimeRange{From: rg.From, To: rg.To, Label: rg.Label}
			break
		}
	}

	if f, ok := slots.String(model.SlotFocus); ok {
		q.Focus = f
	} else {
		q.Focus = focusFromText(text)
	}
	return q
}

// rangeTexts lists where a period phrase may be found, the extracted slot first.
func rangeTexts(text string, slots model.ExtractedSlots) []string {
	if v, ok := slots.String(model.SlotRange); ok {
		return []string{v, text}
	}
	return []string{text}
}

func (r *implRouter) defaultRange() model.TimeRange {
	rg := r.parser.LastDays(r.opts.RangeDays, r.now())
	return model.TimeRange{From: rg.From, To: rg.To, Label: rg.Label}
}

func focusFromText(text string) string {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z')
	}) {
		words[w] = true
	}
	for _, c := range focusCues {
		for _, w := range c.words {
			if words[w] {
				return c.focus
			}
		}
	}
	return ""
}
