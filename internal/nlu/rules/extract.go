package rules

import (
	"slices"
	"strings"

	"gig-copilot/internal/model"
	"gig-copilot/internal/nlu"
	"gig-copilot/pkg/money"
)

func (e *Engine) extract(req nlu.Request) nlu.Guess {
	text := strings.TrimSpace(req.Text)
	want := make(map[string]bool, len(req.Fields))
	for _, f := range req.Fields {
		want[f.Name] = true
	}
	out := make(map[string]nlu.SlotGuess)
	put := func(name, value string, conf float64) {
		value = cleanSpan(value)
		if want[name] && value != "" {
			out[name] = nlu.SlotGuess{Value: value, Confidence: conf}
		}
	}

	if want[model.SlotPickup] || want[model.SlotDropoff] {
		extractPlaces(text, req.Focus, put)
	}
	if want[model.SlotEarnings] || want[model.SlotFuelCost] {
		extractTripMoney(text, req.Focus, put)
	}
	if m := platformRe.FindStringSubmatch(text); m != nil {
		put(model.SlotPlatform, strings.ToLower(m[1]), PatternConfidence)
	}

	if want[model.SlotIssue] {
		issue := strings.TrimRight(fillerRe.ReplaceAllString(text, ""), " .!?")
		put(model.SlotIssue, issue, FallbackConfidence)
	}
	if m := componentRe.FindStringSubmatch(text); m != nil {
		put(model.SlotComponent, normaliseComponent(m[1]), PatternConfidence)
	}

	if want[model.SlotGoalOp] || want[model.SlotGoalName] {
		extractGoal(text, req.Focus, put)
	}

	if m := rangeRe.FindStringSubmatch(text); m != nil {
		put(model.SlotRange, strings.ToLower(m[1]), PatternConfidence)
	}
	for _, f := range focusRes {
		if f.re.MatchString(text) {
			put(model.SlotFocus, f.focus, PatternConfidence)
			break
		}
	}

	return nlu.Guess{Slots: out}
}

func extractPlaces(text string, focus []string, put func(string, string, float64)) {
	if m := fromToRe.FindStringSubmatch(text); m != nil {
		put(model.SlotPickup, m[1], PatternConfidence)
		put(model.SlotDropoff, m[2], PatternConfidence)
		return
	}
	if m := toFromRe.FindStringSubmatch(text); m != nil {
		put(model.SlotDropoff, m[1], PatternConfidence)
		put(model.SlotPickup, m[2], PatternConfidence)
		return
	}

	found := false
	if m := pickedRe.FindStringSubmatch(text); m != nil {
		put(model.SlotPickup, m[1], PatternConfidence)
		found = true
	}
	if m := droppedRe.FindStringSubmatch(text); m != nil {
		put(model.SlotDropoff, m[1], PatternConfidence)
		found = true
	}
	if found || len(focus) == 0 || len(money.Find(text)) > 0 {
		return
	}

	// Follow-up answers such as "Whitefield" or "Indiranagar to HSR".
	wantsPickup := slices.Contains(focus, model.SlotPickup)
	wantsDropoff := slices.Contains(focus, model.SlotDropoff)
	if wantsPickup && wantsDropoff {
		if m := barePairRe.FindStringSubmatch(text); m != nil {
			put(model.SlotPickup, m[1], FallbackConfidence)
			put(model.SlotDropoff, m[2], FallbackConfidence)
		}
		return
	}
	if len(strings.Fields(text)) > 5 {
		return
	}
	if m := barePlaceRe.FindStringSubmatch(text); m != nil {
		switch {
		case wantsDropoff:
			put(model.SlotDropoff, m[1], FallbackConfidence)
		case wantsPickup:
			put(model.SlotPickup, m[1], FallbackConfidence)
		}
	}
}

func extractTripMoney(text string, focus []string, put func(string, string, float64)) {
	matches := money.Find(text)
	if len(matches) == 0 {
		return
	}

	used := make([]bool, len(matches))
	if i := fuelAmount(text, matches); i >= 0 {
		put(model.SlotFuelCost, matches[i].Value.String(), PatternConfidence)
		used[i] = true
	}

	pick := -1
	for i, m := range matches {
		if !used[i] && earningsCueRe.MatchString(text[:m.Start]) {
			pick = i
			break
		}
	}
	if pick < 0 {
		for i, m := range matches {
			if !used[i] && m.Marked {
				pick = i
				break
			}
		}
	}
	if pick < 0 {
		for i := range matches {
			if !used[i] {
				pick = i
				break
			}
		}
	}
	if pick < 0 {
		return
	}

	conf := PatternConfidence
	if !matches[pick].Marked && !earningsCueRe.MatchString(text[:matches[pick].Start]) {
		conf = FallbackConfidence
	}
	// A bare number answering a fuel question is fuel, not earnings.
	if len(focus) == 1 && focus[0] == model.SlotFuelCost {
		put(model.SlotFuelCost, matches[pick].Value.String(), conf)
		return
	}
	put(model.SlotEarnings, matches[pick].Value.String(), conf)
}

// fuelAmount returns the index of the amount a fuel word governs: the
// nearest amount after "fuel"/"petrol", or the one right before "on petrol".
// An amount introduced as earnings is never fuel.
func fuelAmount(text string, matches []money.Match) int {
	earned := func(m money.Match) bool { return earningsCueRe.MatchString(text[:m.Start]) }

	for _, m := range amountsBeforeFuel(text, matches) {
		if !earned(matches[m]) {
			return m
		}
	}
	for _, loc := range fuelCueRe.FindAllStringIndex(text, -1) {
		for i, m := range matches {
			if m.Start < loc[1] {
				continue
			}
			if m.Start-loc[1] <= FuelCueGap && !earned(m) {
				return i
			}
			break
		}
	}
	return -1
}

// amountsBeforeFuel lists the amounts directly followed by "on petrol" and the like.
func amountsBeforeFuel(text string, matches []money.Match) []int {
	var out []int
	for i, m := range matches {
		if fuelAfterRe.MatchString(text[m.End:]) {
			out = append(out, i)
		}
	}
	return out
}

func extractGoal(text string, focus []string, put func(string, string, float64)) {
	op := ""
	switch {
	case goalCreateRe.MatchString(text):
		op = string(model.GoalOpCreate)
	case goalContributeRe.MatchString(text):
		op = string(model.GoalOpContribute)
	}
	if op != "" {
		put(model.SlotGoalOp, op, PatternConfidence)
	}

	for _, re := range goalNameRes {
		if m := re.FindStringSubmatch(text); m != nil {
			put(model.SlotGoalName, trimGoalWords(m[1]), PatternConfidence)
			break
		}
	}

	matches := money.Find(text)
	if len(matches) == 0 {
		return
	}
	target := -1
	for i, m := range matches {
		if targetCueRe.MatchString(text[:m.Start]) {
			target = i
			break
		}
	}
	if target < 0 && (op == string(model.GoalOpCreate) || slices.Contains(focus, model.SlotTargetAmount)) {
		target = 0
	}
	if target >= 0 {
		put(model.SlotTargetAmount, matches[target].Value.String(), PatternConfidence)
	}
	for i, m := range matches {
		if i != target {
			put(model.SlotContribution, m.Value.String(), PatternConfidence)
			break
		}
	}
}

func trimGoalWords(s string) string {
	s = strings.TrimSpace(s)
	for _, suffix := range []string{" goal", " fund", " savings", " saving"} {
		s = strings.TrimSuffix(s, suffix)
	}
	return s
}

func normaliseComponent(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "brake"):
		return "brake"
	case strings.HasPrefix(s, "tyre"), strings.HasPrefix(s, "tire"), s == "puncture":
		return "tyre"
	case strings.HasPrefix(s, "headlight"):
		return "headlight"
	case strings.HasPrefix(s, "wiper"):
		return "wiper"
	case strings.HasPrefix(s, "gear"):
		return "gearbox"
	case s == "ac", s == "a/c", s == "air conditioner":
		return "ac"
	case strings.HasPrefix(s, "spark plug"):
		return "spark plug"
	case strings.HasPrefix(s, "mirror"):
		return "mirror"
	case strings.HasPrefix(s, "indicator"):
		return "indicator"
	}
	return s
}

func cleanSpan(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, " .,!?;:'\"")
	return strings.Join(strings.Fields(s), " ")
}
