package dispatch

import (
	"strings"

	"gig-copilot/internal/model"
)

var severityAdvice = map[model.Severity][]string{
	model.SeverityHigh: {
		"Stop driving and get it inspected today.",
		"Do not take rides or deliveries until it is fixed.",
	},
	model.SeverityMedium: {
		"Book a mechanic visit within the week.",
		"Note when it happens so the mechanic can find it faster.",
	},
	model.SeverityLow: {
		"Get it looked at during your next regular service.",
	},
}

// componentAdvice is checked in order; the first key found in the
// component or issue text adds its tip.
var componentAdvice = []struct {
	key string
	tip string
}{
	{"brake", "Ask for the brake pads, discs and brake fluid to be checked."},
	{"steering", "Have the steering and wheel alignment checked."},
	{"tyre", "Check tyre pressure and tread, and the spare."},
	{"tire", "Check tyre pressure and tread, and the spare."},
	{"puncture", "Check tyre pressure and tread, and the spare."},
	{"engine", "Check engine oil and coolant levels before the next trip."},
	{"overheat", "Check coolant level once the engine is cool."},
	{"battery", "Check the battery terminals for corrosion and get the charge tested."},
	{"clutch", "Have the clutch plate and cable adjusted."},
	{"chain", "Clean and lubricate the chain and check its slack."},
	{"light", "Replace the bulb or fuse; driving at night without lights risks a fine."},
	{"smoke", "Switch off the engine and check for leaks before restarting."},
	{"leak", "Find out what is leaking; fuel or brake fluid leaks are urgent."},
	{"suspension", "Have the shock absorbers and bushes inspected."},
	{"a/c", "Get the A/C gas and filter checked."},
	{"air con", "Get the A/C gas and filter checked."},
}

// recommend returns deterministic advice for a reported concern.
func recommend(sev model.Severity, component, issue string) []string {
	out := append([]string(nil), severityAdvice[sev]...)
	text := strings.ToLower(component + " " + issue)
	for _, a := range componentAdvice {
		if containsWord(text, a.key) {
			out = append(out, a.tip)
			break
		}
	}
	return out
}

// containsWord matches key at a word start, so "light" hits "lights" but not "flight".
func containsWord(text, key string) bool {
	for i := 0; ; {
		j := strings.Index(text[i:], key)
		if j < 0 {
			return false
		}
		j += i
		if j == 0 || !isWordByte(text[j-1]) {
			return true
		}
		i = j + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

// nextCheckInDays is the follow-up interval for a severity.
func nextCheckInDays(sev model.Severity) int {
	switch sev {
	case model.SeverityHigh:
		return 1
	case model.SeverityLow:
		return 30
	default:
		return 7
	}
}
