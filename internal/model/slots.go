package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Slot names shared by the extractor, dispatcher and composer.
const (
	SlotPickup       = "pickup"
	SlotDropoff      = "dropoff"
	SlotEarnings     = "earnings"
	SlotFuelCost     = "fuel_cost"
	SlotPlatform     = "platform"
	SlotIssue        = "issue"
	SlotComponent    = "component"
	SlotSeverity     = "severity"
	SlotGoalName     = "goal_name"
	SlotGoalOp       = "operation"
	SlotTargetAmount = "target_amount"
	SlotContribution = "contribution_amount"
	SlotRange        = "range"
	SlotFocus        = "focus"
)

// Slot is one extracted field. Absence is explicit: a slot that could not be
// read has Present=false and an empty Value, never a zero amount.
type Slot struct {
	Value      string  `json:"value,omitempty"`
	Raw        string  `json:"raw,omitempty"`
	Present    bool    `json:"present"`
	Confidence float64 `json:"confidence,omitempty"`
	// Defaulted marks values filled from policy rather than from the text.
	Defaulted bool `json:"defaulted,omitempty"`
}

// ExtractedSlots maps field name to slot. Missing keys mean absent.
type ExtractedSlots map[string]Slot

// Has reports whether name is present.
func (s ExtractedSlots) Has(name string) bool {
	return s[name].Present
}

// String returns the value of a present slot.
func (s ExtractedSlots) String(name string) (string, bool) {
	sl, ok := s[name]
	if !ok || !sl.Present {
		return "", false
	}
	return sl.Value, true
}

// Money returns the amount of a present money slot.
func (s ExtractedSlots) Money(name string) (decimal.Decimal, bool) {
	v, ok := s.String(name)
	if !ok {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Set stores a present slot.
func (s ExtractedSlots) Set(name, value, raw string, confidence float64) {
	s[name] = Slot{Value: strings.TrimSpace(value), Raw: raw, Present: true, Confidence: confidence}
}

// Drop removes a field so it reads as absent.
func (s ExtractedSlots) Drop(name string) {
	delete(s, name)
}

// Clone returns an independent copy.
func (s ExtractedSlots) Clone() ExtractedSlots {
	out := make(ExtractedSlots, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Merge returns a copy of s where every present slot of newer wins.
func (s ExtractedSlots) Merge(newer ExtractedSlots) ExtractedSlots {
	out := s.Clone()
	for k, v := range newer {
		if v.Present {
			out[k] = v
		}
	}
	return out
}

// Present lists the names of present slots.
func (s ExtractedSlots) Present() []string {
	var names []string
	for k, v := range s {
		if v.Present {
			names = append(names, k)
		}
	}
	return names
}
