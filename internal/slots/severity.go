package slots

import (
	"regexp"

	"gig-copilot/internal/model"
)

type severityRule struct {
	re       *regexp.Regexp
	severity model.Severity
}

// Ontology rules are checked in order; the first hit wins, so high comes first.
var severityRules = []severityRule{
	{regexp.MustCompile(`(?i)\bbrakes?\b`), model.SeverityHigh},
	{regexp.MustCompile(`(?i)\bsteering\b`), model.SeverityHigh},
	{regexp.MustCompile(`(?i)\b(smoke|smoking|fire|burning smell|sparks?)\b`), model.SeverityHigh},
	{regexp.MustCompile(`(?i)\b(fuel|petrol|diesel|gas|cng) leak`), model.SeverityHigh},
	{regexp.MustCompile(`(?i)\boverheat(ing|ed|s)?\b`), model.SeverityHigh},
	{regexp.MustCompile(`(?i)\b(won'?t start|not starting|does ?n[o']t start|dead engine|engine (died|dies|stalls?))\b`), model.SeverityHigh},
	{regexp.MustCompile(`(?i)\b(tyre|tire) (burst|blew|blown)\b|\bblowout\b`), model.SeverityHigh},
	{regexp.MustCompile(`(?i)\baccelerator (stuck|jammed)\b`), model.SeverityHigh},

	{regexp.MustCompile(`(?i)\b(warning|check engine|engine|oil|battery) light\b`), model.SeverityMedium},
	{regexp.MustCompile(`(?i)\b(nois(e|y)|squeak\w*|grind\w*|rattl\w*|knock\w*|vibrat\w*|wobbl\w*|pulling)\b`), model.SeverityMedium},
	{regexp.MustCompile(`(?i)\b(clutch|gear ?box|gears?|suspension|coolant|radiator|alternator|spark plugs?|chain)\b`), model.SeverityMedium},
	{regexp.MustCompile(`(?i)\bbattery\b`), model.SeverityMedium},
	{regexp.MustCompile(`(?i)\b(oil leak|leak\w*)\b`), model.SeverityMedium},
	{regexp.MustCompile(`(?i)\b(puncture\w*|flat (tyre|tire)|low (tyre|tire) pressure)\b`), model.SeverityMedium},
	{regexp.MustCompile(`(?i)\bheadlights?\b`), model.SeverityMedium},

	{regexp.MustCompile(`(?i)\b(scratch\w*|dent\w*|wipers?|horn|a/?c|air conditioner|mirrors?|seat|paint|music|stereo|cosmetic|indicators?|bumper)\b`), model.SeverityLow},
}

// ClassifySeverity grades a description using the keyword ontology. ok is
// false when nothing matched; callers then apply model.DefaultSeverity.
func ClassifySeverity(texts ...string) (model.Severity, string, bool) {
	for _, rule := range severityRules {
		for _, t := range texts {
			if m := rule.re.FindString(t); m != "" {
				return rule.severity, m, true
			}
		}
	}
	return "", "", false
}
