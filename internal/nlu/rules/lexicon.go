package rules

import (
	"regexp"

	"gig-copilot/internal/model"
)

type cue struct {
	re     *regexp.Regexp
	weight float64
}

func c(pattern string, weight float64) cue {
	return cue{re: regexp.MustCompile(`(?i)` + pattern), weight: weight}
}

const (
	componentPattern = `\b(brakes?|engine|tyres?|tires?|clutch|battery|chain|headlights?|indicators?|horn|wipers?|a/?c|air conditioner|suspension|gear ?box|gears?|oil|coolant|radiator|steering|exhaust|silencer|mirrors?|windshield|bumper|accelerator|fuel pump|spark plugs?|alternator|starter|puncture)\b`
	symptomPattern   = `\b(nois(e|y)|squeak(ing|s|y)?|grind(ing|s)?|rattl(e|ing)|vibrat(e|es|ing|ion)|leak(ing|s)?|smoke|smoking|overheat(ing|ed|s)?|won'?t start|not starting|flat|puncture(d)?|pulling|stall(s|ing|ed)?|broke(n)?|stuck|weak|dead|came on|is on|knocking|wobbl(e|ing))\b`
)

var categoryCues = map[model.Category][]cue{
	model.CategoryTripAction: {
		c(`\b(trip|ride|drop|delivery|order)\b`, 1.5),
		c(`\b(completed|finished|just did|done|dropped( off)?|picked up|delivered)\b`, 1),
		c(`\bfrom\s+\S+.*\bto\s+\S+`, 2),
		c(`\b(fare|got paid)\b`, 1),
	},
	model.CategoryVehicleAction: {
		c(componentPattern, 2),
		c(symptomPattern, 1.5),
		c(`\b(warning|check engine|engine|oil|battery) light\b`, 1.5),
	},
	model.CategoryGoalAction: {
		c(`\bgoal\b`, 1.5),
		c(`\b(saved|save|put aside|set aside|kept aside|deposited|contributed)\b`, 1.5),
		c(`\b(towards|toward|into)\s+(my|the)\b`, 1),
		c(`\b(new|create|start|set up|setup)\b.*\b(goal|fund)\b`, 1.5),
		c(`\b(want|wanna|planning|hoping|trying) to save\b`, 1),
	},
	model.CategoryEarningsAnalysis: {
		c(`\b(earn|earned|earning|earnings|income)\b`, 1.5),
		c(`\b(how much|total)\b`, 1),
		c(`\b(zones?|areas?|peak|busiest|best time|best hours?)\b`, 1.5),
		c(`\b(this|last|past) (week|month|\d+ days)\b|\btoday\b|\byesterday\b`, 0.5),
		c(`\b(trend|compare|compared|better than|worse than)\b`, 1),
		c(`\b(pay|pays|paid|paying) (the )?(best|most|more)\b`, 1),
	},
	model.CategoryVehicleAnalysis: {
		c(`\bhow('s| is| are)\s+my\s+(bike|car|vehicle|auto|scooter|tyres?|brakes?)\b`, 3),
		c(`\b(vehicle|bike|car) (health|report|history|status)\b`, 3),
		c(`\b(service|maintenance)\s+(history|due|schedule|needed)\b`, 2.5),
		c(`\bwhen should i (get|service)\b`, 2.5),
		c(`\bhow many (issues|problems)\b`, 2),
	},
	model.CategoryFinancialAnalysis: {
		c(`\b(afford|budget|budgeting|financial|finances|plan)\b`, 2),
		c(`\b(when will i|how long)\b.*\b(reach|hit|save|achieve|complete)\b`, 2.5),
		c(`\b(spending|expenses?|savings plan)\b`, 1.5),
		c(`\bhow much (should|can) i save\b`, 3),
	},
	model.CategoryGeneral: {
		c(`^\s*(hi|hello|hey|namaste|thanks|thank you|ok|okay|bye)\b`, 2),
		c(`\b(who are you|what can you do|help me)\b`, 2),
	},
}

var cancelRe = regexp.MustCompile(`(?i)^\s*(?:(?:no|nah|ok|okay|oh)[,\s]+)?(?:cancel(?:\s+(?:that|it|this))?|never\s?mind|nvm|forget (?:it|that|about it)|skip(?:\s+(?:it|that|this))?|leave it|stop)\s*[.!]*\s*$`)

var questionRe = regexp.MustCompile(`(?i)^\s*(how|what|which|when|where|why|should|can|could|is|are|do|does|did|show|tell|give)\b|\?\s*$`)

// Slot patterns.
var (
	fromToRe = regexp.MustCompile(`(?i)\bfrom\s+([a-z][\w .'-]*?)\s+to\s+([a-z][\w .'-]*?)(?:\s+(?:for|and|earned|earning|made|with|at|on|via|in|by|after|which|got|today|yesterday)\b|[,.!?;]|\s+₹|\s+rs\b|\s+\d+(?:,\d+)*(?:\.\d+)?\s*(?:rupees?|rs\b|inr\b|k\b|$)|\s*$)`)
	toFromRe = regexp.MustCompile(`(?i)\bto\s+([a-z][\w .'-]*?)\s+from\s+([a-z][\w .'-]*?)(?:\s+(?:for|and|earned|earning|made|with|at|on|via|in|by|after|which|got|today|yesterday)\b|[,.!?;]|\s+₹|\s+rs\b|\s+\d+(?:,\d+)*(?:\.\d+)?\s*(?:rupees?|rs\b|inr\b|k\b|$)|\s*$)`)
	pickedRe = regexp.MustCompile(`(?i)\bpicked up (?:\w+ )?(?:at|from)\s+([a-z][\w .'-]*?)(?:\s+(?:and|for|then)\b|[,.!?;]|\s*$)`)
	droppedRe = regexp.MustCompile(`(?i)\bdropped (?:off )?(?:\w+ )?(?:at|in)\s+([a-z][\w .'-]*?)(?:\s+(?:and|for|then)\b|[,.!?;]|\s*$)`)
	barePlaceRe = regexp.MustCompile(`(?i)^\s*(?:from|to|at|in|it was|pickup|pick ?up|drop|dropoff|drop ?off)?\s*([a-z][\w .'-]{1,40}?)\s*[.!]?\s*$`)
	barePairRe  = regexp.MustCompile(`(?i)^\s*([a-z][\w .'-]*?)\s+to\s+([a-z][\w .'-]*?)\s*[.!]?\s*$`)

	platformRe  = regexp.MustCompile(`(?i)\b(uber|ola|rapido|swiggy|zomato|dunzo|porter|blinkit|zepto|bluesmart)\b`)
	componentRe = regexp.MustCompile(`(?i)` + componentPattern)
	fillerRe    = regexp.MustCompile(`(?i)^\s*(hey|hi|so|ok|okay|um|i think|i guess|looks like|seems like)[,\s]+`)

	fuelCueRe     = regexp.MustCompile(`(?i)\b(fuel|petrol|diesel|cng|gas)\b`)
	fuelAfterRe   = regexp.MustCompile(`(?i)^\s*(?:rupees?|rs\.?|inr|bucks)?\s*(?:(?:on|for|in|of|worth of)\s+)?(?:the\s+|my\s+)?(?:fuel|petrol|diesel|cng|gas)\b`)
	earningsCueRe = regexp.MustCompile(`(?i)\b(for|earned|got|made|paid|fare|earning|earnings|received|collected)\s*$`)
	targetCueRe   = regexp.MustCompile(`(?i)\b(goal of|target of|target|of|worth|costs?|costing|need|needs|price)\s*$`)

	goalNameRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:towards|toward|for|into|to|in)\s+(?:my|the|a|an)\s+([a-z][\w '-]*?)\s+(?:goal|fund|savings?)\b`),
		regexp.MustCompile(`(?i)\b(?:goal|fund)\s+(?:for|called|named|of buying|to buy)\s+(?:a |an |my |the )?([a-z][\w '-]*?)(?:\s+(?:of|with|worth|for|target|by|costing)\b|[,.!?]|\s+₹|\s+rs\b|\s+\d+(?:,\d+)*(?:\.\d+)?\s*(?:rupees?|rs\b|inr\b|k\b|$)|\s*$)`),
		regexp.MustCompile(`(?i)\bsav(?:e|ing) (?:up )?(?:for|towards)\s+(?:a |an |my |the )?([a-z][\w '-]*?)(?:\s+(?:of|with|worth|costing|by)\b|[,.!?]|\s+₹|\s+rs\b|\s+\d+(?:,\d+)*(?:\.\d+)?\s*(?:rupees?|rs\b|inr\b|k\b|$)|\s*$)`),
		regexp.MustCompile(`(?i)\bsav(?:e|ed|ing)\s+(?:up\s+)?(?:[\w₹.,]+\s+){1,4}?(?:for|towards)\s+(?:a |an |my |the )?([a-z][\w '-]*?)(?:\s+(?:of|with|worth|costing|by|today|yesterday)\b|[,.!?]|\s*$)`),
		regexp.MustCompile(`(?i)\bmy\s+([a-z][\w'-]*)\s+(?:goal|fund)\b`),
	}
	goalCreateRe     = regexp.MustCompile(`(?i)\b(create|set up|setup|start|new|make|open)\b[^.]*\b(goal|fund)\b|\bgoal of\b|\btarget of\b|\bwant to save (?:up )?(?:for|towards)\b|\b(?:want|wanna|planning|hoping) to save\b[^.,]*?\bfor\b|\bsaving (?:up )?for\b`)
	goalContributeRe = regexp.MustCompile(`(?i)\b(saved|save|put|added|add|deposited|contributed|set aside|kept aside|transferred|moved)\b`)

	rangeRe = regexp.MustCompile(`(?i)\b(today|yesterday|this week|last week|this month|last month|(?:last|past) \d+ days)\b`)
	focusRes = []struct {
		re    *regexp.Regexp
		focus string
	}{
		{regexp.MustCompile(`(?i)\b(zones?|areas?|locations?)\b`), "zones"},
		{regexp.MustCompile(`(?i)\b(hours?|peak|time of day|best time)\b`), "hours"},
		{regexp.MustCompile(`(?i)\b(trend|compare|compared|better|worse)\b`), "trend"},
		{regexp.MustCompile(`(?i)\b(fuel|petrol|diesel)\b`), "fuel"},
	}
)
