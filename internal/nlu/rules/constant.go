package rules

// Name identifies this capability in logs.
const Name = "rules"

// Scoring parameters for the lexicon classifier.
const (
	// QuestionActionPenalty scales action scores when the utterance is phrased as a question.
	QuestionActionPenalty = 0.5
	// ConfidenceScale controls how fast confidence saturates with cue weight.
	ConfidenceScale = 1.5
	// NoCueConfidence is reported for general when no cue fired at all.
	NoCueConfidence = 0.5
	// LastIntentBoost is added to a cued action matching the previous turn's intent.
	LastIntentBoost = 1.0
)

// Slot confidences.
const (
	PatternConfidence  = 0.9
	FallbackConfidence = 0.7
)

// FuelCueGap bounds how far after a fuel word its amount may appear.
const FuelCueGap = 25
