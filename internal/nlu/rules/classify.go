package rules

import (
	"fmt"
	"math"
	"strings"

	"gig-copilot/internal/model"
	"gig-copilot/internal/nlu"
)

func (e *Engine) classify(req nlu.Request) nlu.Guess {
	text := strings.TrimSpace(req.Text)
	labels := req.Labels
	if len(labels) == 0 {
		labels = model.Categories()
	}

	question := questionRe.MatchString(text)
	scores := make(map[model.Category]float64, len(labels))
	for _, label := range labels {
		var score float64
		for _, cu := range categoryCues[label] {
			if cu.re.MatchString(text) {
				score += cu.weight
			}
		}
		// A cued action continuing the previous turn's intent gets a lift.
		if score > 0 && label == req.LastIntent && label.IsAction() {
			score += LastIntentBoost
		}
		if question && label.IsAction() {
			score *= QuestionActionPenalty
		}
		scores[label] = score
	}

	// Ties resolve by label order so the answer is stable.
	var top, second model.Category
	for _, label := range labels {
		switch {
		case top == "" || scores[label] > scores[top]:
			top, second = label, top
		case second == "" || scores[label] > scores[second]:
			second = label
		}
	}

	s1 := scores[top]
	if s1 == 0 {
		return nlu.Guess{Label: string(model.CategoryGeneral), Confidence: NoCueConfidence, Reason: "no cue matched"}
	}
	s2 := scores[second]
	conf := (1 - math.Exp(-s1/ConfidenceScale)) * (s1 / (s1 + s2))
	conf = math.Round(conf*100) / 100

	return nlu.Guess{
		Label:      string(top),
		Confidence: conf,
		Reason:     fmt.Sprintf("score %.1f vs %s %.1f", s1, second, s2),
	}
}
