package rules

import (
	"strings"

	"gig-copilot/internal/model"
)

// Signals summarises the lexical cues of an utterance without scoring it.
type Signals struct {
	Question bool
	// Cancel means the utterance withdraws whatever was being asked ("never mind").
	Cancel bool
	// Cued lists every category with at least one matching cue, in category order.
	Cued []model.Category
}

// CuesOther reports whether any category other than c was cued.
func (s Signals) CuesOther(c model.Category) bool {
	for _, cued := range s.Cued {
		if cued != c {
			return true
		}
	}
	return false
}

// Inspect reads the lexicon signals of text.
func Inspect(text string) Signals {
	text = strings.TrimSpace(text)
	s := Signals{Question: questionRe.MatchString(text), Cancel: cancelRe.MatchString(text)}
	for _, label := range model.Categories() {
		for _, cu := range categoryCues[label] {
			if cu.re.MatchString(text) {
				s.Cued = append(s.Cued, label)
				break
			}
		}
	}
	return s
}
