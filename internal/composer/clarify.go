package composer

import (
	"fmt"

	"gig-copilot/internal/dispatch"
	"gig-copilot/internal/model"
)

func clarify(res model.HandlerResult) string {
	switch res.Reason {
	case model.ClarifyAmbiguous:
		return fmt.Sprintf("Which %s did you mean: %s?", choiceNoun(res.Field), joinAnd(res.Candidates, "or"))
	case model.ClarifyInvalid:
		return invalidText(res)
	default:
		labels := make([]string, 0, len(res.Missing))
		for _, f := range res.Missing {
			labels = append(labels, "the "+label(f))
		}
		if len(labels) == 0 {
			return "Could you tell me a bit more?"
		}
		return fmt.Sprintf("Got it. Could you tell me %s?", joinAnd(labels, "and"))
	}
}

func invalidText(res model.HandlerResult) string {
	switch res.Detail {
	case dispatch.DetailNegative:
		return fmt.Sprintf("The %s can't be negative. What was the right amount?", label(res.Field))
	case dispatch.DetailNotPositive:
		return fmt.Sprintf("The %s needs to be more than zero. How much should it be?", label(res.Field))
	case dispatch.DetailSamePlace:
		return "The pickup and drop-off look like the same place. Where did the trip end?"
	case dispatch.DetailDuplicate:
		return "You already have a goal with that name. What should the new goal be called?"
	case dispatch.DetailUnknown:
		if len(res.Candidates) > 0 {
			return fmt.Sprintf("I couldn't find that goal. Your goals are %s. Which one?", joinAnd(res.Candidates, "and"))
		}
		return "I couldn't find that goal. Which goal is it?"
	case dispatch.DetailNoGoals:
		return "You don't have any savings goals yet. Create one first, for example \"new goal phone 20000\"."
	default:
		return fmt.Sprintf("That %s doesn't look right. Could you say it again?", label(res.Field))
	}
}

func choiceNoun(field string) string {
	if field == model.SlotGoalName {
		return "goal"
	}
	return label(field)
}

func apology(res model.HandlerResult) string {
	switch res.FailReason {
	case model.FailCancelled:
		return "Okay, I've dropped that request."
	case model.FailTimeout:
		return "Sorry, that took too long. Please try again."
	case model.FailUnavailable:
		if res.Category.IsAnalysis() {
			return "Sorry, I couldn't look up your history right now. Please try again in a minute."
		}
		return "Sorry, I couldn't save that right now. Please try again in a minute."
	default:
		return "Sorry, something went wrong on my side. Please try again."
	}
}
