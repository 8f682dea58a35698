package composer

import "gig-copilot/internal/model"

// Log prefixes
const (
	LogPrefixCompose = "internal.composer.Compose"
)

const DefaultTimezone = "Asia/Kolkata"

// fieldLabels are the words used when asking the driver for a field.
var fieldLabels = map[string]string{
	model.SlotPickup:       "pickup location",
	model.SlotDropoff:      "drop-off location",
	model.SlotEarnings:     "amount you earned",
	model.SlotFuelCost:     "fuel cost",
	model.SlotPlatform:     "platform",
	model.SlotIssue:        "problem you noticed",
	model.SlotComponent:    "part of the vehicle",
	model.SlotSeverity:     "how serious it is",
	model.SlotGoalName:     "goal name",
	model.SlotGoalOp:       "whether this is a new goal or savings towards one",
	model.SlotTargetAmount: "target amount",
	model.SlotContribution: "amount you saved",
}

var cancelledNouns = map[model.ActionKind]string{
	model.ActionTrip:    "trip",
	model.ActionVehicle: "vehicle report",
	model.ActionGoal:    "goal update",
}

// Phrases reused across replies.
const (
	helpText = "You can log a trip (\"Indiranagar to Whitefield, 450\"), report a vehicle problem, " +
		"add savings to a goal, or ask how your earnings are going."
	degradedText = "Sorry, I'm having trouble understanding messages right now. Please try again in a little while."
)
