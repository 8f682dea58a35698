package orchestrator

import "time"

// Log prefixes
const (
	LogPrefixHandleTurn = "internal.orchestrator.HandleTurn"
	LogPrefixCommit     = "internal.orchestrator.commit"
)

// Defaults
const (
	DefaultTurnTimeout = 20 * time.Second
	DefaultCallTimeout = 8 * time.Second
)

// State is the stage a turn is in.
type State string

const (
	StateIdle        State = "idle"
	StateClassifying State = "classifying"
	StateDispatching State = "dispatching"
	StateResponding  State = "responding"
)
