package nlu

import "gig-copilot/internal/model"

// Task selects what the capability is asked to do.
type Task string

const (
	TaskClassify Task = "classify"
	TaskExtract  Task = "extract"
)

// FieldType tells the capability what kind of span a field holds.
type FieldType string

const (
	FieldMoney    FieldType = "money"
	FieldPlace    FieldType = "place"
	FieldText     FieldType = "text"
	FieldSeverity FieldType = "severity"
	FieldEnum     FieldType = "enum"
)

// Field describes one slot of a schema.
type Field struct {
	Name     string
	Type     FieldType
	Required bool
	Enum     []string
	Hint     string
}

// Request is one call to a Capability.
type Request struct {
	Task Task
	Text string
	// Labels is the closed set to classify into.
	Labels []model.Category
	// Fields is the schema to extract.
	Fields []Field
	// Focus names fields the conversation is currently asking for.
	Focus []string
	// Pending and LastIntent give the capability the conversation state.
	Pending    model.ActionKind
	LastIntent model.Category
}

// SlotGuess is a raw span proposed for a field.
type SlotGuess struct {
	Value      string
	Confidence float64
}

// Guess is the capability's answer.
type Guess struct {
	Label      string
	Confidence float64
	Reason     string
	Slots      map[string]SlotGuess
}
