package llm

// Name identifies this capability in logs.
const Name = "llm"

// Log prefixes
const (
	LogPrefixUnderstand = "internal.nlu.llm.Understand"
)

// Generation settings. Temperature zero keeps answers repeatable.
const (
	Temperature = 0
	MaxTokens   = 512
)

// Prompts
const (
	PromptClassifySystem = `You route short messages from an Indian gig driver (ride hailing, bike taxi, food delivery) to exactly one intent.

Intents:
- action.trip: the driver reports a trip or delivery they completed (places, fare, fuel).
- action.vehicle: the driver reports a problem or symptom with their vehicle.
- action.goal: the driver creates a savings goal or says they saved money towards one.
- analysis.earnings: the driver asks about their earnings, best zones, best hours or trends.
- analysis.vehicle: the driver asks about their vehicle's health history or servicing.
- analysis.financial: the driver asks about budgeting, affordability or when a goal will be reached.
- general: greetings, thanks, small talk, anything else.

Answer with JSON only: {"intent": "<one intent>", "confidence": <0..1>, "reasoning": "<short>"}`

	PromptExtractSystem = `You extract fields from a gig driver's message. Copy the driver's words for each field verbatim.
Do not convert, translate or compute amounts: "fifty thousand" stays "fifty thousand", "₹450" stays "₹450".
Leave out any field the message does not mention. Never guess.

Answer with JSON only: {"slots": {"<field>": {"value": "<span>", "confidence": <0..1>}}}`

	PromptFieldsHeader   = "Fields:\n"
	PromptFieldLine      = "- %s (%s)%s\n"
	PromptFocusLine      = "The driver was just asked for: %s. A bare value most likely answers that.\n"
	PromptContextLine    = "Conversation state: last intent %q, pending action %q.\n"
	PromptMessageLine    = "Message: %q"
	PromptEnumHint       = " one of: %s"
)

// JSON schemas for structured answers.
const (
	SchemaClassify = `{
  "type": "object",
  "required": ["intent", "confidence"],
  "properties": {
    "intent": {"type": "string"},
    "confidence": {"type": "number", "minimum": 0, "maximum": 1},
    "reasoning": {"type": "string"}
  }
}`

	SchemaExtract = `{
  "type": "object",
  "required": ["slots"],
  "properties": {
    "slots": {
      "type": "object",
      "additionalProperties": {
        "type": ["object", "null"],
        "properties": {
          "value": {"type": ["string", "number", "null"]},
          "confidence": {"type": "number", "minimum": 0, "maximum": 1}
        }
      }
    }
  }
}`
)

// Error messages
const (
	ErrMsgLLMCallFailed  = "LLM call failed"
	ErrMsgEmptyResponse  = "empty LLM response"
	ErrMsgRepairFailed   = "JSON repair failed"
	ErrMsgSchemaMismatch = "answer does not match schema"
)
