package telegram

import "time"

const (
	DefaultProcessTimeout = 30 * time.Second

	userIDPrefix = "telegram_"

	startText = "👋 Namaste! I'm your driving copilot.\n\n" +
		"Tell me about your day and I'll keep track:\n" +
		"• Trips: \"Trip from Indiranagar to Whitefield for 450\"\n" +
		"• Vehicle: \"My brake is making a squeaking noise\"\n" +
		"• Goals: \"I saved 5000 towards my phone goal\"\n\n" +
		"Or ask: \"How much did I earn this week?\""
	failureText = "Sorry, something went wrong on my side. Please try again."
)
