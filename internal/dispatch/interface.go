package dispatch

import (
	"context"

	"gig-copilot/internal/model"
	"gig-copilot/pkg/gcalendar"
)

// Dispatcher validates and executes action requests. It updates the working
// conversation context cc (pending action, recent entities); the caller
// decides whether to commit it.
type Dispatcher interface {
	Dispatch(ctx context.Context, kind model.ActionKind, slots model.ExtractedSlots, cc *model.ConversationContext) model.HandlerResult
}

// ReminderScheduler places service reminders. Implemented by *gcalendar.Client.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, req gcalendar.ReminderRequest) (*gcalendar.Event, error)
}
