package gcalendar

import "time"

// ReminderRequest is the input for scheduling a reminder event.
type ReminderRequest struct {
	CalendarID  string
	Summary     string
	Description string
	At          time.Time
	Duration    time.Duration
	Timezone    string // e.g. "Asia/Kolkata"
	// PopupMinutes is how long before At the calendar notifies.
	PopupMinutes int64
}

// Event is a simplified representation of a Google Calendar event.
type Event struct {
	ID        string
	Summary   string
	HtmlLink  string
	StartTime time.Time
	EndTime   time.Time
	// Existing reports that an identical reminder was already on the calendar.
	Existing bool
}

const (
	defaultCalendarID   = "primary"
	defaultDuration     = 30 * time.Minute
	defaultPopupMinutes = 60
)
