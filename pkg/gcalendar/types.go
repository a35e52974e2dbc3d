package gcalendar

import "time"

// CreateEventRequest is the input for creating a Google Calendar event.
type CreateEventRequest struct {
	CalendarID   string
	Summary      string
	Description  string
	StartTime    time.Time
	EndTime      time.Time
	Timezone     string        // e.g. "Europe/Moscow"
	ReminderLead time.Duration // popup this long before StartTime; 0 keeps defaults
}

// UpdateEventRequest moves an existing event.
type UpdateEventRequest struct {
	CalendarID   string
	EventID      string
	StartTime    time.Time
	EndTime      time.Time
	Timezone     string
	ReminderLead time.Duration
}

// Event is a simplified representation of a Google Calendar event.
type Event struct {
	ID          string
	Summary     string
	Description string
	HtmlLink    string
	StartTime   time.Time
	EndTime     time.Time
}
