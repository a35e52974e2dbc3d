package gcalendar

import "context"

// ICalendar is the subset of the Calendar API used to mirror tasks.
type ICalendar interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error)
	UpdateEventTime(ctx context.Context, req UpdateEventRequest) error
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}
