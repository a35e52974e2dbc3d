package gcalendar

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
)

const defaultCalendarID = "primary"

// CreateEvent creates a new Google Calendar event.
func (c *Client) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	event := &calendar.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Start:       eventTime(req.StartTime, req.Timezone),
		End:         eventTime(req.EndTime, req.Timezone),
		Reminders:   reminders(req.ReminderLead),
	}

	created, err := c.service.Events.Insert(calendarID(req.CalendarID), event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}

	return &Event{
		ID:          created.Id,
		Summary:     created.Summary,
		Description: created.Description,
		HtmlLink:    created.HtmlLink,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}, nil
}

// UpdateEventTime moves an existing event and resets its popup reminder.
func (c *Client) UpdateEventTime(ctx context.Context, req UpdateEventRequest) error {
	if req.EventID == "" {
		return fmt.Errorf("event id is required")
	}

	patch := &calendar.Event{
		Start:     eventTime(req.StartTime, req.Timezone),
		End:       eventTime(req.EndTime, req.Timezone),
		Reminders: reminders(req.ReminderLead),
	}

	_, err := c.service.Events.Patch(calendarID(req.CalendarID), req.EventID, patch).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update calendar event: %w", err)
	}
	return nil
}

// DeleteEvent removes an event from the calendar.
func (c *Client) DeleteEvent(ctx context.Context, calID, eventID string) error {
	if eventID == "" {
		return fmt.Errorf("event id is required")
	}
	if err := c.service.Events.Delete(calendarID(calID), eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}
	return nil
}

func calendarID(id string) string {
	if id == "" {
		return defaultCalendarID
	}
	return id
}

func eventTime(t time.Time, tz string) *calendar.EventDateTime {
	// RFC3339 embeds the offset; TimeZone only matters for recurring display
	return &calendar.EventDateTime{
		DateTime: t.Format(time.RFC3339),
		TimeZone: tz,
	}
}

// reminders builds a single popup override lead before the start.
// A non-positive lead keeps the calendar defaults.
func reminders(lead time.Duration) *calendar.EventReminders {
	if lead <= 0 {
		return &calendar.EventReminders{UseDefault: true}
	}
	return &calendar.EventReminders{
		UseDefault: false,
		Overrides: []*calendar.EventReminder{
			{Method: "popup", Minutes: int64(lead / time.Minute)},
		},
		ForceSendFields: []string{"UseDefault"},
	}
}
