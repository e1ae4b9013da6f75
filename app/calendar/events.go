package calendar

import (
	"context"
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"
)

const dateTimeLayout = "2006-01-02T15:04:05"

// Event is the slice of a calendar event the bridge needs for
// duplicate detection.
type Event struct {
	Summary     string
	Description string
}

type InsertEvent struct {
	Summary     string
	Location    string
	Description string
	Start       time.Time
	End         time.Time
	TimeZone    string
	ColorID     string
}

// EventsAPI is the calendar surface the bridge depends on.
type EventsAPI interface {
	ListDay(ctx context.Context, day time.Time) ([]Event, error)
	Insert(ctx context.Context, event InsertEvent) error
}

// GoogleEvents implements EventsAPI over the Calendar v3 API.
type GoogleEvents struct {
	service    *gcal.Service
	calendarID string
}

func NewGoogleEvents(service *gcal.Service, calendarID string) *GoogleEvents {
	return &GoogleEvents{
		service:    service,
		calendarID: calendarID,
	}
}

func (g *GoogleEvents) ListDay(ctx context.Context, day time.Time) ([]Event, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	list, err := g.service.Events.List(g.calendarID).
		TimeMin(dayStart.Format(time.RFC3339)).
		TimeMax(dayEnd.Format(time.RFC3339)).
		SingleEvents(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}

	events := make([]Event, 0, len(list.Items))
	for _, item := range list.Items {
		events = append(events, Event{
			Summary:     item.Summary,
			Description: item.Description,
		})
	}
	return events, nil
}

func (g *GoogleEvents) Insert(ctx context.Context, event InsertEvent) error {
	entry := &gcal.Event{
		Summary:     event.Summary,
		Location:    event.Location,
		Description: event.Description,
		ColorId:     event.ColorID,
		Start: &gcal.EventDateTime{
			DateTime: event.Start.Format(dateTimeLayout),
			TimeZone: event.TimeZone,
		},
		End: &gcal.EventDateTime{
			DateTime: event.End.Format(dateTimeLayout),
			TimeZone: event.TimeZone,
		},
	}

	if _, err := g.service.Events.Insert(g.calendarID, entry).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to insert calendar event: %w", err)
	}
	return nil
}
