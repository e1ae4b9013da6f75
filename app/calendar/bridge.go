package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/matchcomb/matchcomb/app/match"
)

type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeExists  Outcome = "already_exists"
)

const (
	eventTimeZone = "Europe/Athens"
	eventColorID  = "2"
	eventIDMarker = "Event ID: "
)

type SyncError struct {
	MatchID string
	Err     error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("failed to sync match %s: %v", e.MatchID, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// Bridge upserts schedule records into a calendar. A record is
// considered present when the day already holds an event with the same
// title and a description carrying the record's ID.
type Bridge struct {
	events EventsAPI
}

func NewBridge(events EventsAPI) *Bridge {
	return &Bridge{events: events}
}

func (b *Bridge) Upsert(ctx context.Context, m match.Match) (Outcome, error) {
	day, err := parseMatchDate(m.Date)
	if err != nil {
		return "", &SyncError{MatchID: m.ID, Err: err}
	}

	start, end, err := eventWindow(day, m.Time)
	if err != nil {
		return "", &SyncError{MatchID: m.ID, Err: err}
	}

	existing, err := b.events.ListDay(ctx, day)
	if err != nil {
		return "", &SyncError{MatchID: m.ID, Err: err}
	}

	for _, event := range existing {
		if sameEvent(event, m) {
			slog.Debug("Calendar event already exists", "match_id", m.ID, "title", m.Title)
			return OutcomeExists, nil
		}
	}

	insert := InsertEvent{
		Summary:     m.Title,
		Location:    m.Channel,
		Description: fmt.Sprintf("League: %s,\n%s%s", m.League, eventIDMarker, m.ID),
		Start:       start,
		End:         end,
		TimeZone:    eventTimeZone,
		ColorID:     eventColorID,
	}
	if err := b.events.Insert(ctx, insert); err != nil {
		return "", &SyncError{MatchID: m.ID, Err: err}
	}

	slog.Info("Calendar event created", "match_id", m.ID, "title", m.Title, "start", start)
	return OutcomeCreated, nil
}

func sameEvent(event Event, m match.Match) bool {
	sameTitle := strings.EqualFold(strings.TrimSpace(event.Summary), strings.TrimSpace(m.Title))
	return sameTitle && strings.Contains(event.Description, eventIDMarker+m.ID)
}

// parseMatchDate accepts the two date shapes the sources emit:
// slash-separated day-first dates and ISO dates.
func parseMatchDate(date string) (time.Time, error) {
	layout := "2006-01-02"
	if strings.Contains(date, "/") {
		layout = "2/1/2006"
	}

	day, err := time.ParseInLocation(layout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse match date %q: %w", date, err)
	}
	return day, nil
}

// eventWindow places the record's start time on its day and derives a
// two hour end slot. Out-of-range hour values roll over to the next
// day through time.Date normalization.
func eventWindow(day time.Time, hhmm string) (time.Time, time.Time, error) {
	hours, minutes, err := parseClock(hhmm)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	endHours := hours + (minutes+120)/60
	endMinutes := (minutes + 120) % 60

	start := time.Date(day.Year(), day.Month(), day.Day(), hours, minutes, 0, 0, day.Location())
	end := time.Date(day.Year(), day.Month(), day.Day(), endHours, endMinutes, 0, 0, day.Location())

	return start, end, nil
}

func parseClock(hhmm string) (int, int, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("failed to parse match time %q", hhmm)
	}

	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse match time %q: %w", hhmm, err)
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse match time %q: %w", hhmm, err)
	}

	return hours, minutes, nil
}
