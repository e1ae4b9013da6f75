package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/matchcomb/matchcomb/app/match"
)

type fakeEventsAPI struct {
	events   []Event
	inserted []InsertEvent
	listErr  error
	insErr   error
	listedAt []time.Time
}

func (f *fakeEventsAPI) ListDay(ctx context.Context, day time.Time) ([]Event, error) {
	f.listedAt = append(f.listedAt, day)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.events, nil
}

func (f *fakeEventsAPI) Insert(ctx context.Context, event InsertEvent) error {
	if f.insErr != nil {
		return f.insErr
	}
	f.inserted = append(f.inserted, event)
	f.events = append(f.events, Event{Summary: event.Summary, Description: event.Description})
	return nil
}

func bridgeMatch() match.Match {
	return match.Match{
		ID:           "abc123",
		Title:        "Team A - Team B (Basketball)",
		Participants: []string{"Team A", "Team B"},
		Date:         "2025-05-19",
		Time:         "20:30",
		Channel:      "ERT 1",
		League:       "Greek League A1",
		Sport:        "Basketball",
		Source:       match.SourceMedia24,
	}
}

func TestBridgeUpsertCreatesEvent(t *testing.T) {
	api := &fakeEventsAPI{}
	bridge := NewBridge(api)

	outcome, err := bridge.Upsert(context.Background(), bridgeMatch())
	require.NoError(t, err)
	require.Equal(t, OutcomeCreated, outcome)
	require.Len(t, api.inserted, 1)

	event := api.inserted[0]
	require.Equal(t, "Team A - Team B (Basketball)", event.Summary)
	require.Equal(t, "ERT 1", event.Location)
	require.Equal(t, "League: Greek League A1,\nEvent ID: abc123", event.Description)
	require.Equal(t, "2", event.ColorID)
	require.Equal(t, "Europe/Athens", event.TimeZone)

	require.Equal(t, 20, event.Start.Hour())
	require.Equal(t, 30, event.Start.Minute())
	require.Equal(t, 22, event.End.Hour())
	require.Equal(t, 30, event.End.Minute())
	require.Equal(t, event.Start.Day(), event.End.Day())
}

func TestBridgeUpsertIsIdempotent(t *testing.T) {
	api := &fakeEventsAPI{}
	bridge := NewBridge(api)

	outcome, err := bridge.Upsert(context.Background(), bridgeMatch())
	require.NoError(t, err)
	require.Equal(t, OutcomeCreated, outcome)

	outcome, err = bridge.Upsert(context.Background(), bridgeMatch())
	require.NoError(t, err)
	require.Equal(t, OutcomeExists, outcome)
	require.Len(t, api.inserted, 1)
}

func TestBridgeUpsertDistinguishesByID(t *testing.T) {
	api := &fakeEventsAPI{
		events: []Event{
			{
				Summary:     "Team A - Team B (Basketball)",
				Description: "League: Greek League A1,\nEvent ID: somethingelse",
			},
		},
	}
	bridge := NewBridge(api)

	// Same title but different record ID still gets its own event.
	outcome, err := bridge.Upsert(context.Background(), bridgeMatch())
	require.NoError(t, err)
	require.Equal(t, OutcomeCreated, outcome)
}

func TestBridgeUpsertTitleComparisonIsLenient(t *testing.T) {
	api := &fakeEventsAPI{
		events: []Event{
			{
				Summary:     "  team a - team b (basketball)  ",
				Description: "League: Greek League A1,\nEvent ID: abc123",
			},
		},
	}
	bridge := NewBridge(api)

	outcome, err := bridge.Upsert(context.Background(), bridgeMatch())
	require.NoError(t, err)
	require.Equal(t, OutcomeExists, outcome)
}

func TestBridgeUpsertSlashDate(t *testing.T) {
	api := &fakeEventsAPI{}
	bridge := NewBridge(api)

	m := bridgeMatch()
	m.Date = "19/5/2025"

	outcome, err := bridge.Upsert(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, OutcomeCreated, outcome)

	event := api.inserted[0]
	require.Equal(t, 2025, event.Start.Year())
	require.Equal(t, time.May, event.Start.Month())
	require.Equal(t, 19, event.Start.Day())
}

func TestBridgeUpsertLateEventRollsIntoNextDay(t *testing.T) {
	api := &fakeEventsAPI{}
	bridge := NewBridge(api)

	m := bridgeMatch()
	m.Time = "23:30"

	outcome, err := bridge.Upsert(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, OutcomeCreated, outcome)

	event := api.inserted[0]
	require.Equal(t, 19, event.Start.Day())
	require.Equal(t, 20, event.End.Day())
	require.Equal(t, 1, event.End.Hour())
	require.Equal(t, 30, event.End.Minute())
}

func TestBridgeUpsertUnparseableDate(t *testing.T) {
	bridge := NewBridge(&fakeEventsAPI{})

	m := bridgeMatch()
	m.Date = "19/2025"

	_, err := bridge.Upsert(context.Background(), m)
	require.Error(t, err)

	var syncErr *SyncError
	require.ErrorAs(t, err, &syncErr)
	require.Equal(t, "abc123", syncErr.MatchID)
}

func TestBridgeUpsertUnparseableTime(t *testing.T) {
	bridge := NewBridge(&fakeEventsAPI{})

	m := bridgeMatch()
	m.Time = "N/A"

	_, err := bridge.Upsert(context.Background(), m)
	require.Error(t, err)
}

func TestBridgeUpsertListFailure(t *testing.T) {
	api := &fakeEventsAPI{listErr: errors.New("quota exceeded")}
	bridge := NewBridge(api)

	_, err := bridge.Upsert(context.Background(), bridgeMatch())
	require.Error(t, err)

	var syncErr *SyncError
	require.ErrorAs(t, err, &syncErr)
}

func TestBridgeUpsertInsertFailure(t *testing.T) {
	api := &fakeEventsAPI{insErr: errors.New("forbidden")}
	bridge := NewBridge(api)

	_, err := bridge.Upsert(context.Background(), bridgeMatch())
	require.Error(t, err)
}
