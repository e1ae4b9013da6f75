package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/matchcomb/matchcomb/app/calendar"
	"github.com/matchcomb/matchcomb/app/match"
	"github.com/matchcomb/matchcomb/app/schedule"
)

// SyncCalendarTask pushes the sync source's full schedule into the
// calendar. A pending authorization aborts the run without counting as
// a failure; the next tick tries again.
type SyncCalendarTask struct {
	Task
	engine *schedule.Engine
	syncer CalendarSyncerInterface
	source match.Source
}

func NewSyncCalendarTask(engine *schedule.Engine, syncer CalendarSyncerInterface, source match.Source) *SyncCalendarTask {
	return &SyncCalendarTask{
		Task:   NewTask(TaskTypeSyncCalendar, string(source)),
		engine: engine,
		syncer: syncer,
		source: source,
	}
}

func (t *SyncCalendarTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	matches, err := t.engine.Matches(ctx, t.source, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to load schedule: %w", err)
	}

	created := 0
	existing := 0

	for _, m := range matches {
		outcome, err := t.syncer.Sync(ctx, m)
		if err != nil {
			if errors.Is(err, calendar.ErrAuthorizationPending) {
				slog.Warn("Calendar authorization pending, skipping sync run", "source", t.source)
				return nil
			}
			slog.Error("Failed to sync match", "match_id", m.ID, "title", m.Title, "error", err)
			continue
		}

		switch outcome {
		case calendar.OutcomeCreated:
			created++
		case calendar.OutcomeExists:
			existing++
		}
	}

	slog.Info("Calendar sync completed", "source", t.source, "created", created, "existing", existing, "total", len(matches), "duration", t.GetDuration().String())
	return nil
}
