package tasks

import (
	"context"

	"github.com/matchcomb/matchcomb/app/calendar"
	"github.com/matchcomb/matchcomb/app/match"
)

// CalendarSyncerInterface defines the calendar surface sync tasks
// depend on.
type CalendarSyncerInterface interface {
	Sync(ctx context.Context, m match.Match) (calendar.Outcome, error)
}

var _ CalendarSyncerInterface = (*calendar.Syncer)(nil)

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to manage background task processing.
// Example usage:
//
//	scheduler := NewScheduler(cache, engine, syncer)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewRefreshScheduleTask(cache, source))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
