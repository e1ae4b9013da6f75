package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/matchcomb/matchcomb/app/match"
	"github.com/matchcomb/matchcomb/app/schedule"
)

type RefreshScheduleTask struct {
	Task
	cache  *schedule.Cache
	source match.Source
}

func NewRefreshScheduleTask(cache *schedule.Cache, source match.Source) *RefreshScheduleTask {
	return &RefreshScheduleTask{
		Task:   NewTask(TaskTypeRefreshSchedule, string(source)),
		cache:  cache,
		source: source,
	}
}

func (t *RefreshScheduleTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := t.cache.Refresh(ctx, t.source); err != nil {
		return fmt.Errorf("failed to refresh schedule: %w", err)
	}

	slog.Info("Schedule refreshed", "source", t.source, "duration", t.GetDuration().String())
	return nil
}
