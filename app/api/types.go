package api

import (
	"context"

	"github.com/matchcomb/matchcomb/app/calendar"
	"github.com/matchcomb/matchcomb/app/match"
	"github.com/matchcomb/matchcomb/app/schedule"
)

type ScheduleEngine interface {
	Knows(source match.Source) bool
	Teams(ctx context.Context, source match.Source) ([]string, error)
	Leagues(ctx context.Context, source match.Source) ([]string, error)
	Matches(ctx context.Context, source match.Source, selectedTeams, selectedLeagues []string) ([]match.Match, error)
}

var _ ScheduleEngine = (*schedule.Engine)(nil)

type CalendarSyncer interface {
	Sync(ctx context.Context, m match.Match) (calendar.Outcome, error)
}

var _ CalendarSyncer = (*calendar.Syncer)(nil)

type Handler struct {
	engine        ScheduleEngine
	syncer        CalendarSyncer
	primarySource match.Source
}
