package calendar

import (
	"context"
	"fmt"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/matchcomb/matchcomb/app/match"
)

// Syncer builds an authorized bridge on demand and pushes one record
// at a time. Authorization happens per call so a token stored after
// startup is picked up without a restart.
type Syncer struct {
	authorizer *Authorizer
	calendarID string
}

func NewSyncer(authorizer *Authorizer, calendarID string) *Syncer {
	return &Syncer{
		authorizer: authorizer,
		calendarID: calendarID,
	}
}

func (s *Syncer) Sync(ctx context.Context, m match.Match) (Outcome, error) {
	client, err := s.authorizer.Client(ctx, false)
	if err != nil {
		return "", err
	}

	service, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return "", fmt.Errorf("failed to build calendar service: %w", err)
	}

	bridge := NewBridge(NewGoogleEvents(service, s.calendarID))
	return bridge.Upsert(ctx, m)
}
