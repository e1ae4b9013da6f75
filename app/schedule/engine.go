package schedule

import (
	"context"
	"slices"

	"github.com/matchcomb/matchcomb/app/match"
)

// Engine answers schedule queries on top of the cache, refreshing a
// source on demand when its entry is missing or expired.
type Engine struct {
	cache *Cache
}

func NewEngine(cache *Cache) *Engine {
	return &Engine{cache: cache}
}

func (e *Engine) Knows(source match.Source) bool {
	return e.cache.Knows(source)
}

// EnsureFresh returns a valid entry for the source, fetching one when
// needed. Concurrent callers may trigger duplicate fetches; the cache
// replaces entries atomically, so the result is always consistent.
func (e *Engine) EnsureFresh(ctx context.Context, source match.Source) (*Entry, error) {
	entry := e.cache.Get(source)
	if e.cache.IsValid(entry) {
		return entry, nil
	}

	if err := e.cache.Refresh(ctx, source); err != nil {
		return nil, err
	}

	return e.cache.Get(source), nil
}

// Teams lists every participant seen in the source's raw payload,
// sorted lexicographically.
func (e *Engine) Teams(ctx context.Context, source match.Source) ([]string, error) {
	entry, err := e.EnsureFresh(ctx, source)
	if err != nil {
		return nil, err
	}

	teams := make([]string, len(entry.Teams))
	copy(teams, entry.Teams)
	slices.Sort(teams)

	return teams, nil
}

// Leagues lists the distinct leagues of the source's records, sorted
// lexicographically. Placeholder values are omitted.
func (e *Engine) Leagues(ctx context.Context, source match.Source) ([]string, error) {
	entry, err := e.EnsureFresh(ctx, source)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var leagues []string
	for _, m := range entry.Matches {
		if m.League == match.NA || seen[m.League] {
			continue
		}
		seen[m.League] = true
		leagues = append(leagues, m.League)
	}
	slices.Sort(leagues)

	return leagues, nil
}

// Matches returns the source's records narrowed by the selections. An
// empty selection places no constraint; both selections must hold for
// a record to pass. Cache order is preserved.
func (e *Engine) Matches(ctx context.Context, source match.Source, selectedTeams, selectedLeagues []string) ([]match.Match, error) {
	entry, err := e.EnsureFresh(ctx, source)
	if err != nil {
		return nil, err
	}

	matches := make([]match.Match, 0, len(entry.Matches))
	for _, m := range entry.Matches {
		if !teamSelected(m, selectedTeams) {
			continue
		}
		if !leagueSelected(m, selectedLeagues) {
			continue
		}
		matches = append(matches, m)
	}

	return matches, nil
}

func teamSelected(m match.Match, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, participant := range m.Participants {
		if slices.Contains(selected, participant) {
			return true
		}
	}
	return false
}

func leagueSelected(m match.Match, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	return slices.Contains(selected, m.League)
}
