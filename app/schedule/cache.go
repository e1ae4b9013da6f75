package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/matchcomb/matchcomb/app/match"
	"github.com/matchcomb/matchcomb/app/sources"
)

// Entry holds one source's last successful fetch. Teams is the full
// participant listing of the upstream payload, independent of any
// policy applied to Matches.
type Entry struct {
	Matches   []match.Match
	Teams     []string
	FetchedAt time.Time
}

type UnknownSourceError struct {
	Source match.Source
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("unknown source: %s", e.Source)
}

// Cache keeps per-source entries for a bounded time. Entries are
// replaced wholesale on refresh, so readers never observe a partially
// updated entry.
type Cache struct {
	adapters map[match.Source]sources.Adapter
	ttl      time.Duration
	now      func() time.Time

	entries map[match.Source]*Entry
	mu      sync.RWMutex
}

func NewCache(adapters map[match.Source]sources.Adapter, ttl time.Duration) *Cache {
	return &Cache{
		adapters: adapters,
		ttl:      ttl,
		now:      time.Now,
		entries:  make(map[match.Source]*Entry),
	}
}

// SetClock replaces the time source. Tests use it to step through TTL
// expiry without sleeping.
func (c *Cache) SetClock(now func() time.Time) {
	c.now = now
}

func (c *Cache) Knows(source match.Source) bool {
	_, ok := c.adapters[source]
	return ok
}

func (c *Cache) Sources() []match.Source {
	result := make([]match.Source, 0, len(c.adapters))
	for source := range c.adapters {
		result = append(result, source)
	}
	return result
}

// Get returns a copy of the source's entry, or nil when nothing has
// been fetched yet.
func (c *Cache) Get(source match.Source) *Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[source]
	if !ok {
		return nil
	}

	entryCopy := &Entry{
		Matches:   make([]match.Match, len(entry.Matches)),
		Teams:     make([]string, len(entry.Teams)),
		FetchedAt: entry.FetchedAt,
	}
	for i, m := range entry.Matches {
		m.Participants = slices.Clone(m.Participants)
		entryCopy.Matches[i] = m
	}
	copy(entryCopy.Teams, entry.Teams)

	return entryCopy
}

// IsValid reports whether the entry is still within its TTL.
func (c *Cache) IsValid(entry *Entry) bool {
	if entry == nil {
		return false
	}
	return c.now().Sub(entry.FetchedAt) < c.ttl
}

// Refresh fetches the source and replaces its entry. On failure the
// previous entry is retained, so stale data keeps serving until the
// upstream recovers.
func (c *Cache) Refresh(ctx context.Context, source match.Source) error {
	adapter, ok := c.adapters[source]
	if !ok {
		return &UnknownSourceError{Source: source}
	}

	result, err := adapter.Fetch(ctx)
	if err != nil {
		return err
	}

	entry := &Entry{
		Matches:   result.Matches,
		Teams:     result.Teams,
		FetchedAt: c.now(),
	}

	c.mu.Lock()
	c.entries[source] = entry
	c.mu.Unlock()

	slog.Debug("Schedule cache refreshed", "source", source, "matches", len(entry.Matches), "teams", len(entry.Teams))

	return nil
}
