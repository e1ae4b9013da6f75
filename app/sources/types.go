package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matchcomb/matchcomb/app/match"
)

// Result is one complete retrieval from an upstream feed. Teams is the
// union of every participant name seen in the raw payload, collected
// before any policy filtering is applied to Matches.
type Result struct {
	Matches []match.Match
	Teams   []string
}

// Adapter retrieves one upstream feed's native payload and normalizes it
// into canonical match records.
type Adapter interface {
	Source() match.Source
	Fetch(ctx context.Context) (*Result, error)
}

// FetchError reports an upstream feed that was unreachable, returned a
// non-success status, or produced an unparseable payload.
type FetchError struct {
	Source match.Source
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// namedRef is the {name: "..."} sub-object shape both feeds use for
// participants, channels and leagues.
type namedRef struct {
	Name string `json:"name"`
}

func nameOf(ref *namedRef) string {
	if ref == nil {
		return ""
	}
	return ref.Name
}

func orNA(value string) string {
	if value == "" {
		return match.NA
	}
	return value
}

// teamSet accumulates distinct participant names in first-seen order.
type teamSet struct {
	seen  map[string]struct{}
	names []string
}

func newTeamSet() *teamSet {
	return &teamSet{seen: make(map[string]struct{})}
}

func (s *teamSet) add(name string) {
	if name == "" || name == match.NA {
		return
	}
	if _, ok := s.seen[name]; ok {
		return
	}
	s.seen[name] = struct{}{}
	s.names = append(s.names, name)
}

func (s *teamSet) values() []string {
	return s.names
}

func fetchPayload(ctx context.Context, httpClient *http.Client, url, userAgent string, timeout time.Duration) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
