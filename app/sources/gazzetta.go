package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/matchcomb/matchcomb/app/match"
)

// gazzettaPayload mirrors the day-keyed shape of the Gazzetta TV feed.
// Day keys carry day-of-month and month ("19/05"); the year is not part
// of the payload.
type gazzettaPayload struct {
	Dates map[string]gazzettaDay `json:"dates"`
}

type gazzettaDay struct {
	Events []gazzettaEvent `json:"events"`
}

type gazzettaEvent struct {
	Participant1 *namedRef `json:"participant1"`
	Participant2 *namedRef `json:"participant2"`
	SportName    string    `json:"sport_name"`
	PlainTime    string    `json:"plainTime"`
	Channel1     *namedRef `json:"channel1"`
	League       *namedRef `json:"league"`
}

type Gazzetta struct {
	config     *Config
	httpClient *http.Client
	userAgent  string
	now        func() time.Time
}

func NewGazzetta(config *Config, httpClient *http.Client, userAgent string) *Gazzetta {
	return &Gazzetta{
		config:     config,
		httpClient: httpClient,
		userAgent:  userAgent,
		now:        time.Now,
	}
}

func (g *Gazzetta) Source() match.Source {
	return match.SourceGazzetta
}

func (g *Gazzetta) Fetch(ctx context.Context) (*Result, error) {
	timeout := time.Duration(g.config.Settings.Timeout) * time.Second

	data, err := fetchPayload(ctx, g.httpClient, g.config.URL, g.userAgent, timeout)
	if err != nil {
		return nil, &FetchError{Source: g.Source(), Err: err}
	}

	var payload gazzettaPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &FetchError{Source: g.Source(), Err: fmt.Errorf("failed to parse payload: %w", err)}
	}

	// The payload carries day buckets only; the year is assumed to be the
	// year of processing. Dates already in the next calendar year are
	// misdated near year-end.
	year := g.now().Year()

	// Day keys are sorted so repeated fetches produce the same record order.
	days := make([]string, 0, len(payload.Dates))
	for day := range payload.Dates {
		days = append(days, day)
	}
	sort.Strings(days)

	result := &Result{}
	teams := newTeamSet()

	for _, day := range days {
		for _, event := range payload.Dates[day].Events {
			teams.add(nameOf(event.Participant1))
			teams.add(nameOf(event.Participant2))

			m := g.buildMatch(day, year, event)
			if !g.config.Policy.Allows(m) {
				continue
			}
			result.Matches = append(result.Matches, m)
		}
	}

	result.Teams = teams.values()
	return result, nil
}

func (g *Gazzetta) buildMatch(day string, year int, event gazzettaEvent) match.Match {
	participant1 := orNA(nameOf(event.Participant1))
	participant2 := orNA(nameOf(event.Participant2))

	m := match.Match{
		Title:        fmt.Sprintf("%s - %s (%s)", participant1, participant2, event.SportName),
		Participants: []string{participant1, participant2},
		Date:         fmt.Sprintf("%s/%d", day, year),
		Time:         event.PlainTime,
		Channel:      orNA(nameOf(event.Channel1)),
		League:       orNA(nameOf(event.League)),
		Sport:        event.SportName,
		Source:       match.SourceGazzetta,
	}
	m.ID = match.ComputeID(m)
	return m
}
