package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/matchcomb/matchcomb/app/match"
)

const media24ProfileID = "3"

// media24Event mirrors one entry of the flat event array the 24Media TV
// feed returns. Participants, sport and league are not structured fields
// here; they are recovered heuristically from title and description.
type media24Event struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Channel     *namedRef `json:"channel"`
	DateView    string    `json:"dateView"`
	TimeView    string    `json:"timeView"`
}

type Media24 struct {
	config     *Config
	httpClient *http.Client
	userAgent  string
	now        func() time.Time
}

func NewMedia24(config *Config, httpClient *http.Client, userAgent string) *Media24 {
	return &Media24{
		config:     config,
		httpClient: httpClient,
		userAgent:  userAgent,
		now:        time.Now,
	}
}

func (a *Media24) Source() match.Source {
	return match.SourceMedia24
}

func (a *Media24) Fetch(ctx context.Context) (*Result, error) {
	requestURL, err := a.buildURL()
	if err != nil {
		return nil, &FetchError{Source: a.Source(), Err: err}
	}

	timeout := time.Duration(a.config.Settings.Timeout) * time.Second

	data, err := fetchPayload(ctx, a.httpClient, requestURL, a.userAgent, timeout)
	if err != nil {
		return nil, &FetchError{Source: a.Source(), Err: err}
	}

	var events []media24Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, &FetchError{Source: a.Source(), Err: fmt.Errorf("failed to parse payload: %w", err)}
	}

	result := &Result{}
	teams := newTeamSet()

	for _, event := range events {
		team1, team2, sport := SplitTitle(event.Title)
		teams.add(team1)
		teams.add(team2)

		league := FirstSentence(event.Description)
		if league == "" {
			league = match.NA
		}

		m := match.Match{
			Title:        event.Title,
			Participants: []string{team1, team2},
			Date:         event.DateView,
			Time:         event.TimeView,
			Channel:      orNA(nameOf(event.Channel)),
			League:       league,
			Sport:        sport,
			Source:       match.SourceMedia24,
		}
		m.ID = match.ComputeID(m)

		if !a.config.Policy.Allows(m) {
			continue
		}
		result.Matches = append(result.Matches, m)
	}

	result.Teams = teams.values()
	return result, nil
}

func (a *Media24) buildURL() (string, error) {
	parsed, err := url.Parse(a.config.URL)
	if err != nil {
		return "", fmt.Errorf("failed to parse source URL: %w", err)
	}

	query := parsed.Query()
	query.Set("accept", "json")
	query.Set("date", a.now().Format("2006-01-02"))
	query.Set("days", fmt.Sprintf("%d", a.config.Settings.Days))
	query.Set("pId", media24ProfileID)
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}
