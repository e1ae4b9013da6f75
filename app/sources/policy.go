package sources

import (
	"strings"

	"github.com/matchcomb/matchcomb/app/match"
)

// Policy is the optional deployment-time allow-list applied by an adapter
// before records enter the cache. It restricts Matches only; the teams
// listing always reflects the unfiltered payload.
type Policy struct {
	Teams            []string `yaml:"teams"`
	Sports           []string `yaml:"sports"`
	LeagueExclusions []string `yaml:"league_exclusions"`
}

// Allows reports whether a built record passes the allow-list. An empty
// policy allows everything. Team matching is diacritic-insensitive
// substring matching against the participants and the title.
func (p Policy) Allows(m match.Match) bool {
	if len(p.Teams) > 0 && !p.matchesTeam(m) {
		return false
	}

	if len(p.Sports) > 0 && !containsString(p.Sports, m.Sport) {
		return false
	}

	for _, exclusion := range p.LeagueExclusions {
		if exclusion != "" && strings.Contains(m.League, exclusion) {
			return false
		}
	}

	return true
}

func (p Policy) matchesTeam(m match.Match) bool {
	title := NormalizeText(m.Title)

	for _, team := range p.Teams {
		normalized := NormalizeText(team)
		if normalized == "" {
			continue
		}
		if strings.Contains(title, normalized) {
			return true
		}
		for _, participant := range m.Participants {
			if strings.Contains(NormalizeText(participant), normalized) {
				return true
			}
		}
	}

	return false
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
