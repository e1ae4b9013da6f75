package sources

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/matchcomb/matchcomb/app/match"
)

// SplitTitle extracts the two participants and the sport from a
// "Team1 - Team2 (Sport)" title. Fields that cannot be extracted degrade
// to N/A; malformed titles never error.
func SplitTitle(title string) (team1, team2, sport string) {
	team1 = match.NA
	team2 = match.NA
	sport = match.NA

	parts := strings.Split(title, " - ")
	team1 = orNA(parts[0])

	if len(parts) > 1 {
		rest := strings.Split(parts[1], " (")
		team2 = orNA(rest[0])
		if len(rest) > 1 {
			sport = orNA(strings.TrimSuffix(rest[1], ")"))
		}
	}

	return team1, team2, sport
}

// FirstSentence returns the first sentence of a free-text description,
// with a trailing period stripped. A sentence ends at '.', '·', '!' or
// ';' followed by whitespace. Empty input yields "".
func FirstSentence(description string) string {
	if description == "" {
		return ""
	}

	sentence := description
	runeText := []rune(description)
	for i := 0; i < len(runeText)-1; i++ {
		if isSentenceEnd(runeText[i]) && unicode.IsSpace(runeText[i+1]) {
			sentence = string(runeText[:i+1])
			break
		}
	}

	return strings.TrimSuffix(sentence, ".")
}

func isSentenceEnd(r rune) bool {
	switch r {
	case '.', '·', '!', ';':
		return true
	}
	return false
}

// NormalizeText lowercases, trims and strips diacritics so roster entries
// match feed spellings regardless of Greek accent marks.
func NormalizeText(s string) string {
	chain := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(chain, s)
	if err != nil {
		stripped = s
	}
	return strings.ToLower(strings.TrimSpace(stripped))
}
