package match

// Source identifies which upstream feed produced a record.
type Source string

const (
	SourceGazzetta Source = "gazzetta"
	SourceMedia24  Source = "media24"
)

// NA is the sentinel value for fields that cannot be extracted from an
// upstream payload.
const NA = "N/A"

// Match is the canonical representation of one televised match,
// regardless of the feed it came from. Records are built fresh on every
// cache refresh and never mutated afterwards.
type Match struct {
	Title        string   `json:"title"`
	Participants []string `json:"participants"`
	Date         string   `json:"date"` // DD/MM/YYYY (gazzetta) or YYYY-MM-DD (media24)
	Time         string   `json:"time"` // HH:MM, 24-hour, broadcast-local
	Channel      string   `json:"channel"`
	League       string   `json:"league"`
	Sport        string   `json:"sport"`
	Source       Source   `json:"source"`
	ID           string   `json:"id"`
}
