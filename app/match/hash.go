package match

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// ComputeID derives a stable content-based identifier for a match. All
// fields except ID are serialized as a JSON object with lexicographically
// sorted keys (map marshaling sorts keys), so construction order never
// affects the digest.
func ComputeID(m Match) string {
	fields := map[string]any{
		"title":        m.Title,
		"participants": m.Participants,
		"date":         m.Date,
		"time":         m.Time,
		"channel":      m.Channel,
		"league":       m.League,
		"sport":        m.Sport,
		"source":       m.Source,
	}

	serialized, _ := json.Marshal(fields)

	hash := sha256.Sum256(serialized)
	return hex.EncodeToString(hash[:])
}
