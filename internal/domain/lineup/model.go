package lineup

import (
	"time"

	"github.com/riskibarqy/matchday-intel/internal/domain/fixture"
	"github.com/riskibarqy/matchday-intel/internal/domain/roster"
)

// Confidence grades how much a resolved lineup can be trusted downstream.
type Confidence string

const (
	ConfidenceConfirmed Confidence = "CONFIRMED"
	ConfidencePredicted Confidence = "PREDICTED"
	ConfidenceFallback  Confidence = "FALLBACK"
)

// DefaultConfirmedThreshold is the combined number of resolved names across
// both sides at which a lineup counts as confirmed.
const DefaultConfirmedThreshold = 18

// Entry is one resolved identity: a canonical roster player when Matched,
// otherwise the scraped text kept verbatim.
type Entry struct {
	Name     string
	PlayerID string
	Position roster.Position
	Matched  bool
	Raw      string
}

// Resolved is the lineup envelope returned to callers. It is built once per
// resolution and never mutated afterwards.
type Resolved struct {
	Fixture         fixture.Fixture
	Home            []Entry
	Away            []Entry
	Unavailable     []Entry
	Source          string
	VerificationRef string
	Confidence      Confidence
	IsFallback      bool
	ResolvedAt      time.Time
}

// Count is the combined number of resolved names across both sides.
func (r Resolved) Count() int {
	return len(r.Home) + len(r.Away)
}

// Names lists the display names of entries.
func Names(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}
