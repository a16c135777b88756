package referee

import (
	"time"

	"github.com/riskibarqy/matchday-intel/internal/domain/fixture"
)

// Strictness buckets a referee's card tendency.
type Strictness string

const (
	StrictnessHigh   Strictness = "HIGH"
	StrictnessMedium Strictness = "MEDIUM"
	StrictnessLow    Strictness = "LOW"
)

// DefaultAvgCards is used when nothing is known about a referee.
const DefaultAvgCards = 4.5

// Resolved is the referee envelope returned to callers.
type Resolved struct {
	Fixture         fixture.Fixture
	Name            string
	Strictness      Strictness
	AvgCardRate     float64
	Source          string
	VerificationRef string
	IsFallback      bool
	ResolvedAt      time.Time
}

// ParseStrictness accepts any casing; unknown values are Medium.
func ParseStrictness(raw string) Strictness {
	switch Strictness(upper(raw)) {
	case StrictnessHigh:
		return StrictnessHigh
	case StrictnessLow:
		return StrictnessLow
	default:
		return StrictnessMedium
	}
}
