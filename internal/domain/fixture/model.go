package fixture

import (
	"strings"
	"time"

	"github.com/riskibarqy/matchday-intel/internal/domain/league"
	"github.com/riskibarqy/matchday-intel/internal/platform/textnorm"
)

const DateLayout = "2006-01-02"

// Fixture identifies one match for resolution purposes.
type Fixture struct {
	Home   string
	Away   string
	Date   time.Time
	League league.League
	// Label is the competition string as the caller supplied it.
	Label string
}

// New trims team names, truncates date to the calendar day (UTC) and
// normalizes the competition label.
func New(home, away string, date time.Time, label string) Fixture {
	return Fixture{
		Home:   strings.TrimSpace(home),
		Away:   strings.TrimSpace(away),
		Date:   Day(date),
		League: league.Normalize(label),
		Label:  strings.TrimSpace(label),
	}
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateKey formats the fixture day as YYYY-MM-DD.
func (f Fixture) DateKey() string {
	if f.Date.IsZero() {
		return ""
	}
	return f.Date.Format(DateLayout)
}

// Key is stable for the same (home, away, date) regardless of casing, accents
// or surrounding whitespace.
func (f Fixture) Key() string {
	return textnorm.Key(f.Home) + "|" + textnorm.Key(f.Away) + "|" + f.DateKey()
}

// CacheKey scopes Key by result kind and league.
func (f Fixture) CacheKey(kind string) string {
	return kind + ":" + string(f.League) + ":" + f.Key()
}

func (f Fixture) String() string {
	return f.Home + " vs " + f.Away + " (" + f.DateKey() + ", " + f.League.DisplayName() + ")"
}
