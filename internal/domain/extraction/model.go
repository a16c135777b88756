package extraction

import "strings"

// Lineup is the raw output of one adapter lineup call. It lives only for the
// duration of one cascade step.
type Lineup struct {
	HomeNames       []string
	AwayNames       []string
	Unavailable     []string
	SourceID        string
	VerificationRef string
	Outcome         Outcome
	Reason          string
}

// Referee is the raw output of one adapter referee call.
type Referee struct {
	Name            string
	SourceID        string
	VerificationRef string
	Outcome         Outcome
	Reason          string
}

// OKLineup builds a successful extraction. Two empty sides are reported as
// insufficient data rather than success.
func OKLineup(sourceID, verificationRef string, home, away, unavailable []string) Lineup {
	out := Lineup{
		HomeNames:       compact(home),
		AwayNames:       compact(away),
		Unavailable:     compact(unavailable),
		SourceID:        sourceID,
		VerificationRef: verificationRef,
		Outcome:         OutcomeOK,
	}
	if len(out.HomeNames) == 0 && len(out.AwayNames) == 0 {
		out.Outcome = OutcomeInsufficientData
		out.Reason = "no player names extracted"
	}
	return out
}

// FailedLineup reduces err to an empty extraction tagged with its class.
func FailedLineup(sourceID string, err error) Lineup {
	outcome := OutcomeOf(err)
	if outcome == OutcomeOK {
		outcome = OutcomeInsufficientData
	}
	return Lineup{SourceID: sourceID, Outcome: outcome, Reason: reasonOf(err)}
}

// OKReferee builds a successful referee extraction; a blank name is
// insufficient data.
func OKReferee(sourceID, verificationRef, name string) Referee {
	name = strings.Join(strings.Fields(name), " ")
	out := Referee{Name: name, SourceID: sourceID, VerificationRef: verificationRef, Outcome: OutcomeOK}
	if name == "" {
		out.Outcome = OutcomeInsufficientData
		out.Reason = "no referee name extracted"
	}
	return out
}

// FailedReferee reduces err to an empty referee extraction tagged with its class.
func FailedReferee(sourceID string, err error) Referee {
	outcome := OutcomeOf(err)
	if outcome == OutcomeOK {
		outcome = OutcomeInsufficientData
	}
	return Referee{SourceID: sourceID, Outcome: outcome, Reason: reasonOf(err)}
}

// Sufficient reports whether the extraction carries any names.
func (l Lineup) Sufficient() bool {
	return l.Outcome == OutcomeOK && (len(l.HomeNames) > 0 || len(l.AwayNames) > 0)
}

func (r Referee) Sufficient() bool {
	return r.Outcome == OutcomeOK && r.Name != ""
}

// SourceLabel is the source string surfaced to callers.
func (l Lineup) SourceLabel() string {
	return sourceLabel(l.SourceID, l.Outcome)
}

func (r Referee) SourceLabel() string {
	return sourceLabel(r.SourceID, r.Outcome)
}

func sourceLabel(sourceID string, outcome Outcome) string {
	if sourceID == "" {
		sourceID = "unknown source"
	}
	if outcome == OutcomeOK {
		return sourceID
	}
	return sourceID + ": " + outcome.Label()
}

func reasonOf(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.Join(strings.Fields(v), " ")
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
