package extraction

import (
	"context"
	stderrors "errors"

	crerr "github.com/cockroachdb/errors"
)

// Soft failure classes. Adapters mark their errors with one of these using
// crerr.Mark so the class survives wrapping.
var (
	ErrSourceUnreachable = crerr.New("source unreachable")
	ErrStructureChanged  = crerr.New("page structure changed")
	ErrNoMatchFound      = crerr.New("no match found")
	ErrInsufficientData  = crerr.New("insufficient data")
)

// Outcome tags an extraction as usable or as one of the soft failure classes.
type Outcome string

const (
	OutcomeOK                Outcome = "ok"
	OutcomeSourceUnreachable Outcome = "source_unreachable"
	OutcomeStructureChanged  Outcome = "structure_changed"
	OutcomeNoMatchFound      Outcome = "no_match_found"
	OutcomeInsufficientData  Outcome = "insufficient_data"
)

// Label is the human readable degradation reason used in source strings.
func (o Outcome) Label() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeSourceUnreachable:
		return ErrSourceUnreachable.Error()
	case OutcomeStructureChanged:
		return ErrStructureChanged.Error()
	case OutcomeNoMatchFound:
		return ErrNoMatchFound.Error()
	default:
		return ErrInsufficientData.Error()
	}
}

// Failed reports whether o is one of the soft failure classes.
func (o Outcome) Failed() bool {
	return o != OutcomeOK
}

// OutcomeOf classifies err. Unmarked errors count as the source being
// unreachable, since they almost always come from the transport.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case crerr.Is(err, ErrStructureChanged):
		return OutcomeStructureChanged
	case crerr.Is(err, ErrNoMatchFound):
		return OutcomeNoMatchFound
	case crerr.Is(err, ErrInsufficientData):
		return OutcomeInsufficientData
	case crerr.Is(err, ErrSourceUnreachable):
		return OutcomeSourceUnreachable
	case stderrors.Is(err, context.DeadlineExceeded), stderrors.Is(err, context.Canceled):
		return OutcomeSourceUnreachable
	default:
		return OutcomeSourceUnreachable
	}
}

// Unreachable wraps err as a SourceUnreachable failure.
func Unreachable(err error, format string, args ...any) error {
	return crerr.Mark(crerr.Wrapf(err, format, args...), ErrSourceUnreachable)
}

// StructureChanged builds a SourceStructureChanged failure.
func StructureChanged(format string, args ...any) error {
	return crerr.Mark(crerr.Newf(format, args...), ErrStructureChanged)
}

// NoMatch builds a NoMatchFound failure.
func NoMatch(format string, args ...any) error {
	return crerr.Mark(crerr.Newf(format, args...), ErrNoMatchFound)
}

// Insufficient builds an InsufficientData failure.
func Insufficient(format string, args ...any) error {
	return crerr.Mark(crerr.Newf(format, args...), ErrInsufficientData)
}
