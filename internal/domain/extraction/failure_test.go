package extraction

import (
	"context"
	"fmt"
	"io"
	"testing"

	crerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestOutcomeOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want Outcome
	}{
		{name: "nil", err: nil, want: OutcomeOK},
		{name: "structure", err: StructureChanged("no team sections on %s", "page"), want: OutcomeStructureChanged},
		{name: "no match", err: NoMatch("fixture not listed"), want: OutcomeNoMatchFound},
		{name: "insufficient", err: Insufficient("only %d names", 3), want: OutcomeInsufficientData},
		{name: "unreachable", err: Unreachable(io.ErrUnexpectedEOF, "fetch %s", "x"), want: OutcomeSourceUnreachable},
		{name: "deadline", err: fmt.Errorf("get page: %w", context.DeadlineExceeded), want: OutcomeSourceUnreachable},
		{name: "wrapped mark", err: crerr.Wrap(NoMatch("x"), "besoccer"), want: OutcomeNoMatchFound},
		{name: "plain", err: io.EOF, want: OutcomeSourceUnreachable},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, OutcomeOf(tc.err), tc.name)
	}
}

func TestOKLineup_EmptyIsInsufficient(t *testing.T) {
	t.Parallel()

	got := OKLineup("kicker.de", "", []string{" ", ""}, nil, []string{"Musiala"})
	assert.False(t, got.Sufficient())
	assert.Equal(t, OutcomeInsufficientData, got.Outcome)
	assert.Equal(t, "kicker.de: insufficient data", got.SourceLabel())
	assert.Equal(t, []string{"Musiala"}, got.Unavailable)
}

func TestFailedLineup_KeepsClass(t *testing.T) {
	t.Parallel()

	got := FailedLineup("futbolfantasy.com", StructureChanged("no sections"))
	assert.Equal(t, OutcomeStructureChanged, got.Outcome)
	assert.Equal(t, "futbolfantasy.com: page structure changed", got.SourceLabel())
	assert.Empty(t, got.HomeNames)

	ok := FailedLineup("x", nil)
	assert.Equal(t, OutcomeInsufficientData, ok.Outcome)
}

func TestOKReferee(t *testing.T) {
	t.Parallel()

	got := OKReferee("rfef.es", "https://rfef.es/x", "  Jesús   Gil Manzano ")
	assert.True(t, got.Sufficient())
	assert.Equal(t, "Jesús Gil Manzano", got.Name)
	assert.Equal(t, "rfef.es", got.SourceLabel())

	assert.False(t, OKReferee("rfef.es", "", " ").Sufficient())
}
