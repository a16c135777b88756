package scrape

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpacedText(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<table><tr><td>Real</td><td>Betis</td></tr></table><p>Referee:<b>Michael</b> <i>Oliver</i><style>p{}</style></p>`))
	require.NoError(t, err)

	assert.Equal(t, "Real Betis", SpacedText(doc.Find("tr")))
	assert.Equal(t, "Referee: Michael Oliver", SpacedText(doc.Find("p")))
	assert.Equal(t, "Referee:", OwnText(doc.Find("p")))
	assert.Equal(t, "Real Betis Referee: Michael Oliver", VisibleText(doc))
}
