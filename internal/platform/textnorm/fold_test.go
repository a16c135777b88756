package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hernandez hernandez", Fold("  Hernández   Hernández "))
	assert.Equal(t, "la liga (espana)", Fold("La Liga (España)"))
	assert.Equal(t, "", Fold("   "))
}

func TestWordsAndSlug(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"m", "oyarzabal"}, Words("M. Oyarzabal"))
	assert.Equal(t, "atletico-de-madrid", Slug("Atlético de Madrid", "-"))
	assert.Equal(t, "borja iglesias", Key("Borja-Iglesias"))
	assert.Len(t, TokenSet("Iago Aspas Aspas"), 2)
}

func TestStripAccents(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Clement Turpin", StripAccents(" Clément Turpin "))
	assert.Equal(t, "Munchen", StripAccents("München"))
}
