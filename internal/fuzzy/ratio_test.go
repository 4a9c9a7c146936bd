package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "desarrollo de aplicaciones web", Normalize("  Desarrollo   de\tAplicaciones WEB "))
	assert.Equal(t, "", Normalize("   "))
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 100.0, Ratio("", ""))
	assert.Equal(t, 100.0, Ratio("abc", "abc"))
	assert.Equal(t, 0.0, Ratio("abc", ""))
	assert.Equal(t, 0.0, Ratio("abc", "xyz"))
	// lcs("abcd","abed") = 3 -> 2*3/8
	assert.InDelta(t, 75.0, Ratio("abcd", "abed"), 1e-9)
	// runes, not bytes
	assert.Equal(t, 100.0, Ratio("informática", "informática"))
	assert.InDelta(t, 90.909, Ratio("informática", "informatica"), 1e-3)
}

func TestTokenSetRatio(t *testing.T) {
	assert.Equal(t, 0.0, TokenSetRatio("", "algo"))
	assert.Equal(t, 100.0, TokenSetRatio("cocina y gastronomía", "gastronomía y cocina"))
	assert.Equal(t, 100.0, TokenSetRatio("sistemas microinformáticos", "sistemas microinformáticos y redes"))

	score := TokenSetRatio("desarrollo aplicaciones web", "desarrollo de aplicaciones multiplataforma")
	assert.Greater(t, score, 55.0)
	assert.Less(t, score, 100.0)

	assert.Less(t, TokenSetRatio("peluquería", "mecatrónica industrial"), 55.0)
}

func TestExtractOne(t *testing.T) {
	choices := []string{
		"administración y finanzas",
		"desarrollo de aplicaciones web",
		"desarrollo de aplicaciones multiplataforma",
	}

	match, score := ExtractOne("desarrollo aplicaciones web", choices)
	assert.Equal(t, "desarrollo de aplicaciones web", match)
	assert.Equal(t, 100, score)

	match, score = ExtractOne("anything", nil)
	assert.Equal(t, "", match)
	assert.Equal(t, 0, score)

	// ties keep the first candidate
	match, _ = ExtractOne("x", []string{"y", "z"})
	assert.Equal(t, "y", match)
}
