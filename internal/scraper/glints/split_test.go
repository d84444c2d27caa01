package glints

import (
	"testing"

	"go-jobpilot-scraper/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestSplitCompanyLocation(t *testing.T) {
	splitters := DefaultSplitters(config.Default().Glints.KnownLocations)

	tests := []struct {
		name     string
		text     string
		company  string
		location string
	}{
		{"parenthesis", "Acme Inc (PT)Jakarta, Indonesia", "Acme Inc (PT)", "Jakarta, Indonesia"},
		{"nested parenthesis", "Acme (PT (Persero) XYZ)Bandung", "Acme (PT (Persero) XYZ)", "Bandung"},
		{"parenthesis with space is not glued", "Acme (PT) Jakarta", "Acme (PT) Jakarta", ""},
		{"case change", "AcmeCorpRemote", "AcmeCorp", "Remote"},
		{"case change with region", "Tokopedia IndonesiaKota Jakarta Selatan, DKI Jakarta", "Tokopedia Indonesia", "Kota Jakarta Selatan, DKI Jakarta"},
		{"case change without a place", "SingleWordCompany", "SingleWordCompany", ""},
		{"case change to a listed city", "AcmeCorpPekanbaru", "AcmeCorp", "Pekanbaru"},
		{"case change to an unlisted city stays whole", "AcmeCorpKupang", "AcmeCorpKupang", ""},
		{"line break", "PT Satu Digital\nJakarta Selatan\nDKI Jakarta", "PT Satu Digital", "Jakarta Selatan, DKI Jakarta"},
		{"plain company", "Gojek", "Gojek", ""},
		{"surrounding whitespace", "  AcmeCorpJakarta  ", "AcmeCorp", "Jakarta"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			company, location := SplitCompanyLocation(tt.text, splitters)
			assert.Equal(t, tt.company, company)
			assert.Equal(t, tt.location, location)
		})
	}
}

func TestSplitOnParenthesis_NoMatch(t *testing.T) {
	for _, text := range []string{"Acme", "Acme (PT)", "(PT)", "Acme )Jakarta", "Acme (PT)-Jakarta"} {
		_, _, ok := SplitOnParenthesis(text)
		assert.False(t, ok, text)
	}
}

func TestCaseChangeSplitter_Diacritics(t *testing.T) {
	split := CaseChangeSplitter([]string{"Surabaya"})

	company, location, ok := split("KopiKenanganSURABÁYA")
	assert.True(t, ok)
	assert.Equal(t, "KopiKenangan", company)
	assert.Equal(t, "SURABÁYA", location)

	company, location, ok = split("KopiKenanganSurabáya")
	assert.True(t, ok)
	assert.Equal(t, "KopiKenangan", company)
	assert.Equal(t, "Surabáya", location)

	_, _, ok = split("KopiKenanganMalang")
	assert.False(t, ok)
}

func TestLooksLikeLocation(t *testing.T) {
	known := map[string]bool{"jakarta": true, "indonesia": true, "remote": true}

	assert.True(t, looksLikeLocation("Remote", known))
	assert.True(t, looksLikeLocation("Jakarta Barat", known))
	assert.True(t, looksLikeLocation("Kebayoran, Indonesia", known))
	assert.False(t, looksLikeLocation("Company", known))
	assert.False(t, looksLikeLocation("WordCompany", known))
}
