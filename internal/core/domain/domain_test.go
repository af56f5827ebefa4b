package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSource_Covers(t *testing.T) {
	src := Source{Name: "wikipedia", Languages: []LanguageCode{"en", "zh-Hans"}}

	assert.True(t, src.Covers("en"))
	assert.True(t, src.Covers("zh-Hans"))
	// Exact comparison, no script folding.
	assert.False(t, src.Covers("zh"))
	assert.False(t, src.Covers("de"))
}

func TestSource_Translate(t *testing.T) {
	src := Source{
		Name:        "google-ngrams",
		LanguageMap: map[LanguageCode]string{"zh-Hans": "chi_sim"},
	}

	assert.Equal(t, "chi_sim", src.Translate("zh-Hans"))
	assert.Equal(t, "en", src.Translate("en"))

	var bare Source
	assert.Equal(t, "fr", bare.Translate("fr"))
}

func TestCountTable_Total(t *testing.T) {
	assert.Equal(t, int64(0), CountTable{}.Total())
	assert.Equal(t, int64(15), CountTable{"a": 10, "b": 5}.Total())
}

func TestSourceCounts_Base(t *testing.T) {
	withTotal := SourceCounts{Counts: CountTable{"a": 5}, Total: 10}
	assert.Equal(t, int64(10), withTotal.Base())

	// Zero total means unknown; fall back to the table sum.
	noTotal := SourceCounts{Counts: CountTable{"a": 5, "b": 2}}
	assert.Equal(t, int64(7), noTotal.Base())
}

func TestFrequencyTable_Sum(t *testing.T) {
	table := FrequencyTable{
		{Lexeme: "a", Probability: 0.6},
		{Lexeme: "b", Probability: 0.39},
	}
	assert.InDelta(t, 0.99, table.Sum(), 1e-12)
}

func TestFrequencyTable_Sorted(t *testing.T) {
	assert.True(t, FrequencyTable{}.Sorted())
	assert.True(t, FrequencyTable{
		{Lexeme: "a", Probability: 0.5},
		{Lexeme: "b", Probability: 0.3},
		{Lexeme: "c", Probability: 0.3},
	}.Sorted())
	assert.False(t, FrequencyTable{
		{Lexeme: "a", Probability: 0.3},
		{Lexeme: "b", Probability: 0.5},
	}.Sorted())
	// Tied rows out of lexeme order.
	assert.False(t, FrequencyTable{
		{Lexeme: "b", Probability: 0.5},
		{Lexeme: "a", Probability: 0.5},
	}.Sorted())
}

func TestSupportLevel_String(t *testing.T) {
	assert.Equal(t, "unsupported", Unsupported.String())
	assert.Equal(t, "supported", Supported.String())
	assert.Equal(t, "large", Large.String())
}
