// Package normaliser canonicalises raw tokens into comparable lexemes.
//
// Normalise is a pure function of (token, language). It applies, in
// order: whitespace trimming, Unicode normal form (NFC or NFKC depending
// on the language's script), transliteration of multi-script languages
// into a single canonical script, language-aware case folding,
// under-letter diacritic repair, optional-mark stripping for abjad
// scripts, apostrophe straightening, and numeric shape collapsing.
//
// Which rules apply to which language is driven by the data tables in
// languages.go, not by per-call branching.
//
// Normalisation is idempotent: some sources re-enter the pipeline after
// partial pre-processing, so Normalise(Normalise(t, l), l) must equal
// Normalise(t, l). All functions are safe for concurrent use.
package normaliser

import (
	"strings"

	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
)

// Normalise maps a raw token to its canonical lexeme for lang. An empty
// result means the token was whitespace only and produces no lexeme.
func Normalise(token string, lang domain.LanguageCode) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}

	// Shape tokens produced by a previous pass re-enter unchanged, so
	// the NUM: prefix survives case folding on the second run. The
	// prefix alone is the marker: a shaped token may still carry a
	// stray single digit, as in "NUM:##/7".
	if strings.HasPrefix(token, numPrefix) {
		return token
	}

	info := infoFor(lang)

	token = info.form.String(token)

	if info.translit != nil {
		token = info.translit.apply(token)
	}

	token = foldCase(token, info.dottedI)

	switch info.diacritics {
	case underCedillas:
		token = commasToCedillas(token)
	case underCommas:
		token = cedillasToCommas(token)
	}

	if info.stripMarks {
		token = removeMarks(token)
	}

	token = uncurlQuotes(token)

	return smashNumbers(token)
}

// quoteReplacer straightens curly quotation marks. Curly apostrophes are
// common in subtitle and news corpora and would otherwise split the
// counts for contracted forms.
var quoteReplacer = strings.NewReplacer(
	"‘", "'", // left single quotation mark
	"’", "'", // right single quotation mark
	"“", `"`, // left double quotation mark
	"”", `"`, // right double quotation mark
)

func uncurlQuotes(s string) string {
	return quoteReplacer.Replace(s)
}
