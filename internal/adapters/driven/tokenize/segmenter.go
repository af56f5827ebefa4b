// Package tokenize provides the default token segmenter. The pipeline
// treats tokenization as an external concern; this adapter is the
// fallback used when no external tokenizer output is supplied. It splits
// on whitespace and trims surrounding punctuation while keeping
// word-internal punctuation (hyphens, apostrophes, the grouping marks
// inside numbers) intact for the normaliser to deal with.
package tokenize

import (
	"strings"
	"unicode"

	"github.com/spacious-labs/wordfreq-cli/internal/core/ports/driven"
)

// Ensure Segmenter implements the port.
var _ driven.Tokenizer = (*Segmenter)(nil)

// Segmenter is a whitespace-and-punctuation segmenter. It is stateless
// and safe for concurrent use.
type Segmenter struct{}

// New creates a segmenter.
func New() *Segmenter {
	return &Segmenter{}
}

// Tokenize splits text into tokens. Fields are separated by Unicode
// whitespace; leading and trailing runes that are neither letters,
// digits nor combining marks are stripped from each field. Fields with
// nothing left produce no token.
func (s *Segmenter) Tokenize(text string) []string {
	fields := strings.FieldsFunc(text, unicode.IsSpace)
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		tok := strings.TrimFunc(field, isEdgePunct)
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// isEdgePunct reports whether r should be stripped from a token edge.
// Letters, digits and combining marks always stay.
func isEdgePunct(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsMark(r)
}
