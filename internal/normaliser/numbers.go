package normaliser

import (
	"regexp"
	"strings"
	"unicode"
)

// numPrefix marks a token whose digits were collapsed into a shape.
// It cannot collide with counted text: every other lexeme has been
// case-folded, so an uppercase prefix only ever comes from this rule.
const numPrefix = "NUM:"

// numberRunRE matches a maximal run of digits with grouping punctuation
// allowed strictly between digit groups. A trailing comma or period is
// token punctuation, not part of the number.
var numberRunRE = regexp.MustCompile(`\p{Nd}+(?:[.,]\p{Nd}+)*`)

// smashNumbers replaces multi-digit runs with a shape that preserves the
// digit-group boundaries but not the digit identities: "24,601" becomes
// "##,###". If anything changed, the whole token is prefixed with NUM:
// to mark it as a shape rather than literal text. Single digits are
// left alone; "r2d2" stays "r2d2".
func smashNumbers(token string) string {
	replaced := numberRunRE.ReplaceAllStringFunc(token, func(run string) string {
		if len([]rune(run)) < 2 {
			return run
		}
		var b strings.Builder
		b.Grow(len(run))
		for _, r := range run {
			if unicode.IsDigit(r) {
				b.WriteByte('#')
			} else {
				b.WriteRune(r)
			}
		}
		return b.String()
	})
	if replaced == token {
		return token
	}
	return numPrefix + replaced
}
