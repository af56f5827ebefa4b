package normaliser

import (
	"strings"

	"golang.org/x/text/cases"
)

// foldCase applies Unicode full case folding, which removes distinctions
// that would not survive uppercasing (German ß becomes ss, Greek final
// sigma becomes σ).
//
// Languages with the dotted/dotless I distinction fold each I to its own
// lowercase counterpart first: İ (U+0130) to i and I to ı (U+0131). The
// default fold would conflate them and change the number of dots. Runes
// outside that pair fall through to the generic fold; an unexpected
// codepoint is never an error.
func foldCase(s string, dottedI bool) string {
	if dottedI {
		s = dottedIReplacer.Replace(s)
	}
	return cases.Fold().String(s)
}

var dottedIReplacer = strings.NewReplacer(
	"İ", "i", // İ -> i
	"I", "ı", // I -> ı
)

// commasToCedillas converts s and t with commas below (ș, ț) to their
// cedilla forms (ş, ţ). Only lowercase forms are handled; the input has
// already been case-folded.
func commasToCedillas(s string) string {
	return strings.NewReplacer(
		"ș", "ş", // ș -> ş
		"ț", "ţ", // ț -> ţ
	).Replace(s)
}

// cedillasToCommas converts s and t with cedillas (ş, ţ) to their
// comma-below forms (ș, ț). Only lowercase forms are handled.
func cedillasToCommas(s string) string {
	return strings.NewReplacer(
		"ş", "ș", // ş -> ș
		"ţ", "ț", // ţ -> ț
	).Replace(s)
}
