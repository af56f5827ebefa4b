package normaliser

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
)

// underDiacritics selects the repair applied to s and t with attached
// under-letter diacritics. Cedillas and commas-below look alike and many
// fonts carry only one pair, so corpora mix them freely; each language
// gets the pair its orthography prefers.
type underDiacritics int

const (
	underNone underDiacritics = iota
	// underCedillas converts commas-below to cedillas (ș→ş), preferred
	// in Turkish and related languages.
	underCedillas
	// underCommas converts cedillas to commas-below (ş→ș), preferred in
	// Romanian.
	underCommas
)

// info captures how one language's text is normalised.
type info struct {
	form       norm.Form
	translit   *translitTable
	dottedI    bool
	diacritics underDiacritics
	stripMarks bool
}

// script identifies the canonical script a language's tokens are in
// after preprocessing.
type script int

const (
	scriptOther script = iota
	scriptLatin
	scriptGreek
	scriptCyrillic
	scriptArabic
	scriptHebrew
)

// scripts maps base language codes to their canonical script. Languages
// not listed fall into scriptOther. Cased alphabetic scripts (Latin,
// Greek, Cyrillic) get NFC; everything else gets NFKC, which is needed
// for proper comparisons in abjads, CJK and Indic scripts but is
// excessive for European orthographies.
var scripts = map[string]script{
	// Latin
	"az": scriptLatin, "bs": scriptLatin, "ca": scriptLatin,
	"cs": scriptLatin, "cy": scriptLatin, "da": scriptLatin,
	"de": scriptLatin, "en": scriptLatin, "eo": scriptLatin,
	"es": scriptLatin, "et": scriptLatin, "eu": scriptLatin,
	"fi": scriptLatin, "fr": scriptLatin, "gl": scriptLatin,
	"hr": scriptLatin, "hu": scriptLatin, "id": scriptLatin,
	"is": scriptLatin, "it": scriptLatin, "ku": scriptLatin,
	"la": scriptLatin, "lt": scriptLatin, "lv": scriptLatin,
	"mg": scriptLatin, "ms": scriptLatin, "nb": scriptLatin,
	"nl": scriptLatin, "nn": scriptLatin, "no": scriptLatin,
	"pl": scriptLatin, "pt": scriptLatin, "ro": scriptLatin,
	"sk": scriptLatin, "sl": scriptLatin, "sq": scriptLatin,
	"sv": scriptLatin, "sw": scriptLatin, "tl": scriptLatin,
	"tr": scriptLatin, "uz": scriptLatin, "vi": scriptLatin,

	// Greek
	"el": scriptGreek,

	// Cyrillic. Serbian, Azerbaijani and Kazakh transliterate to Latin,
	// but their Cyrillic input still composes under NFC first.
	"be": scriptCyrillic, "bg": scriptCyrillic, "kk": scriptCyrillic,
	"mk": scriptCyrillic, "mn": scriptCyrillic, "ru": scriptCyrillic,
	"sr": scriptCyrillic, "uk": scriptCyrillic,

	// Abjads, marked separately so optional vowel marks are stripped.
	"ar": scriptArabic, "fa": scriptArabic, "ur": scriptArabic,
	"he": scriptHebrew, "yi": scriptHebrew,
}

// dottedILanguages distinguishes dotted and dotless I: İ lowercases to i
// and I to ı, unlike the default Unicode fold.
var dottedILanguages = map[string]bool{
	"tr": true,
	"az": true,
	"kk": true,
}

// diacriticsUnder selects the under-letter diacritic repair per language.
var diacriticsUnder = map[string]underDiacritics{
	"tr": underCedillas,
	"az": underCedillas,
	"kk": underCedillas,
	"ro": underCommas,
}

// transliterations maps languages written in more than one script in
// practice to their canonical-script transliteration table.
var transliterations = map[string]*translitTable{
	"sr": srLatin,
	"az": azLatin,
	"kk": kkLatin,
}

// infoFor resolves the normalisation behaviour for a language code.
// Script subtags select the same behaviour as the base language
// ("pt-BR" normalises like "pt"); the codes themselves stay distinct
// everywhere else in the pipeline.
func infoFor(lang domain.LanguageCode) info {
	base := string(lang)
	if i := strings.IndexByte(base, '-'); i > 0 {
		base = base[:i]
	}

	sc := scripts[base]
	inf := info{
		form:       norm.NFKC,
		translit:   transliterations[base],
		dottedI:    dottedILanguages[base],
		diacritics: diacriticsUnder[base],
		stripMarks: sc == scriptArabic || sc == scriptHebrew,
	}
	if sc == scriptLatin || sc == scriptGreek || sc == scriptCyrillic {
		inf.form = norm.NFC
	}
	return inf
}
