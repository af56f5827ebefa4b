package normaliser

import "strings"

// translitTable maps runes of a source script to their canonical-script
// spelling. A mapping may be empty (the rune is dropped) or multi-rune
// (Љ becomes Lj). Runes without an entry pass through unchanged, so an
// unrecognised codepoint degrades to mixed script instead of failing.
type translitTable struct {
	mapping map[rune]string
}

// apply transliterates s. Text already in the canonical script passes
// through untouched, which keeps the step idempotent.
func (t *translitTable) apply(s string) string {
	changed := false
	for _, r := range s {
		if _, ok := t.mapping[r]; ok {
			changed = true
			break
		}
	}
	if !changed {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	for _, r := range s {
		if out, ok := t.mapping[r]; ok {
			b.WriteString(out)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// extend builds a new table from a base with per-language overrides.
func (t *translitTable) extend(overrides map[rune]string) *translitTable {
	merged := make(map[rune]string, len(t.mapping)+len(overrides))
	for r, s := range t.mapping {
		merged[r] = s
	}
	for r, s := range overrides {
		merged[r] = s
	}
	return &translitTable{mapping: merged}
}

// srLatin romanises Serbian Cyrillic. The table is deliberately wider
// than Serbian itself: Russian borrowings and code-switched text come
// out transliterated approximately instead of as Cyrillic islands
// surrounded by Latin.
var srLatin = &translitTable{mapping: map[rune]string{
	'А': "A", 'а': "a",
	'Б': "B", 'б': "b",
	'В': "V", 'в': "v",
	'Г': "G", 'г': "g",
	'Д': "D", 'д': "d",
	'Ђ': "Đ", 'ђ': "đ",
	'Е': "E", 'е': "e",
	'Ж': "Ž", 'ж': "ž",
	'З': "Z", 'з': "z",
	'И': "I", 'и': "i",
	'Ј': "J", 'ј': "j",
	'К': "K", 'к': "k",
	'Л': "L", 'л': "l",
	'Љ': "Lj", 'љ': "lj",
	'М': "M", 'м': "m",
	'Н': "N", 'н': "n",
	'Њ': "Nj", 'њ': "nj",
	'О': "O", 'о': "o",
	'П': "P", 'п': "p",
	'Р': "R", 'р': "r",
	'С': "S", 'с': "s",
	'Т': "T", 'т': "t",
	'Ћ': "Ć", 'ћ': "ć",
	'У': "U", 'у': "u",
	'Ф': "F", 'ф': "f",
	'Х': "H", 'х': "h",
	'Ц': "C", 'ц': "c",
	'Ч': "Č", 'ч': "č",
	'Џ': "Dž", 'џ': "dž",
	'Ш': "Š", 'ш': "š",

	// Russian letters, transliterated in Serbian style.
	'Ё': "Jo", 'ё': "jo",
	'Й': "J", 'й': "j",
	'Щ': "Šč", 'щ': "šč",
	'Ъ': "", 'ъ': "",
	'Ы': "Y", 'ы': "y",
	'Ь': "'", 'ь': "'",
	'Э': "E", 'э': "e",
	'Ю': "Ju", 'ю': "ju",
	'Я': "Ja", 'я': "ja",

	// Belarusian
	'Ў': "Ŭ", 'ў': "ŭ",

	// Ukrainian
	'Є': "Je", 'є': "je",
	'І': "I", 'і': "i",
	'Ї': "Ï", 'ї': "ï",
	'Ґ': "G", 'ґ': "g",

	// Macedonian
	'Ѕ': "Dz", 'ѕ': "dz",
	'Ѓ': "Ǵ", 'ѓ': "ǵ",
	'Ќ': "Ḱ", 'ќ': "ḱ",

	// Tajik
	'Ҷ': "Dž", 'ҷ': "dž",

	// Azerbaijani
	'Ҹ': "C", 'ҹ': "c",
	'Ә': "Ə", 'ә': "ə",
	'Ғ': "Ğ", 'ғ': "ğ",
	'Һ': "H", 'һ': "h",
	'Ө': "Ö", 'ө': "ö",
	'Ҝ': "G", 'ҝ': "g",
	'Ү': "Ü", 'ү': "ü",

	// Kazakh
	'Қ': "Q", 'қ': "q",
	'Ң': "N'", 'ң': "n'",
	'Ұ': "U", 'ұ': "u",

	// Obsolete letters, transcribed like Polish where appropriate.
	'Ѣ': "Ě", 'ѣ': "ě",
	'Ѧ': "Ę", 'ѧ': "ę",
	'Ѩ': "Ję", 'ѩ': "ję",
	'Ѫ': "Ą", 'ѫ': "ą",
	'Ѭ': "Ją", 'ѭ': "ją",
	'Ѥ': "Je", 'ѥ': "je",
}}

// azLatin romanises Azerbaijani Cyrillic. It shares the Serbian base but
// a handful of letters transliterate differently in the Azerbaijani
// Latin alphabet.
var azLatin = srLatin.extend(map[rune]string{
	'Ч': "Ç", 'ч': "ç",
	'Х': "X", 'х': "x",
	'Ы': "I", 'ы': "ı",
	'И': "İ", 'и': "i",
	'Ж': "J", 'ж': "j",
	'Ј': "Y", 'ј': "y",
	'Г': "Q", 'г': "q",
	'Ш': "Ş", 'ш': "ş",
})

// kkLatin romanises Kazakh Cyrillic per the national romanisation.
var kkLatin = srLatin.extend(map[rune]string{
	'Ғ': "G'", 'ғ': "g'",
	'И': "I'", 'и': "i'",
	'Й': "I'", 'й': "i'",
	'Ж': "J", 'ж': "j",
	'Ә': "A'", 'ә': "a'",
	'Ө': "O'", 'ө': "o'",
	'У': "Y'", 'у': "y'",
	'Ү': "U'", 'ү': "u'",
	'Һ': "H", 'һ': "h",
	'Ч': "C'", 'ч': "c'",
})
