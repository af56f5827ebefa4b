package domain

// LanguageCode tags a language, optionally qualified by a script subtag
// (e.g. "en", "zh-Hans"). Codes are compared by exact string equality
// throughout the pipeline; there is no implicit script folding. A source
// that labels the same language differently carries its own translation
// table in the registry.
type LanguageCode string

// String returns the code as a plain string.
func (c LanguageCode) String() string { return string(c) }

// SupportLevel classifies how well a language is covered by the registry.
// Frequency estimates built from very few registers of language are
// unreliable, so diversity of sources gates what gets built at all.
type SupportLevel int

const (
	// Unsupported means fewer than 3 sources declare the language.
	// The language is excluded from every build target.
	Unsupported SupportLevel = iota

	// Supported means 3 or 4 sources declare the language.
	Supported

	// Large means 5 or more sources declare the language, or the
	// language appears in the registry's large-override table.
	Large
)

// String returns a human-readable name for the support level.
func (l SupportLevel) String() string {
	switch l {
	case Supported:
		return "supported"
	case Large:
		return "large"
	default:
		return "unsupported"
	}
}
