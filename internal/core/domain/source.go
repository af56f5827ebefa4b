package domain

// Source describes one corpus origin in the registry: a named upstream
// (e.g. "wikipedia", "opensubtitles") together with the languages it
// covers and the quirks of how it labels them.
type Source struct {
	// Name is the registry-wide identifier for the source.
	Name string

	// Languages is the declared coverage. A declared language is not a
	// promise that a count table exists; availability is checked
	// independently at merge time.
	Languages []LanguageCode

	// LanguageMap translates the pipeline's language codes into the
	// source's own codes (e.g. google-ngrams calls zh-Hans "chi_sim").
	// Codes absent from the map translate to themselves.
	LanguageMap map[LanguageCode]string

	// FullText is true when the source supplies raw text that must be
	// tokenized and counted. False means the source is delivered as
	// pre-aggregated (token, count) rows and goes through recount.
	FullText bool

	// Origin names the upstream endpoint the source is fetched from.
	// Several sources may share an origin; fetch budgets are enforced
	// per origin, not per source.
	Origin string
}

// Covers reports whether the source declares coverage for lang.
// Comparison is exact; "zh" does not cover "zh-Hans".
func (s *Source) Covers(lang LanguageCode) bool {
	for _, l := range s.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// Translate returns the source's own code for lang, falling back to the
// identity mapping when no explicit entry exists. The fallback is
// intentional: most sources use the pipeline's codes directly.
func (s *Source) Translate(lang LanguageCode) string {
	if s.LanguageMap != nil {
		if ext, ok := s.LanguageMap[lang]; ok {
			return ext
		}
	}
	return string(lang)
}

// FetchOrigin describes an upstream endpoint with its connection budget.
// Upstreams enforce per-client limits, so fetches against one origin are
// bounded independently of the overall worker pool.
type FetchOrigin struct {
	// Name identifies the origin (e.g. "opus", "wikipedia-dumps").
	Name string

	// MaxConnections bounds simultaneous fetches against this origin.
	MaxConnections int

	// RequestsPerSecond is the sustained request rate for this origin.
	RequestsPerSecond float64
}
