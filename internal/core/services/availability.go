package services

import (
	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
	"github.com/spacious-labs/wordfreq-cli/internal/registry"
)

// Support thresholds. Frequency estimates built from one or two
// registers of language (subtitles only, news only) are unreliable
// estimates of general-purpose unigram probability, so diversity of
// register gates what gets built.
const (
	MinSupportedSources = 3
	MinLargeSources     = 5
)

// Availability classifies languages by how many registry sources declare
// coverage for them. It reads only the immutable registry.
type Availability struct {
	reg *registry.Registry
}

// NewAvailability creates a resolver over a loaded registry.
func NewAvailability(reg *registry.Registry) *Availability {
	return &Availability{reg: reg}
}

// Classify returns the support level for a language. The large-override
// table is consulted before the thresholds, so promoting a language is a
// registry data change and never touches this logic.
func (a *Availability) Classify(lang domain.LanguageCode) domain.SupportLevel {
	// Overrides promote regardless of source count.
	if a.reg.LargeOverride(lang) {
		return domain.Large
	}

	declared := len(a.reg.SourcesFor(lang))
	switch {
	case declared >= MinLargeSources:
		return domain.Large
	case declared >= MinSupportedSources:
		return domain.Supported
	default:
		return domain.Unsupported
	}
}

// SupportedLanguages returns every language at or above the supported
// threshold, sorted.
func (a *Availability) SupportedLanguages() []domain.LanguageCode {
	var out []domain.LanguageCode
	for _, lang := range a.reg.AllLanguages() {
		if a.Classify(lang) != domain.Unsupported {
			out = append(out, lang)
		}
	}
	return out
}

// LargeLanguages returns every language classified large, sorted.
func (a *Availability) LargeLanguages() []domain.LanguageCode {
	var out []domain.LanguageCode
	for _, lang := range a.reg.AllLanguages() {
		if a.Classify(lang) == domain.Large {
			out = append(out, lang)
		}
	}
	return out
}
