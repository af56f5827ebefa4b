// Package registry holds the pipeline's static source configuration: which
// sources exist, which languages each covers, how each source labels its
// languages, and the per-origin fetch budgets. The registry is loaded once
// at startup, is immutable afterwards, and is passed explicitly to every
// component that needs it - there is no ambient global lookup.
//
// The default configuration is embedded; --registry loads a replacement
// TOML file with the same schema. Adding a source, a language or a
// threshold exception is a data change, not a code change.
package registry

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
)

//go:embed sources.toml
var embedded []byte

// Registry is the immutable source configuration.
type Registry struct {
	sources   map[string]domain.Source
	names     []string // sorted source names
	origins   map[string]domain.FetchOrigin
	largeSet  map[domain.LanguageCode]bool
	languages []domain.LanguageCode // sorted union of declared coverage
}

// file-level TOML schema.
type registryFile struct {
	Sources   map[string]sourceEntry `toml:"sources"`
	Origins   map[string]originEntry `toml:"origins"`
	Overrides overridesEntry         `toml:"overrides"`
}

type sourceEntry struct {
	Languages   []string          `toml:"languages"`
	LanguageMap map[string]string `toml:"language_map"`
	FullText    bool              `toml:"full_text"`
	Origin      string            `toml:"origin"`
}

type originEntry struct {
	MaxConnections    int     `toml:"max_connections"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

type overridesEntry struct {
	// Large lists languages promoted to "large" regardless of source
	// count, for historical continuity after a source retirement.
	Large []string `toml:"large"`
}

// Embedded returns the registry built from the embedded configuration.
func Embedded() (*Registry, error) {
	return parse(embedded)
}

// LoadFile builds a registry from a TOML file on disk.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Registry, error) {
	var file registryFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}

	r := &Registry{
		sources:  make(map[string]domain.Source, len(file.Sources)),
		origins:  make(map[string]domain.FetchOrigin, len(file.Origins)),
		largeSet: make(map[domain.LanguageCode]bool, len(file.Overrides.Large)),
	}

	langSet := make(map[domain.LanguageCode]bool)
	for name, entry := range file.Sources {
		src := domain.Source{
			Name:     name,
			FullText: entry.FullText,
			Origin:   entry.Origin,
		}
		for _, l := range entry.Languages {
			code := domain.LanguageCode(l)
			src.Languages = append(src.Languages, code)
			langSet[code] = true
		}
		sort.Slice(src.Languages, func(i, j int) bool {
			return src.Languages[i] < src.Languages[j]
		})
		if len(entry.LanguageMap) > 0 {
			src.LanguageMap = make(map[domain.LanguageCode]string, len(entry.LanguageMap))
			for from, to := range entry.LanguageMap {
				src.LanguageMap[domain.LanguageCode(from)] = to
			}
		}
		r.sources[name] = src
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)

	for name, entry := range file.Origins {
		r.origins[name] = domain.FetchOrigin{
			Name:              name,
			MaxConnections:    entry.MaxConnections,
			RequestsPerSecond: entry.RequestsPerSecond,
		}
	}

	for _, l := range file.Overrides.Large {
		r.largeSet[domain.LanguageCode(l)] = true
	}

	for code := range langSet {
		r.languages = append(r.languages, code)
	}
	sort.Slice(r.languages, func(i, j int) bool { return r.languages[i] < r.languages[j] })

	return r, nil
}

// Sources returns every source in name order.
func (r *Registry) Sources() []domain.Source {
	out := make([]domain.Source, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.sources[name])
	}
	return out
}

// Source returns the named source, or domain.ErrUnknownSource.
func (r *Registry) Source(name string) (*domain.Source, error) {
	src, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSource, name)
	}
	return &src, nil
}

// Languages returns the declared coverage for a source, sorted. An
// unknown source has empty coverage; that is not an error.
func (r *Registry) Languages(source string) []domain.LanguageCode {
	src, ok := r.sources[source]
	if !ok {
		return nil
	}
	out := make([]domain.LanguageCode, len(src.Languages))
	copy(out, src.Languages)
	return out
}

// Translate returns the source's own code for lang. An unmapped code (or
// an unknown source) falls back to the identity mapping by design: most
// sources use the pipeline's codes directly.
func (r *Registry) Translate(source string, lang domain.LanguageCode) string {
	src, ok := r.sources[source]
	if !ok {
		return string(lang)
	}
	return src.Translate(lang)
}

// SourcesFor returns the sources declaring coverage for lang, in name
// order. Declared coverage is independent of whether a count table has
// actually been built.
func (r *Registry) SourcesFor(lang domain.LanguageCode) []domain.Source {
	var out []domain.Source
	for _, name := range r.names {
		if src := r.sources[name]; src.Covers(lang) {
			out = append(out, src)
		}
	}
	return out
}

// AllLanguages returns the sorted union of every source's coverage.
func (r *Registry) AllLanguages() []domain.LanguageCode {
	out := make([]domain.LanguageCode, len(r.languages))
	copy(out, r.languages)
	return out
}

// LargeOverride reports whether lang is promoted to "large" by the
// override table, independent of its source count.
func (r *Registry) LargeOverride(lang domain.LanguageCode) bool {
	return r.largeSet[lang]
}

// Origin returns the fetch budget for a named origin. Origins without an
// entry get a conservative single-connection budget.
func (r *Registry) Origin(name string) domain.FetchOrigin {
	if o, ok := r.origins[name]; ok {
		return o
	}
	return domain.FetchOrigin{Name: name, MaxConnections: 1, RequestsPerSecond: 1}
}
