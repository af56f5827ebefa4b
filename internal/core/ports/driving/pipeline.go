package driving

import (
	"context"

	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
)

// BuildStatus tracks progress of a running build.
type BuildStatus struct {
	// RunID identifies the build run.
	RunID string

	// Running is true while the build is in flight.
	Running bool

	// CountsBuilt is the number of (source, language) count tables
	// completed so far.
	CountsBuilt int

	// TablesMerged is the number of languages merged so far.
	TablesMerged int

	// ErrorCount is the number of non-fatal per-unit failures.
	ErrorCount int
}

// BuildOrchestrator coordinates the full per-language pipeline: fetch,
// tokenize, count and merge for every supported language, bounded by the
// worker and per-origin fetch budgets.
type BuildOrchestrator interface {
	// BuildAll builds frequency tables for every supported language.
	BuildAll(ctx context.Context) error

	// BuildLanguage builds the frequency table for one language.
	// Returns domain.ErrUnsupportedLanguage below the source threshold.
	BuildLanguage(ctx context.Context, lang domain.LanguageCode) error

	// Status reports progress of the current or last run.
	Status() BuildStatus
}
