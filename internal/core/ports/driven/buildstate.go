package driven

import (
	"context"
	"time"

	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
)

// ArtifactKind distinguishes the build products recorded in the ledger.
type ArtifactKind string

const (
	// ArtifactTokens is a tokenized-document archive.
	ArtifactTokens ArtifactKind = "tokens"
	// ArtifactCounts is a raw count table.
	ArtifactCounts ArtifactKind = "counts"
	// ArtifactFreqs is a merged frequency table.
	ArtifactFreqs ArtifactKind = "freqs"
)

// Artifact records one completed build product. The ledger is how the
// orchestrator knows a count table has reached its terminal state and may
// participate in a merge; it is not a scheduler.
type Artifact struct {
	// RunID identifies the build run that produced the artifact.
	RunID string

	// Source is the registry source name; empty for merged tables,
	// which combine all sources.
	Source string

	// Language is the pipeline's language code for the artifact.
	Language domain.LanguageCode

	// Kind is the artifact kind.
	Kind ArtifactKind

	// Path is where the artifact was written.
	Path string

	// CompletedAt is when the artifact reached its terminal state.
	CompletedAt time.Time
}

// BuildStateStore is the ledger of completed artifacts. Each artifact is
// written by exactly one producer; re-runs consult the ledger to skip
// work that is already done.
type BuildStateStore interface {
	// Record marks an artifact complete.
	Record(ctx context.Context, a Artifact) error

	// Lookup returns the recorded artifact for (source, lang, kind), or
	// domain.ErrNotFound.
	Lookup(ctx context.Context, source string, lang domain.LanguageCode, kind ArtifactKind) (*Artifact, error)

	// Completed lists every completed artifact of the given kind for a
	// language, in source-name order.
	Completed(ctx context.Context, lang domain.LanguageCode, kind ArtifactKind) ([]Artifact, error)

	// Close releases the underlying storage.
	Close() error
}
