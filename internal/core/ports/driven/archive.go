package driven

import (
	"context"

	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
)

// DocumentArchive reads a tokenized-document archive for one language.
// The packaged format is externally defined and opaque to the core; the
// core only ever sees a stream of tokens.
type DocumentArchive interface {
	// TokenStream returns a TokenSource over every token of every
	// document in the archive, in document order.
	TokenStream(lang domain.LanguageCode) TokenSource
}

// ArchiveWriter packages tokenized documents into an archive. Documents
// are appended in order; Close finalises the container.
type ArchiveWriter interface {
	// WriteDocument appends one document's tokens to the archive.
	WriteDocument(ctx context.Context, tokens []string) error

	// Close finalises the archive. No writes may follow.
	Close() error
}

// ArchiveStore creates and opens token archives on whatever medium the
// adapter chooses. The orchestrator names paths; the store owns format.
type ArchiveStore interface {
	// Open returns a handle on an existing archive.
	Open(path string) DocumentArchive

	// Create starts a new archive at path for one language.
	Create(path string, lang domain.LanguageCode) (ArchiveWriter, error)
}
