package domain

import "errors"

// Domain errors represent business logic failures.
// Data-quality problems (malformed rows, missing sources) are not errors
// at all - they are logged and skipped upstream.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownSource indicates a source name absent from the registry.
	ErrUnknownSource = errors.New("unknown source")

	// ErrUnsupportedLanguage indicates a language below the source-count
	// threshold. Not produced by the merger - unsupported languages are
	// filtered out before merge requests are routed.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrNoEligibleSources indicates a merge was requested with an empty
	// source set. This is a contract violation by the caller: the
	// availability resolver guarantees at least one eligible source
	// before a merge is routed, so an empty set means the orchestration
	// layer routed an invalid request.
	ErrNoEligibleSources = errors.New("no eligible sources for merge")

	// ErrArchiveCorrupt indicates a token archive that cannot be read.
	ErrArchiveCorrupt = errors.New("token archive corrupt")
)
