package driven

import "context"

// TokenSource streams raw tokens for one (source, language) pair. The
// stream may be effectively unbounded, so consumers must not buffer it in
// full. Both channels close when the stream is exhausted; a value on the
// error channel ends the stream.
type TokenSource interface {
	// Tokens starts streaming. The returned channels are owned by the
	// source and closed by it. Cancelling ctx stops the stream.
	Tokens(ctx context.Context) (<-chan string, <-chan error)
}

// CountedRow is one pre-aggregated (token, count) row from a source that
// delivers counts rather than raw text, such as an n-gram table.
type CountedRow struct {
	Token string
	Count int64
}

// CountedSource streams pre-aggregated rows for one (source, language)
// pair. Rows for the same canonical lexeme may appear more than once
// (e.g. differently-cased variants); consumers sum them.
type CountedSource interface {
	Rows(ctx context.Context) (<-chan CountedRow, <-chan error)
}

// Tokenizer segments raw text into tokens. The real tokenizer is an
// external collaborator; this port models its interface so the pipeline
// can drive it. Implementations must be safe for concurrent use.
type Tokenizer interface {
	// Tokenize splits one document's text into tokens.
	Tokenize(text string) []string
}

// DocumentReader streams raw documents, one per line, from a fetched
// corpus file. Overlong and empty lines are skipped by implementations.
type DocumentReader interface {
	Documents(ctx context.Context, path string) (<-chan string, <-chan error)
}
