package services

import (
	"context"
	"fmt"

	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
	"github.com/spacious-labs/wordfreq-cli/internal/core/ports/driven"
	"github.com/spacious-labs/wordfreq-cli/internal/logger"
	"github.com/spacious-labs/wordfreq-cli/internal/normaliser"
)

// Counter turns token streams into raw count tables for one
// (source, language) pair at a time. It owns no mutable state; distinct
// invocations may run concurrently.
type Counter struct{}

// NewCounter creates a counter.
func NewCounter() *Counter {
	return &Counter{}
}

// Count consumes a token stream, normalises every token and counts the
// resulting lexemes. Tokens that normalise to nothing contribute no
// entry. The returned total counts every token that produced a lexeme,
// which is the within-source normalisation base later.
//
// The stream is never buffered in full; memory grows with vocabulary
// size only, which is the caller's concern to bound (e.g. by sharding).
func (c *Counter) Count(ctx context.Context, lang domain.LanguageCode, src driven.TokenSource) (domain.CountTable, int64, error) {
	counts := make(domain.CountTable)
	var total int64

	tokens, errs := src.Tokens(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil, 0, ctx.Err()

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil {
				return nil, 0, fmt.Errorf("token stream: %w", err)
			}

		case tok, ok := <-tokens:
			if !ok {
				// The producer reports a terminal error before closing,
				// so the error channel must be drained last.
				if err := drainErr(errs); err != nil {
					return nil, 0, fmt.Errorf("token stream: %w", err)
				}
				return counts, total, nil
			}
			lexeme := normaliser.Normalise(tok, lang)
			if lexeme == "" {
				continue
			}
			counts[lexeme]++
			total++
		}
	}
}

// Recount re-normalises a source that arrives as pre-aggregated
// (token, count) rows, such as an n-gram table. Rows whose tokens
// normalise to the same canonical lexeme merge their counts; rows that
// normalise to nothing, or carry a non-positive count, are skipped with
// a warning (uncurated upstream data, never fatal).
func (c *Counter) Recount(ctx context.Context, lang domain.LanguageCode, src driven.CountedSource) (domain.CountTable, int64, error) {
	counts := make(domain.CountTable)
	var total int64

	rows, errs := src.Rows(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil, 0, ctx.Err()

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil {
				return nil, 0, fmt.Errorf("count rows: %w", err)
			}

		case row, ok := <-rows:
			if !ok {
				if err := drainErr(errs); err != nil {
					return nil, 0, fmt.Errorf("count rows: %w", err)
				}
				return counts, total, nil
			}
			if row.Count <= 0 {
				logger.Warn("Skipping row with non-positive count: %q", row.Token)
				continue
			}
			lexeme := normaliser.Normalise(row.Token, lang)
			if lexeme == "" {
				continue
			}
			counts[lexeme] += row.Count
			total += row.Count
		}
	}
}

// drainErr collects the terminal error, if any, from a closed stream's
// error channel. A nil channel (already consumed) yields nil.
func drainErr(errs <-chan error) error {
	if errs == nil {
		return nil
	}
	if err, ok := <-errs; ok {
		return err
	}
	return nil
}

// DropHapaxes removes lexemes that occurred exactly once. Singleton
// counts in a large corpus are dominated by typos and junk; dropping
// them keeps tables compact. The recorded token total is left alone so
// relative frequencies still account for the dropped mass.
func DropHapaxes(counts domain.CountTable) {
	for lexeme, n := range counts {
		if n <= 1 {
			delete(counts, lexeme)
		}
	}
}
