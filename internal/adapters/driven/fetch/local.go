// Package fetch provides corpus fetchers and the per-origin budget
// machinery. Network downloading lives outside the pipeline; the local
// fetcher resolves sources against a directory tree that an external
// downloader has already populated, while still exercising the same
// origin budgets a network fetcher would.
package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
	"github.com/spacious-labs/wordfreq-cli/internal/core/ports/driven"
	"github.com/spacious-labs/wordfreq-cli/internal/logger"
)

// Ensure Local implements the port.
var _ driven.Fetcher = (*Local)(nil)

// Local resolves raw source data under a root directory laid out as
// <root>/<source>/<external-code>.txt, where external-code is the
// source's own label for the language.
type Local struct {
	root     string
	limiters *LimiterPool
}

// NewLocal creates a local fetcher over root.
func NewLocal(root string, limiters *LimiterPool) *Local {
	return &Local{root: root, limiters: limiters}
}

// Fetch locates the raw data file for (source, lang). The language code
// has already been translated into the source's own code by the caller.
// The origin budget is held for the duration of the stat, mirroring how
// a network fetcher would hold it for a download.
func (f *Local) Fetch(ctx context.Context, source domain.Source, lang domain.LanguageCode) (string, error) {
	limiter := f.limiters.For(source.Origin)
	if err := limiter.Acquire(ctx); err != nil {
		return "", err
	}
	defer limiter.Release()

	path := filepath.Join(f.root, source.Name, string(lang)+".txt")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			// A declared source without data is silently excluded
			// downstream, not an error here beyond NotFound.
			logger.Debug("No raw data for %s/%s at %s", source.Name, lang, path)
			return "", fmt.Errorf("%w: %s/%s", domain.ErrNotFound, source.Name, lang)
		}
		return "", fmt.Errorf("stat raw data: %w", err)
	}
	return path, nil
}
