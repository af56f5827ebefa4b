package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
	"github.com/spacious-labs/wordfreq-cli/internal/core/ports/driven"
	"github.com/spacious-labs/wordfreq-cli/internal/core/ports/driving"
	"github.com/spacious-labs/wordfreq-cli/internal/logger"
	"github.com/spacious-labs/wordfreq-cli/internal/registry"
)

// DefaultJobs bounds concurrent count builds when the caller does not
// say otherwise. Counting is CPU-bound on normalisation; fetching is
// bounded separately by the per-origin budgets.
const DefaultJobs = 8

// Ensure Builder implements the driving port.
var _ driving.BuildOrchestrator = (*Builder)(nil)

// BuilderDeps are the collaborators a Builder drives. All fields are
// required except Jobs.
type BuilderDeps struct {
	Registry    *registry.Registry
	Fetcher     driven.Fetcher
	Tokenizer   driven.Tokenizer
	Documents   driven.DocumentReader
	Archives    driven.ArchiveStore
	Counts      driven.CountStore
	Rows        driven.RowOpener
	Frequencies driven.FrequencyWriter
	Ledger      driven.BuildStateStore

	// DataDir is where artifacts are written, in tokens/, counts/ and
	// freqs/ subdirectories.
	DataDir string

	// Jobs bounds concurrent count builds; <= 0 selects DefaultJobs.
	Jobs int
}

// Builder runs the full per-language pipeline: fetch, tokenize, count
// and merge, for every source declaring coverage. Work already recorded
// in the ledger is skipped, so an interrupted run picks up where it
// left off.
type Builder struct {
	deps  BuilderDeps
	avail *Availability

	counter *Counter
	merger  *Merger

	mu     sync.Mutex
	status driving.BuildStatus
}

// NewBuilder creates a builder over its collaborators.
func NewBuilder(deps BuilderDeps) *Builder {
	if deps.Jobs <= 0 {
		deps.Jobs = DefaultJobs
	}
	return &Builder{
		deps:    deps,
		avail:   NewAvailability(deps.Registry),
		counter: NewCounter(),
		merger:  NewMerger(),
	}
}

// BuildAll builds frequency tables for every supported language.
func (b *Builder) BuildAll(ctx context.Context) error {
	return b.build(ctx, b.avail.SupportedLanguages())
}

// BuildLanguage builds the frequency table for one language. Languages
// below the support threshold are refused up front: a table built from
// one or two sources would be misleading, not merely sparse.
func (b *Builder) BuildLanguage(ctx context.Context, lang domain.LanguageCode) error {
	if b.avail.Classify(lang) == domain.Unsupported {
		return fmt.Errorf("build %s: %w", lang, domain.ErrUnsupportedLanguage)
	}
	return b.build(ctx, []domain.LanguageCode{lang})
}

// Status reports progress of the current or last run.
func (b *Builder) Status() driving.BuildStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

// build runs the two phases: count tables for every (source, language)
// pair, then one merge per language. A failing unit is logged and
// tallied, never fatal - other units proceed. Only cancellation stops
// the run.
func (b *Builder) build(ctx context.Context, langs []domain.LanguageCode) error {
	runID := uuid.NewString()
	b.setRunning(runID)
	defer b.setStopped()

	for _, sub := range []string{"tokens", "counts", "freqs"} {
		if err := os.MkdirAll(filepath.Join(b.deps.DataDir, sub), 0700); err != nil {
			return fmt.Errorf("creating artifact directory: %w", err)
		}
	}

	logger.Section("Building count tables")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.deps.Jobs)
	for _, lang := range langs {
		for _, src := range b.deps.Registry.SourcesFor(lang) {
			lang, src := lang, src
			g.Go(func() error {
				built, err := b.buildCounts(gctx, runID, src, lang)
				switch {
				case err == nil:
					if built {
						b.noteCounts()
					}
				case errors.Is(err, domain.ErrNotFound):
					// Declared coverage without data: the source is
					// silently excluded from this language's merge.
					logger.Debug("No data for %s/%s, excluding", src.Name, lang)
				case gctx.Err() != nil:
					return gctx.Err()
				default:
					b.noteError()
					logger.Warn("Count build failed for %s/%s: %v", src.Name, lang, err)
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Section("Merging frequency tables")
	var lastErr error
	for _, lang := range langs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.mergeLanguage(ctx, runID, lang); err != nil {
			b.noteError()
			logger.Warn("Merge failed for %s: %v", lang, err)
			lastErr = err
			continue
		}
		b.noteMerged()
	}

	// A run that merged nothing at all failed, whatever the per-unit
	// tallies say.
	if b.Status().TablesMerged == 0 && lastErr != nil {
		return lastErr
	}
	return nil
}

// buildCounts produces the count table for one (source, language) pair:
// fetch the raw data, tokenize full-text sources into an archive or
// stream pre-aggregated rows, count, drop hapaxes, persist, record.
// built is false when the ledger already held the table.
func (b *Builder) buildCounts(ctx context.Context, runID string, src domain.Source, lang domain.LanguageCode) (built bool, err error) {
	if _, err := b.deps.Ledger.Lookup(ctx, src.Name, lang, driven.ArtifactCounts); err == nil {
		logger.Debug("Count table for %s/%s already built, skipping", src.Name, lang)
		return false, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}

	external := domain.LanguageCode(b.deps.Registry.Translate(src.Name, lang))
	raw, err := b.deps.Fetcher.Fetch(ctx, src, external)
	if err != nil {
		return false, err
	}

	var (
		counts domain.CountTable
		total  int64
	)
	if src.FullText {
		counts, total, err = b.countFullText(ctx, runID, src, lang, raw)
	} else {
		counts, total, err = b.counter.Recount(ctx, lang, b.deps.Rows.OpenRows(raw))
	}
	if err != nil {
		return false, err
	}

	DropHapaxes(counts)

	path := filepath.Join(b.deps.DataDir, "counts", fmt.Sprintf("%s_%s.txt", src.Name, lang))
	if err := b.deps.Counts.Write(path, counts, total); err != nil {
		return false, err
	}
	return true, b.deps.Ledger.Record(ctx, driven.Artifact{
		RunID:       runID,
		Source:      src.Name,
		Language:    lang,
		Kind:        driven.ArtifactCounts,
		Path:        path,
		CompletedAt: time.Now().UTC(),
	})
}

// countFullText tokenizes a raw full-text corpus into an archive, then
// counts from the archive. The archive is recorded as its own artifact:
// re-tokenizing is the expensive half of a count build.
func (b *Builder) countFullText(ctx context.Context, runID string, src domain.Source, lang domain.LanguageCode, raw string) (domain.CountTable, int64, error) {
	archPath := filepath.Join(b.deps.DataDir, "tokens", fmt.Sprintf("%s_%s.zip", src.Name, lang))

	if _, err := b.deps.Ledger.Lookup(ctx, src.Name, lang, driven.ArtifactTokens); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, 0, err
		}
		if err := b.tokenizeFile(ctx, raw, archPath, lang); err != nil {
			return nil, 0, err
		}
		if err := b.deps.Ledger.Record(ctx, driven.Artifact{
			RunID:       runID,
			Source:      src.Name,
			Language:    lang,
			Kind:        driven.ArtifactTokens,
			Path:        archPath,
			CompletedAt: time.Now().UTC(),
		}); err != nil {
			return nil, 0, err
		}
	} else {
		logger.Debug("Token archive for %s/%s already built, skipping", src.Name, lang)
	}

	return b.counter.Count(ctx, lang, b.deps.Archives.Open(archPath).TokenStream(lang))
}

// tokenizeFile segments every document of a raw corpus file into a new
// token archive.
func (b *Builder) tokenizeFile(ctx context.Context, raw, archPath string, lang domain.LanguageCode) error {
	w, err := b.deps.Archives.Create(archPath, lang)
	if err != nil {
		return err
	}

	docs, errs := b.deps.Documents.Documents(ctx, raw)
	for {
		select {
		case <-ctx.Done():
			w.Close()
			return ctx.Err()

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil {
				w.Close()
				return fmt.Errorf("document stream: %w", err)
			}

		case doc, ok := <-docs:
			if !ok {
				if err := drainErr(errs); err != nil {
					w.Close()
					return fmt.Errorf("document stream: %w", err)
				}
				return w.Close()
			}
			tokens := b.deps.Tokenizer.Tokenize(doc)
			if len(tokens) == 0 {
				continue
			}
			if err := w.WriteDocument(ctx, tokens); err != nil {
				w.Close()
				return err
			}
		}
	}
}

// mergeLanguage combines every completed count table for a language into
// its merged frequency table. Declared sources that produced no data
// shrink the eligible set; when it falls below the support threshold the
// language is not merged at all, on the same reasoning that gates
// unsupported languages up front.
func (b *Builder) mergeLanguage(ctx context.Context, runID string, lang domain.LanguageCode) error {
	artifacts, err := b.deps.Ledger.Completed(ctx, lang, driven.ArtifactCounts)
	if err != nil {
		return err
	}
	if len(artifacts) < MinSupportedSources {
		return fmt.Errorf("merge %s: %d of %d declared sources built: %w",
			lang, len(artifacts), len(b.deps.Registry.SourcesFor(lang)), domain.ErrNoEligibleSources)
	}

	inputs := make([]domain.SourceCounts, 0, len(artifacts))
	for _, a := range artifacts {
		counts, total, _, err := b.deps.Counts.Read(a.Path)
		if err != nil {
			return fmt.Errorf("reading counts for %s: %w", a.Source, err)
		}
		inputs = append(inputs, domain.SourceCounts{Source: a.Source, Counts: counts, Total: total})
	}

	table, err := b.merger.Merge(inputs)
	if err != nil {
		return err
	}

	path := filepath.Join(b.deps.DataDir, "freqs", string(lang)+".txt")
	if err := b.deps.Frequencies.WriteFrequencies(path, table); err != nil {
		return err
	}
	logger.Info("Merged %d sources into %s", len(inputs), path)

	return b.deps.Ledger.Record(ctx, driven.Artifact{
		RunID:       runID,
		Language:    lang,
		Kind:        driven.ArtifactFreqs,
		Path:        path,
		CompletedAt: time.Now().UTC(),
	})
}

func (b *Builder) setRunning(runID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = driving.BuildStatus{RunID: runID, Running: true}
}

func (b *Builder) setStopped() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status.Running = false
}

func (b *Builder) noteCounts() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status.CountsBuilt++
}

func (b *Builder) noteMerged() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status.TablesMerged++
}

func (b *Builder) noteError() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status.ErrorCount++
}
