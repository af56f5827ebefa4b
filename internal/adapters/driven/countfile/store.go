// Package countfile persists raw count tables and frequency tables as
// UTF-8 tab-separated text, the interchange format between pipeline
// stages and the external build orchestrator.
package countfile

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
	"github.com/spacious-labs/wordfreq-cli/internal/core/ports/driven"
	"github.com/spacious-labs/wordfreq-cli/internal/logger"
)

// Ensure Store implements the interfaces.
var (
	_ driven.CountStore      = (*Store)(nil)
	_ driven.FrequencyWriter = (*Store)(nil)
	_ driven.RowOpener       = (*Store)(nil)
)

// maxLineBytes bounds a single row. Uncurated corpora occasionally
// contain megabyte-long junk lines; they are data-quality noise.
const maxLineBytes = 1 << 20

// minProbability is the smallest probability worth writing. Values below
// this cannot round-trip through the fixed output precision.
const minProbability = 1e-9

// Store reads and writes count tables and frequency tables on the local
// filesystem.
type Store struct{}

// NewStore creates a file-based store.
func NewStore() *Store {
	return &Store{}
}

// Read loads a count table from a TSV file. A __total__ row supplies the
// recorded token total. Malformed rows - no tab, empty lexeme after
// trimming, non-integer or negative count - are skipped with a warning
// and tallied in skipped; upstream sources are uncurated, so a bad row
// is never fatal. Input row order is not a contract.
func (s *Store) Read(path string) (domain.CountTable, int64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("open count table: %w", err)
	}
	defer f.Close()

	counts := make(domain.CountTable)
	var total int64
	skipped := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		lexeme, value, ok := strings.Cut(line, "\t")
		if !ok {
			logger.Warn("Skipping row without tab in %s: %q", path, line)
			skipped++
			continue
		}
		lexeme = strings.TrimSpace(lexeme)
		count, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if lexeme == "" || err != nil || count < 0 {
			logger.Warn("Skipping malformed row in %s: %q", path, line)
			skipped++
			continue
		}

		if lexeme == domain.TotalKey {
			total = count
			continue
		}
		// Duplicate lexemes sum rather than overwrite; shards of one
		// source may be concatenated before reading.
		counts[lexeme] += count
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, 0, fmt.Errorf("read count table: %w", err)
	}

	return counts, total, skipped, nil
}

// Write persists a count table with its token total. The __total__ row
// comes first, then rows by count descending with ties broken by lexeme
// ascending. Descending order is a convenience for eyeballing, not a
// contract for readers.
func (s *Store) Write(path string, counts domain.CountTable, total int64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create count table: %w", err)
	}

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%s\t%d\n", domain.TotalKey, total)

	lexemes := make([]string, 0, len(counts))
	for lexeme := range counts {
		lexemes = append(lexemes, lexeme)
	}
	sort.Slice(lexemes, func(i, j int) bool {
		if counts[lexemes[i]] != counts[lexemes[j]] {
			return counts[lexemes[i]] > counts[lexemes[j]]
		}
		return lexemes[i] < lexemes[j]
	})

	for _, lexeme := range lexemes {
		fmt.Fprintf(w, "%s\t%d\n", lexeme, counts[lexeme])
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write count table: %w", err)
	}
	return f.Close()
}

// WriteFrequencies persists a merged frequency table in its canonical
// order. Probabilities are rendered with 6 significant digits, which is
// enough to round-trip the 0.99 scaling invariant within floating-point
// tolerance; rows below minProbability are dropped.
func (s *Store) WriteFrequencies(path string, table domain.FrequencyTable) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frequency table: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, entry := range table {
		if entry.Probability < minProbability {
			break // canonical order: everything after is smaller
		}
		fmt.Fprintf(w, "%s\t%s\n", entry.Lexeme, strconv.FormatFloat(entry.Probability, 'g', 6, 64))
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write frequency table: %w", err)
	}
	return f.Close()
}

// OpenRows opens a pre-aggregated count file as a streaming row source.
func (s *Store) OpenRows(path string) driven.CountedSource {
	return NewRowSource(path)
}

// RowSource streams the rows of a count-table file as a
// driven.CountedSource, for recounting sources that are delivered as
// pre-aggregated counts. A __total__ row in the input is ignored: the
// recount computes its own total.
type RowSource struct {
	path string
}

// NewRowSource creates a streaming reader over a count-table file.
func NewRowSource(path string) *RowSource {
	return &RowSource{path: path}
}

// Ensure RowSource implements the interface.
var _ driven.CountedSource = (*RowSource)(nil)

// Rows streams (token, count) rows. Malformed rows are skipped with a
// warning, mirroring Read.
func (r *RowSource) Rows(ctx context.Context) (<-chan driven.CountedRow, <-chan error) {
	rows := make(chan driven.CountedRow)
	errs := make(chan error, 1)

	go func() {
		defer close(rows)
		defer close(errs)

		f, err := os.Open(r.path)
		if err != nil {
			errs <- fmt.Errorf("open count rows: %w", err)
			return
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}

			token, value, ok := strings.Cut(line, "\t")
			if !ok {
				logger.Warn("Skipping row without tab in %s: %q", r.path, line)
				continue
			}
			if token == domain.TotalKey {
				continue
			}
			count, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
			if err != nil || count < 0 {
				logger.Warn("Skipping malformed row in %s: %q", r.path, line)
				continue
			}

			select {
			case rows <- driven.CountedRow{Token: token, Count: count}:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			errs <- fmt.Errorf("read count rows: %w", err)
		}
	}()

	return rows, errs
}
