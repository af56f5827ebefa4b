package driven

import (
	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
)

// CountStore reads and writes raw count tables. Malformed rows on read
// are a data-quality concern, never fatal: implementations skip them with
// a warning and report how many were skipped.
type CountStore interface {
	// Read loads a count table. The returned total is the table's
	// recorded token total (0 when the table carries none), and skipped
	// is the number of malformed rows dropped.
	Read(path string) (counts domain.CountTable, total int64, skipped int, err error)

	// Write persists a count table with its token total, rows ordered by
	// count descending then lexeme ascending.
	Write(path string, counts domain.CountTable, total int64) error
}

// FrequencyWriter persists a merged frequency table in its canonical
// order. Rows with probabilities too small to round-trip are dropped.
type FrequencyWriter interface {
	WriteFrequencies(path string, table domain.FrequencyTable) error
}

// RowOpener opens a pre-aggregated count file as a streaming row source,
// for sources that deliver counts rather than raw text.
type RowOpener interface {
	OpenRows(path string) CountedSource
}
