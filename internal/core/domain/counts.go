package domain

// TotalKey is the reserved lexeme under which a count table records the
// total number of tokens counted, including tokens whose lexemes were
// later dropped (e.g. hapaxes). It cannot collide with a real lexeme
// because normalisation case-folds everything and "__total__" contains
// no letters that survive folding in a different form.
const TotalKey = "__total__"

// CountTable maps canonical lexemes to non-negative integer counts for
// one (source, language) pair. It is produced by the counter and never
// mutated afterwards; each table feeds exactly one merge.
type CountTable map[string]int64

// Total sums every count in the table.
func (t CountTable) Total() int64 {
	var total int64
	for _, c := range t {
		total += c
	}
	return total
}

// SourceCounts pairs a source name with its materialised count table for
// one language. Total is the normalisation base: the token total recorded
// at count time when available, otherwise the sum of the table.
type SourceCounts struct {
	// Source is the registry name of the contributing source.
	Source string

	// Counts is the immutable lexeme-to-count table.
	Counts CountTable

	// Total is the within-source normalisation base. Zero means
	// "unknown"; consumers fall back to Counts.Total().
	Total int64
}

// Base returns the normalisation base for relative frequencies.
func (s *SourceCounts) Base() int64 {
	if s.Total > 0 {
		return s.Total
	}
	return s.Counts.Total()
}
