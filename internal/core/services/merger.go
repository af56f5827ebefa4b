package services

import (
	"fmt"
	"sort"

	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
	"github.com/spacious-labs/wordfreq-cli/internal/logger"
)

// Merger combines the raw count tables of a language's available sources
// into one frequency distribution. It is a single-threaded reduction
// over already-materialised tables and performs no I/O.
type Merger struct{}

// NewMerger creates a merger.
func NewMerger() *Merger {
	return &Merger{}
}

// Merge combines per-source count tables into a frequency table.
//
// Each source's counts become within-source relative frequencies first
// (its own token total is its normalisation base), which equalises the
// influence of sources of very different absolute size. A lexeme's
// merged value is the unweighted mean of its relative frequency over
// every input source, counting 0 for sources that lack the lexeme - so
// a lexeme seen by one source out of five keeps a small, diluted weight
// rather than being dropped. The distribution is then rescaled to sum
// to domain.TargetMass, leaving the remaining mass as the fixed
// out-of-vocabulary allowance.
//
// Rows are ordered by probability descending, ties by lexeme ascending,
// so merging the same tables in any permutation yields an identical
// result.
//
// An empty input set is a contract violation by the caller: the
// availability resolver never routes a language with zero eligible
// sources. Merge reports it as an error wrapping
// domain.ErrNoEligibleSources rather than producing an empty table.
func (m *Merger) Merge(inputs []domain.SourceCounts) (domain.FrequencyTable, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("merge: %w", domain.ErrNoEligibleSources)
	}

	// Accumulate in source-name order. Floating-point addition is not
	// associative, so permutation invariance requires a canonical order.
	ordered := make([]domain.SourceCounts, len(inputs))
	copy(ordered, inputs)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Source < ordered[j].Source })
	inputs = ordered

	// Within-source relative frequencies.
	relative := make([]map[string]float64, 0, len(inputs))
	for _, in := range inputs {
		base := in.Base()
		if base == 0 {
			// A source with an empty table contributes zeros for every
			// lexeme; it still dilutes the mean.
			logger.Warn("Source %s has an empty count table", in.Source)
			relative = append(relative, map[string]float64{})
			continue
		}
		freqs := make(map[string]float64, len(in.Counts))
		for lexeme, count := range in.Counts {
			freqs[lexeme] = float64(count) / float64(base)
		}
		relative = append(relative, freqs)
	}

	// Unweighted mean over all sources, absences as zero.
	n := float64(len(relative))
	merged := make(map[string]float64)
	for _, freqs := range relative {
		for lexeme, f := range freqs {
			merged[lexeme] += f / n
		}
	}

	// Map iteration order is randomised, so the mass is summed over
	// sorted lexemes to keep the result reproducible to the last bit.
	lexemes := make([]string, 0, len(merged))
	for lexeme := range merged {
		lexemes = append(lexemes, lexeme)
	}
	sort.Strings(lexemes)

	var mass float64
	for _, lexeme := range lexemes {
		mass += merged[lexeme]
	}
	if mass == 0 {
		return domain.FrequencyTable{}, nil
	}

	// Rescale to the target mass; the rest is the OOV allowance.
	scale := domain.TargetMass / mass
	table := make(domain.FrequencyTable, 0, len(merged))
	for _, lexeme := range lexemes {
		table = append(table, domain.FrequencyEntry{
			Lexeme:      lexeme,
			Probability: merged[lexeme] * scale,
		})
	}

	sort.Slice(table, func(i, j int) bool {
		if table[i].Probability != table[j].Probability {
			return table[i].Probability > table[j].Probability
		}
		return table[i].Lexeme < table[j].Lexeme
	})

	return table, nil
}
