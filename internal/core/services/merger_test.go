package services

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
)

func TestMerger_Merge_Empty(t *testing.T) {
	merger := NewMerger()

	_, err := merger.Merge(nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoEligibleSources)
}

func TestMerger_Merge_SingleSource(t *testing.T) {
	merger := NewMerger()

	table, err := merger.Merge([]domain.SourceCounts{
		{Source: "a", Counts: domain.CountTable{"cat": 3, "dog": 1}},
	})

	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, "cat", table[0].Lexeme)
	assert.InDelta(t, 0.99*0.75, table[0].Probability, 1e-9)
	assert.InDelta(t, 0.99*0.25, table[1].Probability, 1e-9)
}

// TestMerger_Merge_TwoSources works through the arithmetic end to end:
// relative frequencies per source, unweighted mean with absences as
// zero, then rescaling to the target mass.
func TestMerger_Merge_TwoSources(t *testing.T) {
	merger := NewMerger()

	table, err := merger.Merge([]domain.SourceCounts{
		{Source: "a", Counts: domain.CountTable{"cat": 10, "dog": 5}},
		{Source: "b", Counts: domain.CountTable{"cat": 2, "dog": 2, "fish": 1}},
	})

	require.NoError(t, err)
	require.Len(t, table, 3)

	assert.Equal(t, "cat", table[0].Lexeme)
	assert.Equal(t, "dog", table[1].Lexeme)
	assert.Equal(t, "fish", table[2].Lexeme)

	// Means before rescaling: cat (2/3+2/5)/2, dog (1/3+2/5)/2,
	// fish (0+1/5)/2; their sum is exactly 1, so rescaling multiplies
	// by 0.99.
	assert.InDelta(t, 0.99*(2.0/3+0.4)/2, table[0].Probability, 1e-9)
	assert.InDelta(t, 0.99*(1.0/3+0.4)/2, table[1].Probability, 1e-9)
	assert.InDelta(t, 0.99*(0.2)/2, table[2].Probability, 1e-9)
}

func TestMerger_Merge_TargetMass(t *testing.T) {
	merger := NewMerger()

	table, err := merger.Merge([]domain.SourceCounts{
		{Source: "a", Counts: domain.CountTable{"x": 7, "y": 3, "z": 11}},
		{Source: "b", Counts: domain.CountTable{"x": 1, "w": 9}},
		{Source: "c", Counts: domain.CountTable{"y": 2, "w": 2, "v": 5}},
	})

	require.NoError(t, err)
	assert.InDelta(t, domain.TargetMass, table.Sum(), 1e-6)
	assert.True(t, table.Sorted())
}

// TestMerger_Merge_Dilution verifies that a lexeme seen by one source
// out of several keeps a reduced, nonzero weight rather than either
// dominating or disappearing.
func TestMerger_Merge_Dilution(t *testing.T) {
	merger := NewMerger()

	table, err := merger.Merge([]domain.SourceCounts{
		{Source: "a", Counts: domain.CountTable{"shared": 1, "rare": 1}},
		{Source: "b", Counts: domain.CountTable{"shared": 1}},
	})

	require.NoError(t, err)
	probs := make(map[string]float64, len(table))
	for _, e := range table {
		probs[e.Lexeme] = e.Probability
	}

	assert.Greater(t, probs["rare"], 0.0)
	assert.Greater(t, probs["shared"], probs["rare"])
	// shared: (1/2 + 1)/2 = 3/4 of the mean mass; rare: (1/2)/2 = 1/4.
	assert.InDelta(t, 3.0, probs["shared"]/probs["rare"], 1e-9)
}

// TestMerger_Merge_PermutationInvariant verifies that input order never
// changes the output, including the order of tied rows.
func TestMerger_Merge_PermutationInvariant(t *testing.T) {
	merger := NewMerger()

	inputs := []domain.SourceCounts{
		{Source: "a", Counts: domain.CountTable{"cat": 10, "dog": 5, "tie1": 2, "tie2": 2}},
		{Source: "b", Counts: domain.CountTable{"cat": 2, "fish": 1, "tie1": 1, "tie2": 1}},
		{Source: "c", Counts: domain.CountTable{"dog": 4, "fish": 4}},
	}

	want, err := merger.Merge(inputs)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]domain.SourceCounts, len(inputs))
		copy(shuffled, inputs)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got, err := merger.Merge(shuffled)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

// TestMerger_Merge_RecordedTotal verifies that a recorded token total
// takes precedence over the table sum as the normalisation base, so
// dropped hapax mass still counts against the source.
func TestMerger_Merge_RecordedTotal(t *testing.T) {
	merger := NewMerger()

	table, err := merger.Merge([]domain.SourceCounts{
		{Source: "a", Counts: domain.CountTable{"cat": 5}, Total: 10},
	})

	require.NoError(t, err)
	require.Len(t, table, 1)
	// cat's relative frequency is 5/10, and it is the whole vocabulary,
	// so it carries the full target mass after rescaling.
	assert.InDelta(t, domain.TargetMass, table[0].Probability, 1e-9)
}

func TestMerger_Merge_EmptyTable(t *testing.T) {
	merger := NewMerger()

	// One empty source dilutes but cannot contribute.
	table, err := merger.Merge([]domain.SourceCounts{
		{Source: "a", Counts: domain.CountTable{"cat": 1}},
		{Source: "b", Counts: domain.CountTable{}},
	})

	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.InDelta(t, domain.TargetMass, table[0].Probability, 1e-9)
}
