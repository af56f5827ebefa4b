package domain

// TargetMass is what a merged frequency distribution sums to. The missing
// 0.01 is a deliberate allowance for out-of-vocabulary tokens; it is a
// fixed constant, not derived from the data.
const TargetMass = 0.99

// FrequencyEntry is one (lexeme, probability) row of a frequency table.
type FrequencyEntry struct {
	Lexeme      string
	Probability float64
}

// FrequencyTable is the terminal artifact for one language: lexemes with
// their estimated unigram probabilities, ordered by probability descending
// with ties broken by lexeme ascending. The probabilities sum to
// TargetMass. A table is produced once per language per build and treated
// as immutable until the next full rebuild.
type FrequencyTable []FrequencyEntry

// Sum returns the total probability mass in the table.
func (t FrequencyTable) Sum() float64 {
	var sum float64
	for _, e := range t {
		sum += e.Probability
	}
	return sum
}

// Sorted reports whether the table is in canonical order: probability
// non-increasing, ties by lexeme ascending.
func (t FrequencyTable) Sorted() bool {
	for i := 1; i < len(t); i++ {
		prev, cur := t[i-1], t[i]
		if cur.Probability > prev.Probability {
			return false
		}
		if cur.Probability == prev.Probability && cur.Lexeme < prev.Lexeme {
			return false
		}
	}
	return true
}
