package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
	"github.com/spacious-labs/wordfreq-cli/internal/core/ports/driven"
)

// sliceTokens is a TokenSource over a fixed slice.
type sliceTokens struct {
	tokens []string
	err    error
}

func (s sliceTokens) Tokens(ctx context.Context) (<-chan string, <-chan error) {
	tokens := make(chan string)
	errs := make(chan error, 1)
	go func() {
		defer close(tokens)
		defer close(errs)
		for _, tok := range s.tokens {
			select {
			case tokens <- tok:
			case <-ctx.Done():
				return
			}
		}
		if s.err != nil {
			errs <- s.err
		}
	}()
	return tokens, errs
}

// sliceRows is a CountedSource over fixed rows.
type sliceRows struct {
	rows []driven.CountedRow
}

func (s sliceRows) Rows(ctx context.Context) (<-chan driven.CountedRow, <-chan error) {
	rows := make(chan driven.CountedRow)
	errs := make(chan error, 1)
	go func() {
		defer close(rows)
		defer close(errs)
		for _, row := range s.rows {
			select {
			case rows <- row:
			case <-ctx.Done():
				return
			}
		}
	}()
	return rows, errs
}

func TestCounter_Count(t *testing.T) {
	counter := NewCounter()

	src := sliceTokens{tokens: []string{"Hello", "hello", "HELLO", "world"}}
	counts, total, err := counter.Count(context.Background(), "en", src)

	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Equal(t, int64(3), counts["hello"])
	assert.Equal(t, int64(1), counts["world"])
	assert.Len(t, counts, 2)
}

// TestCounter_Count_WhitespaceOnly verifies that a stream of tokens that
// all normalise to nothing produces an empty table, not a table with an
// empty-string lexeme.
func TestCounter_Count_WhitespaceOnly(t *testing.T) {
	counter := NewCounter()

	src := sliceTokens{tokens: []string{"   ", "\t", ""}}
	counts, total, err := counter.Count(context.Background(), "en", src)

	require.NoError(t, err)
	assert.Empty(t, counts)
	assert.Equal(t, int64(0), total)
}

func TestCounter_Count_StreamError(t *testing.T) {
	counter := NewCounter()
	streamErr := errors.New("archive truncated")

	src := sliceTokens{tokens: []string{"one", "two"}, err: streamErr}
	_, _, err := counter.Count(context.Background(), "en", src)

	require.Error(t, err)
	assert.ErrorIs(t, err, streamErr)
}

// stuckTokens never delivers anything, so cancellation is the only way
// out of the consuming loop.
type stuckTokens struct{}

func (stuckTokens) Tokens(context.Context) (<-chan string, <-chan error) {
	return make(chan string), make(chan error)
}

func TestCounter_Count_Cancelled(t *testing.T) {
	counter := NewCounter()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := counter.Count(ctx, "en", stuckTokens{})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestCounter_Recount(t *testing.T) {
	counter := NewCounter()

	// Differently-cased variants of the same word collapse to one lexeme.
	src := sliceRows{rows: []driven.CountedRow{
		{Token: "The", Count: 100},
		{Token: "the", Count: 400},
		{Token: "THE", Count: 25},
		{Token: "cat", Count: 10},
	}}
	counts, total, err := counter.Recount(context.Background(), "en", src)

	require.NoError(t, err)
	assert.Equal(t, int64(535), total)
	assert.Equal(t, int64(525), counts["the"])
	assert.Equal(t, int64(10), counts["cat"])
}

func TestCounter_Recount_SkipsBadRows(t *testing.T) {
	counter := NewCounter()

	src := sliceRows{rows: []driven.CountedRow{
		{Token: "good", Count: 5},
		{Token: "zero", Count: 0},
		{Token: "negative", Count: -3},
		{Token: "   ", Count: 7},
	}}
	counts, total, err := counter.Recount(context.Background(), "en", src)

	require.NoError(t, err)
	assert.Equal(t, domain.CountTable{"good": 5}, counts)
	assert.Equal(t, int64(5), total)
}

func TestDropHapaxes(t *testing.T) {
	counts := domain.CountTable{
		"common":   100,
		"pair":     2,
		"once":     1,
		"alsoonce": 1,
	}

	DropHapaxes(counts)

	assert.Equal(t, domain.CountTable{"common": 100, "pair": 2}, counts)
}
