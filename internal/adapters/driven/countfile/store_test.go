package countfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
	"github.com/spacious-labs/wordfreq-cli/internal/core/ports/driven"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "counts.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestStore_Read(t *testing.T) {
	store := NewStore()
	path := writeFile(t, "__total__\t100\nthe\t50\ncat\t30\n")

	counts, total, skipped, err := store.Read(path)

	require.NoError(t, err)
	assert.Equal(t, int64(100), total)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, domain.CountTable{"the": 50, "cat": 30}, counts)
}

func TestStore_Read_SkipsMalformedRows(t *testing.T) {
	store := NewStore()
	path := writeFile(t, strings.Join([]string{
		"the\t50",
		"no tab here",
		"\t7",          // empty lexeme
		"cat\tNaN",     // non-integer count
		"dog\t-3",      // negative count
		"fish\t2\textra", // extra field folds into the count
		"ok\t1",
		"",
	}, "\n"))

	counts, _, skipped, err := store.Read(path)

	require.NoError(t, err)
	assert.Equal(t, 5, skipped)
	assert.Equal(t, domain.CountTable{"the": 50, "ok": 1}, counts)
}

func TestStore_Read_SumsDuplicates(t *testing.T) {
	store := NewStore()
	path := writeFile(t, "the\t30\nthe\t20\n")

	counts, _, _, err := store.Read(path)

	require.NoError(t, err)
	assert.Equal(t, int64(50), counts["the"])
}

func TestStore_Read_MissingTotal(t *testing.T) {
	store := NewStore()
	path := writeFile(t, "the\t50\n")

	_, total, _, err := store.Read(path)

	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestStore_WriteRead_RoundTrip(t *testing.T) {
	store := NewStore()
	path := filepath.Join(t.TempDir(), "counts.txt")

	in := domain.CountTable{"the": 50, "cat": 30, "dog": 30}
	require.NoError(t, store.Write(path, in, 200))

	counts, total, skipped, err := store.Read(path)
	require.NoError(t, err)
	assert.Equal(t, in, counts)
	assert.Equal(t, int64(200), total)
	assert.Equal(t, 0, skipped)

	// Total first, then count descending with ties by lexeme ascending.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "__total__\t200\nthe\t50\ncat\t30\ndog\t30\n", string(data))
}

func TestStore_WriteFrequencies(t *testing.T) {
	store := NewStore()
	path := filepath.Join(t.TempDir(), "freqs.txt")

	table := domain.FrequencyTable{
		{Lexeme: "the", Probability: 0.5},
		{Lexeme: "cat", Probability: 0.123456789},
		{Lexeme: "noise", Probability: 5e-10}, // below the write floor
	}
	require.NoError(t, store.WriteFrequencies(path, table))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "the\t0.5\ncat\t0.123457\n", string(data))
}

func TestRowSource_Rows(t *testing.T) {
	path := writeFile(t, "__total__\t100\nthe\t50\nbad row\ncat\t30\n")

	var rows []driven.CountedRow
	rowsCh, errsCh := NewRowSource(path).Rows(context.Background())
	for row := range rowsCh {
		rows = append(rows, row)
	}
	require.NoError(t, <-errsCh)

	// The total row and the malformed row are skipped.
	assert.Equal(t, []driven.CountedRow{
		{Token: "the", Count: 50},
		{Token: "cat", Count: 30},
	}, rows)
}

// TestRowSource_Rows_TotalKeyPrefix checks that only the exact total
// lexeme is dropped: a token that merely starts with it is data.
func TestRowSource_Rows_TotalKeyPrefix(t *testing.T) {
	path := writeFile(t, "__total__\t100\n__total__x\t5\n")

	var rows []driven.CountedRow
	rowsCh, errsCh := NewRowSource(path).Rows(context.Background())
	for row := range rowsCh {
		rows = append(rows, row)
	}
	require.NoError(t, <-errsCh)

	assert.Equal(t, []driven.CountedRow{{Token: "__total__x", Count: 5}}, rows)
}

func TestRowSource_Rows_MissingFile(t *testing.T) {
	rowsCh, errsCh := NewRowSource(filepath.Join(t.TempDir(), "absent.txt")).Rows(context.Background())
	for range rowsCh {
	}
	assert.Error(t, <-errsCh)
}
