package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
	"github.com/spacious-labs/wordfreq-cli/internal/core/ports/driven"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testArtifact(source string) driven.Artifact {
	return driven.Artifact{
		RunID:       "run-1",
		Source:      source,
		Language:    "en",
		Kind:        driven.ArtifactCounts,
		Path:        "/data/counts/" + source + "_en.txt",
		CompletedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStore_RecordAndLookup(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	want := testArtifact("wikipedia")
	require.NoError(t, store.Record(ctx, want))

	got, err := store.Lookup(ctx, "wikipedia", "en", driven.ArtifactCounts)
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestStore_Lookup_NotFound(t *testing.T) {
	store := testStore(t)

	_, err := store.Lookup(context.Background(), "wikipedia", "en", driven.ArtifactCounts)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestStore_Record_Replaces verifies that re-recording the same unit
// overwrites the previous artifact instead of duplicating it.
func TestStore_Record_Replaces(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	first := testArtifact("wikipedia")
	require.NoError(t, store.Record(ctx, first))

	second := first
	second.RunID = "run-2"
	second.CompletedAt = first.CompletedAt.Add(time.Hour)
	require.NoError(t, store.Record(ctx, second))

	got, err := store.Lookup(ctx, "wikipedia", "en", driven.ArtifactCounts)
	require.NoError(t, err)
	assert.Equal(t, "run-2", got.RunID)

	completed, err := store.Completed(ctx, "en", driven.ArtifactCounts)
	require.NoError(t, err)
	assert.Len(t, completed, 1)
}

func TestStore_Completed(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	// Insert out of name order, include another language and kind.
	require.NoError(t, store.Record(ctx, testArtifact("wikipedia")))
	require.NoError(t, store.Record(ctx, testArtifact("oscar")))

	other := testArtifact("newscrawl")
	other.Language = "de"
	require.NoError(t, store.Record(ctx, other))

	freq := testArtifact("")
	freq.Kind = driven.ArtifactFreqs
	require.NoError(t, store.Record(ctx, freq))

	completed, err := store.Completed(ctx, "en", driven.ArtifactCounts)
	require.NoError(t, err)
	require.Len(t, completed, 2)
	assert.Equal(t, "oscar", completed[0].Source)
	assert.Equal(t, "wikipedia", completed[1].Source)
}
