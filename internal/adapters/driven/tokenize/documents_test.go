package tokenize

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectDocs(t *testing.T, docs <-chan string, errs <-chan error) []string {
	t.Helper()

	var out []string
	for doc := range docs {
		out = append(out, doc)
	}
	require.NoError(t, <-errs)
	return out
}

func TestLineReader_Documents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(path, []byte("first doc\n\nsecond doc\n"), 0600))

	docs, errs := NewLineReader().Documents(context.Background(), path)

	assert.Equal(t, []string{"first doc", "second doc"}, collectDocs(t, docs, errs))
}

func TestLineReader_Documents_MissingFile(t *testing.T) {
	docs, errs := NewLineReader().Documents(context.Background(),
		filepath.Join(t.TempDir(), "absent.txt"))

	for range docs {
	}
	assert.Error(t, <-errs)
}

func TestLineReader_DocumentsFrom(t *testing.T) {
	r := strings.NewReader("one\ntwo\n")

	docs, errs := NewLineReader().DocumentsFrom(context.Background(), r)

	assert.Equal(t, []string{"one", "two"}, collectDocs(t, docs, errs))
}
