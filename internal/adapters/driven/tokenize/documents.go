package tokenize

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spacious-labs/wordfreq-cli/internal/core/ports/driven"
	"github.com/spacious-labs/wordfreq-cli/internal/logger"
)

// Ensure LineReader implements the port.
var _ driven.DocumentReader = (*LineReader)(nil)

// maxDocumentBytes bounds a single document line. Uncurated corpora
// occasionally contain megabyte-long junk lines; anything longer is
// data-quality noise, not content.
const maxDocumentBytes = 1 << 20

// LineReader streams raw documents from text input, one document per
// line. Empty lines are skipped.
type LineReader struct{}

// NewLineReader creates a document reader.
func NewLineReader() *LineReader {
	return &LineReader{}
}

// Documents streams the file's documents.
func (l *LineReader) Documents(ctx context.Context, path string) (<-chan string, <-chan error) {
	docs := make(chan string, 64)
	errs := make(chan error, 1)

	go func() {
		defer close(docs)
		defer close(errs)

		f, err := os.Open(path)
		if err != nil {
			errs <- fmt.Errorf("open corpus file: %w", err)
			return
		}
		defer f.Close()

		if err := scanDocuments(ctx, f, docs); err != nil {
			errs <- err
		}
	}()

	return docs, errs
}

// DocumentsFrom streams documents from an open reader, for corpora
// piped on stdin.
func (l *LineReader) DocumentsFrom(ctx context.Context, r io.Reader) (<-chan string, <-chan error) {
	docs := make(chan string, 64)
	errs := make(chan error, 1)

	go func() {
		defer close(docs)
		defer close(errs)

		if err := scanDocuments(ctx, r, docs); err != nil {
			errs <- err
		}
	}()

	return docs, errs
}

// scanDocuments sends every non-empty line as one document. A line
// exceeding the size cap ends the stream with an error; upstream corpus
// files are shipped pre-split, so an overlong line means the input is
// not what we expect.
func scanDocuments(ctx context.Context, r io.Reader, docs chan<- string) error {
	n := 0
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxDocumentBytes)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		select {
		case docs <- line:
			n++
		case <-ctx.Done():
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read corpus: %w", err)
	}
	logger.Debug("Streamed %d documents", n)
	return nil
}
