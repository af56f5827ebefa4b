// Package archive implements the tokenized-document archive as a zip of
// chunk files. Each chunk is named <lang>_<chunk>.txt with a
// three-digit, zero-padded chunk number so parts list in order, holds up
// to a fixed number of documents, and stores one document per line with
// its tokens tab-separated. The core never sees this layout - only a
// stream of tokens.
package archive

import (
	"archive/zip"
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
	"github.com/spacious-labs/wordfreq-cli/internal/core/ports/driven"
)

// DefaultChunkSize is how many documents go into one chunk file. Chunks
// keep any one read from holding too much in memory at once.
const DefaultChunkSize = 1_000_000

// Ensure the adapter implements the ports.
var (
	_ driven.DocumentArchive = (*Archive)(nil)
	_ driven.ArchiveWriter   = (*Writer)(nil)
	_ driven.ArchiveStore    = (*Store)(nil)
)

// Store hands out zip archives to the orchestrator.
type Store struct {
	chunkSize int
}

// NewStore creates an archive store. chunkSize <= 0 selects
// DefaultChunkSize.
func NewStore(chunkSize int) *Store {
	return &Store{chunkSize: chunkSize}
}

// Open returns a handle on an existing archive.
func (s *Store) Open(path string) driven.DocumentArchive {
	return Open(path)
}

// Create starts a new archive at path for one language.
func (s *Store) Create(path string, lang domain.LanguageCode) (driven.ArchiveWriter, error) {
	return Create(path, lang, s.chunkSize)
}

// Archive reads a tokenized-document archive from disk.
type Archive struct {
	path string
}

// Open returns an archive handle. The underlying file is only held open
// while a stream is being consumed.
func Open(path string) *Archive {
	return &Archive{path: path}
}

// TokenStream streams every token of every document, in document order
// across chunks.
func (a *Archive) TokenStream(lang domain.LanguageCode) driven.TokenSource {
	return &tokenStream{path: a.path, lang: lang}
}

type tokenStream struct {
	path string
	lang domain.LanguageCode
}

// Tokens streams the archive's tokens. Chunk files that do not belong to
// the requested language are skipped, so one archive file can in
// principle hold several languages.
func (t *tokenStream) Tokens(ctx context.Context) (<-chan string, <-chan error) {
	tokens := make(chan string, 256)
	errs := make(chan error, 1)

	go func() {
		defer close(tokens)
		defer close(errs)

		r, err := zip.OpenReader(t.path)
		if err != nil {
			errs <- fmt.Errorf("%w: %v", domain.ErrArchiveCorrupt, err)
			return
		}
		defer r.Close()

		prefix := string(t.lang) + "_"
		names := make([]string, 0, len(r.File))
		byName := make(map[string]*zip.File, len(r.File))
		for _, f := range r.File {
			if strings.HasPrefix(f.Name, prefix) {
				names = append(names, f.Name)
				byName[f.Name] = f
			}
		}
		sort.Strings(names)

		for _, name := range names {
			if err := streamChunk(ctx, byName[name], tokens); err != nil {
				if err != context.Canceled {
					errs <- err
				}
				return
			}
		}
	}()

	return tokens, errs
}

// streamChunk sends every token of one chunk file.
func streamChunk(ctx context.Context, f *zip.File, tokens chan<- string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: open chunk %s: %v", domain.ErrArchiveCorrupt, f.Name, err)
	}
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		for _, tok := range strings.Split(scanner.Text(), "\t") {
			if tok == "" {
				continue
			}
			select {
			case tokens <- tok:
			case <-ctx.Done():
				return context.Canceled
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: read chunk %s: %v", domain.ErrArchiveCorrupt, f.Name, err)
	}
	return nil
}

// Writer packages tokenized documents into a new archive.
type Writer struct {
	f         *os.File
	zw        *zip.Writer
	lang      domain.LanguageCode
	chunkSize int

	chunk     int
	inChunk   int
	chunkFile *bufio.Writer
}

// Create starts a new archive at path for one language. chunkSize <= 0
// selects DefaultChunkSize.
func Create(path string, lang domain.LanguageCode, chunkSize int) (*Writer, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create archive: %w", err)
	}
	return &Writer{
		f:         f,
		zw:        zip.NewWriter(f),
		lang:      lang,
		chunkSize: chunkSize,
	}, nil
}

// WriteDocument appends one document's tokens as a line of the current
// chunk, starting a new chunk when the current one is full. A token
// containing a tab or newline would corrupt the line format and is
// rejected; any whitespace-splitting tokenizer cannot produce one.
func (w *Writer) WriteDocument(_ context.Context, tokens []string) error {
	for _, tok := range tokens {
		if strings.ContainsAny(tok, "\t\n") {
			return fmt.Errorf("%w: token contains a separator", domain.ErrInvalidInput)
		}
	}

	if w.chunkFile == nil || w.inChunk >= w.chunkSize {
		if err := w.flushChunk(); err != nil {
			return err
		}
		name := fmt.Sprintf("%s_%03d.txt", w.lang, w.chunk)
		entry, err := w.zw.Create(name)
		if err != nil {
			return fmt.Errorf("create chunk %s: %w", name, err)
		}
		w.chunkFile = bufio.NewWriter(entry)
		w.chunk++
		w.inChunk = 0
	}

	if _, err := w.chunkFile.WriteString(strings.Join(tokens, "\t")); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	if err := w.chunkFile.WriteByte('\n'); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	w.inChunk++
	return nil
}

// Close finalises the archive.
func (w *Writer) Close() error {
	if err := w.flushChunk(); err != nil {
		w.f.Close()
		return err
	}
	if err := w.zw.Close(); err != nil {
		w.f.Close()
		return fmt.Errorf("finalise archive: %w", err)
	}
	return w.f.Close()
}

func (w *Writer) flushChunk() error {
	if w.chunkFile == nil {
		return nil
	}
	if err := w.chunkFile.Flush(); err != nil {
		return fmt.Errorf("flush chunk: %w", err)
	}
	w.chunkFile = nil
	return nil
}
