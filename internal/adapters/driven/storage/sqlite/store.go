// Package sqlite implements the build-state ledger on SQLite. The
// ledger records which artifacts (token archives, count tables, merged
// frequency tables) have reached their terminal state, so a re-run can
// skip completed work and a merge can tell which sources are actually
// available. It is a ledger, not a scheduler: deciding what to build
// next is the external orchestrator's job.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
	"github.com/spacious-labs/wordfreq-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.BuildStateStore = (*Store)(nil)

// schema is applied on open. A single table is enough for a ledger.
const schema = `
CREATE TABLE IF NOT EXISTS artifacts (
	source        TEXT NOT NULL,
	language      TEXT NOT NULL,
	kind          TEXT NOT NULL,
	run_id        TEXT NOT NULL,
	path          TEXT NOT NULL,
	completed_at  INTEGER NOT NULL,
	PRIMARY KEY (source, language, kind)
);
CREATE INDEX IF NOT EXISTS idx_artifacts_lang_kind ON artifacts (language, kind);
`

// Store is the SQLite-backed build-state ledger.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the ledger under dataDir. An
// empty dataDir defaults to ~/.wordfreq/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".wordfreq", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "buildstate.db")

	// WAL mode: count workers record completions concurrently.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Record marks an artifact complete, replacing any previous record for
// the same (source, language, kind).
func (s *Store) Record(ctx context.Context, a driven.Artifact) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO artifacts (source, language, kind, run_id, path, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (source, language, kind) DO UPDATE SET
			run_id = excluded.run_id,
			path = excluded.path,
			completed_at = excluded.completed_at
	`, a.Source, string(a.Language), string(a.Kind), a.RunID, a.Path, a.CompletedAt.Unix())
	if err != nil {
		return fmt.Errorf("recording artifact: %w", err)
	}
	return nil
}

// Lookup returns the recorded artifact for (source, lang, kind), or
// domain.ErrNotFound.
func (s *Store) Lookup(ctx context.Context, source string, lang domain.LanguageCode, kind driven.ArtifactKind) (*driven.Artifact, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT source, language, kind, run_id, path, completed_at
		FROM artifacts WHERE source = ? AND language = ? AND kind = ?
	`, source, string(lang), string(kind))

	a, err := scanArtifact(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s/%s", domain.ErrNotFound, source, lang, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("querying artifact: %w", err)
	}
	return a, nil
}

// Completed lists every completed artifact of kind for lang, in
// source-name order.
func (s *Store) Completed(ctx context.Context, lang domain.LanguageCode, kind driven.ArtifactKind) ([]driven.Artifact, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source, language, kind, run_id, path, completed_at
		FROM artifacts WHERE language = ? AND kind = ?
		ORDER BY source
	`, string(lang), string(kind))
	if err != nil {
		return nil, fmt.Errorf("querying artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []driven.Artifact
	for rows.Next() {
		a, err := scanArtifact(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning artifact: %w", err)
		}
		artifacts = append(artifacts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating artifacts: %w", err)
	}
	return artifacts, nil
}

// scanArtifact reads one artifact row via the given scan function.
func scanArtifact(scan func(dest ...any) error) (*driven.Artifact, error) {
	var (
		a           driven.Artifact
		lang, kind  string
		completedAt int64
	)
	if err := scan(&a.Source, &lang, &kind, &a.RunID, &a.Path, &completedAt); err != nil {
		return nil, err
	}
	a.Language = domain.LanguageCode(lang)
	a.Kind = driven.ArtifactKind(kind)
	a.CompletedAt = time.Unix(completedAt, 0).UTC()
	return &a, nil
}
