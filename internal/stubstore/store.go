// Package stubstore persists the mangled-symbol → Definition cache
// across JIT process restarts, so a previously materialized stub does
// not need to re-run class loading and method resolution the next time
// the same class path is JIT-compiled. Backed by a real sqlite table,
// reusing internal/codegenrpc's DefinitionProto wire shape for the
// stored payload rather than inventing a second serialization.
package stubstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jhump/protoreflect/dynamic"
	_ "modernc.org/sqlite"

	"github.com/lazyjit/lazyjit/internal/codegenrpc"
	"github.com/lazyjit/lazyjit/internal/loader"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS stub_cache (
	symbol     TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	payload    BLOB NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// Store is a sqlite-backed cache of materialized Definitions, keyed by
// mangled symbol.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the sqlite database at path and
// ensures its schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("stubstore: creating %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("stubstore: opening %s: %w", path, err)
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("stubstore: creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Put persists definition under symbol, overwriting any prior entry.
func (s *Store) Put(ctx context.Context, sessionID, symbol string, definition loader.Definition) error {
	fd, err := codegenrpc.Schema()
	if err != nil {
		return fmt.Errorf("stubstore: loading schema: %w", err)
	}
	msg, err := codegenrpc.DefinitionToMessage(fd, definition)
	if err != nil {
		return fmt.Errorf("stubstore: encoding %s: %w", symbol, err)
	}
	payload, err := msg.Marshal()
	if err != nil {
		return fmt.Errorf("stubstore: marshaling %s: %w", symbol, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO stub_cache (symbol, session_id, payload, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(symbol) DO UPDATE SET session_id = excluded.session_id, payload = excluded.payload, updated_at = excluded.updated_at`,
		symbol, sessionID, payload, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("stubstore: writing %s: %w", symbol, err)
	}
	return nil
}

// Get looks up symbol's cached Definition. ok is false on a cache miss.
func (s *Store) Get(ctx context.Context, symbol string) (definition loader.Definition, ok bool, err error) {
	var payload []byte
	row := s.db.QueryRowContext(ctx, `SELECT payload FROM stub_cache WHERE symbol = ?`, symbol)
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("stubstore: reading %s: %w", symbol, err)
	}

	fd, err := codegenrpc.Schema()
	if err != nil {
		return nil, false, fmt.Errorf("stubstore: loading schema: %w", err)
	}
	msg := dynamic.NewMessage(fd.FindMessage("lazyjit.codegenrpc.DefinitionProto"))
	if err := msg.Unmarshal(payload); err != nil {
		return nil, false, fmt.Errorf("stubstore: unmarshaling %s: %w", symbol, err)
	}

	definition, err = codegenrpc.DefinitionFromMessage(fd, msg)
	if err != nil {
		return nil, false, fmt.Errorf("stubstore: decoding %s: %w", symbol, err)
	}
	return definition, true, nil
}

// Forget removes symbol's cached entry, if any.
func (s *Store) Forget(ctx context.Context, symbol string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM stub_cache WHERE symbol = ?`, symbol)
	return err
}
