// Package cache persists processed doc sources between builds.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"

	_ "modernc.org/sqlite"

	"github.com/gqldoc/gqldoc/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	name TEXT PRIMARY KEY,
	hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS entries (
	doc      TEXT NOT NULL,
	name     TEXT NOT NULL,
	category TEXT NOT NULL,
	anchor   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS entries_doc ON entries (doc);
`

// A Cache records, per document, the hash of its source and the index
// entries it produced. An unchanged document can then contribute its
// entries to later builds without being reprocessed.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(ctx context.Context, path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err = db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{db: db}, nil
}

// Hash returns the cache key for a document source.
func Hash(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Lookup reports whether the named document is cached with the given
// hash and, if so, returns its index entries.
func (c *Cache) Lookup(ctx context.Context, doc, hash string) ([]domain.Entry, bool, error) {
	var cached string
	err := c.db.QueryRowContext(ctx, `SELECT hash FROM documents WHERE name = ?`, doc).Scan(&cached)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if cached != hash {
		return nil, false, nil
	}

	rows, err := c.db.QueryContext(ctx, `SELECT name, category, anchor FROM entries WHERE doc = ? ORDER BY category, name`, doc)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		e := domain.Entry{Doc: doc}
		var cat string
		if err := rows.Scan(&e.Name, &cat, &e.Anchor); err != nil {
			return nil, false, err
		}
		e.Category = domain.Category(cat)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	return entries, true, nil
}

// Store records the document's hash and entries, replacing any
// previous record.
func (c *Cache) Store(ctx context.Context, doc, hash string, entries []domain.Entry) (err error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	_, err = tx.ExecContext(ctx, `INSERT INTO documents (name, hash) VALUES (?, ?) ON CONFLICT (name) DO UPDATE SET hash = excluded.hash`, doc, hash)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM entries WHERE doc = ?`, doc)
	if err != nil {
		return err
	}

	for _, e := range entries {
		_, err = tx.ExecContext(ctx, `INSERT INTO entries (doc, name, category, anchor) VALUES (?, ?, ?, ?)`, doc, e.Name, string(e.Category), e.Anchor)
		if err != nil {
			return err
		}
	}
	return nil
}

// Close closes the cache database.
func (c *Cache) Close() error { return c.db.Close() }
