// Package buildcache stores generated translation units keyed by a hash
// of their inputs, so unchanged modules are not regenerated.
package buildcache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kestrel-lang/kestrelc/internal/config"
)

// Cache is a content-addressed store of generated C++ sources, backed by a
// SQLite database under .kestrel/ in the project root. The key covers
// the source bytes, the target triple, and the tool version, so any of
// them changing invalidates the entry.
type Cache struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS units (
	key      TEXT PRIMARY KEY,
	module   TEXT NOT NULL,
	content  BLOB NOT NULL,
	created  INTEGER NOT NULL
);
`

// Open opens (creating if needed) the cache for the project rooted at
// projectDir.
func Open(projectDir string) (*Cache, error) {
	dir := filepath.Join(projectDir, config.CacheDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir %s: %w", dir, err)
	}

	path := filepath.Join(dir, "cache.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache %s: %w", path, err)
	}

	return &Cache{db: db}, nil
}

// Close releases the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Key computes the cache key for a module's source and target.
func Key(source []byte, target string) string {
	h := sha256.New()
	h.Write(source)
	fmt.Fprintf(h, "\x00%s\x00%s %s", target, config.ToolName, config.ToolVersion)
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached translation unit for key, or ok=false when the
// entry is absent.
func (c *Cache) Get(key string) (content []byte, ok bool, err error) {
	row := c.db.QueryRow(`SELECT content FROM units WHERE key = ?`, key)
	switch err := row.Scan(&content); err {
	case nil:
		return content, true, nil
	case sql.ErrNoRows:
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("reading cache entry: %w", err)
	}
}

// Put stores a generated translation unit. Re-putting the same key
// replaces the entry.
func (c *Cache) Put(key, module string, content []byte) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO units (key, module, content, created) VALUES (?, ?, ?, ?)`,
		key, module, content, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry for %s: %w", module, err)
	}
	return nil
}

// Clear removes all cached entries.
func (c *Cache) Clear() error {
	if _, err := c.db.Exec(`DELETE FROM units`); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}

// Stats summarizes cache contents.
type Stats struct {
	Entries int
	Bytes   int64
}

// Stats reports the number of entries and total stored bytes.
func (c *Cache) Stats() (Stats, error) {
	var s Stats
	row := c.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(LENGTH(content)), 0) FROM units`)
	if err := row.Scan(&s.Entries, &s.Bytes); err != nil {
		return Stats{}, fmt.Errorf("reading cache stats: %w", err)
	}
	return s, nil
}
