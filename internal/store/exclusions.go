package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"
)

// EntityKind selects which saved-collection exclusion set a key addresses.
type EntityKind string

const (
	KindItems   EntityKind = "items"
	KindOutfits EntityKind = "outfits"
)

func (k EntityKind) Valid() bool { return k == KindItems || k == KindOutfits }

// ExclusionKey is the persisted key for one user+kind set. The shape
// (removed_items_<userId>, JSON string array value) matches what earlier
// client builds stored, so an upgraded client keeps its removals.
func ExclusionKey(userID string, kind EntityKind) string {
	return fmt.Sprintf("removed_%s_%s", kind, userID)
}

// Exclusions persists the per-user sets of ids the user dismissed from the
// saved screen. Append-only from the UI's perspective: an id, once added, is
// never removed programmatically.
//
// Backed by a small sqlite kv table rather than one file per key; WAL mode
// lets a CLI invocation and a running TUI touch it at the same time.
type Exclusions struct {
	Dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func OpenExclusions(dir string) *Exclusions {
	return &Exclusions{Dir: dir, locks: map[string]*sync.Mutex{}}
}

func (e *Exclusions) dbPath() string {
	return filepath.Join(e.Dir, "local.sqlite")
}

func (e *Exclusions) open(ctx context.Context) (*sql.DB, error) {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", e.dbPath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness between the CLI and the TUI.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// keyLock serializes read-modify-write cycles per user+kind so two removals
// racing on the same key cannot lose an update.
func (e *Exclusions) keyLock(key string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l := e.locks[key]
	if l == nil {
		l = &sync.Mutex{}
		e.locks[key] = l
	}
	return l
}

// Load returns the exclusion set for a user+kind, defaulting to empty.
// A corrupted value is treated as missing rather than blocking the saved
// screen.
func (e *Exclusions) Load(ctx context.Context, userID string, kind EntityKind) ([]string, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("invalid entity kind %q", kind)
	}
	db, err := e.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return loadSet(ctx, db, ExclusionKey(userID, kind))
}

func loadSet(ctx context.Context, db *sql.DB, key string) ([]string, error) {
	var v string
	err := db.QueryRowContext(ctx, `SELECT v FROM kv WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal([]byte(v), &ids); err != nil {
		return []string{}, nil
	}
	out := ids[:0]
	for _, id := range ids {
		if strings.TrimSpace(id) != "" {
			out = append(out, id)
		}
	}
	return out, nil
}

// Add appends an id to the exclusion set for a user+kind. Adding an id that
// is already present is a no-op.
func (e *Exclusions) Add(ctx context.Context, userID string, kind EntityKind, id string) error {
	if !kind.Valid() {
		return fmt.Errorf("invalid entity kind %q", kind)
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("empty id")
	}

	key := ExclusionKey(userID, kind)
	l := e.keyLock(key)
	l.Lock()
	defer l.Unlock()

	db, err := e.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	ids, err := loadSet(ctx, db, key)
	if err != nil {
		return err
	}
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}
	ids = append(ids, id)
	b, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `INSERT OR REPLACE INTO kv(k, v) VALUES(?, ?)`, key, string(b))
	return err
}

// Contains builds a membership set for reconciliation-time filtering.
func Contains(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
