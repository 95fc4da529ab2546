// Package sqlite implements the SQLite recipe store: the menu, the seven-slot
// meal plan, and the ingredient and instruction tables.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/resippy/pkg/types"
)

// DatabaseFile is the database file name inside the data directory.
const DatabaseFile = "resippy.db"

// Backend is the recipe store. It holds one connection between Attach and
// Detach; every method returns ErrStoreDetached outside that window.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	raters   []string
	db       *sql.DB
	logger   *zap.Logger
}

// NewBackend creates a detached backend. A nil logger discards output.
func NewBackend(logger *zap.Logger) *Backend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backend{logger: logger}
}

// Attach opens (creating if needed) the database in config.DataDir, applies
// the schema, adds a rating column for any newly configured rater, and seeds
// the seven meal-plan slots. Existing data is kept. Failures to reach the
// database wrap ErrStoreUnavailable.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("%w: creating data dir: %w", types.ErrStoreUnavailable, err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %w", types.ErrStoreUnavailable, dbPath, err)
	}
	// One connection per process; PRAGMAs below are per connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("%w: connecting to %s: %w", types.ErrStoreUnavailable, dbPath, err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return fmt.Errorf("%w: enabling foreign keys: %w", types.ErrStoreUnavailable, err)
	}

	raters := config.EffectiveRaters()
	if err := initSchema(db, raters, b.logger); err != nil {
		db.Close()
		return fmt.Errorf("%w: %w", types.ErrStoreUnavailable, err)
	}
	if err := seedMealPlan(db); err != nil {
		db.Close()
		return fmt.Errorf("%w: %w", types.ErrStoreUnavailable, err)
	}

	b.db = db
	b.config = config
	b.raters = append([]string(nil), raters...)
	b.attached = true
	b.logger.Debug("store attached", zap.String("path", dbPath), zap.Strings("raters", raters))
	return nil
}

// Detach closes the connection. It is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
		b.db = nil
	}
	b.attached = false
	b.logger.Debug("store detached")
	return nil
}

// Raters returns the raters configured at Attach.
func (b *Backend) Raters() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]string(nil), b.raters...)
}

// Path returns the database file path. It is empty while detached.
func (b *Backend) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return ""
	}
	dataDir := b.config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	return filepath.Join(dataDir, DatabaseFile)
}

// lockAttached takes the read lock and reports ErrStoreDetached when the
// store is closed. On success the caller must call b.mu.RUnlock.
func (b *Backend) lockAttached() error {
	b.mu.RLock()
	if !b.attached {
		b.mu.RUnlock()
		return types.ErrStoreDetached
	}
	return nil
}

func (b *Backend) isRater(name string) bool {
	for _, r := range b.raters {
		if r == name {
			return true
		}
	}
	return false
}
