// Package database provides SQLite-backed storage for the HydraKey key inventory.
//
// The inventory holds DNSKEY records that were imported by an operator or
// observed while fetching a zone's key set from an upstream resolver.
// Keys are stored as their encoded RDATA and decoded again on every read,
// so a row that comes back out of the store always round-trips through the
// DNSKEY codec.
//
// The schema is versioned. Migrations are embedded in the binary and applied
// with golang-migrate when the database is opened.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a requested key does not exist.
var ErrNotFound = errors.New("not found")

// DB wraps a SQLite database connection with thread-safe operations.
type DB struct {
	conn    *sql.DB
	mu      sync.RWMutex // Serializes writers against readers
	version uint
	now     func() time.Time
}

// Open opens or creates a SQLite database at the given path and brings its
// schema up to date.
func Open(path string) (*DB, error) {
	// WAL lets the API read while a fetch is writing
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)", path)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(time.Hour)

	db := &DB{conn: conn, now: time.Now}

	version, err := migrateUp(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	db.version = version

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// SchemaVersion returns the migration version the schema was brought to on Open.
func (db *DB) SchemaVersion() uint {
	return db.version
}

// Health checks database connectivity.
func (db *DB) Health(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}
