package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jroosing/hydrakey/internal/dns"
	"github.com/jroosing/hydrakey/internal/helpers"
)

// Key sources recorded with each row.
const (
	SourceManual = "manual" // Imported through the API or CLI
	SourceDNS    = "dns"    // Observed in a fetched DNSKEY RRset
)

// StoredKey is a DNSKEY held in the inventory.
type StoredKey struct {
	ID        int64
	Zone      string
	Key       dns.DNSKey
	Tag       uint16
	Source    string
	TTL       uint32
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ZoneSummary aggregates the inventory of one zone.
type ZoneSummary struct {
	Zone        string
	Keys        int
	KSKs        int
	Revoked     int
	LastUpdated time.Time
}

// SyncResult reports what SyncZone changed.
type SyncResult struct {
	Added   int
	Updated int
	Removed int
}

const keyColumns = `id, zone, rdata, source, ttl, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// UpsertKey stores key under zone. A key already present for the zone keeps
// its ID and creation time; its source, TTL and update time are replaced.
func (db *DB) UpsertKey(ctx context.Context, zone string, key dns.DNSKey, source string, ttl uint32) (*StoredKey, error) {
	zone, rdata, err := encodeKey(zone, key)
	if err != nil {
		return nil, err
	}
	if source == "" {
		source = SourceManual
	}
	now := db.now().Unix()

	db.mu.Lock()
	defer db.mu.Unlock()

	query := `
		INSERT INTO dnskeys (zone, key_tag, flags, algorithm, rdata, source, ttl, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(zone, rdata) DO UPDATE SET
			source = excluded.source,
			ttl = excluded.ttl,
			updated_at = excluded.updated_at
		RETURNING ` + keyColumns

	row := db.conn.QueryRowContext(ctx, query,
		zone, int(key.KeyTag()), int(key.Flags()), int(key.Algorithm), rdata, source, int64(ttl), now, now)

	sk, err := scanKey(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert key %d for %s: %w", key.KeyTag(), zone, err)
	}
	return sk, nil
}

// GetKey returns the key with the given ID.
func (db *DB) GetKey(ctx context.Context, id int64) (*StoredKey, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	row := db.conn.QueryRowContext(ctx, `SELECT `+keyColumns+` FROM dnskeys WHERE id = ?`, id)
	sk, err := scanKey(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("key %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %d: %w", id, err)
	}
	return sk, nil
}

// ListKeys returns the keys of zone ordered by key tag, or every key when
// zone is empty.
func (db *DB) ListKeys(ctx context.Context, zone string) ([]StoredKey, error) {
	query := `SELECT ` + keyColumns + ` FROM dnskeys`
	var args []any
	if zone != "" {
		name, err := dns.CanonicalName(zone)
		if err != nil {
			return nil, fmt.Errorf("invalid zone %q: %w", zone, err)
		}
		query += ` WHERE zone = ?`
		args = append(args, name)
	}
	query += ` ORDER BY zone, key_tag, id`

	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query keys: %w", err)
	}
	defer rows.Close()

	keys := []StoredKey{}
	for rows.Next() {
		sk, err := scanKey(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, *sk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating keys: %w", err)
	}

	return keys, nil
}

// DeleteKey removes the key with the given ID.
func (db *DB) DeleteKey(ctx context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	result, err := db.conn.ExecContext(ctx, `DELETE FROM dnskeys WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete key %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("key %d: %w", id, ErrNotFound)
	}

	return nil
}

// SyncZone reconciles the inventory of zone with a key set published under
// source. New keys are added, known keys get the new TTL, and keys recorded
// under source that are no longer published are removed. Keys from other
// sources are refreshed but never removed.
func (db *DB) SyncZone(ctx context.Context, zone, source string, keys []dns.DNSKey, ttl uint32) (SyncResult, error) {
	var res SyncResult

	name, err := dns.CanonicalName(zone)
	if err != nil {
		return res, fmt.Errorf("invalid zone %q: %w", zone, err)
	}
	if source == "" {
		source = SourceDNS
	}

	type existing struct {
		id     int64
		source string
	}
	now := db.now().Unix()

	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, `SELECT id, rdata, source FROM dnskeys WHERE zone = ?`, name)
	if err != nil {
		return res, fmt.Errorf("failed to query keys of %s: %w", name, err)
	}
	known := make(map[string]existing)
	for rows.Next() {
		var (
			e     existing
			rdata []byte
		)
		if err := rows.Scan(&e.id, &rdata, &e.source); err != nil {
			rows.Close()
			return res, fmt.Errorf("failed to scan key: %w", err)
		}
		known[string(rdata)] = e
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return res, fmt.Errorf("error iterating keys: %w", err)
	}

	published := make(map[string]bool, len(keys))
	for _, key := range keys {
		rdata, err := key.MarshalRData()
		if err != nil {
			return res, fmt.Errorf("failed to encode key %d: %w", key.KeyTag(), err)
		}
		if published[string(rdata)] {
			continue
		}
		published[string(rdata)] = true

		if e, ok := known[string(rdata)]; ok {
			if _, err := tx.ExecContext(ctx,
				`UPDATE dnskeys SET ttl = ?, updated_at = ? WHERE id = ?`, int64(ttl), now, e.id); err != nil {
				return res, fmt.Errorf("failed to refresh key %d: %w", e.id, err)
			}
			res.Updated++
			continue
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO dnskeys (zone, key_tag, flags, algorithm, rdata, source, ttl, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			name, int(key.KeyTag()), int(key.Flags()), int(key.Algorithm), rdata, source, int64(ttl), now, now); err != nil {
			return res, fmt.Errorf("failed to insert key %d: %w", key.KeyTag(), err)
		}
		res.Added++
	}

	for rdata, e := range known {
		if e.source != source || published[rdata] {
			continue
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM dnskeys WHERE id = ?`, e.id); err != nil {
			return res, fmt.Errorf("failed to remove key %d: %w", e.id, err)
		}
		res.Removed++
	}

	if err := tx.Commit(); err != nil {
		return SyncResult{}, fmt.Errorf("failed to commit sync of %s: %w", name, err)
	}
	return res, nil
}

// Zones summarizes every zone in the inventory.
func (db *DB) Zones(ctx context.Context) ([]ZoneSummary, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	query := fmt.Sprintf(`
		SELECT zone,
			COUNT(*),
			SUM(CASE WHEN flags & %d = %d THEN 1 ELSE 0 END),
			SUM(CASE WHEN flags & %d != 0 THEN 1 ELSE 0 END),
			MAX(updated_at)
		FROM dnskeys
		GROUP BY zone
		ORDER BY zone
	`, kskMask, kskMask, dns.DNSKeyFlagRevoke)

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query zones: %w", err)
	}
	defer rows.Close()

	zones := []ZoneSummary{}
	for rows.Next() {
		var (
			z       ZoneSummary
			updated int64
		)
		if err := rows.Scan(&z.Zone, &z.Keys, &z.KSKs, &z.Revoked, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan zone: %w", err)
		}
		z.LastUpdated = time.Unix(updated, 0).UTC()
		zones = append(zones, z)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating zones: %w", err)
	}

	return zones, nil
}

// CountKeys returns the number of keys in the inventory.
func (db *DB) CountKeys(ctx context.Context) (int, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM dnskeys`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count keys: %w", err)
	}
	return n, nil
}

const kskMask = dns.DNSKeyFlagZone | dns.DNSKeyFlagSEP

func encodeKey(zone string, key dns.DNSKey) (string, []byte, error) {
	name, err := dns.CanonicalName(zone)
	if err != nil {
		return "", nil, fmt.Errorf("invalid zone %q: %w", zone, err)
	}
	rdata, err := key.MarshalRData()
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode key: %w", err)
	}
	return name, rdata, nil
}

// scanKey reads one row of keyColumns and decodes its RDATA.
func scanKey(row rowScanner) (*StoredKey, error) {
	var (
		sk               StoredKey
		rdata            []byte
		ttl              int64
		created, updated int64
	)
	if err := row.Scan(&sk.ID, &sk.Zone, &rdata, &sk.Source, &ttl, &created, &updated); err != nil {
		return nil, err
	}

	key, err := dns.ParseDNSKeyRData(rdata)
	if err != nil {
		return nil, fmt.Errorf("stored key %d is corrupt: %w", sk.ID, err)
	}
	sk.Key = key
	sk.Tag = key.KeyTag()
	sk.TTL = uint32(helpers.Clamp(ttl, 0, math.MaxUint32)) //nolint:gosec // clamped to valid range
	sk.CreatedAt = time.Unix(created, 0).UTC()
	sk.UpdatedAt = time.Unix(updated, 0).UTC()
	return &sk, nil
}
