package sqlite

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"time"

	nport "github.com/ChipDale729/nport-viewer"
	"github.com/cespare/xxhash/v2"
)

// DefaultTTL matches the in-memory cache: reports are good for half an hour.
const DefaultTTL = 30 * time.Minute

// Compile-time interface verification.
var _ nport.HoldingsCache = (*HoldingsCache)(nil)

// HoldingsCache implements nport.HoldingsCache using SQLite. Reports are
// stored as JSON keyed by CIK with the fetch time; the TTL is enforced on
// read. Storage failures degrade to cache misses, never to lookup errors.
type HoldingsCache struct {
	db  *DB
	ttl time.Duration
}

// NewHoldingsCache creates a new HoldingsCache. Non-positive ttl falls
// back to DefaultTTL.
func NewHoldingsCache(db *DB, ttl time.Duration) *HoldingsCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &HoldingsCache{db: db, ttl: ttl}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// Get returns the cached report for cik, if present and fresh. A row
// whose payload no longer matches its stored hash is damaged and counts
// as a miss, so the next Set overwrites it.
func (c *HoldingsCache) Get(cik nport.CIK) (*nport.HoldingsReport, bool) {
	var payload, contentHash, fetchedAt string

	err := c.db.QueryRowContext(context.Background(), `
		SELECT payload, content_hash, fetched_at FROM reports WHERE cik = ?
	`, string(cik)).Scan(&payload, &contentHash, &fetchedAt)
	if err != nil {
		return nil, false
	}

	if hashContent(payload) != contentHash {
		return nil, false
	}

	at, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil || time.Since(at) > c.ttl {
		return nil, false
	}

	var report nport.HoldingsReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, false
	}
	return &report, true
}

// Set stores the report for cik, replacing any previous entry.
func (c *HoldingsCache) Set(cik nport.CIK, report *nport.HoldingsReport) {
	payload, err := json.Marshal(report)
	if err != nil {
		return
	}

	_, _ = c.db.ExecContext(context.Background(), `
		INSERT INTO reports (cik, payload, content_hash, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(cik) DO UPDATE SET
			payload = excluded.payload,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
	`, string(cik), string(payload), hashContent(string(payload)),
		time.Now().UTC().Format(time.RFC3339))
}

// PurgeExpired deletes entries older than the TTL and reports how many
// rows were removed.
func (c *HoldingsCache) PurgeExpired(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-c.ttl).Format(time.RFC3339)

	res, err := c.db.ExecContext(ctx, `DELETE FROM reports WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
