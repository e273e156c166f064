package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// DedupChecker remembers which ledger entries the audit trail already stored.
// Key format: audit:entry:<entry_id>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this entry has already been recorded.
func (d *DedupChecker) IsDuplicate(ctx context.Context, entryID string) (bool, error) {
	n, err := d.client.Exists(ctx, dedupKey(entryID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this entry has been stored (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, entryID string) error {
	return d.client.Set(ctx, dedupKey(entryID), "1", dedupTTL).Err()
}

func dedupKey(entryID string) string {
	return "audit:entry:" + entryID
}
