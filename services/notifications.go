package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"qr-dine/db"
)

// RecordNotification persists a triggered notification for auditing and
// de-duplication. No-op without a database (unit tests, in-memory mode).
func RecordNotification(ctx context.Context, kind, reason string, meta map[string]any) error {
	if db.Pool == nil {
		return nil
	}
	metaJSON := "{}"
	if len(meta) > 0 {
		b, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("marshal meta: %w", err)
		}
		metaJSON = string(b)
	}
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO notifications (kind, reason, meta)
		VALUES ($1, $2, $3::jsonb)`,
		kind, reason, metaJSON,
	)
	return err
}

// RecentlyNotified returns true if a notification of the same kind was already
// recorded within the window, so one growth event cannot alert twice.
func RecentlyNotified(ctx context.Context, kind string, within time.Duration) (bool, error) {
	if db.Pool == nil {
		return false, nil
	}
	var count int
	err := db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications
		WHERE kind = $1 AND created_at > now() - make_interval(secs => $2)`,
		kind, within.Seconds(),
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
