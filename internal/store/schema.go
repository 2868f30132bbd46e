package store

import (
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS notifications (
    id TEXT PRIMARY KEY,
    subscription_id INTEGER NOT NULL,
    title TEXT NOT NULL DEFAULT '',
    message TEXT NOT NULL,
    priority INTEGER NOT NULL DEFAULT 3,
    tags TEXT NOT NULL DEFAULT '',
    timestamp INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notifications_subscription
    ON notifications(subscription_id, timestamp DESC);
`

// initSchema applies the schema to the database
func initSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
