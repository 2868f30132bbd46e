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
	"time"

	_ "modernc.org/sqlite"

	"notiview/internal/domain"
	"notiview/internal/eventbus"
)

// SQLiteStore persists notifications in a SQLite database shared with other
// notiview processes (for example a running live subscriber)
type SQLiteStore struct {
	db   *sql.DB
	bus  eventbus.EventBus
	path string
}

// OpenSQLite opens (and creates if needed) the database at path
func OpenSQLite(path string, bus eventbus.EventBus) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer at a time; readers go through the same connection.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db, bus: bus, path: path}, nil
}

// Path returns the database file location
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Observe(ctx context.Context, subscriptionID int64) <-chan []domain.Notification {
	return observe(ctx, s.bus, subscriptionID, s.List)
}

func (s *SQLiteStore) List(ctx context.Context, subscriptionID int64) ([]domain.Notification, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, subscription_id, title, message, priority, tags, timestamp
		FROM notifications
		WHERE subscription_id = ?
		ORDER BY timestamp DESC, id DESC`, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Notification, 0)
	for rows.Next() {
		var (
			n      domain.Notification
			tags   string
			millis int64
		)
		if err := rows.Scan(&n.ID, &n.SubscriptionID, &n.Title, &n.Message, &n.Priority, &tags, &millis); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Tags, err = decodeTags(tags)
		if err != nil {
			return nil, fmt.Errorf("failed to decode tags of %s: %w", n.ID, err)
		}
		n.Timestamp = time.UnixMilli(millis)
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notifications: %w", err)
	}
	return result, nil
}

// Add inserts n. Re-delivered ids are ignored.
func (s *SQLiteStore) Add(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	n = prepare(n)
	tags, err := encodeTags(n.Tags)
	if err != nil {
		return n, err
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO notifications (id, subscription_id, title, message, priority, tags, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.SubscriptionID, n.Title, n.Message, n.Priority, tags, n.Timestamp.UnixMilli())
	if err != nil {
		return n, fmt.Errorf("failed to insert notification %s: %w", n.ID, err)
	}

	if affected, _ := res.RowsAffected(); affected > 0 {
		s.bus.Publish(eventbus.NotificationsChangedEvent{SubscriptionID: n.SubscriptionID})
	}
	return n, nil
}

func (s *SQLiteStore) Remove(ctx context.Context, id string) error {
	var subscriptionID int64
	err := s.db.QueryRowContext(ctx, `DELETE FROM notifications WHERE id = ? RETURNING subscription_id`, id).Scan(&subscriptionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete notification %s: %w", id, err)
	}

	s.bus.Publish(eventbus.NotificationsChangedEvent{SubscriptionID: subscriptionID})
	return nil
}

func (s *SQLiteStore) RemoveAll(ctx context.Context, subscriptionID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notifications WHERE subscription_id = ?`, subscriptionID)
	if err != nil {
		return fmt.Errorf("failed to delete notifications of subscription %d: %w", subscriptionID, err)
	}

	if affected, _ := res.RowsAffected(); affected > 0 {
		s.bus.Publish(eventbus.NotificationsChangedEvent{SubscriptionID: subscriptionID})
	}
	return nil
}

// encodeTags stores tags as a JSON array
func encodeTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "", nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(data), nil
}

// decodeTags reads a JSON array, or the comma-joined form of older databases
func decodeTags(tags string) ([]string, error) {
	switch {
	case tags == "":
		return nil, nil
	case strings.HasPrefix(tags, "["):
		var out []string
		if err := json.Unmarshal([]byte(tags), &out); err != nil {
			return nil, err
		}
		return out, nil
	default:
		return strings.Split(tags, ","), nil
	}
}
