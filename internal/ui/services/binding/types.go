package binding

import (
	"context"
	"errors"

	"notiview/internal/domain"
)

// ErrMissingSubscription means the screen was opened without a usable subscription
var ErrMissingSubscription = errors.New("binding: missing subscription context")

// Observer is the part of the notification store a binding needs
type Observer interface {
	Observe(ctx context.Context, subscriptionID int64) <-chan []domain.Notification
}

// SnapshotMsg carries one full snapshot into the bubbletea update loop
type SnapshotMsg struct {
	SubscriptionID int64
	Notifications  []domain.Notification
	generation     int
}

// ClosedMsg is sent when the store stream ended
type ClosedMsg struct {
	SubscriptionID int64
	generation     int
}
