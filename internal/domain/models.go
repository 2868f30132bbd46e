package domain

import "time"

// Notification is a single message received on a subscription's topic
type Notification struct {
	ID             string
	SubscriptionID int64
	Title          string
	Message        string
	Priority       int
	Tags           []string
	Timestamp      time.Time
}

// DefaultPriority is the priority of notifications published without one
const DefaultPriority = 3

// Subscription identifies the topic whose history is being shown
type Subscription struct {
	ID      int64
	BaseURL string
	Topic   string
}

// Valid reports whether the subscription carries enough context to be displayed
func (s *Subscription) Valid() bool {
	return s != nil && s.BaseURL != "" && s.Topic != ""
}

// SubscriptionRemoved is handed back to the caller once the user has deleted
// the subscription from the detail screen
type SubscriptionRemoved struct {
	SubscriptionID int64
	Topic          string
}
