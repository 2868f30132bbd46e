package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventNotificationsChanged EventType = "NotificationsChanged"
	EventSubscriptionRemoved  EventType = "SubscriptionRemoved"
	EventError                EventType = "Error"
	EventTestSent             EventType = "TestSent"
	EventConfigLoaded         EventType = "ConfigLoaded"
	EventConfigSaved          EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// AllSubscriptions is used in NotificationsChangedEvent when the writer cannot
// tell which subscription was touched
const AllSubscriptions int64 = -1

// NotificationsChangedEvent is emitted whenever a store mutates a subscription's notifications
type NotificationsChangedEvent struct {
	SubscriptionID int64
}

func (e NotificationsChangedEvent) Type() EventType { return EventNotificationsChanged }

// Affects reports whether observers of subscriptionID should refresh
func (e NotificationsChangedEvent) Affects(subscriptionID int64) bool {
	return e.SubscriptionID == AllSubscriptions || e.SubscriptionID == subscriptionID
}

// SubscriptionRemovedEvent is emitted after the user confirmed deleting a subscription
type SubscriptionRemovedEvent struct {
	Result SubscriptionRemoved
}

func (e SubscriptionRemovedEvent) Type() EventType { return EventSubscriptionRemoved }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Source  string // component that failed, e.g. "store" or "ui"
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// TestSentEvent is emitted after a test notification was published
type TestSentEvent struct {
	URL string
	Err error
}

func (e TestSentEvent) Type() EventType { return EventTestSent }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path          string
	Subscriptions int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
