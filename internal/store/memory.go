package store

import (
	"context"
	"sync"

	"notiview/internal/domain"
	"notiview/internal/eventbus"
)

// MemoryStore is an in-memory implementation of NotificationStore
type MemoryStore struct {
	mu            sync.RWMutex
	bus           eventbus.EventBus
	notifications map[string]domain.Notification
}

// NewMemoryStore creates a new memory-based notification store
func NewMemoryStore(bus eventbus.EventBus) *MemoryStore {
	return &MemoryStore{
		bus:           bus,
		notifications: make(map[string]domain.Notification),
	}
}

func (s *MemoryStore) Observe(ctx context.Context, subscriptionID int64) <-chan []domain.Notification {
	return observe(ctx, s.bus, subscriptionID, s.List)
}

func (s *MemoryStore) List(ctx context.Context, subscriptionID int64) ([]domain.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Notification, 0)
	for _, n := range s.notifications {
		if n.SubscriptionID == subscriptionID {
			result = append(result, cloneNotification(n))
		}
	}
	sortNewestFirst(result)
	return result, nil
}

// Add stores n, assigning an id, timestamp and priority when missing. Adding
// an id that already exists leaves the stored notification untouched.
func (s *MemoryStore) Add(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	n = prepare(n)

	s.mu.Lock()
	existing, exists := s.notifications[n.ID]
	if !exists {
		s.notifications[n.ID] = cloneNotification(n)
	}
	s.mu.Unlock()

	if exists {
		return cloneNotification(existing), nil
	}
	s.bus.Publish(eventbus.NotificationsChangedEvent{SubscriptionID: n.SubscriptionID})
	return n, nil
}

func (s *MemoryStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	n, exists := s.notifications[id]
	delete(s.notifications, id)
	s.mu.Unlock()

	if exists {
		s.bus.Publish(eventbus.NotificationsChangedEvent{SubscriptionID: n.SubscriptionID})
	}
	return nil
}

func (s *MemoryStore) RemoveAll(ctx context.Context, subscriptionID int64) error {
	s.mu.Lock()
	removed := 0
	for id, n := range s.notifications {
		if n.SubscriptionID == subscriptionID {
			delete(s.notifications, id)
			removed++
		}
	}
	s.mu.Unlock()

	if removed > 0 {
		s.bus.Publish(eventbus.NotificationsChangedEvent{SubscriptionID: subscriptionID})
	}
	return nil
}
