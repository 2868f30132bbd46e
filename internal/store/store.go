// Package store holds the notification history of every subscription and
// publishes it as a stream of full snapshots per subscription.
package store

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"notiview/internal/domain"
	"notiview/internal/eventbus"
)

// NotificationStore provides access to notification data
type NotificationStore interface {
	// Observe streams the ordered notifications of a subscription, starting
	// with the current contents. The channel is closed once ctx is done.
	Observe(ctx context.Context, subscriptionID int64) <-chan []domain.Notification
	List(ctx context.Context, subscriptionID int64) ([]domain.Notification, error)
	Add(ctx context.Context, n domain.Notification) (domain.Notification, error)
	Remove(ctx context.Context, id string) error
	RemoveAll(ctx context.Context, subscriptionID int64) error
}

// retryDelay is how long observe waits before reloading after a failed load
var retryDelay = 2 * time.Second

type loadFunc func(ctx context.Context, subscriptionID int64) ([]domain.Notification, error)

// observe runs the snapshot loop shared by all stores. Change events arriving
// while a snapshot is being delivered collapse into a single reload.
func observe(ctx context.Context, bus eventbus.EventBus, subscriptionID int64, load loadFunc) <-chan []domain.Notification {
	out := make(chan []domain.Notification)
	wake := make(chan struct{}, 1)

	// Subscribe before the first load so no change slips between the two
	unsubscribe := bus.Subscribe(eventbus.EventNotificationsChanged, func(e eventbus.DomainEvent) {
		event, ok := e.(eventbus.NotificationsChangedEvent)
		if !ok || !event.Affects(subscriptionID) {
			return
		}
		select {
		case wake <- struct{}{}:
		default:
		}
	})

	go func() {
		defer close(out)
		defer unsubscribe()

		for {
			var retry <-chan time.Time
			snapshot, err := load(ctx, subscriptionID)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("store: loading notifications for subscription %d: %v", subscriptionID, err)
				bus.Publish(eventbus.ErrorEvent{Source: "store", Message: "Could not load notifications", Err: err})
				retry = time.After(retryDelay)
			} else {
				select {
				case out <- snapshot:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-wake:
			case <-retry:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// sortNewestFirst orders notifications the way they are displayed
func sortNewestFirst(list []domain.Notification) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].Timestamp.Equal(list[j].Timestamp) {
			return list[i].Timestamp.After(list[j].Timestamp)
		}
		return list[i].ID > list[j].ID
	})
}

// prepare fills in the fields every store assigns on Add
func prepare(n domain.Notification) domain.Notification {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}
	if n.Priority == 0 {
		n.Priority = domain.DefaultPriority
	}
	return n
}

func cloneNotification(n domain.Notification) domain.Notification {
	if n.Tags != nil {
		n.Tags = append([]string(nil), n.Tags...)
	}
	return n
}
