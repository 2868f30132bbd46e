package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notiview/internal/domain"
	"notiview/internal/eventbus"
)

type storeFactory func(t *testing.T, bus eventbus.EventBus) NotificationStore

func factories() map[string]storeFactory {
	return map[string]storeFactory{
		"memory": func(t *testing.T, bus eventbus.EventBus) NotificationStore {
			return NewMemoryStore(bus)
		},
		"sqlite": func(t *testing.T, bus eventbus.EventBus) NotificationStore {
			s, err := OpenSQLite(filepath.Join(t.TempDir(), "notifications.db"), bus)
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			return s
		},
	}
}

func newBus(t *testing.T) eventbus.EventBus {
	t.Helper()
	bus := eventbus.New()
	t.Cleanup(bus.Close)
	return bus
}

func at(sec int64) time.Time {
	return time.Unix(1700000000+sec, 0)
}

func ids(list []domain.Notification) []string {
	out := make([]string, 0, len(list))
	for _, n := range list {
		out = append(out, n.ID)
	}
	return out
}

// next reads snapshots until one satisfies match
func next(t *testing.T, ch <-chan []domain.Notification, match func([]domain.Notification) bool) []domain.Notification {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case snapshot, ok := <-ch:
			require.True(t, ok, "stream closed early")
			if match(snapshot) {
				return snapshot
			}
		case <-deadline:
			t.Fatal("timed out waiting for snapshot")
			return nil
		}
	}
}

func TestListOrdersNewestFirstPerSubscription(t *testing.T) {
	for name, factory := range factories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := factory(t, newBus(t))

			_, err := s.Add(ctx, domain.Notification{ID: "a", SubscriptionID: 1, Message: "old", Timestamp: at(1)})
			require.NoError(t, err)
			_, err = s.Add(ctx, domain.Notification{ID: "b", SubscriptionID: 1, Message: "new", Timestamp: at(2), Tags: []string{"warning", "skull"}})
			require.NoError(t, err)
			_, err = s.Add(ctx, domain.Notification{ID: "c", SubscriptionID: 2, Message: "other", Timestamp: at(3)})
			require.NoError(t, err)

			list, err := s.List(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, []string{"b", "a"}, ids(list))
			assert.Equal(t, []string{"warning", "skull"}, list[0].Tags)
			assert.Equal(t, "new", list[0].Message)
			assert.True(t, list[0].Timestamp.Equal(at(2)))
		})
	}
}

func TestAddAssignsIDAndIgnoresDuplicates(t *testing.T) {
	for name, factory := range factories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := factory(t, newBus(t))

			added, err := s.Add(ctx, domain.Notification{SubscriptionID: 1, Message: "no id"})
			require.NoError(t, err)
			assert.NotEmpty(t, added.ID)
			assert.False(t, added.Timestamp.IsZero())

			_, err = s.Add(ctx, domain.Notification{ID: "dup", SubscriptionID: 1, Message: "first", Timestamp: at(1)})
			require.NoError(t, err)
			_, err = s.Add(ctx, domain.Notification{ID: "dup", SubscriptionID: 1, Message: "second", Timestamp: at(1)})
			require.NoError(t, err)

			list, err := s.List(ctx, 1)
			require.NoError(t, err)
			require.Len(t, list, 2)
			for _, n := range list {
				if n.ID == "dup" {
					assert.Equal(t, "first", n.Message)
				}
			}
		})
	}
}

func TestTagsAndDefaultsRoundTripIdentically(t *testing.T) {
	for name, factory := range factories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := factory(t, newBus(t))

			added, err := s.Add(ctx, domain.Notification{ID: "a", SubscriptionID: 1, Message: "a", Tags: []string{"a,b", "c", `quote"d`}})
			require.NoError(t, err)
			assert.Equal(t, domain.DefaultPriority, added.Priority)

			_, err = s.Add(ctx, domain.Notification{ID: "b", SubscriptionID: 1, Message: "b", Priority: 5, Timestamp: at(1)})
			require.NoError(t, err)

			list, err := s.List(ctx, 1)
			require.NoError(t, err)
			require.Len(t, list, 2)
			byID := map[string]domain.Notification{}
			for _, n := range list {
				byID[n.ID] = n
			}
			assert.Equal(t, []string{"a,b", "c", `quote"d`}, byID["a"].Tags)
			assert.Equal(t, domain.DefaultPriority, byID["a"].Priority)
			assert.Equal(t, 5, byID["b"].Priority)
			assert.Empty(t, byID["b"].Tags)
		})
	}
}

func TestDecodeTagsReadsLegacyCommaList(t *testing.T) {
	tags, err := decodeTags("warning,skull")
	require.NoError(t, err)
	assert.Equal(t, []string{"warning", "skull"}, tags)

	tags, err = decodeTags("")
	require.NoError(t, err)
	assert.Nil(t, tags)
}

func TestObserveReportsLoadFailureAndRetries(t *testing.T) {
	oldDelay := retryDelay
	retryDelay = 20 * time.Millisecond
	t.Cleanup(func() { retryDelay = oldDelay })

	bus := newBus(t)
	var reported atomic.Value
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		reported.Store(e)
	})

	var calls atomic.Int32
	load := func(ctx context.Context, subscriptionID int64) ([]domain.Notification, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("database is locked")
		}
		return []domain.Notification{{ID: "a", SubscriptionID: subscriptionID}}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stream := observe(ctx, bus, 1, load)

	// No change event is published; the retry alone delivers the snapshot
	snapshot := next(t, stream, func([]domain.Notification) bool { return true })
	assert.Equal(t, []string{"a"}, ids(snapshot))

	assert.Eventually(t, func() bool {
		e, ok := reported.Load().(eventbus.ErrorEvent)
		return ok && e.Source == "store" && e.Err != nil
	}, time.Second, 5*time.Millisecond)
}

func TestRemoveAndRemoveAll(t *testing.T) {
	for name, factory := range factories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := factory(t, newBus(t))

			for i, id := range []string{"a", "b", "c"} {
				_, err := s.Add(ctx, domain.Notification{ID: id, SubscriptionID: 1, Message: id, Timestamp: at(int64(i))})
				require.NoError(t, err)
			}
			_, err := s.Add(ctx, domain.Notification{ID: "z", SubscriptionID: 2, Message: "z", Timestamp: at(9)})
			require.NoError(t, err)

			require.NoError(t, s.Remove(ctx, "b"))
			require.NoError(t, s.Remove(ctx, "missing"))

			list, err := s.List(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, []string{"c", "a"}, ids(list))

			require.NoError(t, s.RemoveAll(ctx, 1))
			list, err = s.List(ctx, 1)
			require.NoError(t, err)
			assert.Empty(t, list)

			other, err := s.List(ctx, 2)
			require.NoError(t, err)
			assert.Equal(t, []string{"z"}, ids(other))
		})
	}
}

func TestObserveDeliversInitialAndChangedSnapshots(t *testing.T) {
	for name, factory := range factories() {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			s := factory(t, newBus(t))

			_, err := s.Add(ctx, domain.Notification{ID: "a", SubscriptionID: 1, Message: "a", Timestamp: at(1)})
			require.NoError(t, err)

			stream := s.Observe(ctx, 1)
			first := next(t, stream, func([]domain.Notification) bool { return true })
			assert.Equal(t, []string{"a"}, ids(first))

			_, err = s.Add(ctx, domain.Notification{ID: "b", SubscriptionID: 1, Message: "b", Timestamp: at(2)})
			require.NoError(t, err)
			next(t, stream, func(l []domain.Notification) bool { return len(l) == 2 })

			require.NoError(t, s.RemoveAll(ctx, 1))
			empty := next(t, stream, func(l []domain.Notification) bool { return len(l) == 0 })
			assert.NotNil(t, empty)
		})
	}
}

func TestObserveIsRestartableAndClosesOnCancel(t *testing.T) {
	s := NewMemoryStore(newBus(t))
	ctx := context.Background()
	_, err := s.Add(ctx, domain.Notification{ID: "a", SubscriptionID: 1, Message: "a"})
	require.NoError(t, err)

	firstCtx, cancelFirst := context.WithCancel(ctx)
	first := s.Observe(firstCtx, 1)
	next(t, first, func(l []domain.Notification) bool { return len(l) == 1 })
	cancelFirst()

	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-first:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)

	secondCtx, cancelSecond := context.WithCancel(ctx)
	defer cancelSecond()
	second := s.Observe(secondCtx, 1)
	snapshot := next(t, second, func([]domain.Notification) bool { return true })
	assert.Equal(t, []string{"a"}, ids(snapshot))
}

func TestObserveIgnoresOtherSubscriptions(t *testing.T) {
	s := NewMemoryStore(newBus(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := s.Observe(ctx, 1)
	next(t, stream, func(l []domain.Notification) bool { return len(l) == 0 })

	_, err := s.Add(ctx, domain.Notification{ID: "x", SubscriptionID: 2, Message: "x"})
	require.NoError(t, err)

	select {
	case snapshot := <-stream:
		t.Fatalf("unexpected snapshot %v", ids(snapshot))
	case <-time.After(100 * time.Millisecond):
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore(newBus(t))
	ctx := context.Background()
	_, err := s.Add(ctx, domain.Notification{ID: "a", SubscriptionID: 1, Message: "a", Tags: []string{"one"}})
	require.NoError(t, err)

	list, err := s.List(ctx, 1)
	require.NoError(t, err)
	list[0].Tags[0] = "mutated"

	again, err := s.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, again[0].Tags)
}
