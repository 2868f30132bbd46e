package binding

import (
	"context"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"notiview/internal/domain"
)

// Binding keeps the rendered list in step with the store. Each snapshot
// replaces the previous one entirely; the next snapshot is only requested
// after the current one has been applied.
type Binding struct {
	store        Observer
	subscription domain.Subscription

	stream     <-chan []domain.Notification
	cancel     context.CancelFunc
	generation int

	rendered []domain.Notification
	loaded   bool
}

// New creates an unbound binding
func New(store Observer) *Binding {
	return &Binding{store: store}
}

// Bind starts observing sub, replacing any earlier subscription
func (b *Binding) Bind(ctx context.Context, sub *domain.Subscription) error {
	if !sub.Valid() {
		return ErrMissingSubscription
	}

	b.Close()

	ctx, cancel := context.WithCancel(ctx)
	b.subscription = *sub
	b.cancel = cancel
	b.generation++
	b.stream = b.store.Observe(ctx, sub.ID)
	b.rendered = nil
	b.loaded = false

	log.Printf("binding: observing subscription %d (%s)", sub.ID, sub.Topic)
	return nil
}

// Next returns a command that waits for the next snapshot
func (b *Binding) Next() tea.Cmd {
	stream := b.stream
	if stream == nil {
		return nil
	}
	generation := b.generation
	id := b.subscription.ID

	return func() tea.Msg {
		snapshot, ok := <-stream
		if !ok {
			return ClosedMsg{SubscriptionID: id, generation: generation}
		}
		return SnapshotMsg{SubscriptionID: id, Notifications: snapshot, generation: generation}
	}
}

// Apply installs a snapshot. It reports false for snapshots of an earlier Bind.
func (b *Binding) Apply(msg SnapshotMsg) bool {
	if msg.generation != b.generation || b.stream == nil {
		return false
	}
	b.rendered = msg.Notifications
	b.loaded = true
	return true
}

// Current reports whether msg belongs to the active stream
func (b *Binding) Current(msg ClosedMsg) bool {
	return msg.generation == b.generation && b.stream != nil
}

// Close stops observing. Commands already waiting on the stream return ClosedMsg.
func (b *Binding) Close() {
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
		log.Printf("binding: stopped observing subscription %d", b.subscription.ID)
	}
	b.stream = nil
}

// Subscription returns the bound subscription
func (b *Binding) Subscription() domain.Subscription {
	return b.subscription
}

// Loaded reports whether at least one snapshot has been applied
func (b *Binding) Loaded() bool {
	return b.loaded
}

// Rendered returns the notifications currently on screen
func (b *Binding) Rendered() []domain.Notification {
	return b.rendered
}

// Len returns the number of rendered notifications
func (b *Binding) Len() int {
	return len(b.rendered)
}

// At returns the rendered notification at index
func (b *Binding) At(index int) (domain.Notification, bool) {
	if index < 0 || index >= len(b.rendered) {
		return domain.Notification{}, false
	}
	return b.rendered[index], true
}

// IDs returns the ids of the rendered notifications
func (b *Binding) IDs() []string {
	ids := make([]string, len(b.rendered))
	for i, n := range b.rendered {
		ids[i] = n.ID
	}
	return ids
}

// ListVisible reports whether the list is shown
func (b *Binding) ListVisible() bool {
	return b.loaded && len(b.rendered) > 0
}

// PlaceholderVisible reports whether the "no notifications" placeholder is shown
func (b *Binding) PlaceholderVisible() bool {
	return b.loaded && len(b.rendered) == 0
}
