package store

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"notiview/internal/domain"
	"notiview/internal/eventbus"
)

// Watcher turns writes to the database file by other processes into
// NotificationsChanged events so open views refresh
type Watcher struct {
	watcher  *fsnotify.Watcher
	bus      eventbus.EventBus
	base     string
	debounce time.Duration
}

// NewWatcher watches the directory containing dbPath
func NewWatcher(dbPath string, bus eventbus.EventBus) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(dbPath)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(dbPath), err)
	}

	return &Watcher{
		watcher:  fw,
		bus:      bus,
		base:     filepath.Base(dbPath),
		debounce: 150 * time.Millisecond,
	}, nil
}

// Run forwards file events until ctx is done
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if pending == nil {
				pending = time.After(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("store: watcher error: %v", err)

		case <-pending:
			pending = nil
			w.bus.Publish(eventbus.NotificationsChangedEvent{SubscriptionID: domain.AllSubscriptions})
		}
	}
}

// relevant matches the database file and its -wal/-journal companions
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
		return false
	}
	return strings.HasPrefix(filepath.Base(event.Name), w.base)
}
