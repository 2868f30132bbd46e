package ntfy

import (
	"context"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"notiview/internal/domain"
)

// Subscriber keeps a websocket open to a topic and hands every received
// message to onMessage, reconnecting with exponential backoff
type Subscriber struct {
	subscription domain.Subscription
	onMessage    func(domain.Notification)

	// Connection callbacks
	OnConnect    func()
	OnDisconnect func()

	// Reconnection settings
	MinReconnectDelay time.Duration
	MaxReconnectDelay time.Duration

	dialer *websocket.Dialer

	mu     sync.RWMutex
	conn   *websocket.Conn
	lastID string
}

// NewSubscriber creates a subscriber for sub
func NewSubscriber(sub domain.Subscription, onMessage func(domain.Notification)) *Subscriber {
	return &Subscriber{
		subscription:      sub,
		onMessage:         onMessage,
		MinReconnectDelay: time.Second,
		MaxReconnectDelay: 30 * time.Second,
		dialer:            websocket.DefaultDialer,
	}
}

// Run connects and reads until ctx is done
func (s *Subscriber) Run(ctx context.Context) {
	delay := s.MinReconnectDelay

	for {
		err := s.connect(ctx)
		if err == nil {
			delay = s.MinReconnectDelay
			s.readLoop(ctx)
		} else {
			log.Printf("ntfy: connecting to %s failed: %v", s.subscription.Topic, err)
		}

		if ctx.Err() != nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}

		delay *= 2
		if delay > s.MaxReconnectDelay {
			delay = s.MaxReconnectDelay
		}
		log.Printf("ntfy: reconnecting to %s...", s.subscription.Topic)
	}
}

func (s *Subscriber) endpoint() string {
	endpoint := TopicWebSocketURL(s.subscription.BaseURL, s.subscription.Topic)

	s.mu.RLock()
	since := s.lastID
	s.mu.RUnlock()

	// Ask for what was missed while disconnected
	if since != "" {
		endpoint += "?since=" + url.QueryEscape(since)
	}
	return endpoint
}

func (s *Subscriber) connect(ctx context.Context) error {
	conn, _, err := s.dialer.DialContext(ctx, s.endpoint(), nil)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	if s.OnConnect != nil {
		s.OnConnect()
	}
	return nil
}

func (s *Subscriber) readLoop(ctx context.Context) {
	s.mu.RLock()
	conn := s.conn
	s.mu.RUnlock()

	// Unblock ReadMessage when the context ends
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	defer func() {
		s.mu.Lock()
		s.conn = nil
		s.mu.Unlock()
		conn.Close()

		if s.OnDisconnect != nil {
			s.OnDisconnect()
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		msg, err := DecodeMessage(raw)
		if err != nil {
			log.Printf("ntfy: failed to decode message: %v", err)
			continue
		}
		switch msg.Event {
		case EventMessage:
		case EventOpen:
			log.Printf("ntfy: subscribed to %s", msg.Topic)
			continue
		case EventKeepalive:
			continue
		default:
			log.Printf("ntfy: ignoring %q event", msg.Event)
			continue
		}

		s.mu.Lock()
		s.lastID = msg.ID
		s.mu.Unlock()

		if s.onMessage != nil {
			s.onMessage(msg.ToNotification(s.subscription.ID))
		}
	}
}
