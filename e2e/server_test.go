//go:build e2e && unix

package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// fakeServer answers publishes and streams messages to websocket subscribers
type fakeServer struct {
	*httptest.Server

	upgrader websocket.Upgrader

	mu        sync.Mutex
	published []string
	conns     []*websocket.Conn
	connected chan struct{}
}

type wireMessage struct {
	ID       string   `json:"id"`
	Time     int64    `json:"time"`
	Event    string   `json:"event"`
	Topic    string   `json:"topic"`
	Title    string   `json:"title,omitempty"`
	Message  string   `json:"message,omitempty"`
	Priority int      `json:"priority,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	fs := &fakeServer{connected: make(chan struct{}, 8)}
	fs.Server = httptest.NewServer(http.HandlerFunc(fs.handle))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) handle(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/ws") {
		conn, err := fs.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		fs.mu.Lock()
		fs.conns = append(fs.conns, conn)
		fs.mu.Unlock()
		select {
		case fs.connected <- struct{}{}:
		default:
		}
		return
	}

	body, _ := io.ReadAll(r.Body)
	fs.mu.Lock()
	fs.published = append(fs.published, string(body))
	fs.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

// WaitConnected waits for a websocket subscriber
func (fs *fakeServer) WaitConnected(timeout time.Duration) bool {
	select {
	case <-fs.connected:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Push sends a message event to every connected subscriber
func (fs *fakeServer) Push(t *testing.T, topic, id, title, message string) {
	t.Helper()
	raw, err := json.Marshal(wireMessage{
		ID:      id,
		Time:    time.Now().Unix(),
		Event:   "message",
		Topic:   topic,
		Title:   title,
		Message: message,
	})
	if err != nil {
		t.Fatalf("marshal message: %v", err)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	for _, conn := range fs.conns {
		if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			t.Logf("push to subscriber failed: %v", err)
		}
	}
}

// Published returns the bodies of every publish request so far
func (fs *fakeServer) Published() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]string(nil), fs.published...)
}

// Title is how the screen names topic on this server
func (fs *fakeServer) Title(topic string) string {
	return strings.TrimPrefix(fs.URL, "http://") + "/" + topic
}
