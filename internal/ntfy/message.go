package ntfy

import (
	"encoding/json"
	"time"

	"notiview/internal/domain"
)

// Event names sent by the server
const (
	EventOpen      = "open"
	EventKeepalive = "keepalive"
	EventMessage   = "message"
)

// Message is the JSON object the server streams for every event
type Message struct {
	ID       string   `json:"id"`
	Time     int64    `json:"time"`
	Event    string   `json:"event"`
	Topic    string   `json:"topic"`
	Title    string   `json:"title,omitempty"`
	Message  string   `json:"message,omitempty"`
	Priority int      `json:"priority,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// DecodeMessage parses a raw frame
func DecodeMessage(raw []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ToNotification converts a "message" event for the given subscription
func (m *Message) ToNotification(subscriptionID int64) domain.Notification {
	return domain.Notification{
		ID:             m.ID,
		SubscriptionID: subscriptionID,
		Title:          m.Title,
		Message:        m.Message,
		Priority:       m.Priority,
		Tags:           m.Tags,
		Timestamp:      time.Unix(m.Time, 0),
	}
}
