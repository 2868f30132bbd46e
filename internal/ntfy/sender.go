package ntfy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Sender publishes messages to a topic
type Sender struct {
	client *http.Client
	now    func() time.Time
}

// NewSender creates a sender using client, or http.DefaultClient when nil
func NewSender(client *http.Client) *Sender {
	if client == nil {
		client = http.DefaultClient
	}
	return &Sender{client: client, now: time.Now}
}

// TestMessage is the body published by SendTest
func TestMessage(at time.Time) string {
	return fmt.Sprintf("This is a test notification from notiview. It was sent at %s.", at.Format(time.RFC1123))
}

// SendTest publishes a test notification to the topic and returns the URL it was sent to
func (s *Sender) SendTest(ctx context.Context, baseURL, topic string) (string, error) {
	url := TopicURL(baseURL, topic)
	return url, s.Publish(ctx, url, TestMessage(s.now()))
}

// Publish PUTs body to url
func (s *Sender) Publish(ctx context.Context, url, body string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("publish to %s: unexpected status %s: %s", url, resp.Status, strings.TrimSpace(string(detail)))
	}
	return nil
}
