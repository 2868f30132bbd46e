// Package ntfy talks to an ntfy-compatible server: topic URLs, publishing
// test messages and the live websocket subscription.
package ntfy

import (
	"fmt"
	"strings"
)

// TopicURL returns the full URL of a topic on a server
func TopicURL(baseURL, topic string) string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(baseURL, "/"), topic)
}

// TopicShortURL is TopicURL without the scheme, used as the screen title
func TopicShortURL(baseURL, topic string) string {
	url := TopicURL(baseURL, topic)
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(url, scheme) {
			return strings.TrimPrefix(url, scheme)
		}
	}
	return url
}

// TopicWebSocketURL returns the websocket endpoint streaming a topic's messages
func TopicWebSocketURL(baseURL, topic string) string {
	url := TopicURL(baseURL, topic) + "/ws"
	switch {
	case strings.HasPrefix(url, "https://"):
		return "wss://" + strings.TrimPrefix(url, "https://")
	case strings.HasPrefix(url, "http://"):
		return "ws://" + strings.TrimPrefix(url, "http://")
	}
	return url
}
