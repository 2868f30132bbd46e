package ui

import (
	"notiview/internal/eventbus"
	"notiview/internal/ui/services/deletion"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// ConnectionMsg reports the state of the live push connection
type ConnectionMsg struct {
	Connected bool
}

// testSentMsg contains the result of a test notification
type testSentMsg struct {
	url string
	err error
}

// pagerMsg contains the result of showing a notification in the pager
type pagerMsg struct {
	id  string
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}

// deleteDoneMsg carries the outcome of a confirmed deletion
type deleteDoneMsg struct {
	result deletion.Result
	err    error
}
