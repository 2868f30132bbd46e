package handlers

import (
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"notiview/internal/eventbus"
	"notiview/internal/ui/state"
)

// StatusTimeout is how long transient status messages stay visible
const StatusTimeout = 3 * time.Second

// ClearStatusMsg clears the status line once its message has timed out
type ClearStatusMsg struct {
	Seq int
}

// EventHandler handles domain events and updates state
type EventHandler struct {
	state *state.ScreenState
}

// NewEventHandler creates a new event handler
func NewEventHandler(screenState *state.ScreenState) *EventHandler {
	return &EventHandler{state: screenState}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ErrorEvent:
		message := e.Message
		if e.Err != nil {
			message = fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		return h.transient(message, true)

	case eventbus.TestSentEvent:
		if e.Err != nil {
			return h.transient(fmt.Sprintf("Could not send test message: %v", e.Err), true)
		}
		return h.transient(fmt.Sprintf("Test notification sent to %s", e.URL), false)

	case eventbus.ConfigSavedEvent:
		log.Printf("ui: config saved to %s", e.Path)
	}

	return nil
}

// Status shows a transient status message
func (h *EventHandler) Status(message string) tea.Cmd {
	return h.transient(message, false)
}

func (h *EventHandler) transient(message string, isError bool) tea.Cmd {
	seq := h.state.SetStatus(message, isError)
	return tea.Tick(StatusTimeout, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
