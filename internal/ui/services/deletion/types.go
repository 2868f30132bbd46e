package deletion

import (
	"context"
	"errors"

	"notiview/internal/domain"
	"notiview/internal/ui/services/selection"
)

var (
	// ErrPromptOpen is returned when a delete is requested while another prompt is showing
	ErrPromptOpen = errors.New("deletion: a confirmation prompt is already open")
	// ErrNoPrompt is returned when confirming or cancelling without an open prompt
	ErrNoPrompt = errors.New("deletion: no confirmation prompt is open")
	// ErrBusy is returned when answering a prompt whose deletion is still running
	ErrBusy = errors.New("deletion: a deletion is already running")
	// ErrNothingSelected is returned when deleting the selection while nothing is selected
	ErrNothingSelected = errors.New("deletion: nothing selected")
)

// Kind says what a prompt deletes
type Kind int

const (
	// KindSubscription deletes every notification and hands the subscription back to the caller
	KindSubscription Kind = iota
	// KindSelected deletes the selected notifications
	KindSelected
)

// Prompt is a two-button confirmation shown to the user
type Prompt struct {
	Kind         Kind
	Message      string
	ConfirmLabel string
	CancelLabel  string
}

// Result describes what a confirmed or cancelled prompt did
type Result struct {
	Kind Kind
	// Removed is set once the subscription was deleted
	Removed *domain.SubscriptionRemoved
	// Deleted lists the notification ids passed to Remove
	Deleted    []string
	Transition selection.Transition
}

// Job is the store work of a confirmed prompt. It touches no screen state.
type Job func(ctx context.Context) (Result, error)
