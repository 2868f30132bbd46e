package deletion

import (
	"context"
	"errors"
	"fmt"
	"log"

	"notiview/internal/domain"
	"notiview/internal/ui/services/selection"
)

// Remover is the part of the notification store deletions need
type Remover interface {
	Remove(ctx context.Context, id string) error
	RemoveAll(ctx context.Context, subscriptionID int64) error
}

// Coordinator turns delete requests into confirmation prompts and runs them
// against the store once confirmed. At most one prompt is open at a time.
type Coordinator struct {
	store        Remover
	selection    *selection.Controller
	subscription domain.Subscription
	pending      *Prompt
	running      bool
}

// NewCoordinator creates a coordinator for one subscription's screen
func NewCoordinator(store Remover, sel *selection.Controller, sub domain.Subscription) *Coordinator {
	return &Coordinator{
		store:        store,
		selection:    sel,
		subscription: sub,
	}
}

// Pending returns the open prompt, or nil
func (c *Coordinator) Pending() *Prompt {
	return c.pending
}

// RequestSubscriptionDelete opens the prompt for unsubscribing and deleting every notification
func (c *Coordinator) RequestSubscriptionDelete() (*Prompt, error) {
	if c.pending != nil {
		return nil, ErrPromptOpen
	}
	c.pending = &Prompt{
		Kind:         KindSubscription,
		Message:      "Do you really want to unsubscribe from this topic and delete all of the notifications you received?",
		ConfirmLabel: "Permanently delete",
		CancelLabel:  "Cancel",
	}
	return c.pending, nil
}

// RequestSelectedDelete opens the prompt for deleting the selected notifications
func (c *Coordinator) RequestSelectedDelete() (*Prompt, error) {
	if c.pending != nil {
		return nil, ErrPromptOpen
	}
	if !c.selection.IsSelecting() {
		return nil, ErrNothingSelected
	}
	c.pending = &Prompt{
		Kind:         KindSelected,
		Message:      fmt.Sprintf("Do you really want to permanently delete the %d selected notification(s)?", c.selection.Count()),
		ConfirmLabel: "Permanently delete",
		CancelLabel:  "Cancel",
	}
	return c.pending, nil
}

// Confirm starts the open prompt and returns the store work to run off the
// UI goroutine. The prompt stays pending, and answers are refused with
// ErrBusy, until Finish is called with the job's result.
func (c *Coordinator) Confirm() (Job, error) {
	prompt := c.pending
	if prompt == nil {
		return nil, ErrNoPrompt
	}
	if c.running {
		return nil, ErrBusy
	}
	c.running = true

	switch prompt.Kind {
	case KindSubscription:
		return subscriptionJob(c.store, c.subscription), nil
	default:
		return selectedJob(c.store, c.selection.Selected()), nil
	}
}

// Running reports whether a confirmed prompt is waiting for its job
func (c *Coordinator) Running() bool {
	return c.running
}

// Finish closes the prompt whose job produced result. Store failures are
// not retried. A selection delete ends action mode.
func (c *Coordinator) Finish(result Result) Result {
	c.pending = nil
	c.running = false
	if result.Kind == KindSelected {
		result.Transition = c.selection.Cancel()
	}
	return result
}

// Cancel closes the open prompt. Cancelling a selection delete also ends action mode.
func (c *Coordinator) Cancel() (Result, error) {
	prompt := c.pending
	if prompt == nil {
		return Result{}, ErrNoPrompt
	}
	if c.running {
		return Result{}, ErrBusy
	}
	c.pending = nil

	result := Result{Kind: prompt.Kind}
	if prompt.Kind == KindSelected {
		result.Transition = c.selection.Cancel()
	}
	return result, nil
}

// Discard drops the open prompt without running it, used when the screen closes
func (c *Coordinator) Discard() {
	if c.pending != nil {
		log.Printf("deletion: discarding pending prompt")
	}
	c.pending = nil
	c.running = false
}

func subscriptionJob(store Remover, sub domain.Subscription) Job {
	return func(ctx context.Context) (Result, error) {
		log.Printf("deletion: deleting subscription %d (%s)", sub.ID, sub.Topic)

		result := Result{
			Kind: KindSubscription,
			Removed: &domain.SubscriptionRemoved{
				SubscriptionID: sub.ID,
				Topic:          sub.Topic,
			},
		}
		if err := store.RemoveAll(ctx, sub.ID); err != nil {
			return result, fmt.Errorf("failed to delete notifications of %s: %w", sub.Topic, err)
		}
		return result, nil
	}
}

func selectedJob(store Remover, ids []string) Job {
	return func(ctx context.Context) (Result, error) {
		if len(ids) == 0 {
			// Everything selected disappeared while the prompt was open
			return Result{Kind: KindSelected}, ErrNothingSelected
		}

		log.Printf("deletion: deleting %d selected notifications", len(ids))

		var errs []error
		for _, id := range ids {
			if err := store.Remove(ctx, id); err != nil {
				errs = append(errs, fmt.Errorf("failed to delete notification %s: %w", id, err))
			}
		}
		return Result{Kind: KindSelected, Deleted: ids}, errors.Join(errs...)
	}
}
