package selection

import (
	"log"
	"sort"
	"strconv"
)

// Controller owns the set of selected notification ids and the action-mode
// state derived from it. The set is non-empty exactly when the mode is
// ModeSelecting; every method keeps that true before returning.
type Controller struct {
	mode     Mode
	selected map[string]struct{}
}

// NewController creates an idle controller
func NewController() *Controller {
	return &Controller{
		mode:     ModeIdle,
		selected: make(map[string]struct{}),
	}
}

// Mode returns the current state
func (c *Controller) Mode() Mode {
	return c.mode
}

// IsSelecting reports whether the action UI is active
func (c *Controller) IsSelecting() bool {
	return c.mode == ModeSelecting
}

// LongPress starts action mode with id selected. It is ignored while selecting.
func (c *Controller) LongPress(id string) Transition {
	if c.mode == ModeSelecting {
		return TransitionNone
	}
	c.selected = map[string]struct{}{id: {}}
	c.mode = ModeSelecting
	return TransitionEntering
}

// Tap dispatches on the current mode: idle taps open the item, taps while
// selecting toggle it
func (c *Controller) Tap(id string) (TapOutcome, Transition) {
	switch c.mode {
	case ModeSelecting:
		transition, _ := c.Toggle(id)
		if transition == TransitionLeaving {
			return TapCleared, transition
		}
		return TapToggled, transition
	default:
		return TapOpen, TransitionNone
	}
}

// Toggle flips id in the selection. Removing the last id ends action mode in
// the same step.
func (c *Controller) Toggle(id string) (Transition, error) {
	if c.mode != ModeSelecting {
		log.Printf("selection: toggle of %s while %s", id, c.mode)
		return TransitionNone, ErrNotSelecting
	}

	if _, ok := c.selected[id]; ok {
		delete(c.selected, id)
	} else {
		c.selected[id] = struct{}{}
	}

	if len(c.selected) == 0 {
		c.mode = ModeIdle
		return TransitionLeaving, nil
	}
	return TransitionNone, nil
}

// Cancel clears the selection and leaves action mode
func (c *Controller) Cancel() Transition {
	if c.mode != ModeSelecting {
		return TransitionNone
	}
	c.selected = make(map[string]struct{})
	c.mode = ModeIdle
	return TransitionLeaving
}

// Retain drops selected ids that are no longer in ids, e.g. after the
// notifications were deleted elsewhere
func (c *Controller) Retain(ids []string) Transition {
	if c.mode != ModeSelecting {
		return TransitionNone
	}

	present := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		present[id] = struct{}{}
	}
	for id := range c.selected {
		if _, ok := present[id]; !ok {
			delete(c.selected, id)
		}
	}

	if len(c.selected) == 0 {
		c.mode = ModeIdle
		return TransitionLeaving
	}
	return TransitionNone
}

// IsSelected checks if a notification is selected
func (c *Controller) IsSelected(id string) bool {
	_, ok := c.selected[id]
	return ok
}

// Selected returns the selected ids in a stable order
func (c *Controller) Selected() []string {
	ids := make([]string, 0, len(c.selected))
	for id := range c.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of selected items
func (c *Controller) Count() int {
	return len(c.selected)
}

// Title is the action-mode title: the selection count, or "" when idle
func (c *Controller) Title() string {
	if c.mode != ModeSelecting {
		return ""
	}
	return strconv.Itoa(len(c.selected))
}
