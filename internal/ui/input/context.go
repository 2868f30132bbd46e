package input

import (
	"notiview/internal/ui/services/binding"
	"notiview/internal/ui/services/deletion"
	"notiview/internal/ui/services/selection"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Binding    *binding.Binding
	Selection  *selection.Controller
	Deletion   *deletion.Coordinator
	Cursor     int
	EnterToYes bool
}

// CurrentIndex returns the cursor position
func (c *ModelContext) CurrentIndex() int {
	return c.Cursor
}

// TotalItems returns the number of rendered notifications
func (c *ModelContext) TotalItems() int {
	return c.Binding.Len()
}

// CurrentNotificationID returns the id under the cursor, or "" for an empty list
func (c *ModelContext) CurrentNotificationID() string {
	n, ok := c.Binding.At(c.Cursor)
	if !ok {
		return ""
	}
	return n.ID
}

// IsSelecting reports whether the action UI is active
func (c *ModelContext) IsSelecting() bool {
	return c.Selection.IsSelecting()
}

// SelectedCount returns the number of selected notifications
func (c *ModelContext) SelectedCount() int {
	return c.Selection.Count()
}

// HasPrompt reports whether a confirmation prompt is open
func (c *ModelContext) HasPrompt() bool {
	return c.Deletion.Pending() != nil
}

// EnterConfirms reports whether enter answers a prompt with yes
func (c *ModelContext) EnterConfirms() bool {
	return c.EnterToYes
}
