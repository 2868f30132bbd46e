package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Item gestures
type TapAction struct {
	ID string
}

func (a TapAction) Type() string { return "tap" }

type LongPressAction struct {
	ID string
}

func (a LongPressAction) Type() string { return "long_press" }

type CancelSelectionAction struct{}

func (a CancelSelectionAction) Type() string { return "cancel_selection" }

// Delete actions open a confirmation prompt
type DeleteSelectedAction struct{}

func (a DeleteSelectedAction) Type() string { return "delete_selected" }

type DeleteSubscriptionAction struct{}

func (a DeleteSubscriptionAction) Type() string { return "delete_subscription" }

// Prompt answers
type ConfirmAction struct{}

func (a ConfirmAction) Type() string { return "confirm" }

type CancelPromptAction struct{}

func (a CancelPromptAction) Type() string { return "cancel_prompt" }

// Command actions
type SendTestAction struct{}

func (a SendTestAction) Type() string { return "send_test" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
