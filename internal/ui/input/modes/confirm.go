package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"notiview/internal/ui/input/types"
)

// ConfirmMode is active while a delete prompt is open. It swallows every
// key except the prompt answers.
type ConfirmMode struct {
	keys *types.KeyMap
}

func NewConfirmMode(keys *types.KeyMap) *ConfirmMode {
	return &ConfirmMode{keys: keys}
}

func (m *ConfirmMode) Name() string {
	return "confirm"
}

func (m *ConfirmMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) Help() []key.Binding {
	return []key.Binding{m.keys.Yes, m.keys.No}
}

func (m *ConfirmMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, m.keys.Yes):
		return []types.Action{types.ConfirmAction{}}, true
	case key.Matches(msg, m.keys.No):
		return []types.Action{types.CancelPromptAction{}}, true
	case ctx.EnterConfirms() && key.Matches(msg, m.keys.Enter):
		return []types.Action{types.ConfirmAction{}}, true
	}

	return nil, true
}
