package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"notiview/internal/ui/input/types"
)

// SelectingMode is active while the action UI is showing. Both enter and
// space toggle the item under the cursor.
type SelectingMode struct {
	keys *types.KeyMap
	nav  navigator
}

func NewSelectingMode(keys *types.KeyMap) *SelectingMode {
	return &SelectingMode{keys: keys, nav: navigator{keys: keys}}
}

func (m *SelectingMode) Name() string {
	return "selecting"
}

func (m *SelectingMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *SelectingMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *SelectingMode) Help() []key.Binding {
	toggle := key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space/enter", "toggle"))
	return []key.Binding{toggle, m.keys.Delete, m.keys.Cancel, m.keys.Help}
}

func (m *SelectingMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return []types.Action{types.QuitAction{Force: true}}, true
	}

	if actions, ok := m.nav.handle(msg, ctx); ok {
		return actions, true
	}

	switch {
	case key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Select):
		if id := ctx.CurrentNotificationID(); id != "" {
			return []types.Action{types.TapAction{ID: id}}, true
		}
		return nil, true

	case key.Matches(msg, m.keys.Delete):
		if ctx.SelectedCount() == 0 {
			return nil, true
		}
		return []types.Action{types.DeleteSelectedAction{}}, true

	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
		// Back out of action mode instead of leaving the screen
		return []types.Action{types.CancelSelectionAction{}}, true

	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	}

	return nil, false
}
