package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"notiview/internal/ui/input/types"
)

// NormalMode is active while nothing is selected
type NormalMode struct {
	keys *types.KeyMap
	nav  navigator
}

func NewNormalMode(keys *types.KeyMap) *NormalMode {
	return &NormalMode{keys: keys, nav: navigator{keys: keys}}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Help() []key.Binding {
	return []key.Binding{m.keys.Open, m.keys.Select, m.keys.SendTest, m.keys.DeleteSubscription, m.keys.Help, m.keys.Quit}
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return []types.Action{types.QuitAction{Force: true}}, true
	}

	if actions, ok := m.nav.handle(msg, ctx); ok {
		return actions, true
	}

	switch {
	case key.Matches(msg, m.keys.Open):
		if id := ctx.CurrentNotificationID(); id != "" {
			return []types.Action{types.TapAction{ID: id}}, true
		}
		return nil, true

	case key.Matches(msg, m.keys.Select):
		if id := ctx.CurrentNotificationID(); id != "" {
			return []types.Action{types.LongPressAction{ID: id}}, true
		}
		return nil, true

	case key.Matches(msg, m.keys.SendTest):
		return []types.Action{types.SendTestAction{}}, true

	case key.Matches(msg, m.keys.DeleteSubscription):
		return []types.Action{types.DeleteSubscriptionAction{}}, true

	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true

	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{Force: false}}, true

	case key.Matches(msg, m.keys.Cancel):
		// Nothing to dismiss
		return nil, true
	}

	return nil, false
}
