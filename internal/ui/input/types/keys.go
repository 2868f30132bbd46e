package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every key binding of the notification screen
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	Open   key.Binding // tap
	Select key.Binding // long-press
	Cancel key.Binding

	Delete             key.Binding
	DeleteSubscription key.Binding
	SendTest           key.Binding

	Yes   key.Binding
	No    key.Binding
	Enter key.Binding

	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		Home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("gg/home", "top")),
		End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G/end", "bottom")),

		Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Select: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done")),

		Delete:             key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete selected")),
		DeleteSubscription: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "unsubscribe")),
		SendTest:           key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "send test")),

		Yes:   key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
		No:    key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n/esc", "cancel")),
		Enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),

		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// FullHelp lists every binding grouped by concern, for the help popup
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Open, k.Select, k.Cancel, k.Delete},
		{k.SendTest, k.DeleteSubscription, k.Help, k.Quit},
	}
}
