package modes

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"notiview/internal/ui/input/types"
)

// navigator handles list movement keys shared by the normal and selecting modes
type navigator struct {
	keys        *types.KeyMap
	lastKeyWasG bool
	lastGTime   time.Time
}

// handle consumes movement keys. Moves past either end of the list, or on
// an empty list, are swallowed without an action.
func (n *navigator) handle(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	atTop := ctx.TotalItems() == 0 || ctx.CurrentIndex() <= 0
	atBottom := ctx.TotalItems() == 0 || ctx.CurrentIndex() >= ctx.TotalItems()-1

	move := func(direction string, blocked bool) ([]types.Action, bool) {
		if blocked {
			return nil, true
		}
		return []types.Action{types.NavigateAction{Direction: direction}}, true
	}

	if msg.String() == "g" {
		if n.lastKeyWasG && time.Since(n.lastGTime) < 500*time.Millisecond {
			// gg - go to top
			n.lastKeyWasG = false
			return move("home", atTop)
		}
		n.lastKeyWasG = true
		n.lastGTime = time.Now()
		return nil, true
	}
	// Any other key cancels the 'g' prefix
	n.lastKeyWasG = false

	switch {
	case key.Matches(msg, n.keys.Up):
		return move("up", atTop)
	case key.Matches(msg, n.keys.Down):
		return move("down", atBottom)
	case key.Matches(msg, n.keys.PageUp):
		return move("pageup", atTop)
	case key.Matches(msg, n.keys.PageDown):
		return move("pagedown", atBottom)
	case key.Matches(msg, n.keys.Home):
		return move("home", atTop)
	case key.Matches(msg, n.keys.End):
		return move("end", atBottom)
	}
	return nil, false
}
