package input

import (
	"log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"notiview/internal/ui/input/modes"
	"notiview/internal/ui/input/types"
)

// Handler routes keys to the handler of the current mode. The mode follows
// the screen state: an open prompt means confirm, a non-empty selection
// means selecting, anything else is normal.
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	keys        *types.KeyMap
}

func New() *Handler {
	keys := types.DefaultKeyMap()

	h := &Handler{
		currentMode: types.ModeNormal,
		modes:       make(map[types.Mode]types.ModeHandler),
		keys:        &keys,
	}

	// Register all mode handlers
	h.modes[types.ModeNormal] = modes.NewNormalMode(h.keys)
	h.modes[types.ModeSelecting] = modes.NewSelectingMode(h.keys)
	h.modes[types.ModeConfirm] = modes.NewConfirmMode(h.keys)

	return h
}

// HandleKey returns the actions for msg. Keys the current mode does not
// consume produce no actions.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) []types.Action {
	allActions := h.Sync(ctx)

	handler := h.modes[h.currentMode]
	if handler == nil {
		return allActions
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	if !consumed {
		return allActions
	}
	return append(allActions, actions...)
}

// Sync moves to the mode implied by ctx, running the exit and enter hooks
func (h *Handler) Sync(ctx types.Context) []types.Action {
	next := modeFor(ctx)
	if next == h.currentMode {
		return nil
	}

	var allActions []types.Action
	if current := h.modes[h.currentMode]; current != nil {
		allActions = append(allActions, current.Exit(ctx)...)
	}

	log.Printf("input: mode %s -> %s", h.currentMode, next)
	h.currentMode = next

	if handler := h.modes[h.currentMode]; handler != nil {
		allActions = append(allActions, handler.Enter(ctx)...)
	}
	return allActions
}

func modeFor(ctx types.Context) types.Mode {
	switch {
	case ctx.HasPrompt():
		return types.ModeConfirm
	case ctx.IsSelecting():
		return types.ModeSelecting
	default:
		return types.ModeNormal
	}
}

// CurrentMode returns the mode of the last handled key or sync
func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeNormal
	}
	return h.currentMode
}

// ShortHelp returns the bindings of the current mode
func (h *Handler) ShortHelp() []key.Binding {
	if handler := h.modes[h.currentMode]; handler != nil {
		return handler.Help()
	}
	return nil
}

// FullHelp returns every binding grouped by concern
func (h *Handler) FullHelp() [][]key.Binding {
	return h.keys.FullHelp()
}
