package viewmodels

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"notiview/internal/ntfy"
	"notiview/internal/ui/services/binding"
	"notiview/internal/ui/services/deletion"
	"notiview/internal/ui/services/navigation"
	"notiview/internal/ui/services/selection"
	"notiview/internal/ui/state"
	"notiview/internal/ui/views"
)

// ViewModel transforms screen state and services into view-ready data
type ViewModel struct {
	state     *state.ScreenState
	binding   *binding.Binding
	selection *selection.Controller
	deletion  *deletion.Coordinator
	navigator *navigation.Service

	width     int
	height    int
	help      help.Model
	shortHelp []key.Binding
	fullHelp  [][]key.Binding
}

// NewViewModel creates a new view model
func NewViewModel(screenState *state.ScreenState, b *binding.Binding,
	sel *selection.Controller, del *deletion.Coordinator, nav *navigation.Service) *ViewModel {
	return &ViewModel{
		state:     screenState,
		binding:   b,
		selection: sel,
		deletion:  del,
		navigator: nav,
		help:      help.New(),
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
	vm.help.Width = width
}

// SetHelp sets the bindings shown in the help line and the help popup
func (vm *ViewModel) SetHelp(short []key.Binding, full [][]key.Binding) {
	vm.shortHelp = short
	vm.fullHelp = full
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	sub := vm.binding.Subscription()
	vs := views.ViewState{
		Width:              vm.width,
		Height:             vm.height,
		Title:              ntfy.TopicShortURL(sub.BaseURL, sub.Topic),
		TopicURL:           ntfy.TopicURL(sub.BaseURL, sub.Topic),
		Selecting:          vm.selection.IsSelecting(),
		ActionTitle:        vm.selection.Title(),
		Live:               vm.state.Live && vm.state.Connected,
		Loaded:             vm.binding.Loaded(),
		ListVisible:        vm.binding.ListVisible(),
		PlaceholderVisible: vm.binding.PlaceholderVisible(),
		Notifications:      vm.binding.Rendered(),
		IsSelected:         vm.selection.IsSelected,
		Cursor:             vm.navigator.GetCursor(),
		ViewportOffset:     vm.navigator.GetViewportOffset(),
		ViewportHeight:     vm.navigator.GetViewportHeight(),
		Detail:             vm.state.DetailContent,
		StatusMessage:      vm.state.StatusMessage,
		StatusIsError:      vm.state.StatusIsError,
		ShowHelp:           vm.state.ShowHelp,
		HelpModel:          vm.help,
		ShortHelp:          vm.shortHelp,
		FullHelp:           vm.fullHelp,
	}

	if p := vm.deletion.Pending(); p != nil {
		vs.Prompt = &views.PromptView{
			Message:      p.Message,
			ConfirmLabel: p.ConfirmLabel,
			CancelLabel:  p.CancelLabel,
			Running:      vm.deletion.Running(),
		}
	}
	return vs
}
