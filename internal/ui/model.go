package ui

import (
	"context"
	"errors"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"notiview/internal/config"
	"notiview/internal/domain"
	"notiview/internal/eventbus"
	"notiview/internal/store"
	"notiview/internal/ui/handlers"
	"notiview/internal/ui/input"
	inputtypes "notiview/internal/ui/input/types"
	"notiview/internal/ui/services/binding"
	"notiview/internal/ui/services/deletion"
	"notiview/internal/ui/services/navigation"
	"notiview/internal/ui/services/selection"
	"notiview/internal/ui/state"
	"notiview/internal/ui/viewmodels"
	"notiview/internal/ui/views"
)

// ErrorSource marks ErrorEvents the screen publishes itself. They are already
// shown, so they must not be forwarded back as EventMsg.
const ErrorSource = "ui"

// TestSender publishes the test notification of a topic
type TestSender interface {
	SendTest(ctx context.Context, baseURL, topic string) (string, error)
}

// Model is the notification history screen of one subscription
type Model struct {
	bus          eventbus.EventBus
	config       *config.Config
	state        *state.ScreenState
	subscription domain.Subscription
	sender       TestSender

	// Screen lifetime; cancelled on quit
	ctx    context.Context
	cancel context.CancelFunc

	// Services
	binding      *binding.Binding
	selection    *selection.Controller
	deletion     *deletion.Coordinator
	navigator    *navigation.Service
	renderer     *views.Renderer
	eventHandler *handlers.EventHandler
	viewModel    *viewmodels.ViewModel
	inputHandler *input.Handler
	pager        *PagerOps

	width  int
	height int

	result *domain.SubscriptionRemoved
}

// NewModel creates the screen for sub. It fails with
// binding.ErrMissingSubscription when sub is nil or incomplete.
func NewModel(bus eventbus.EventBus, cfg *config.Config, st store.NotificationStore, sender TestSender, sub *domain.Subscription) (*Model, error) {
	ctx, cancel := context.WithCancel(context.Background())

	b := binding.New(st)
	if err := b.Bind(ctx, sub); err != nil {
		cancel()
		return nil, err
	}

	screenState := state.NewScreenState()
	sel := selection.NewController()
	del := deletion.NewCoordinator(st, sel, *sub)
	nav := navigation.NewService()

	m := &Model{
		bus:          bus,
		config:       cfg,
		state:        screenState,
		subscription: *sub,
		sender:       sender,
		ctx:          ctx,
		cancel:       cancel,
		binding:      b,
		selection:    sel,
		deletion:     del,
		navigator:    nav,
		renderer:     views.NewRenderer(cfg.UISettings.ShowTimestamps),
		eventHandler: handlers.NewEventHandler(screenState),
		viewModel:    viewmodels.NewViewModel(screenState, b, sel, del, nav),
		inputHandler: input.New(),
		pager:        NewPagerOps(),
	}
	m.syncInputMode()

	return m, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.pager.SetProgram(p)
}

// SetLive marks the screen as fed by a live push subscription
func (m *Model) SetLive(live bool) {
	m.state.Live = live
}

// Result returns the removed subscription once the user confirmed deleting
// it, or nil
func (m *Model) Result() *domain.SubscriptionRemoved {
	return m.result
}

// Init starts waiting for the first snapshot
func (m *Model) Init() tea.Cmd {
	return m.binding.Next()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewModel.SetDimensions(msg.Width, msg.Height)
		m.navigator.SetViewportHeight(msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Informational popups close on any of their keys and swallow the rest
	if m.state.DetailContent != "" && m.deletion.Pending() == nil {
		switch msg.String() {
		case "esc", "enter", "q", " ":
			m.state.CloseDetail()
		case "ctrl+c":
			return m.quit()
		}
		return nil
	}
	if m.state.ShowHelp && m.deletion.Pending() == nil {
		switch msg.String() {
		case "esc", "?", "q":
			m.state.ShowHelp = false
		case "ctrl+c":
			return m.quit()
		}
		return nil
	}

	actions := m.inputHandler.HandleKey(msg, m.inputContext())

	var cmds []tea.Cmd
	for _, action := range actions {
		if cmd := m.processAction(action); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	m.syncInputMode()

	return tea.Batch(cmds...)
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigator.Navigate(navigation.Direction(a.Direction))

	case inputtypes.TapAction:
		outcome, transition := m.selection.Tap(a.ID)
		m.logTransition(transition)
		if outcome == selection.TapOpen {
			return m.openNotification(a.ID)
		}

	case inputtypes.LongPressAction:
		m.logTransition(m.selection.LongPress(a.ID))

	case inputtypes.CancelSelectionAction:
		m.logTransition(m.selection.Cancel())

	case inputtypes.DeleteSelectedAction:
		if _, err := m.deletion.RequestSelectedDelete(); err != nil {
			log.Printf("ui: delete selected: %v", err)
		}

	case inputtypes.DeleteSubscriptionAction:
		if _, err := m.deletion.RequestSubscriptionDelete(); err != nil {
			log.Printf("ui: delete subscription: %v", err)
		}

	case inputtypes.ConfirmAction:
		return m.confirmPrompt()

	case inputtypes.CancelPromptAction:
		result, err := m.deletion.Cancel()
		if err != nil {
			log.Printf("ui: cancel prompt: %v", err)
		}
		m.logTransition(result.Transition)

	case inputtypes.SendTestAction:
		return m.sendTest()

	case inputtypes.ToggleHelpAction:
		m.state.ShowHelp = !m.state.ShowHelp

	case inputtypes.QuitAction:
		return m.quit()
	}

	return nil
}

// confirmPrompt starts the open prompt's deletion in the background. The
// prompt keeps input modal until deleteDoneMsg comes back.
func (m *Model) confirmPrompt() tea.Cmd {
	job, err := m.deletion.Confirm()
	if err != nil {
		log.Printf("ui: confirm: %v", err)
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		result, err := job(ctx)
		return deleteDoneMsg{result: result, err: err}
	}
}

// finishDelete applies the outcome of a confirmed prompt
func (m *Model) finishDelete(msg deleteDoneMsg) tea.Cmd {
	result := m.deletion.Finish(msg.result)
	m.logTransition(result.Transition)
	m.syncInputMode()

	var cmds []tea.Cmd
	if msg.err != nil {
		if errors.Is(msg.err, deletion.ErrNothingSelected) {
			log.Printf("ui: confirm: %v", msg.err)
		} else {
			cmds = append(cmds, m.reportError("Could not delete notifications", msg.err))
		}
	}

	if result.Removed != nil {
		m.result = result.Removed
		if m.bus != nil {
			m.bus.Publish(eventbus.SubscriptionRemovedEvent{Result: *result.Removed})
		}
		return m.quit()
	}

	if msg.err == nil && len(result.Deleted) > 0 {
		cmds = append(cmds, m.eventHandler.Status(fmt.Sprintf("Deleted %d notification(s)", len(result.Deleted))))
	}
	return tea.Batch(cmds...)
}

// sendTest publishes the test notification in the background
func (m *Model) sendTest() tea.Cmd {
	sender := m.sender
	if sender == nil {
		return nil
	}
	sub := m.subscription
	parent := m.ctx
	timeout := m.config.TestSendTimeout.Duration

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		url, err := sender.SendTest(ctx, sub.BaseURL, sub.Topic)
		return testSentMsg{url: url, err: err}
	}
}

// openNotification shows a notification in the pager, or in a popup when
// the pager is unavailable
func (m *Model) openNotification(id string) tea.Cmd {
	n, ok := m.findNotification(id)
	if !ok {
		return nil
	}
	content := m.renderer.Notifications().RenderDetail(n)

	if !m.config.UISettings.UsePager || !m.pager.Available() {
		m.state.ShowDetail(id, content)
		return nil
	}

	pager := m.pager
	return func() tea.Msg {
		// Pause rendering while the pager owns the terminal
		pager.program.Send(pauseRenderingMsg{})
		err := pager.Show(content)
		pager.program.Send(resumeRenderingMsg{})
		return pagerMsg{id: id, err: err}
	}
}

func (m *Model) findNotification(id string) (domain.Notification, bool) {
	for _, n := range m.binding.Rendered() {
		if n.ID == id {
			return n, true
		}
	}
	return domain.Notification{}, false
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case binding.SnapshotMsg:
		if !m.binding.Apply(msg) {
			return m, nil
		}
		// Selected notifications deleted elsewhere leave the selection
		m.logTransition(m.selection.Retain(m.binding.IDs()))
		m.navigator.SetItemCount(m.binding.Len())
		if m.state.DetailID != "" {
			if _, ok := m.findNotification(m.state.DetailID); !ok {
				m.state.CloseDetail()
			}
		}
		m.syncInputMode()
		return m, m.binding.Next()

	case binding.ClosedMsg:
		if m.binding.Current(msg) {
			log.Printf("ui: notification stream of subscription %d closed", msg.SubscriptionID)
		}
		return m, nil

	case EventMsg:
		return m, m.eventHandler.HandleEvent(msg.Event)

	case deleteDoneMsg:
		return m, m.finishDelete(msg)

	case ConnectionMsg:
		m.state.Connected = msg.Connected
		return m, nil

	case testSentMsg:
		event := eventbus.TestSentEvent{URL: msg.url, Err: msg.err}
		if msg.err != nil {
			log.Printf("ui: test message to %s failed: %v", m.subscription.Topic, msg.err)
		}
		if m.bus != nil {
			m.bus.Publish(event)
		}
		return m, m.eventHandler.HandleEvent(event)

	case pagerMsg:
		if msg.err != nil {
			// Pager failed, fall back to popup
			log.Printf("ui: pager failed for %s: %v, falling back to popup", msg.id, msg.err)
			if n, ok := m.findNotification(msg.id); ok {
				m.state.ShowDetail(msg.id, m.renderer.Notifications().RenderDetail(n))
			}
		}
		return m, nil

	case pauseRenderingMsg:
		m.state.InPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.state.InPagerMode = false
		return m, nil

	case handlers.ClearStatusMsg:
		m.state.ClearStatus(msg.Seq)
		return m, nil
	}

	return m, nil
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.state.InPagerMode {
		return ""
	}
	return m.renderer.Render(m.viewModel.BuildViewState())
}

// quit tears the screen down: the store subscription is cancelled and an
// open prompt is dropped without running
func (m *Model) quit() tea.Cmd {
	m.deletion.Discard()
	m.binding.Close()
	m.cancel()
	return tea.Quit
}

func (m *Model) reportError(message string, err error) tea.Cmd {
	log.Printf("ui: %s: %v", message, err)
	event := eventbus.ErrorEvent{Source: ErrorSource, Message: message, Err: err}
	if m.bus != nil {
		m.bus.Publish(event)
	}
	return m.eventHandler.HandleEvent(event)
}

func (m *Model) inputContext() *input.ModelContext {
	return &input.ModelContext{
		Binding:    m.binding,
		Selection:  m.selection,
		Deletion:   m.deletion,
		Cursor:     m.navigator.GetCursor(),
		EnterToYes: m.config.UISettings.ConfirmWithEnter,
	}
}

// syncInputMode keeps the input mode and help line in step with the services
func (m *Model) syncInputMode() {
	m.inputHandler.Sync(m.inputContext())
	m.viewModel.SetHelp(m.inputHandler.ShortHelp(), m.inputHandler.FullHelp())
}

func (m *Model) logTransition(t selection.Transition) {
	switch t {
	case selection.TransitionEntering:
		log.Printf("ui: entering action mode")
	case selection.TransitionLeaving:
		log.Printf("ui: leaving action mode")
	}
}
