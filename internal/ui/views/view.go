package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"notiview/internal/domain"
)

// PromptView is a confirmation prompt as shown to the user
type PromptView struct {
	Message      string
	ConfirmLabel string
	CancelLabel  string
	// Running is set once confirmed, until the deletion finishes
	Running bool
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Title       string // topic short URL
	TopicURL    string
	Selecting   bool
	ActionTitle string // selection count while selecting
	Live        bool

	Loaded             bool
	ListVisible        bool
	PlaceholderVisible bool
	Notifications      []domain.Notification
	IsSelected         func(id string) bool
	Cursor             int
	ViewportOffset     int
	ViewportHeight     int

	Prompt        *PromptView
	Detail        string
	StatusMessage string
	StatusIsError bool

	ShowHelp  bool
	HelpModel help.Model
	ShortHelp []key.Binding
	FullHelp  [][]key.Binding
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	notifRender *NotificationRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(showTimestamps bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		notifRender: NewNotificationRenderer(styles, showTimestamps),
		popupRender: NewPopupRenderer(styles),
	}
}

// Notifications returns the row renderer
func (r *Renderer) Notifications() *NotificationRenderer {
	return r.notifRender
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderHeader(state))
	content.WriteString("\n\n")

	switch {
	case state.ListVisible:
		content.WriteString(r.renderNotificationList(state))
	case state.PlaceholderVisible:
		content.WriteString(r.renderPlaceholder(state))
	default:
		content.WriteString(r.styles.Dim.Render("Loading notifications..."))
	}

	// Status and help are pinned to the bottom
	footer := r.renderFooter(state)
	currentLines := strings.Count(content.String(), "\n") + 1
	availableLines := state.Height - 2 // Main padding
	if availableLines <= 0 {
		availableLines = 22
	}
	if padding := availableLines - currentLines - lipgloss.Height(footer); padding > 0 {
		content.WriteString(strings.Repeat("\n", padding))
	}
	content.WriteString("\n")
	content.WriteString(footer)

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	finalContent := mainStyle.Render(content.String())

	// Overlay popups on top of main content
	if state.Prompt != nil {
		return r.popupRender.RenderPopupOverlay(finalContent, r.renderPrompt(state.Prompt), state.Height, state.Width, r.styles.PromptBox)
	}

	if state.Detail != "" {
		return r.popupRender.RenderPopupOverlay(finalContent, state.Detail, state.Height, state.Width, r.styles.InfoBox)
	}

	if state.ShowHelp {
		helpContent := r.styles.Title.Render("Keys") + "\n\n" + state.HelpModel.FullHelpView(state.FullHelp)
		return r.popupRender.RenderPopupOverlay(finalContent, helpContent, state.Height, state.Width, r.styles.InfoBox)
	}

	return finalContent
}

// renderHeader renders the topic title, or the selection count in action mode
func (r *Renderer) renderHeader(state ViewState) string {
	var left, right string
	if state.Selecting {
		left = r.styles.ActionTitle.Render(state.ActionTitle)
		right = r.styles.Dim.Render("selected")
	} else {
		left = r.styles.Title.Render(state.Title)
		if state.Loaded {
			right = r.styles.Dim.Render(pluralize(len(state.Notifications), "notification"))
		}
		if state.Live {
			right = strings.TrimSpace(right + "  " + r.styles.StatusSuccess.Render("● live"))
		}
	}

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	paddingWidth := termWidth - 4 - lipgloss.Width(left) - lipgloss.Width(right)
	if paddingWidth < 2 {
		paddingWidth = 2
	}
	return left + strings.Repeat(" ", paddingWidth) + right
}

// renderPlaceholder renders the empty state with a how-to example
func (r *Renderer) renderPlaceholder(state ViewState) string {
	var b strings.Builder
	b.WriteString(r.styles.Placeholder.Render("You haven't received any notifications for this topic yet."))
	b.WriteString("\n\n")
	b.WriteString(r.styles.Placeholder.Render("To send notifications to this topic, simply PUT or POST to the topic URL."))
	b.WriteString("\n\n")
	b.WriteString(r.styles.Dim.Render("Example:"))
	b.WriteString("\n")
	b.WriteString(r.styles.Example.Render(fmt.Sprintf("  curl -d \"Hi\" %s", state.TopicURL)))
	return b.String()
}

// renderNotificationList renders the visible window of the list
func (r *Renderer) renderNotificationList(state ViewState) string {
	total := len(state.Notifications)
	height := state.ViewportHeight
	if height <= 0 {
		height = total
	}
	offset := state.ViewportOffset
	if offset < 0 || offset >= total {
		offset = 0
	}

	needsTopIndicator := offset > 0
	needsBottomIndicator := offset+height < total
	effectiveHeight := height
	if needsTopIndicator {
		effectiveHeight--
	}
	if needsBottomIndicator {
		effectiveHeight--
	}
	if effectiveHeight < 1 {
		effectiveHeight = 1
	}

	width := state.Width - 4 // Main padding
	var lines []string
	if needsTopIndicator {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", offset)))
	}

	end := min(offset+effectiveHeight, total)
	for i := offset; i < end; i++ {
		n := state.Notifications[i]
		selected := state.IsSelected != nil && state.IsSelected(n.ID)
		lines = append(lines, r.notifRender.RenderNotification(n, i == state.Cursor, state.Selecting, selected, width))
	}

	if needsBottomIndicator {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", total-end)))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderFooter(state ViewState) string {
	var lines []string
	if state.StatusMessage != "" {
		style := r.styles.Status
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		lines = append(lines, style.Render(state.StatusMessage))
	}
	lines = append(lines, r.styles.Help.Render(state.HelpModel.ShortHelpView(state.ShortHelp)))
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderPrompt(p *PromptView) string {
	var b strings.Builder
	b.WriteString(p.Message)
	b.WriteString("\n\n")
	if p.Running {
		b.WriteString(r.styles.Dim.Render("Deleting..."))
		return b.String()
	}
	b.WriteString(r.styles.Confirm.Render("[y] " + p.ConfirmLabel))
	b.WriteString("    ")
	b.WriteString(r.styles.Dim.Render("[n] " + p.CancelLabel))
	return b.String()
}

func pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
