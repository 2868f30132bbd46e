package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"notiview/internal/domain"
)

const timestampLayout = "2006-01-02 15:04"

// NotificationRenderer handles rendering of notification rows
type NotificationRenderer struct {
	styles         *Styles
	showTimestamps bool
}

// NewNotificationRenderer creates a new notification renderer
func NewNotificationRenderer(styles *Styles, showTimestamps bool) *NotificationRenderer {
	return &NotificationRenderer{
		styles:         styles,
		showTimestamps: showTimestamps,
	}
}

// RenderNotification renders one row of the list. isCursor marks the row
// under the cursor, isSelected marks rows in the selection set.
func (r *NotificationRenderer) RenderNotification(n domain.Notification, isCursor bool,
	isSelecting bool, isSelected bool, width int) string {
	bgColor := ""
	switch {
	case isCursor:
		bgColor = "238"
	case isSelected:
		bgColor = "24"
	}
	base := lipgloss.NewStyle().Background(lipgloss.Color(bgColor))

	var parts []string

	// Multi-select indicator
	if isSelecting {
		indicator := "[ ]"
		if isSelected {
			indicator = "[x]"
		}
		parts = append(parts, base.Render(indicator+" "))
	}

	if r.showTimestamps && !n.Timestamp.IsZero() {
		parts = append(parts, base.Faint(true).Render(n.Timestamp.Local().Format(timestampLayout)+" "))
	}

	if color := PriorityColor(n.Priority); color != "" {
		parts = append(parts, base.Foreground(lipgloss.Color(color)).Render(priorityMarker(n.Priority)+" "))
	}

	if title := cleanText(n.Title); title != "" {
		parts = append(parts, base.Bold(true).Render(firstLine(title)+": "))
	}
	parts = append(parts, base.Render(firstLine(cleanText(n.Message))))

	if len(n.Tags) > 0 {
		parts = append(parts, base.Foreground(lipgloss.Color("39")).Render(" ["+cleanTags(n.Tags)+"]"))
	}

	line := strings.Join(parts, "")
	if width > 0 {
		line = ansi.Truncate(line, width, "…")
	}
	return line
}

// RenderDetail renders a full notification for the pager or the detail popup
func (r *NotificationRenderer) RenderDetail(n domain.Notification) string {
	var b strings.Builder

	if title := cleanText(n.Title); title != "" {
		b.WriteString(r.styles.NotifTitle.Render(title))
		b.WriteString("\n\n")
	}
	b.WriteString(cleanText(n.Message))
	b.WriteString("\n\n")

	if !n.Timestamp.IsZero() {
		b.WriteString(r.styles.Dim.Render(fmt.Sprintf("Received %s", n.Timestamp.Local().Format(timestampLayout))))
		b.WriteString("\n")
	}
	if n.Priority != 0 && n.Priority != 3 {
		b.WriteString(r.styles.Dim.Render(fmt.Sprintf("Priority %d", n.Priority)))
		b.WriteString("\n")
	}
	if len(n.Tags) > 0 {
		b.WriteString(r.styles.Tag.Render("Tags: " + cleanTags(n.Tags)))
		b.WriteString("\n")
	}
	b.WriteString(r.styles.Dim.Render("ID " + cleanText(n.ID)))
	return b.String()
}

func priorityMarker(priority int) string {
	switch priority {
	case 5:
		return "!!"
	case 4:
		return "!"
	default:
		return "↓"
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

// cleanText drops escape sequences and control characters from text a
// publisher controls, keeping newlines. Tabs become spaces.
func cleanText(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n':
			return r
		case r == '\t':
			return ' '
		case r < 0x20, r == 0x7f, r >= 0x80 && r <= 0x9f:
			return -1
		}
		return r
	}, s)
}

func cleanTags(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		cleaned = append(cleaned, strings.ReplaceAll(cleanText(tag), "\n", " "))
	}
	return strings.Join(cleaned, ", ")
}
