package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	ActionTitle   lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Placeholder   lipgloss.Style
	Example       lipgloss.Style
	PromptBox     lipgloss.Style
	InfoBox       lipgloss.Style
	Confirm       lipgloss.Style
	Tag           lipgloss.Style
	NotifTitle    lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	HighlightBg   lipgloss.Style
	SelectionBg   lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		ActionTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("61")).
			Padding(0, 1),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Example:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		PromptBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			Width(56).
			BorderForeground(lipgloss.Color("203")),
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			MaxWidth(80).
			BorderForeground(lipgloss.Color("241")),
		Confirm:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		Tag:           lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		NotifTitle:    lipgloss.NewStyle().Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		HighlightBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("24")),
	}
}

// PriorityColor returns the color of a notification priority marker
func PriorityColor(priority int) string {
	switch priority {
	case 5:
		return "196" // red, urgent
	case 4:
		return "214" // orange
	case 1, 2:
		return "241" // gray
	default:
		return "" // default priority has no marker
	}
}
