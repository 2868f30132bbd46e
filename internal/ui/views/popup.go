package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay renders a popup centered on top of a greyed out copy of mainContent
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)

	modalW := lipgloss.Width(styledPopup)
	modalH := lipgloss.Height(styledPopup)
	if width <= 0 {
		width = max(lipgloss.Width(mainContent), modalW)
	}
	if height <= 0 {
		height = max(lipgloss.Height(mainContent), modalH)
	}
	x := max((width-modalW)/2, 0)
	y := max((height-modalH)/2, 0)

	base := strings.Split(desaturateANSI(mainContent), "\n")
	for len(base) < y+modalH {
		base = append(base, "")
	}

	for i, popupLine := range strings.Split(styledPopup, "\n") {
		row := base[y+i]
		left := ansi.Truncate(row, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ansi.TruncateLeft(row, x+ansi.StringWidth(popupLine), "")
		base[y+i] = left + popupLine + right
	}

	return strings.Join(base, "\n")
}

// desaturateANSI strips color/style codes and recolors every line dim gray
func desaturateANSI(s string) string {
	grey := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		plain := ansi.Strip(line)
		if strings.TrimSpace(plain) == "" {
			lines[i] = plain
			continue
		}
		lines[i] = grey.Render(plain)
	}
	return strings.Join(lines, "\n")
}
