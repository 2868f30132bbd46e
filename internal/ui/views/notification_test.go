package views

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"notiview/internal/domain"
)

func hostileNotification() domain.Notification {
	return domain.Notification{
		ID:      "n1",
		Title:   "alert\x1b]0;owned\a",
		Message: "pwn\x1b]52;c;ZXZpbA==\a\x1b]0;owned\a done\x1b[2J\x1b[H\r\x08",
		Tags:    []string{"ok\x1b[31m", "bell\a"},
	}
}

func assertNoTerminalControl(t *testing.T, out string) {
	t.Helper()
	assert.NotContains(t, out, "\x1b]52;")
	assert.NotContains(t, out, "\x1b]0;")
	assert.NotContains(t, out, "\x1b[2J")
	assert.NotContains(t, out, "\x1b[H")
	assert.NotContains(t, out, "\a")
	assert.NotContains(t, out, "\r")
	assert.NotContains(t, out, "\x08")
}

func TestRowStripsEscapeSequencesFromPublishedText(t *testing.T) {
	r := NewNotificationRenderer(NewStyles(), false)

	row := r.RenderNotification(hostileNotification(), false, false, false, 120)

	assertNoTerminalControl(t, row)
	plain := ansi.Strip(row)
	assert.Contains(t, plain, "alert: pwn done")
	assert.Contains(t, plain, "[ok, bell]")
}

func TestDetailStripsEscapeSequencesFromPublishedText(t *testing.T) {
	r := NewNotificationRenderer(NewStyles(), false)

	detail := r.RenderDetail(hostileNotification())

	assertNoTerminalControl(t, detail)
	plain := ansi.Strip(detail)
	assert.Contains(t, plain, "pwn done")
	assert.Contains(t, plain, "Tags: ok, bell")
}

func TestCleanTextKeepsNewlinesAndPrintableText(t *testing.T) {
	assert.Equal(t, "line one\nline  two ✓", cleanText("line one\nline\t two ✓"))
	assert.Equal(t, "", cleanText("\x1b]52;c;ZXZpbA==\a"))
}
