package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StatusBar renders the bottom row with filter counts and keyboard shortcuts.
type StatusBar struct {
	active  int
	visible int
	total   int
	notice  string
	width   int
}

// NewStatusBar creates a status bar with default values.
func NewStatusBar() StatusBar {
	return StatusBar{}
}

// SetWidth sets the available width for rendering.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// Update refreshes the counts shown on the left.
func (s *StatusBar) Update(active, visible, total int) {
	s.active = active
	s.visible = visible
	s.total = total
}

// SetNotice shows a one-off message, e.g. a failed reload. An empty notice
// clears it.
func (s *StatusBar) SetNotice(n string) {
	s.notice = n
}

// View renders the status bar.
func (s StatusBar) View() string {
	leftPart := fmt.Sprintf("%d/%d rows · %d %s active", s.visible, s.total, s.active, plural(s.active, "filter", "filters"))
	if s.notice != "" {
		leftPart += " · " + s.notice
	}

	shortcuts := []string{
		StatusBarKeyStyle.Render("Tab") + ": next filter",
		StatusBarKeyStyle.Render("Enter") + ": open",
		StatusBarKeyStyle.Render("Ctrl+L") + ": clear all",
		StatusBarKeyStyle.Render("q") + ": quit",
	}
	rightPart := strings.Join(shortcuts, " · ")

	leftWidth := ansi.StringWidth(leftPart)
	rightWidth := ansi.StringWidth(rightPart)
	availableWidth := s.width - 2 // account for StatusBarStyle padding
	gap := availableWidth - leftWidth - rightWidth
	if gap < 1 {
		gap = 1
	}

	content := leftPart + strings.Repeat(" ", gap) + rightPart
	if availableWidth > 0 {
		content = ansi.Truncate(content, availableWidth, "")
	}

	return StatusBarStyle.Width(s.width).Render(content)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
