package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/ruminaider/tablefilter/internal/viewport"
)

// CompositeAt draws box on top of the background with its top-left corner
// at column x, row y. The background is expected to be a fully rendered
// terminal frame; it is padded to totalHeight rows and every composited
// row is clipped to totalWidth cells.
func CompositeAt(background, box string, x, y, totalWidth, totalHeight int) string {
	if box == "" {
		return background
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	bgLines := strings.Split(background, "\n")

	// Pad background to fill the screen height.
	for len(bgLines) < totalHeight {
		bgLines = append(bgLines, "")
	}

	for i, boxLine := range strings.Split(box, "\n") {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLine := bgLines[row]

		left := ansi.Truncate(bgLine, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ansi.TruncateLeft(bgLine, x+ansi.StringWidth(boxLine), "")

		line := left + boxLine + right
		if totalWidth > 0 && ansi.StringWidth(line) > totalWidth {
			line = ansi.Truncate(line, totalWidth, "")
		}
		bgLines[row] = line
	}

	if totalHeight > 0 && len(bgLines) > totalHeight {
		bgLines = bgLines[:totalHeight]
	}
	return strings.Join(bgLines, "\n")
}

// measure returns the cell size of a rendered block.
func measure(s string) viewport.Size {
	if s == "" {
		return viewport.Size{}
	}
	return viewport.Size{W: lipgloss.Width(s), H: lipgloss.Height(s)}
}
