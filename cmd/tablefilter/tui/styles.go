package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha palette.
var flavor = catppuccin.Mocha

// Color constants extracted from the Mocha palette for convenience.
var (
	colorBase     = lipgloss.Color(flavor.Base().Hex)
	colorMantle   = lipgloss.Color(flavor.Mantle().Hex)
	colorSurface0 = lipgloss.Color(flavor.Surface0().Hex)
	colorSurface1 = lipgloss.Color(flavor.Surface1().Hex)
	colorText     = lipgloss.Color(flavor.Text().Hex)
	colorSubtext0 = lipgloss.Color(flavor.Subtext0().Hex)
	colorBlue     = lipgloss.Color(flavor.Blue().Hex)
	colorGreen    = lipgloss.Color(flavor.Green().Hex)
	colorYellow   = lipgloss.Color(flavor.Yellow().Hex)
	colorMauve    = lipgloss.Color(flavor.Mauve().Hex)
	colorOverlay0 = lipgloss.Color(flavor.Overlay0().Hex)
)

// Title bar styles.
var (
	// TitleBarStyle is the background strip for the top row.
	TitleBarStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface0).
			Padding(0, 1)

	// TitleStyle renders the table title.
	TitleStyle = lipgloss.NewStyle().
			Foreground(colorMauve).
			Background(colorSurface0).
			Bold(true)
)

// Filter row styles. Cells carry no padding so that the trigger rect is
// exactly the column width.
var (
	// FilterCellStyle is used for unfocused filter triggers.
	FilterCellStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorMantle)

	// FilterFocusedStyle is used for the focused filter trigger.
	FilterFocusedStyle = lipgloss.NewStyle().
				Foreground(colorBase).
				Background(colorBlue).
				Bold(true)

	// FilterActiveStyle marks triggers with a committed query.
	FilterActiveStyle = lipgloss.NewStyle().
				Foreground(colorGreen).
				Background(colorMantle)
)

// Content pane styles.
var (
	// SelectedStyle is used for checked items.
	SelectedStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	// UnselectedStyle is used for unchecked items.
	UnselectedStyle = lipgloss.NewStyle().
			Foreground(colorText)

	// DimStyle is used for hints and disabled controls.
	DimStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0)
)

// Status bar styles.
var (
	// StatusBarStyle is the base style for the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorSurface0).
			Padding(0, 1)

	// StatusBarKeyStyle highlights keyboard shortcuts in the status bar.
	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(colorYellow).
				Background(colorSurface0).
				Bold(true)
)

// Overlay styles.
var (
	// OverlayStyle is the border and background for the dropdown panel.
	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Background(colorMantle).
			Foreground(colorText).
			Padding(0, 1)

	// OverlayButtonActiveStyle is used for enabled buttons.
	OverlayButtonActiveStyle = lipgloss.NewStyle().
					Foreground(colorBase).
					Background(colorBlue)

	// OverlayButtonInactiveStyle is used for disabled buttons.
	OverlayButtonInactiveStyle = lipgloss.NewStyle().
					Foreground(colorOverlay0).
					Background(colorSurface1)

	// OverlayCursorStyle is used for the highlighted option row.
	OverlayCursorStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)
)

// tableStyles adapts the table defaults to the palette. Header and cell
// padding stay at one cell per side; column offsets depend on it.
func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		Foreground(colorMauve).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorSurface1).
		BorderBottom(true)
	s.Selected = s.Selected.
		Foreground(colorBase).
		Background(colorBlue).
		Bold(false)
	return s
}
