package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ruminaider/tablefilter/internal/config"
	"github.com/ruminaider/tablefilter/internal/grid"
	"github.com/ruminaider/tablefilter/internal/viewport"
)

func greekOptions() []config.Option {
	return []config.Option{
		{Value: "A", Title: "Alpha"},
		{Value: "B", Title: "Beta"},
		{Value: "C", Title: "Gamma"},
	}
}

// staffTable returns a table with one column of every filter kind.
func staffTable() *grid.Table {
	return &grid.Table{
		Title: "Staff",
		Columns: []grid.Column{
			{Key: "department", Title: "Department", Kind: grid.KindMultiSelect, Config: config.FilterConfig{List: greekOptions()}},
			{Key: "name", Title: "Name", Kind: grid.KindText},
			{Key: "active", Title: "Active", Kind: grid.KindCheckbox, Config: config.FilterConfig{True: "yes", False: "no"}},
			{Key: "level", Title: "Level", Kind: grid.KindList, Config: config.FilterConfig{List: []config.Option{
				{Value: "junior", Title: "Junior"},
				{Value: "senior", Title: "Senior"},
			}}},
		},
		Rows: []grid.Row{
			{"department": "A", "name": "Ann", "active": "yes", "level": "junior"},
			{"department": "B", "name": "Bob", "active": "no", "level": "senior"},
			{"department": "C", "name": "Cid", "active": "yes", "level": "senior"},
			{"department": "A", "name": "Dee", "active": "no", "level": "junior"},
		},
	}
}

func press(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func typed(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func space() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}} }

func leftClick(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func wheel(x, y int, b tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: b}
}

// busEnv returns an environment whose dropdowns observe anchors on bus.
func busEnv(bus *viewport.Bus) FilterEnv {
	return FilterEnv{Bus: bus, Observer: viewport.BusObserver{Bus: bus}}
}

// committed runs cmd and returns the commit it produces, if any.
func committed(cmd tea.Cmd) (FilterCommittedMsg, bool) {
	if cmd == nil {
		return FilterCommittedMsg{}, false
	}
	msg, ok := cmd().(FilterCommittedMsg)
	return msg, ok
}
