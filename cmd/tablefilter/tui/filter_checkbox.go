package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ruminaider/tablefilter/internal/grid"
	"github.com/ruminaider/tablefilter/internal/logging"
	"github.com/ruminaider/tablefilter/internal/viewport"
)

const (
	defaultTrueLabel  = "true"
	defaultFalseLabel = "false"
	defaultResetText  = "reset"
)

// CheckboxFilter commits the configured true or false label. Resetting it
// removes the filter.
type CheckboxFilter struct {
	column     string
	trueLabel  string
	falseLabel string
	resetText  string
	query      string
	focused    bool
	logger     *logging.Logger
}

// NewCheckboxFilter creates a checkbox filter initialized from query.
func NewCheckboxFilter(col grid.Column, query string, env FilterEnv) CheckboxFilter {
	f := CheckboxFilter{
		column:     col.Key,
		trueLabel:  col.Config.True,
		falseLabel: col.Config.False,
		resetText:  col.Config.ResetText,
		query:      query,
		logger:     env.Logger.WithColumn(col.Key),
	}
	if f.trueLabel == "" {
		f.trueLabel = defaultTrueLabel
	}
	if f.falseLabel == "" {
		f.falseLabel = defaultFalseLabel
	}
	if f.resetText == "" {
		f.resetText = defaultResetText
	}
	return f
}

func (f CheckboxFilter) Column() string  { return f.column }
func (f CheckboxFilter) Kind() grid.Kind { return grid.KindCheckbox }
func (f CheckboxFilter) Query() string   { return f.query }
func (f CheckboxFilter) Focused() bool   { return f.focused }

func (f CheckboxFilter) SetQuery(q string) Filter {
	f.query = q
	return f
}

func (f CheckboxFilter) Focus() Filter {
	f.focused = true
	return f
}

func (f CheckboxFilter) Blur() Filter {
	f.focused = false
	return f
}

func (f CheckboxFilter) checked() bool { return f.query == f.trueLabel }

// Update toggles on space, enter or a click; backspace and x reset.
func (f CheckboxFilter) Update(msg tea.Msg) (Filter, tea.Cmd) {
	switch msg := msg.(type) {
	case ActivateMsg:
		return f.toggle()
	case tea.KeyMsg:
		if !f.focused {
			return f, nil
		}
		switch msg.String() {
		case " ", "enter":
			return f.toggle()
		case "backspace", "x":
			if f.query == "" {
				return f, nil
			}
			f.query = ""
			f.logger.Debug("checkbox filter reset")
			return f, commit(f.column, "")
		}
	}
	return f, nil
}

func (f CheckboxFilter) toggle() (Filter, tea.Cmd) {
	if f.checked() {
		f.query = f.falseLabel
	} else {
		f.query = f.trueLabel
	}
	f.logger.Debug("checkbox filter committed", "query", f.query)
	return f, commit(f.column, f.query)
}

func (f CheckboxFilter) View(width int) string {
	box := "[ ]"
	if f.checked() {
		box = "[x]"
	}
	text := box
	if f.query != "" {
		text += " " + f.query
		if f.focused {
			text += " (x: " + f.resetText + ")"
		}
	}
	return renderTrigger(text, width, f.focused, f.query != "")
}

func (f CheckboxFilter) Overlay() (string, viewport.Rect, bool) { return "", viewport.Rect{}, false }

func (f CheckboxFilter) Destroy() Filter { return f.Blur() }
