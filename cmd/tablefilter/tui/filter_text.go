package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ruminaider/tablefilter/internal/grid"
	"github.com/ruminaider/tablefilter/internal/logging"
	"github.com/ruminaider/tablefilter/internal/viewport"
)

// TextFilter is a free text filter. Edits commit after the debounce
// interval has passed without further typing.
type TextFilter struct {
	column   string
	title    string
	query    string
	input    textinput.Model
	debounce time.Duration
	seq      int // latest pending debounce tick
	logger   *logging.Logger
}

// NewTextFilter creates a text filter initialized from query.
func NewTextFilter(col grid.Column, query string, env FilterEnv) TextFilter {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = col.Title + "..."
	ti.CharLimit = 256
	ti.SetValue(query)
	return TextFilter{
		column:   col.Key,
		title:    col.Title,
		query:    query,
		input:    ti,
		debounce: env.Debounce,
		logger:   env.Logger.WithColumn(col.Key),
	}
}

func (f TextFilter) Column() string  { return f.column }
func (f TextFilter) Kind() grid.Kind { return grid.KindText }
func (f TextFilter) Query() string   { return f.query }
func (f TextFilter) Focused() bool   { return f.input.Focused() }

// SetQuery replaces the committed query and drops any pending edit.
func (f TextFilter) SetQuery(q string) Filter {
	f.query = q
	f.input.SetValue(q)
	f.seq++
	return f
}

func (f TextFilter) Focus() Filter {
	f.input.Focus()
	f.input.CursorEnd()
	return f
}

func (f TextFilter) Blur() Filter {
	f.input.Blur()
	return f
}

// Update handles typing and the debounce tick.
func (f TextFilter) Update(msg tea.Msg) (Filter, tea.Cmd) {
	switch msg := msg.(type) {
	case debounceMsg:
		if msg.column != f.column || msg.seq != f.seq {
			return f, nil
		}
		return f.commitInput()

	case tea.KeyMsg:
		if !f.input.Focused() {
			return f, nil
		}
		if msg.Type == tea.KeyEnter {
			f.seq++
			return f.commitInput()
		}

		before := f.input.Value()
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		if f.input.Value() == before {
			return f, cmd
		}
		if f.debounce <= 0 {
			next, commitCmd := f.commitInput()
			return next, tea.Batch(cmd, commitCmd)
		}
		f.seq++
		seq, column := f.seq, f.column
		tick := tea.Tick(f.debounce, func(time.Time) tea.Msg {
			return debounceMsg{column: column, seq: seq}
		})
		return f, tea.Batch(cmd, tick)
	}
	return f, nil
}

func (f TextFilter) commitInput() (Filter, tea.Cmd) {
	value := f.input.Value()
	if value == f.query {
		return f, nil
	}
	f.query = value
	f.logger.Debug("text filter committed", "query", value)
	return f, commit(f.column, value)
}

// View renders the input while focused, otherwise the committed query.
func (f TextFilter) View(width int) string {
	if f.input.Focused() {
		f.input.Width = max(width-1, 1)
		return FilterFocusedStyle.Width(width).MaxWidth(width).Inline(true).Render(f.input.View())
	}
	if f.query == "" {
		return renderTrigger(f.input.Placeholder, width, false, false)
	}
	return renderTrigger(f.query, width, false, true)
}

func (f TextFilter) Overlay() (string, viewport.Rect, bool) { return "", viewport.Rect{}, false }

func (f TextFilter) Destroy() Filter {
	f.seq++
	f.input.Blur()
	return f
}
