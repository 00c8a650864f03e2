package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ruminaider/tablefilter/internal/config"
	"github.com/ruminaider/tablefilter/internal/grid"
	"github.com/ruminaider/tablefilter/internal/logging"
	"github.com/ruminaider/tablefilter/internal/multiselect"
	"github.com/ruminaider/tablefilter/internal/viewport"
)

// ListFilter is a single-select filter. It cycles through the placeholder
// and the configured options.
type ListFilter struct {
	column      string
	options     []config.Option
	placeholder string
	selected    int // -1 is the placeholder
	query       string
	focused     bool
	logger      *logging.Logger
}

// NewListFilter creates a list filter initialized from query. A query that
// matches no option is kept and shown verbatim.
func NewListFilter(col grid.Column, query string, env FilterEnv) ListFilter {
	placeholder := col.Config.SelectText
	if placeholder == "" {
		placeholder = multiselect.Defaults.SelectPlaceholder
	}
	f := ListFilter{
		column:      col.Key,
		options:     append([]config.Option(nil), col.Config.List...),
		placeholder: placeholder,
		logger:      env.Logger.WithColumn(col.Key),
	}
	return f.withQuery(query)
}

func (f ListFilter) withQuery(q string) ListFilter {
	f.query = q
	f.selected = -1
	for i, o := range f.options {
		if o.Value == q {
			f.selected = i
			break
		}
	}
	return f
}

func (f ListFilter) Column() string  { return f.column }
func (f ListFilter) Kind() grid.Kind { return grid.KindList }
func (f ListFilter) Query() string   { return f.query }
func (f ListFilter) Focused() bool   { return f.focused }

func (f ListFilter) SetQuery(q string) Filter { return f.withQuery(q) }

func (f ListFilter) Focus() Filter {
	f.focused = true
	return f
}

func (f ListFilter) Blur() Filter {
	f.focused = false
	return f
}

// Update cycles forward on space, enter or a click and backward on
// backspace.
func (f ListFilter) Update(msg tea.Msg) (Filter, tea.Cmd) {
	switch msg := msg.(type) {
	case ActivateMsg:
		return f.cycle(+1)
	case tea.KeyMsg:
		if !f.focused {
			return f, nil
		}
		switch msg.String() {
		case " ", "enter":
			return f.cycle(+1)
		case "backspace":
			return f.cycle(-1)
		}
	}
	return f, nil
}

func (f ListFilter) cycle(dir int) (Filter, tea.Cmd) {
	n := len(f.options) + 1 // placeholder slot
	slot := (f.selected + 1 + dir + n) % n
	f.selected = slot - 1

	f.query = ""
	if f.selected >= 0 {
		f.query = f.options[f.selected].Value
	}
	f.logger.Debug("list filter committed", "query", f.query)
	return f, commit(f.column, f.query)
}

func (f ListFilter) View(width int) string {
	text := f.placeholder
	switch {
	case f.selected >= 0:
		text = f.options[f.selected].Title
	case f.query != "":
		text = f.query
	}
	return renderTrigger(fit(text, width-2)+" ▸", width, f.focused, f.query != "")
}

func (f ListFilter) Overlay() (string, viewport.Rect, bool) { return "", viewport.Rect{}, false }

func (f ListFilter) Destroy() Filter { return f.Blur() }
