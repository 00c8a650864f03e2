package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/ruminaider/tablefilter/internal/grid"
	"github.com/ruminaider/tablefilter/internal/logging"
	"github.com/ruminaider/tablefilter/internal/viewport"
)

// Filter is the control rendered in a column's filter cell. Every filter
// kind implements it; the root model only talks to this interface.
type Filter interface {
	// Column returns the key of the column the filter belongs to.
	Column() string
	Kind() grid.Kind
	// Query returns the committed query.
	Query() string
	// SetQuery replaces the committed query from outside, e.g. when every
	// filter is cleared at once.
	SetQuery(q string) Filter

	Focus() Filter
	Blur() Filter
	Focused() bool

	Update(msg tea.Msg) (Filter, tea.Cmd)
	// View renders the trigger cell at the given width.
	View(width int) string
	// Overlay returns the rendered dropdown and where to draw it. Only an
	// open multiselect reports true.
	Overlay() (string, viewport.Rect, bool)
	// Destroy releases everything the filter registered.
	Destroy() Filter
}

// FilterEnv is what every filter needs from its host.
type FilterEnv struct {
	Debounce time.Duration
	Logger   *logging.Logger
	Bus      *viewport.Bus
	Observer viewport.SizeObserver
	// Metrics is used as given; nil selects viewport.DefaultMetrics.
	Metrics  *viewport.Metrics
	// MaxRows caps the visible option rows of a dropdown.
	MaxRows int
}

func (e FilterEnv) withDefaults() FilterEnv {
	if e.Logger == nil {
		e.Logger = logging.Nop()
	}
	if e.Observer == nil {
		e.Observer = viewport.NoopObserver{}
	}
	if e.Metrics == nil {
		m := viewport.DefaultMetrics
		e.Metrics = &m
	}
	if e.MaxRows <= 0 {
		e.MaxRows = defaultMaxRows
	}
	return e
}

// NewFilter builds the filter for col's declared kind, initialized from
// query. Unknown kinds get a text filter. A multiselect installs its row
// predicate on col.
func NewFilter(col *grid.Column, query string, env FilterEnv) Filter {
	env = env.withDefaults()
	switch col.Kind {
	case grid.KindList:
		return NewListFilter(*col, query, env)
	case grid.KindCheckbox:
		return NewCheckboxFilter(*col, query, env)
	case grid.KindMultiSelect:
		return NewMultiSelect(col, query, env)
	default:
		return NewTextFilter(*col, query, env)
	}
}

func commit(column, value string) tea.Cmd {
	return func() tea.Msg {
		return FilterCommittedMsg{Column: column, Value: value}
	}
}

// renderTrigger pads or truncates text into a trigger cell of width cells.
func renderTrigger(text string, width int, focused, active bool) string {
	style := FilterCellStyle
	switch {
	case focused:
		style = FilterFocusedStyle
	case active:
		style = FilterActiveStyle
	}
	return style.Width(width).MaxWidth(width).Inline(true).Render(fit(text, width))
}

// fit truncates text to width cells with an ellipsis.
func fit(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(text, width, "…")
}
