package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/ruminaider/tablefilter/internal/grid"
	"github.com/ruminaider/tablefilter/internal/logging"
	"github.com/ruminaider/tablefilter/internal/multiselect"
	"github.com/ruminaider/tablefilter/internal/viewport"
)

const defaultMaxRows = 8

// dropdownZone identifies which part of an open dropdown has focus.
type dropdownZone int

const (
	zoneSearch dropdownZone = iota
	zoneList
)

// MultiSelect is the multiselect filter: a trigger cell showing the
// selection summary and a dropdown with a searchable option list.
//
// While the dropdown is open the filter holds subscriptions for click,
// resize, scroll and anchor size events under its column key. They are
// taken one event loop hop after opening, once the dropdown can be
// measured, and released on every path that closes it.
type MultiSelect struct {
	column   string
	settings multiselect.Settings
	state    multiselect.State
	query    string // committed
	focused  bool

	search  textinput.Model
	zone    dropdownZone
	cursor  int // index into state.Filtered
	offset  int
	maxRows int

	anchor   viewport.Rect
	screen   viewport.Size
	rect     viewport.Rect
	boxWidth int // outer width passed to render
	placed   bool

	gen      int
	subs     []viewport.Subscription
	bus      *viewport.Bus
	observer viewport.SizeObserver
	metrics  viewport.Metrics

	keys   dropdownKeyMap
	logger *logging.Logger
}

// NewMultiSelect creates a closed multiselect initialized from query and
// installs its row predicate on col unless col already has one.
func NewMultiSelect(col *grid.Column, query string, env FilterEnv) MultiSelect {
	env = env.withDefaults()
	s := multiselect.Resolve(col.Config)
	multiselect.InstallPredicate(col, s)

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = s.SearchPlaceholder
	ti.CharLimit = 64

	return MultiSelect{
		column:   col.Key,
		settings: s,
		state:    multiselect.Initial(s, query),
		query:    query,
		search:   ti,
		maxRows:  env.MaxRows,
		bus:      env.Bus,
		observer: env.Observer,
		metrics:  *env.Metrics,
		keys:     defaultDropdownKeyMap(),
		logger:   env.Logger.WithColumn(col.Key),
	}
}

func (m MultiSelect) Column() string  { return m.column }
func (m MultiSelect) Kind() grid.Kind { return grid.KindMultiSelect }
func (m MultiSelect) Query() string   { return m.query }
func (m MultiSelect) Focused() bool   { return m.focused }

// IsOpen reports whether the dropdown is shown.
func (m MultiSelect) IsOpen() bool { return m.state.Open }

// Selected returns the working selection tokens.
func (m MultiSelect) Selected() []string { return m.state.Selected.Tokens() }

// SetQuery re-derives the working selection from an externally changed
// query. A multiselect that was never configured ignores it.
func (m MultiSelect) SetQuery(q string) Filter {
	if !m.settings.Configured() {
		return m
	}
	m.query = q
	m.state = multiselect.Sync(m.settings, m.state, q)
	return m
}

func (m MultiSelect) Focus() Filter {
	m.focused = true
	return m
}

func (m MultiSelect) Blur() Filter {
	m.focused = false
	return m
}

// Destroy closes the dropdown without committing and releases every
// subscription.
func (m MultiSelect) Destroy() Filter {
	if m.state.Open {
		m.state = multiselect.Cancel(m.settings, m.state, m.query)
	}
	m.teardown()
	return m
}

// Update handles keys, clicks routed by the root, viewport events and the
// deferred positioning hop.
func (m MultiSelect) Update(msg tea.Msg) (Filter, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case LayoutMsg:
		m.anchor = msg.Anchor
		m.screen = msg.Screen
		return m, nil

	case positionMsg:
		if msg.column != m.column {
			return m, nil
		}
		return m.handlePosition(msg), nil

	case ActivateMsg:
		if m.state.Open {
			// The trigger closes the same way an outside click does, so
			// uncommitted toggles are dropped.
			return m.cancel(), nil
		}
		return m.open()

	case ViewportMsg:
		return m.handleViewport(msg.Event)

	case tea.MouseMsg:
		if !m.state.Open || !m.placed || !m.rect.Contains(msg.X, msg.Y) {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.moveCursor(-1)
		case tea.MouseButtonWheelDown:
			m.moveCursor(+1)
		}
		m.reposition()
		return m, nil

	case tea.KeyMsg:
		if !m.state.Open {
			if m.focused && msg.Type == tea.KeyEnter {
				return m.open()
			}
			return m, nil
		}
		m, cmd = m.handleKey(msg)
		if m.state.Open {
			m.reposition()
		}
		return m, cmd
	}
	return m, nil
}

func (m MultiSelect) handleKey(msg tea.KeyMsg) (MultiSelect, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m.cancel(), nil
	case key.Matches(msg, m.keys.Clear):
		return m.clear()
	case key.Matches(msg, m.keys.Apply):
		return m.apply()
	case key.Matches(msg, m.keys.SwitchFocus):
		m.switchZone()
		return m, nil
	}

	if m.zone == zoneSearch {
		if msg.Type == tea.KeyDown {
			m.switchZone()
			return m, nil
		}
		before := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if v := m.search.Value(); v != before {
			m.state = multiselect.Search(m.settings, m.state, v)
			m.cursor, m.offset = 0, 0
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor == 0 {
			m.switchZone()
			return m, nil
		}
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(+1)
	case key.Matches(msg, m.keys.Toggle):
		if m.cursor < len(m.state.Filtered) {
			m.state = multiselect.Toggle(m.state, m.state.Filtered[m.cursor].Value)
		}
	case key.Matches(msg, m.keys.SelectAll):
		m.state = multiselect.SelectAll(m.state)
	case key.Matches(msg, m.keys.ClearAll):
		m.state = multiselect.ClearAll(m.state)
	}
	return m, nil
}

func (m *MultiSelect) switchZone() {
	if m.zone == zoneSearch {
		m.zone = zoneList
		m.search.Blur()
		return
	}
	m.zone = zoneSearch
	m.search.Focus()
}

func (m *MultiSelect) moveCursor(dir int) {
	n := len(m.state.Filtered)
	if n == 0 {
		return
	}
	m.cursor = min(max(m.cursor+dir, 0), n-1)
	m.clampScroll()
}

// clampScroll keeps the cursor inside the visible option rows.
func (m *MultiSelect) clampScroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.maxRows {
		m.offset = m.cursor - m.maxRows + 1
	}
	maxOffset := max(len(m.state.Filtered)-m.maxRows, 0)
	m.offset = min(max(m.offset, 0), maxOffset)
}

// --- Lifecycle ---

// open shows the dropdown and schedules its positioning for after the
// next render.
func (m MultiSelect) open() (Filter, tea.Cmd) {
	m.state = multiselect.Open(m.settings, m.state)
	m.search.SetValue("")
	m.search.Focus()
	m.zone = zoneSearch
	m.cursor, m.offset = 0, 0
	m.placed = false
	m.gen++
	m.logger.Debug("dropdown opened", "gen", m.gen)

	column, gen := m.column, m.gen
	return m, func() tea.Msg {
		return positionMsg{column: column, gen: gen}
	}
}

// handlePosition runs the deferred hop. Messages from an earlier cycle, or
// arriving after the dropdown closed, are ignored.
func (m MultiSelect) handlePosition(msg positionMsg) MultiSelect {
	if !m.state.Open || msg.gen != m.gen || len(m.subs) > 0 {
		return m
	}
	m.reposition()
	for _, kind := range viewport.ListenerKinds {
		m.subs = append(m.subs, m.bus.Subscribe(m.column, kind))
	}
	if sub := m.observer.Observe(m.column); sub.Active() {
		m.subs = append(m.subs, sub)
	}
	m.logger.Debug("dropdown positioned", "rect", m.rect, "placed", m.placed, "subscriptions", len(m.subs))
	return m
}

func (m MultiSelect) handleViewport(ev viewport.Event) (Filter, tea.Cmd) {
	if !m.state.Open {
		return m, nil
	}
	switch ev.Kind {
	case viewport.EventClick:
		if m.anchor.Contains(ev.X, ev.Y) {
			return m, nil
		}
		if m.placed && m.rect.Contains(ev.X, ev.Y) {
			return m.handleClick(ev.X, ev.Y)
		}
		m.logger.Debug("click outside dropdown", "x", ev.X, "y", ev.Y)
		return m.cancel(), nil
	case viewport.EventResize:
		m.screen = viewport.Size{W: ev.W, H: ev.H}
		m.reposition()
	case viewport.EventScroll, viewport.EventAnchorSize:
		m.reposition()
	}
	return m, nil
}

func (m MultiSelect) apply() (MultiSelect, tea.Cmd) {
	var q string
	m.state, q = multiselect.Apply(m.settings, m.state)
	m.query = q
	m.teardown()
	m.logger.Debug("dropdown applied", "query", q)
	return m, commit(m.column, q)
}

func (m MultiSelect) clear() (MultiSelect, tea.Cmd) {
	var q string
	m.state, q = multiselect.Clear(m.state)
	m.query = q
	m.teardown()
	m.logger.Debug("dropdown cleared")
	return m, commit(m.column, q)
}

func (m MultiSelect) cancel() MultiSelect {
	m.state = multiselect.Cancel(m.settings, m.state, m.query)
	m.teardown()
	m.logger.Debug("dropdown cancelled")
	return m
}

// teardown releases every subscription and forgets the placement.
func (m *MultiSelect) teardown() {
	if len(m.subs) > 0 {
		m.logger.Debug("listeners released", "count", len(m.subs))
	}
	for _, sub := range m.subs {
		sub.Release()
	}
	m.subs = nil
	m.placed = false
	m.rect = viewport.Rect{}
	m.search.Blur()
}

// --- Geometry ---

// reposition measures the dropdown and places it under the trigger. A
// missing anchor leaves the dropdown unplaced.
func (m *MultiSelect) reposition() {
	width := max(viewport.MinOverlayWidth(m.anchor, m.metrics), m.contentWidth()+4)
	size := measure(m.render(width))
	p, ok := viewport.Place(m.anchor, size, m.screen.W, m.metrics)
	if !ok {
		m.placed = false
		m.rect = viewport.Rect{}
		return
	}
	m.rect = p.Rect(size)
	m.boxWidth = width
	m.placed = true
}

// Overlay returns the rendered dropdown once it has been placed.
func (m MultiSelect) Overlay() (string, viewport.Rect, bool) {
	if !m.state.Open || !m.placed {
		return "", viewport.Rect{}, false
	}
	return m.render(m.boxWidth), m.rect, true
}

// dropdownLayout maps content rows of the dropdown. Rows are relative to
// the first line inside the border.
type dropdownLayout struct {
	hints     bool // list is longer than maxRows
	first     int  // row of the first option
	visible   []int
	commitRow int
}

const (
	searchRow = 0
	bulkRow   = 1
)

func (m MultiSelect) layout() dropdownLayout {
	n := len(m.state.Filtered)
	l := dropdownLayout{first: bulkRow + 1}
	if n > m.maxRows {
		l.hints = true
		l.first++
	}
	end := min(m.offset+m.maxRows, n)
	for i := m.offset; i < end; i++ {
		l.visible = append(l.visible, i)
	}
	rows := max(len(l.visible), 1) // "no matches" row
	l.commitRow = l.first + rows
	if l.hints {
		l.commitRow++
	}
	return l
}

// span is a clickable range of content columns.
type span struct{ start, end int }

func (s span) contains(x int) bool { return x >= s.start && x < s.end }

func buttonSpans(labels ...string) []span {
	out := make([]span, 0, len(labels))
	x := 0
	for _, l := range labels {
		w := ansi.StringWidth(buttonText(l))
		out = append(out, span{start: x, end: x + w})
		x += w + 1
	}
	return out
}

func buttonText(label string) string { return "[" + label + "]" }

// contentWidth is the narrowest content area that fits both button rows on
// one line.
func (m MultiSelect) contentWidth() int {
	w := 0
	for _, labels := range [][]string{
		{m.settings.SelectAllLabel, m.settings.ClearAllLabel},
		{m.settings.ApplyLabel, m.settings.ClearLabel},
	} {
		spans := buttonSpans(labels...)
		w = max(w, spans[len(spans)-1].end)
	}
	return w
}

// handleClick hit-tests a click inside the dropdown rect.
func (m MultiSelect) handleClick(x, y int) (Filter, tea.Cmd) {
	// One cell of border on each side, one of padding left and right.
	cx, cy := x-m.rect.X-2, y-m.rect.Y-1
	l := m.layout()

	switch {
	case cy == searchRow:
		if m.zone != zoneSearch {
			m.switchZone()
		}
	case cy == bulkRow:
		spans := buttonSpans(m.settings.SelectAllLabel, m.settings.ClearAllLabel)
		switch {
		case spans[0].contains(cx):
			m.state = multiselect.SelectAll(m.state)
		case spans[1].contains(cx):
			m.state = multiselect.ClearAll(m.state)
		}
	case cy >= l.first && cy < l.first+len(l.visible):
		idx := l.visible[cy-l.first]
		m.cursor = idx
		if m.zone != zoneList {
			m.switchZone()
		}
		m.state = multiselect.Toggle(m.state, m.state.Filtered[idx].Value)
	case cy == l.commitRow:
		spans := buttonSpans(m.settings.ApplyLabel, m.settings.ClearLabel)
		switch {
		case spans[0].contains(cx):
			return m.apply()
		case spans[1].contains(cx):
			return m.clear()
		}
	}
	m.reposition()
	return m, nil
}

// --- Rendering ---

// View renders the trigger cell.
func (m MultiSelect) View(width int) string {
	text := fit(multiselect.DisplayText(m.settings, m.state.Selected), width-2) + " ▾"
	return renderTrigger(text, width, m.focused || m.state.Open, m.query != "")
}

// render draws the dropdown box at the given outer width.
func (m MultiSelect) render(width int) string {
	inner := max(width-4, 8)
	l := m.layout()
	dim := DimStyle

	m.search.Width = max(inner-ansi.StringWidth(m.search.Prompt)-1, 1)
	lines := []string{m.search.View()}

	lines = append(lines,
		UnselectedStyle.Render(buttonText(m.settings.SelectAllLabel))+" "+
			UnselectedStyle.Render(buttonText(m.settings.ClearAllLabel)))

	if l.hints {
		hint := ""
		if m.offset > 0 {
			hint = "  ↑ more"
		}
		lines = append(lines, dim.Render(hint))
	}

	if len(m.state.Filtered) == 0 {
		lines = append(lines, dim.Render("  no matches"))
	}
	for _, i := range l.visible {
		o := m.state.Filtered[i]
		cursor := "  "
		if m.zone == zoneList && i == m.cursor {
			cursor = "> "
		}
		checkbox := UnselectedStyle.Render("[ ]")
		if m.state.Selected.Has(o.Value) {
			checkbox = SelectedStyle.Render("[x]")
		}
		title := fit(o.Title, inner-6)
		if m.zone == zoneList && i == m.cursor {
			title = OverlayCursorStyle.Render(title)
		}
		lines = append(lines, cursor+checkbox+" "+title)
	}

	if l.hints {
		hint := ""
		if m.offset+m.maxRows < len(m.state.Filtered) {
			hint = "  ↓ more"
		}
		lines = append(lines, dim.Render(hint))
	}

	applyStyle := OverlayButtonActiveStyle
	if m.state.Selected.Len() == 0 {
		applyStyle = OverlayButtonInactiveStyle
	}
	lines = append(lines,
		applyStyle.Render(buttonText(m.settings.ApplyLabel))+" "+
			OverlayButtonActiveStyle.Render(buttonText(m.settings.ClearLabel)))

	return OverlayStyle.Width(inner + 2).Render(strings.Join(lines, "\n"))
}
