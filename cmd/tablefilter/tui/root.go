package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/ruminaider/tablefilter/internal/config"
	"github.com/ruminaider/tablefilter/internal/grid"
	"github.com/ruminaider/tablefilter/internal/logging"
	"github.com/ruminaider/tablefilter/internal/viewport"
	"github.com/ruminaider/tablefilter/internal/watch"
)

// Screen rows above the table. The title bar is row 0.
const (
	filterRow = 1
	tableRow  = 2
)

const (
	minColumnWidth = 4
	maxColumnWidth = 32
	cellPadding    = 2 // table cells are padded one cell on each side
)

// Options configures the root model.
type Options struct {
	// Path is the table definition file, used for reloads.
	Path string
	// Queries are the initially committed queries by column key.
	Queries map[string]string
	Env     FilterEnv
	// ObserveAnchor enables anchor size change notifications.
	ObserveAnchor bool
	// Watcher reloads the table when the file changes. Optional.
	Watcher *watch.Watcher
}

// Model is the root bubbletea model: a title bar, one filter per column, the
// filtered table and a status bar.
type Model struct {
	path    string
	data    *grid.Table
	filters []Filter
	queries map[string]string
	focus   int

	rows    table.Model
	visible []int
	widths  []int
	anchors []viewport.Rect

	bus     *viewport.Bus
	tracker *viewport.Tracker
	env     FilterEnv
	watcher *watch.Watcher

	statusBar StatusBar
	keys      keyMap
	logger    *logging.Logger

	width, height int
	ready         bool // set after first WindowSizeMsg
	quitting      bool
}

// NewModel builds the root model for t. Filters are created from each
// column's declared kind and initialized from opts.Queries.
func NewModel(t *grid.Table, opts Options) Model {
	bus := viewport.NewBus()
	env := opts.Env
	env.Bus = bus
	env.Observer = viewport.NewObserver(bus, opts.ObserveAnchor)
	env = env.withDefaults()

	m := Model{
		path:      opts.Path,
		queries:   make(map[string]string),
		bus:       bus,
		tracker:   viewport.NewTracker(),
		env:       env,
		watcher:   opts.Watcher,
		statusBar: NewStatusBar(),
		keys:      defaultKeyMap(),
		logger:    env.Logger,
		rows: table.New(
			table.WithFocused(true),
			table.WithStyles(tableStyles()),
		),
	}
	for k, v := range opts.Queries {
		m.queries[k] = v
	}
	m.setTable(t)
	return m
}

// Bus returns the viewport subscription bus shared by the filters.
func (m Model) Bus() *viewport.Bus { return m.bus }

// Queries returns a copy of the committed queries.
func (m Model) Queries() map[string]string {
	out := make(map[string]string, len(m.queries))
	for k, v := range m.queries {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Visible returns the indexes of the rows passing every filter.
func (m Model) Visible() []int { return m.visible }

// Init satisfies tea.Model.
func (m Model) Init() tea.Cmd {
	return waitForChange(m.watcher)
}

// waitForChange blocks on the watcher and reports the next change.
func waitForChange(w *watch.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case _, ok := <-w.Changes():
			if !ok {
				return nil
			}
			return ReloadMsg{Path: w.Path()}
		case err := <-w.Errors():
			return ReloadErrMsg{Err: fmt.Errorf("watching %s: %w", w.Path(), err)}
		}
	}
}

// Update satisfies tea.Model. Routes messages to the correct child component.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout(&cmds)
		m.publish(viewport.Event{Kind: viewport.EventResize, W: msg.Width, H: msg.Height}, &cmds)
		return m, tea.Batch(cmds...)

	case FilterCommittedMsg:
		m.queries[msg.Column] = msg.Value
		m.logger.Info("filter committed", "column", msg.Column, "query", msg.Value)
		m.refilter(&cmds)
		return m, tea.Batch(cmds...)

	case positionMsg:
		m.route(msg.column, msg, &cmds)
		return m, tea.Batch(cmds...)

	case debounceMsg:
		m.route(msg.column, msg, &cmds)
		return m, tea.Batch(cmds...)

	case ReloadMsg:
		m.reload(msg.Path, &cmds)
		cmds = append(cmds, waitForChange(m.watcher))
		return m, tea.Batch(cmds...)

	case ReloadErrMsg:
		m.logger.Warn("reload failed", "error", msg.Err)
		m.statusBar.SetNotice("reload failed")
		return m, waitForChange(m.watcher)

	case tea.MouseMsg:
		m.handleMouse(msg, &cmds)
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}

	// While a dropdown is open it receives every key.
	if i := m.openFilter(); i >= 0 {
		m.updateFilter(i, msg, &cmds)
		return m, tea.Batch(cmds...)
	}

	typing := m.focusedKind() == grid.KindText
	switch {
	case msg.Type == tea.KeyTab || msg.Type == tea.KeyShiftTab:
		if msg.Type == tea.KeyTab {
			m.moveFocus(+1)
		} else {
			m.moveFocus(-1)
		}
		return m, nil
	case !typing && key.Matches(msg, m.keys.Next):
		m.moveFocus(+1)
		return m, nil
	case !typing && key.Matches(msg, m.keys.Prev):
		m.moveFocus(-1)
		return m, nil
	case key.Matches(msg, m.keys.ClearAll):
		m.clearAll(&cmds)
		return m, tea.Batch(cmds...)
	case !typing && key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up, m.keys.Down, m.keys.PageUp, m.keys.PageDown):
		m.moveTable(msg, &cmds)
		return m, tea.Batch(cmds...)
	}

	if m.focus >= 0 && m.focus < len(m.filters) {
		m.updateFilter(m.focus, msg, &cmds)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleMouse(msg tea.MouseMsg, cmds *[]tea.Cmd) {
	overlay := m.overlayAt(msg.X, msg.Y)

	if tea.MouseEvent(msg).IsWheel() {
		if overlay >= 0 {
			m.updateFilter(overlay, msg, cmds)
			return
		}
		if msg.Y < tableRow {
			return
		}
		before := m.rows.Cursor()
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.rows.MoveUp(1)
		case tea.MouseButtonWheelDown:
			m.rows.MoveDown(1)
		}
		if m.rows.Cursor() != before {
			m.publish(viewport.Event{Kind: viewport.EventScroll}, cmds)
		}
		return
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}

	m.publish(viewport.Event{Kind: viewport.EventClick, X: msg.X, Y: msg.Y}, cmds)
	if overlay >= 0 {
		return
	}
	for i, r := range m.anchors {
		if r.Contains(msg.X, msg.Y) {
			m.setFocus(i)
			m.updateFilter(i, ActivateMsg{}, cmds)
			return
		}
	}
}

// --- Filters ---

func (m *Model) updateFilter(i int, msg tea.Msg, cmds *[]tea.Cmd) {
	var cmd tea.Cmd
	m.filters[i], cmd = m.filters[i].Update(msg)
	if cmd != nil {
		*cmds = append(*cmds, cmd)
	}
}

// route delivers msg to the filter of column.
func (m *Model) route(column string, msg tea.Msg, cmds *[]tea.Cmd) {
	if i := m.filterIndex(column); i >= 0 {
		m.updateFilter(i, msg, cmds)
	}
}

// publish delivers a viewport event to every subscribed filter.
func (m *Model) publish(ev viewport.Event, cmds *[]tea.Cmd) {
	for _, owner := range m.bus.Owners(ev.Kind) {
		m.route(owner, ViewportMsg{Event: ev}, cmds)
	}
}

func (m Model) filterIndex(column string) int {
	for i, f := range m.filters {
		if f.Column() == column {
			return i
		}
	}
	return -1
}

// openFilter returns the index of the filter with an open dropdown, or -1.
func (m Model) openFilter() int {
	for i, f := range m.filters {
		if o, ok := f.(interface{ IsOpen() bool }); ok && o.IsOpen() {
			return i
		}
	}
	return -1
}

// overlayAt returns the index of the filter whose dropdown covers (x, y),
// or -1.
func (m Model) overlayAt(x, y int) int {
	for i, f := range m.filters {
		if _, r, ok := f.Overlay(); ok && r.Contains(x, y) {
			return i
		}
	}
	return -1
}

func (m Model) focusedKind() grid.Kind {
	if m.focus < 0 || m.focus >= len(m.filters) {
		return ""
	}
	return m.filters[m.focus].Kind()
}

func (m *Model) moveFocus(dir int) {
	n := len(m.filters)
	if n == 0 {
		return
	}
	m.setFocus((m.focus + dir + n) % n)
}

func (m *Model) setFocus(i int) {
	if i == m.focus {
		return
	}
	if m.focus >= 0 && m.focus < len(m.filters) {
		m.filters[m.focus] = m.filters[m.focus].Blur()
	}
	m.focus = i
	m.filters[i] = m.filters[i].Focus()
}

// clearAll empties every committed query and syncs each filter.
func (m *Model) clearAll(cmds *[]tea.Cmd) {
	for i, f := range m.filters {
		m.filters[i] = f.SetQuery("")
	}
	for k := range m.queries {
		m.queries[k] = ""
	}
	m.logger.Info("filters cleared")
	m.refilter(cmds)
}

// quit destroys every filter so that no subscription outlives the program.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.destroyFilters()
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) destroyFilters() {
	for i, f := range m.filters {
		m.filters[i] = f.Destroy()
		m.tracker.Forget(f.Column())
	}
}

// --- Table ---

// setTable installs t, rebuilding every filter. Queries of columns that no
// longer exist are dropped.
func (m *Model) setTable(t *grid.Table) {
	m.destroyFilters()

	queries := make(map[string]string, len(t.Columns))
	filters := make([]Filter, 0, len(t.Columns))
	for i := range t.Columns {
		col := &t.Columns[i]
		q := m.queries[col.Key]
		queries[col.Key] = q
		filters = append(filters, NewFilter(col, q, m.env))
	}

	m.data = t
	m.queries = queries
	m.filters = filters
	m.focus = -1
	if len(m.filters) > 0 {
		m.setFocus(0)
	}
	m.visible = t.Match(m.queries)
}

func (m *Model) reload(path string, cmds *[]tea.Cmd) {
	cfg, err := config.Load(path)
	if err != nil {
		m.logger.Warn("reload failed", "path", path, "error", err)
		m.statusBar.SetNotice("reload failed")
		return
	}
	focused := ""
	if m.focus >= 0 && m.focus < len(m.filters) {
		focused = m.filters[m.focus].Column()
	}

	m.setTable(grid.FromConfig(cfg))
	if i := m.filterIndex(focused); i >= 0 {
		m.setFocus(i)
	}
	m.statusBar.SetNotice("")
	m.logger.Info("table reloaded", "path", path, "rows", len(m.data.Rows))
	if m.ready {
		m.layout(cmds)
	}
	m.refilter(cmds)
}

// setColumns replaces the table columns. The table renders rows against
// its columns, so rows are dropped first when the column count changes.
func (m *Model) setColumns(widths []int) {
	cols := make([]table.Column, len(m.data.Columns))
	for i, c := range m.data.Columns {
		cols[i] = table.Column{Title: c.Title, Width: widths[i]}
	}
	if len(cols) != len(m.rows.Columns()) {
		m.rows.SetRows(nil)
	}
	m.rows.SetColumns(cols)
}

// refilter re-runs row matching and refreshes the table rows.
func (m *Model) refilter(cmds *[]tea.Cmd) {
	if len(m.rows.Columns()) != len(m.data.Columns) {
		m.setColumns(columnWidths(m.data, m.width))
	}
	before := m.rows.Cursor()
	m.visible = m.data.Match(m.queries)

	rows := make([]table.Row, 0, len(m.visible))
	for _, idx := range m.visible {
		r := m.data.Rows[idx]
		cells := make(table.Row, len(m.data.Columns))
		for i, c := range m.data.Columns {
			cells[i] = grid.CellString(r[c.Key])
		}
		rows = append(rows, cells)
	}
	m.rows.SetRows(rows)
	if m.rows.Cursor() < 0 && len(rows) > 0 {
		m.rows.SetCursor(0)
	}
	m.syncStatusBar()

	if m.rows.Cursor() != before {
		m.publish(viewport.Event{Kind: viewport.EventScroll}, cmds)
	}
}

func (m *Model) moveTable(msg tea.KeyMsg, cmds *[]tea.Cmd) {
	before := m.rows.Cursor()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.rows.MoveUp(1)
	case key.Matches(msg, m.keys.Down):
		m.rows.MoveDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.rows.MoveUp(m.rows.Height())
	case key.Matches(msg, m.keys.PageDown):
		m.rows.MoveDown(m.rows.Height())
	}
	if m.rows.Cursor() != before {
		m.publish(viewport.Event{Kind: viewport.EventScroll}, cmds)
	}
}

func (m *Model) syncStatusBar() {
	active := 0
	for _, q := range m.queries {
		if q != "" {
			active++
		}
	}
	m.statusBar.Update(active, len(m.visible), len(m.data.Rows))
}

// --- Layout ---

// layout sizes the columns, tells each filter where its trigger is and
// publishes anchor size changes to observing filters.
func (m *Model) layout(cmds *[]tea.Cmd) {
	m.widths = columnWidths(m.data, m.width)

	m.setColumns(m.widths)
	m.rows.SetWidth(m.width)
	m.rows.SetHeight(max(m.height-tableRow-1, 3))
	m.statusBar.SetWidth(m.width)

	screen := viewport.Size{W: m.width, H: m.height}
	m.anchors = make([]viewport.Rect, len(m.filters))
	reflowed := make(map[string]bool)
	x := 0
	for i, f := range m.filters {
		r := viewport.Rect{X: x, Y: filterRow, W: m.widths[i] + cellPadding, H: 1}
		m.anchors[i] = r
		x += r.W
		m.updateFilter(i, LayoutMsg{Anchor: r, Screen: screen}, cmds)
		if m.tracker.Record(f.Column(), r) {
			reflowed[f.Column()] = true
		}
	}

	for _, owner := range m.bus.Owners(viewport.EventAnchorSize) {
		if reflowed[owner] {
			m.route(owner, ViewportMsg{Event: viewport.Event{Kind: viewport.EventAnchorSize}}, cmds)
		}
	}

	m.refilter(cmds)
}

// columnWidths sizes each column from its declared width, or from its title
// and cells, then shrinks them proportionally to fit totalWidth.
func columnWidths(t *grid.Table, totalWidth int) []int {
	widths := make([]int, len(t.Columns))
	sum := 0
	for i, c := range t.Columns {
		w := c.Width
		if w <= 0 {
			w = ansi.StringWidth(c.Title)
			for _, r := range t.Rows {
				w = max(w, ansi.StringWidth(grid.CellString(r[c.Key])))
			}
			w = min(w, maxColumnWidth)
		}
		widths[i] = max(w, minColumnWidth)
		sum += widths[i]
	}

	avail := totalWidth - cellPadding*len(widths)
	if sum <= avail || sum == 0 {
		return widths
	}
	for i, w := range widths {
		widths[i] = max(w*avail/sum, minColumnWidth)
	}
	return widths
}

// --- View ---

// View satisfies tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.titleView())
	b.WriteString("\n")
	b.WriteString(m.filterRowView())
	b.WriteString("\n")
	b.WriteString(m.rows.View())
	b.WriteString("\n")
	b.WriteString(m.statusBar.View())

	frame := b.String()
	for _, f := range m.filters {
		if box, r, ok := f.Overlay(); ok {
			frame = CompositeAt(frame, box, r.X, r.Y, m.width, m.height)
		}
	}
	return frame
}

func (m Model) titleView() string {
	title := m.data.Title
	if title == "" {
		title = "tablefilter"
	}
	counts := fmt.Sprintf("%d/%d rows", len(m.visible), len(m.data.Rows))
	gap := max(m.width-2-ansi.StringWidth(title)-ansi.StringWidth(counts), 1)
	return TitleBarStyle.Width(m.width).Render(TitleStyle.Render(title) + strings.Repeat(" ", gap) + counts)
}

func (m Model) filterRowView() string {
	var b strings.Builder
	for i, f := range m.filters {
		if i >= len(m.anchors) {
			break
		}
		b.WriteString(f.View(m.anchors[i].W))
	}
	return b.String()
}

// Ensure Model satisfies tea.Model at compile time.
var _ tea.Model = Model{}
