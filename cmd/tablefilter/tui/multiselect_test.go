package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruminaider/tablefilter/internal/config"
	"github.com/ruminaider/tablefilter/internal/grid"
	"github.com/ruminaider/tablefilter/internal/viewport"
)

var deptAnchor = viewport.Rect{X: 0, Y: 1, W: 12, H: 1}

func deptColumn() *grid.Column {
	return &grid.Column{
		Key:    "department",
		Title:  "Department",
		Kind:   grid.KindMultiSelect,
		Config: config.FilterConfig{List: greekOptions()},
	}
}

// laidOut returns a closed, focused dropdown anchored at anchor on an 80x24
// screen.
func laidOut(t *testing.T, env FilterEnv, query string, anchor viewport.Rect) Filter {
	t.Helper()
	var f Filter = NewMultiSelect(deptColumn(), query, env)
	f = f.Focus()
	f, _ = f.Update(LayoutMsg{Anchor: anchor, Screen: viewport.Size{W: 80, H: 24}})
	return f
}

// openPositioned opens f and delivers the deferred positioning hop.
func openPositioned(t *testing.T, f Filter) Filter {
	t.Helper()
	f, cmd := f.Update(ActivateMsg{})
	require.NotNil(t, cmd)
	f, _ = f.Update(cmd())
	require.True(t, f.(MultiSelect).IsOpen())
	return f
}

func TestMultiSelect_SubscribesAfterPositioningHop(t *testing.T) {
	bus := viewport.NewBus()
	f := laidOut(t, busEnv(bus), "", deptAnchor)

	f, cmd := f.Update(ActivateMsg{})
	require.NotNil(t, cmd)
	assert.True(t, f.(MultiSelect).IsOpen())
	assert.Equal(t, 0, bus.Len(), "nothing registered before the hop")
	_, _, ok := f.Overlay()
	assert.False(t, ok)

	msg := cmd()
	f, _ = f.Update(msg)
	assert.Equal(t, 4, bus.Len())
	for _, kind := range []viewport.EventKind{viewport.EventClick, viewport.EventResize, viewport.EventScroll, viewport.EventAnchorSize} {
		assert.True(t, bus.Subscribed("department", kind), kind.String())
	}

	f, _ = f.Update(msg)
	assert.Equal(t, 4, bus.Len(), "redelivered hop does not register twice")

	_, rect, ok := f.Overlay()
	require.True(t, ok)
	assert.Equal(t, deptAnchor.Bottom(), rect.Y)
	assert.Equal(t, 0, rect.X)
}

func TestMultiSelect_NoopObserverSkipsAnchorSize(t *testing.T) {
	bus := viewport.NewBus()
	f := laidOut(t, FilterEnv{Bus: bus}, "", deptAnchor)
	openPositioned(t, f)

	assert.Equal(t, 3, bus.Len())
	assert.False(t, bus.Subscribed("department", viewport.EventAnchorSize))
}

func TestMultiSelect_StaleHopIgnored(t *testing.T) {
	bus := viewport.NewBus()
	f := laidOut(t, busEnv(bus), "", deptAnchor)

	f, first := f.Update(ActivateMsg{})
	f, _ = f.Update(press(tea.KeyEsc))
	f, second := f.Update(ActivateMsg{})

	f, _ = f.Update(first())
	assert.Equal(t, 0, bus.Len(), "hop from the closed cycle")

	f, _ = f.Update(second())
	assert.Equal(t, 4, bus.Len())

	f, _ = f.Update(press(tea.KeyEsc))
	_, _ = f.Update(second())
	assert.Equal(t, 0, bus.Len(), "hop after close")
}

func TestMultiSelect_HopForOtherColumnIgnored(t *testing.T) {
	bus := viewport.NewBus()
	f := laidOut(t, busEnv(bus), "", deptAnchor)
	f, _ = f.Update(ActivateMsg{})
	_, _ = f.Update(positionMsg{column: "name", gen: 1})
	assert.Equal(t, 0, bus.Len())
}

func TestMultiSelect_EveryClosePathReleases(t *testing.T) {
	outside := ViewportMsg{Event: viewport.Event{Kind: viewport.EventClick, X: 70, Y: 20}}
	paths := map[string]tea.Msg{
		"escape":  press(tea.KeyEsc),
		"apply":   press(tea.KeyEnter),
		"clear":   press(tea.KeyCtrlX),
		"outside": outside,
		"trigger": ActivateMsg{},
	}
	for name, closing := range paths {
		t.Run(name, func(t *testing.T) {
			bus := viewport.NewBus()
			f := laidOut(t, busEnv(bus), "B", deptAnchor)
			for i := 0; i < 5; i++ {
				f = openPositioned(t, f)
				require.Equal(t, 4, bus.Len(), "cycle %d", i)
				f, _ = f.Update(closing)
				assert.False(t, f.(MultiSelect).IsOpen())
				assert.Equal(t, 0, bus.Len(), "cycle %d", i)
			}
		})
	}
}

func TestMultiSelect_OutsideClickDiscardsToggles(t *testing.T) {
	bus := viewport.NewBus()
	f := openPositioned(t, laidOut(t, busEnv(bus), "B", deptAnchor))

	f, _ = f.Update(press(tea.KeyTab))
	f, _ = f.Update(space())
	assert.Equal(t, []string{"B", "A"}, f.(MultiSelect).Selected())

	f, cmd := f.Update(ViewportMsg{Event: viewport.Event{Kind: viewport.EventClick, X: 70, Y: 20}})
	assert.Nil(t, cmd, "cancel never commits")
	assert.Equal(t, []string{"B"}, f.(MultiSelect).Selected())
	assert.Equal(t, "B", f.Query())
}

func TestMultiSelect_ClickOnTriggerIsNotOutside(t *testing.T) {
	bus := viewport.NewBus()
	f := openPositioned(t, laidOut(t, busEnv(bus), "", deptAnchor))

	f, _ = f.Update(ViewportMsg{Event: viewport.Event{Kind: viewport.EventClick, X: 3, Y: 1}})
	assert.True(t, f.(MultiSelect).IsOpen())
	assert.Equal(t, 4, bus.Len())
}

func TestMultiSelect_ClickTogglesOption(t *testing.T) {
	bus := viewport.NewBus()
	f := openPositioned(t, laidOut(t, busEnv(bus), "", deptAnchor))
	_, rect, ok := f.Overlay()
	require.True(t, ok)

	// Border, search row and bulk row sit above the first option.
	f, cmd := f.Update(ViewportMsg{Event: viewport.Event{Kind: viewport.EventClick, X: rect.X + 5, Y: rect.Y + 3}})
	assert.Nil(t, cmd)
	assert.True(t, f.(MultiSelect).IsOpen())
	assert.Equal(t, []string{"A"}, f.(MultiSelect).Selected())

	f, _ = f.Update(ViewportMsg{Event: viewport.Event{Kind: viewport.EventClick, X: rect.X + 5, Y: rect.Y + 4}})
	assert.Equal(t, []string{"A", "B"}, f.(MultiSelect).Selected())
	assert.Equal(t, "", f.Query(), "clicks do not commit")
}

func TestMultiSelect_ClickApplyButton(t *testing.T) {
	bus := viewport.NewBus()
	f := openPositioned(t, laidOut(t, busEnv(bus), "", deptAnchor))
	_, rect, _ := f.Overlay()

	f, _ = f.Update(ViewportMsg{Event: viewport.Event{Kind: viewport.EventClick, X: rect.X + 5, Y: rect.Y + 5}})
	require.Equal(t, []string{"C"}, f.(MultiSelect).Selected())

	// Apply sits on the row after the last option.
	f, cmd := f.Update(ViewportMsg{Event: viewport.Event{Kind: viewport.EventClick, X: rect.X + 3, Y: rect.Y + 6}})
	msg, ok := committed(cmd)
	require.True(t, ok)
	assert.Equal(t, FilterCommittedMsg{Column: "department", Value: "C"}, msg)
	assert.False(t, f.(MultiSelect).IsOpen())
	assert.Equal(t, 0, bus.Len())
}

func TestMultiSelect_ApplyCommitsInInsertionOrder(t *testing.T) {
	bus := viewport.NewBus()
	f := openPositioned(t, laidOut(t, busEnv(bus), "", deptAnchor))

	f, _ = f.Update(press(tea.KeyTab))
	f, _ = f.Update(space())
	f, _ = f.Update(press(tea.KeyDown))
	f, _ = f.Update(space())

	f, cmd := f.Update(press(tea.KeyEnter))
	msg, ok := committed(cmd)
	require.True(t, ok)
	assert.Equal(t, "A,B", msg.Value)
	assert.Equal(t, "A,B", f.Query())
	assert.Contains(t, f.View(30), "Alpha, Beta")
}

func TestMultiSelect_ApplyEmptySelectionCommitsEmpty(t *testing.T) {
	f := openPositioned(t, laidOut(t, FilterEnv{}, "", deptAnchor))
	_, cmd := f.Update(press(tea.KeyEnter))
	msg, ok := committed(cmd)
	require.True(t, ok)
	assert.Equal(t, "", msg.Value)
}

func TestMultiSelect_ClearCommitsEmpty(t *testing.T) {
	bus := viewport.NewBus()
	f := openPositioned(t, laidOut(t, busEnv(bus), "A,C", deptAnchor))

	f, cmd := f.Update(press(tea.KeyCtrlX))
	msg, ok := committed(cmd)
	require.True(t, ok)
	assert.Equal(t, "", msg.Value)
	assert.Empty(t, f.(MultiSelect).Selected())
	assert.Contains(t, f.View(30), "Select...")
}

func TestMultiSelect_SearchThenSelectAll(t *testing.T) {
	f := openPositioned(t, laidOut(t, FilterEnv{}, "B", deptAnchor))

	// Commands from typing drive the cursor blink and are not run here.
	f, _ = f.Update(typed("al"))
	ms := f.(MultiSelect)
	require.Len(t, ms.state.Filtered, 1)
	assert.Equal(t, "A", ms.state.Filtered[0].Value)

	f, _ = f.Update(press(tea.KeyTab))
	f, _ = f.Update(typed("a"))
	assert.Equal(t, []string{"B", "A"}, f.(MultiSelect).Selected(), "hidden selection kept")

	f, _ = f.Update(typed("n"))
	assert.Empty(t, f.(MultiSelect).Selected())
}

func TestMultiSelect_UpFromFirstOptionReturnsToSearch(t *testing.T) {
	f := openPositioned(t, laidOut(t, FilterEnv{}, "", deptAnchor))
	f, _ = f.Update(press(tea.KeyDown))
	assert.Equal(t, zoneList, f.(MultiSelect).zone)
	f, _ = f.Update(press(tea.KeyUp))
	assert.Equal(t, zoneSearch, f.(MultiSelect).zone)
}

func TestMultiSelect_EnterOpensWhenFocused(t *testing.T) {
	f := laidOut(t, FilterEnv{}, "", deptAnchor)
	f, cmd := f.Update(press(tea.KeyEnter))
	assert.NotNil(t, cmd)
	assert.True(t, f.(MultiSelect).IsOpen())

	blurred := laidOut(t, FilterEnv{}, "", deptAnchor).Blur()
	blurred, cmd = blurred.Update(press(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.False(t, blurred.(MultiSelect).IsOpen())
}

func TestMultiSelect_SetQuerySyncsSelection(t *testing.T) {
	f := laidOut(t, FilterEnv{}, "A", deptAnchor)
	f = f.SetQuery("C")
	assert.Equal(t, "C", f.Query())
	assert.Equal(t, []string{"C"}, f.(MultiSelect).Selected())

	var zero MultiSelect
	assert.Equal(t, "", zero.SetQuery("A").Query())
}

func TestMultiSelect_DestroyWhileOpen(t *testing.T) {
	bus := viewport.NewBus()
	f := openPositioned(t, laidOut(t, busEnv(bus), "B", deptAnchor))
	f, _ = f.Update(press(tea.KeyTab))
	f, _ = f.Update(space())

	f = f.Destroy()
	assert.Equal(t, 0, bus.Len())
	assert.False(t, f.(MultiSelect).IsOpen())
	assert.Equal(t, []string{"B"}, f.(MultiSelect).Selected())

	f = f.Destroy()
	assert.Equal(t, 0, bus.Len())
}

func TestMultiSelect_InstallsStrictPredicate(t *testing.T) {
	col := deptColumn()
	NewMultiSelect(col, "", FilterEnv{})
	require.NotNil(t, col.Predicate)
	assert.True(t, col.Match("A", "A,B"))
	assert.False(t, col.Match("a", "A,B"))
	assert.False(t, col.Match("AB", "A"))
}

func TestMultiSelect_ShiftsLeftAtScreenEdge(t *testing.T) {
	f := openPositioned(t, laidOut(t, FilterEnv{}, "", viewport.Rect{X: 70, Y: 1, W: 10, H: 1}))
	_, rect, ok := f.Overlay()
	require.True(t, ok)
	assert.Equal(t, 80-viewport.DefaultMetrics.Margin-rect.W, rect.X)
	assert.Equal(t, 2, rect.Y)
	assert.GreaterOrEqual(t, rect.W, viewport.DefaultMetrics.MinWidth)
}

func TestMultiSelect_TriggerCloseDropsToggles(t *testing.T) {
	f := openPositioned(t, laidOut(t, FilterEnv{}, "B", deptAnchor))
	_, rect, _ := f.Overlay()

	f, _ = f.Update(ViewportMsg{Event: viewport.Event{Kind: viewport.EventClick, X: rect.X + 5, Y: rect.Y + 3}})
	require.Equal(t, []string{"B", "A"}, f.(MultiSelect).Selected())

	f, cmd := f.Update(ActivateMsg{})
	assert.Nil(t, cmd)
	assert.False(t, f.(MultiSelect).IsOpen())
	assert.Equal(t, []string{"B"}, f.(MultiSelect).Selected())
	assert.Equal(t, "B", f.Query())
}

func TestMultiSelect_NarrowScreenClicksHitDrawnButtons(t *testing.T) {
	var f Filter = NewMultiSelect(deptColumn(), "", FilterEnv{})
	f = f.Focus()
	f, _ = f.Update(LayoutMsg{Anchor: deptAnchor, Screen: viewport.Size{W: 20, H: 24}})
	f = openPositioned(t, f)

	out, rect, ok := f.Overlay()
	require.True(t, ok)
	require.Greater(t, rect.W, 20)
	assert.Equal(t, 0, rect.X, "drawn and hit-tested at the left edge")

	frame := CompositeAt("", out, rect.X, rect.Y, 20, 24)
	applyRow := ansi.Strip(strings.Split(frame, "\n")[rect.Y+6])
	assert.Equal(t, 2, strings.Index(applyRow, "[Apply"))

	f, _ = f.Update(ViewportMsg{Event: viewport.Event{Kind: viewport.EventClick, X: 5, Y: rect.Y + 3}})
	require.Equal(t, []string{"A"}, f.(MultiSelect).Selected())

	f, cmd := f.Update(ViewportMsg{Event: viewport.Event{Kind: viewport.EventClick, X: 3, Y: rect.Y + 6}})
	msg, ok := committed(cmd)
	require.True(t, ok)
	assert.Equal(t, FilterCommittedMsg{Column: "department", Value: "A"}, msg)
	assert.False(t, f.(MultiSelect).IsOpen())
}

func TestMultiSelect_ResizeRepositions(t *testing.T) {
	bus := viewport.NewBus()
	anchor := viewport.Rect{X: 40, Y: 1, W: 10, H: 1}
	f := openPositioned(t, laidOut(t, busEnv(bus), "", anchor))
	_, before, _ := f.Overlay()
	assert.Equal(t, 40, before.X)

	f, _ = f.Update(ViewportMsg{Event: viewport.Event{Kind: viewport.EventResize, W: 60, H: 24}})
	_, after, _ := f.Overlay()
	assert.Equal(t, 60-viewport.DefaultMetrics.Margin-after.W, after.X)
	assert.True(t, f.(MultiSelect).IsOpen())
}

func TestMultiSelect_WheelScrollsLongList(t *testing.T) {
	var opts []config.Option
	for i := 0; i < 12; i++ {
		opts = append(opts, config.Option{Value: fmt.Sprint(i), Title: fmt.Sprintf("Option %d", i)})
	}
	col := &grid.Column{Key: "n", Kind: grid.KindMultiSelect, Config: config.FilterConfig{List: opts}}

	var f Filter = NewMultiSelect(col, "", FilterEnv{MaxRows: 4})
	f, _ = f.Update(LayoutMsg{Anchor: deptAnchor, Screen: viewport.Size{W: 80, H: 24}})
	f = openPositioned(t, f)
	_, rect, ok := f.Overlay()
	require.True(t, ok)

	for i := 0; i < 6; i++ {
		f, _ = f.Update(wheel(rect.X+2, rect.Y+2, tea.MouseButtonWheelDown))
	}
	ms := f.(MultiSelect)
	assert.Equal(t, 6, ms.cursor)
	assert.Equal(t, 3, ms.offset)

	f, _ = f.Update(wheel(rect.X+2, rect.Bottom()+1, tea.MouseButtonWheelDown))
	assert.Equal(t, 6, f.(MultiSelect).cursor, "wheel outside the dropdown")

	out, _, _ := f.Overlay()
	assert.Contains(t, out, "↑ more")
	assert.Contains(t, out, "↓ more")
}
