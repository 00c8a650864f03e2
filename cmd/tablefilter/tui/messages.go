package tui

import "github.com/ruminaider/tablefilter/internal/viewport"

// --- Inter-component messages ---

// FilterCommittedMsg is emitted when a filter commits a new query for its
// column. The value is passed to the row matcher unchanged.
type FilterCommittedMsg struct {
	Column string
	Value  string
}

// ActivateMsg is sent to a filter when its trigger is clicked.
type ActivateMsg struct{}

// ViewportMsg delivers a viewport event to a subscribed filter.
type ViewportMsg struct {
	Event viewport.Event
}

// LayoutMsg tells a filter where its trigger is drawn.
type LayoutMsg struct {
	Anchor viewport.Rect
	Screen viewport.Size
}

// ReloadMsg carries a freshly loaded table after the definition file
// changed on disk.
type ReloadMsg struct {
	Path string
}

// ReloadErrMsg reports a failed reload. The previous table stays in place.
type ReloadErrMsg struct {
	Err error
}

// positionMsg is the deferred hop between opening a dropdown and measuring
// it. gen ties it to one open cycle.
type positionMsg struct {
	column string
	gen    int
}

// debounceMsg fires when a text filter's debounce interval elapses. Only
// the message carrying the latest seq commits.
type debounceMsg struct {
	column string
	seq    int
}
