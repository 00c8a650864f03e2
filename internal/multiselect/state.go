package multiselect

import (
	"strconv"
	"strings"

	"github.com/ruminaider/tablefilter/internal/config"
	"github.com/ruminaider/tablefilter/internal/selection"
)

// State is the filter's working state. Selected is the working copy of the
// selection; it only reaches the committed query through Apply or Clear.
type State struct {
	Selected   selection.Set
	SearchText string
	Open       bool
	// Filtered is the option list narrowed by SearchText.
	Filtered []config.Option
}

// Initial derives the closed state from the committed query.
func Initial(s Settings, committed string) State {
	return State{
		Selected: selection.Deserialize(committed, s.Separator),
		Filtered: FilterOptions(s.Options, ""),
	}
}

// Open resets the search and shows the full option list.
func Open(s Settings, st State) State {
	st.Open = true
	st.SearchText = ""
	st.Filtered = FilterOptions(s.Options, "")
	return st
}

// Toggle adds token to the working selection, or removes it when present.
func Toggle(st State, token string) State {
	st.Selected = st.Selected.Clone()
	st.Selected.Toggle(token)
	return st
}

// SelectAll adds every currently filtered option to the working selection.
// Tokens already selected but hidden by the search stay selected.
func SelectAll(st State) State {
	st.Selected = st.Selected.Clone()
	for _, o := range st.Filtered {
		st.Selected.Add(o.Value)
	}
	return st
}

// ClearAll empties the working selection without closing.
func ClearAll(st State) State {
	st.Selected = selection.Set{}
	return st
}

// Search narrows the option list to titles containing text.
func Search(s Settings, st State, text string) State {
	st.SearchText = text
	st.Filtered = FilterOptions(s.Options, text)
	return st
}

// Apply closes and returns the query committing the working selection.
func Apply(s Settings, st State) (State, string) {
	st.Open = false
	return st, selection.Serialize(st.Selected, s.Separator)
}

// Clear empties the selection, closes and returns the empty query.
func Clear(st State) (State, string) {
	st.Selected = selection.Set{}
	st.Open = false
	return st, ""
}

// Cancel closes and discards uncommitted toggles by re-deriving the
// selection from the committed query.
func Cancel(s Settings, st State, committed string) State {
	st.Selected = selection.Deserialize(committed, s.Separator)
	st.Open = false
	return st
}

// Sync re-derives the selection after the committed query changed from
// outside. The open/closed state and search are kept.
func Sync(s Settings, st State, committed string) State {
	st.Selected = selection.Deserialize(committed, s.Separator)
	return st
}

// FilterOptions returns the options whose title contains search, ignoring
// case. Values are not searched. The result is a new slice.
func FilterOptions(options []config.Option, search string) []config.Option {
	needle := strings.ToLower(search)
	out := make([]config.Option, 0, len(options))
	for _, o := range options {
		if strings.Contains(strings.ToLower(o.Title), needle) {
			out = append(out, o)
		}
	}
	return out
}

// DisplayText summarizes selected for the trigger cell.
func DisplayText(s Settings, selected selection.Set) string {
	if selected.Len() == 0 {
		return s.SelectPlaceholder
	}
	if selected.Len() == len(s.Options) {
		return s.AllSelectedLabel
	}

	var titles []string
	for _, o := range s.Options {
		if selected.Has(o.Value) {
			titles = append(titles, o.Title)
		}
	}
	if len(titles) <= s.MaxDisplayedSelections {
		return strings.Join(titles, ", ")
	}

	n := strconv.Itoa(len(titles))
	if strings.Contains(s.SelectedCountTemplate, "%n") {
		return strings.Replace(s.SelectedCountTemplate, "%n", n, 1)
	}
	return s.SelectedCountTemplate + n
}
