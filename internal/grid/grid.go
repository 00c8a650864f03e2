// Package grid holds the runtime table model: columns with their filter
// kind and match predicate, rows, and the row matcher that applies the
// committed filter queries.
package grid

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/ruminaider/tablefilter/internal/config"
)

// Kind is a column's filter kind discriminator.
type Kind string

const (
	KindText        Kind = "text"
	KindList        Kind = "list"
	KindCheckbox    Kind = "checkbox"
	KindMultiSelect Kind = "multiselect"
)

// Kinds lists every filter kind in menu order.
var Kinds = []Kind{KindText, KindList, KindCheckbox, KindMultiSelect}

// ParseKind maps a declared filter type to a Kind. Unknown or empty types
// fall back to KindText.
func ParseKind(s string) Kind {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindList:
		return KindList
	case KindCheckbox:
		return KindCheckbox
	case KindMultiSelect:
		return KindMultiSelect
	default:
		return KindText
	}
}

// Predicate reports whether a cell value passes a committed query.
type Predicate func(cell any, query string) bool

// Column is a displayed column and its filter declaration.
type Column struct {
	Key    string
	Title  string
	Width  int
	Kind   Kind
	Config config.FilterConfig

	// Predicate overrides DefaultPredicate when set.
	Predicate Predicate
}

// InstallPredicate sets p as the column predicate unless one is already
// set. It reports whether p was installed.
func (c *Column) InstallPredicate(p Predicate) bool {
	if c.Predicate != nil || p == nil {
		return false
	}
	c.Predicate = p
	return true
}

// Match applies the column predicate, or DefaultPredicate when none is set.
func (c *Column) Match(cell any, query string) bool {
	if c.Predicate != nil {
		return c.Predicate(cell, query)
	}
	return DefaultPredicate(cell, query)
}

// Row is one record keyed by column key.
type Row map[string]any

// Table is the runtime table.
type Table struct {
	Title   string
	Columns []Column
	Rows    []Row
}

// FromConfig builds a Table from its definition file.
func FromConfig(t config.Table) *Table {
	out := &Table{
		Title:   t.Title,
		Columns: make([]Column, 0, len(t.Columns)),
		Rows:    make([]Row, 0, len(t.Rows)),
	}
	for _, c := range t.Columns {
		col := Column{
			Key:   c.Key,
			Title: c.Title,
			Width: c.Width,
			Kind:  KindText,
		}
		if col.Title == "" {
			col.Title = c.Key
		}
		if c.Filter != nil {
			col.Kind = ParseKind(c.Filter.Type)
			col.Config = c.Filter.Config
		}
		out.Columns = append(out.Columns, col)
	}
	for _, r := range t.Rows {
		out.Rows = append(out.Rows, Row(r))
	}
	return out
}

// Column returns the column with key, or nil.
func (t *Table) Column(key string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Key == key {
			return &t.Columns[i]
		}
	}
	return nil
}

// Match returns the indexes of rows that pass every non-empty query.
// Queries for unknown columns are ignored.
func (t *Table) Match(queries map[string]string) []int {
	active := make([]*Column, 0, len(queries))
	for i := range t.Columns {
		if queries[t.Columns[i].Key] != "" {
			active = append(active, &t.Columns[i])
		}
	}

	kept := make([]int, 0, len(t.Rows))
	for i, row := range t.Rows {
		ok := true
		for _, col := range active {
			if !col.Match(row[col.Key], queries[col.Key]) {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, i)
		}
	}
	return kept
}

// DistinctValues returns the distinct non-empty string forms of a column's
// cells in first-seen order.
func (t *Table) DistinctValues(key string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range t.Rows {
		s := CellString(row[key])
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// CellString returns the string form of a cell value. Nil is the empty
// string.
func CellString(v any) string {
	if v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

// DefaultPredicate keeps cells whose string form contains query,
// ignoring case. The empty query keeps everything.
func DefaultPredicate(cell any, query string) bool {
	if query == "" {
		return true
	}
	if cell == nil {
		return false
	}
	return strings.Contains(strings.ToLower(CellString(cell)), strings.ToLower(query))
}
