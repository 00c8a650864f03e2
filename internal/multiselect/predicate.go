package multiselect

import (
	"strings"

	"github.com/ruminaider/tablefilter/internal/grid"
	"github.com/ruminaider/tablefilter/internal/selection"
)

// Predicate returns the row matcher for committed multiselect queries. A
// cell passes when any token of the query matches it: exact string
// equality in strict mode, case-insensitive containment otherwise. Tokens
// are not checked against the option list.
func Predicate(s Settings) grid.Predicate {
	sep, strict := s.Separator, s.Strict
	return func(cell any, query string) bool {
		if query == "" {
			return true
		}
		value := grid.CellString(cell)
		lower := strings.ToLower(value)
		for _, token := range selection.Tokens(query, sep) {
			if strict {
				if value == token {
					return true
				}
				continue
			}
			if cell != nil && strings.Contains(lower, strings.ToLower(token)) {
				return true
			}
		}
		return false
	}
}

// InstallPredicate installs Predicate(s) on col unless the column already
// has a custom predicate.
func InstallPredicate(col *grid.Column, s Settings) bool {
	if col == nil {
		return false
	}
	return col.InstallPredicate(Predicate(s))
}
