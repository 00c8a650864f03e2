package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ruminaider/tablefilter/internal/config"
	"github.com/ruminaider/tablefilter/internal/grid"
	"github.com/ruminaider/tablefilter/internal/multiselect"
)

// FilterResult holds the rows of a table that pass every query.
type FilterResult struct {
	Title   string
	Headers []string
	Rows    [][]string
	Total   int
}

// ParseQueries parses "column=value" pairs. The value may itself contain
// "=". A later pair for the same column replaces an earlier one.
func ParseQueries(pairs []string) (map[string]string, error) {
	queries := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid query %q: expected column=value", p)
		}
		queries[key] = value
	}
	return queries, nil
}

// InstallPredicates gives every multiselect column its token predicate, the
// same one the interactive view installs when it builds the filter.
func InstallPredicates(t *grid.Table) {
	for i := range t.Columns {
		col := &t.Columns[i]
		if col.Kind == grid.KindMultiSelect {
			multiselect.InstallPredicate(col, multiselect.Resolve(col.Config))
		}
	}
}

// Filter loads the table definition at path and applies queries to its
// rows. Queries naming unknown columns are rejected.
func Filter(path string, queries map[string]string) (*FilterResult, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	t := grid.FromConfig(cfg)
	InstallPredicates(t)

	var unknown []string
	for key := range queries {
		if t.Column(key) == nil {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown column(s) in query: %s", strings.Join(unknown, ", "))
	}

	result := &FilterResult{
		Title:   t.Title,
		Headers: make([]string, len(t.Columns)),
		Total:   len(t.Rows),
	}
	for i, c := range t.Columns {
		result.Headers[i] = c.Title
	}
	for _, idx := range t.Match(queries) {
		row := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			row[i] = grid.CellString(t.Rows[idx][c.Key])
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}
