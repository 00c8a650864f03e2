package commands

import (
	"fmt"

	"github.com/ruminaider/tablefilter/internal/config"
	"github.com/ruminaider/tablefilter/internal/grid"
	"github.com/ruminaider/tablefilter/internal/selection"
)

// AddFilterOptions describes the filter to declare on a column.
type AddFilterOptions struct {
	Column string
	Kind   grid.Kind
	// DeriveOptions fills the option list of a list or multiselect filter
	// from the distinct values found in the column.
	DeriveOptions bool
	// Separator is stored for multiselect filters when it differs from the
	// default.
	Separator string
}

// AddFilterResult reports what AddFilter wrote.
type AddFilterResult struct {
	Column   string
	Kind     grid.Kind
	Options  int
	Replaced bool // the column already declared a filter
}

// AddFilter declares a filter on a column of the table definition at path
// and writes the file back. Settings of an existing declaration, such as
// button labels, are kept.
func AddFilter(path string, opts AddFilterOptions) (*AddFilterResult, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	idx := cfg.ColumnIndex(opts.Column)
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found in %s", opts.Column, path)
	}
	kind := grid.ParseKind(string(opts.Kind))

	col := &cfg.Columns[idx]
	result := &AddFilterResult{Column: col.Key, Kind: kind, Replaced: col.Filter != nil}

	filter := config.Filter{Type: string(kind)}
	if col.Filter != nil {
		filter.Config = col.Filter.Config
	}

	switch kind {
	case grid.KindList, grid.KindMultiSelect:
		if opts.DeriveOptions {
			filter.Config.List = nil
			for _, v := range grid.FromConfig(cfg).DistinctValues(col.Key) {
				filter.Config.List = append(filter.Config.List, config.Option{Value: v, Title: v})
			}
		}
		result.Options = len(filter.Config.List)
	default:
		filter.Config.List = nil
	}

	if kind == grid.KindMultiSelect && opts.Separator != "" && opts.Separator != selection.DefaultSeparator {
		sep := opts.Separator
		filter.Config.Separator = &sep
	}
	col.Filter = &filter

	if err := config.Save(path, cfg); err != nil {
		return nil, err
	}
	return result, nil
}
