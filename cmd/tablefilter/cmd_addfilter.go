package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/ruminaider/tablefilter/internal/commands"
	"github.com/ruminaider/tablefilter/internal/config"
	"github.com/ruminaider/tablefilter/internal/grid"
	"github.com/ruminaider/tablefilter/internal/selection"
)

var (
	addFilterColumn    string
	addFilterKind      string
	addFilterDerive    bool
	addFilterSeparator string
)

var addFilterCmd = &cobra.Command{
	Use:   "add-filter <file>",
	Short: "Declare a filter on a column",
	Long:  "Declares the filter control of a column in a table definition file. Prompts for anything not given as a flag.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}

		opts := commands.AddFilterOptions{
			Column:        addFilterColumn,
			Kind:          grid.Kind(addFilterKind),
			DeriveOptions: addFilterDerive,
			Separator:     addFilterSeparator,
		}
		if opts.Column == "" || addFilterKind == "" {
			if err := promptAddFilter(cfg, &opts); err != nil {
				return err
			}
		}

		result, err := commands.AddFilter(path, opts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		verb := "Added"
		if result.Replaced {
			verb = "Replaced"
		}
		fmt.Fprintf(out, "✓ %s %s filter on %q\n", verb, result.Kind, result.Column)
		if result.Kind == grid.KindList || result.Kind == grid.KindMultiSelect {
			fmt.Fprintf(out, "  %d option(s)\n", result.Options)
		}
		return nil
	},
}

// columnOptions lists the columns of cfg with their current filter kind.
func columnOptions(cfg config.Table) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(cfg.Columns))
	for _, c := range cfg.Columns {
		label := c.Key
		if c.Title != "" && c.Title != c.Key {
			label = fmt.Sprintf("%s (%s)", c.Title, c.Key)
		}
		if c.Filter != nil {
			label += " · " + string(grid.ParseKind(c.Filter.Type))
		}
		options = append(options, huh.NewOption(label, c.Key))
	}
	return options
}

func kindOptions() []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(grid.Kinds))
	for _, k := range grid.Kinds {
		options = append(options, huh.NewOption(string(k), string(k)))
	}
	return options
}

// promptAddFilter asks for every option the flags left out.
func promptAddFilter(cfg config.Table, opts *commands.AddFilterOptions) error {
	kind := string(opts.Kind)
	if kind == "" {
		kind = string(grid.KindMultiSelect)
	}
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Column").
				Options(columnOptions(cfg)...).
				Value(&opts.Column),
			huh.NewSelect[string]().
				Title("Filter type").
				Options(kindOptions()...).
				Value(&kind),
		),
	).Run()
	if err != nil {
		return err
	}
	opts.Kind = grid.Kind(kind)

	if opts.Kind != grid.KindList && opts.Kind != grid.KindMultiSelect {
		return nil
	}

	derive := true
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Build the option list from the column's values?").
				Value(&derive),
		),
	).Run()
	if err != nil {
		return err
	}
	opts.DeriveOptions = derive

	if opts.Kind != grid.KindMultiSelect || opts.Separator != "" {
		return nil
	}
	sep := selection.DefaultSeparator
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Separator between selected values").
				Value(&sep),
		),
	).Run()
	if err != nil {
		return err
	}
	opts.Separator = sep
	return nil
}

func init() {
	addFilterCmd.Flags().StringVar(&addFilterColumn, "column", "", "Column key")
	addFilterCmd.Flags().StringVar(&addFilterKind, "kind", "", "Filter type: text, list, checkbox or multiselect")
	addFilterCmd.Flags().BoolVar(&addFilterDerive, "derive", false, "Build list options from the column's distinct values")
	addFilterCmd.Flags().StringVar(&addFilterSeparator, "separator", "", "Multiselect separator")
}
