package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ruminaider/tablefilter/internal/commands"
)

var (
	filterQueries []string
	filterCount   bool
)

var filterCmd = &cobra.Command{
	Use:   "filter <file>",
	Short: "Print the rows that pass the given filters",
	Long:  "Applies column filters without the interactive view. Multiselect columns match whole tokens exactly, every other column matches a case-insensitive substring.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		queries, err := commands.ParseQueries(filterQueries)
		if err != nil {
			return err
		}
		result, err := commands.Filter(args[0], queries)
		if err != nil {
			return err
		}
		writeFilterResult(cmd.OutOrStdout(), result, filterCount)
		return nil
	},
}

// writeFilterResult prints result as an aligned table followed by the row
// counts, or only the number of matching rows when countOnly is set.
func writeFilterResult(w io.Writer, result *commands.FilterResult, countOnly bool) {
	if countOnly {
		fmt.Fprintln(w, len(result.Rows))
		return
	}
	if len(result.Rows) > 0 {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderRow(false).
			Headers(result.Headers...).
			Rows(result.Rows...)
		fmt.Fprintln(w, t.Render())
	}
	fmt.Fprintf(w, "%d of %d rows\n", len(result.Rows), result.Total)
}

func init() {
	filterCmd.Flags().StringArrayVarP(&filterQueries, "query", "q", nil, "Filter as column=value (repeatable)")
	filterCmd.Flags().BoolVar(&filterCount, "count", false, "Print only the number of matching rows")
}
