package main

import (
	"fmt"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ruminaider/tablefilter/cmd/tablefilter/tui"
	"github.com/ruminaider/tablefilter/internal/commands"
	"github.com/ruminaider/tablefilter/internal/config"
	"github.com/ruminaider/tablefilter/internal/grid"
	"github.com/ruminaider/tablefilter/internal/logging"
	"github.com/ruminaider/tablefilter/internal/watch"
)

var (
	viewWatch    bool
	viewDebounce time.Duration
	viewQueries  []string
)

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Browse a table with interactive column filters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		queries, err := commands.ParseQueries(viewQueries)
		if err != nil {
			return err
		}

		logger, err := logging.New(settings.Log.File, settings.Log.Level)
		if err != nil {
			return err
		}
		defer logger.Close()
		logger.Info("settings loaded",
			"file", settingsFile,
			"debounce", settings.Debounce.String(),
			"watch", settings.Watch,
			"observe_anchor", settings.Overlay.ObserveAnchor,
		)

		var watcher *watch.Watcher
		if settings.Watch {
			watcher, err = watch.New(path, watch.DefaultDebounce)
			if err != nil {
				return err
			}
			defer watcher.Close()
		}

		metrics := overlayMetrics(settings.Overlay)
		model := tui.NewModel(grid.FromConfig(cfg), tui.Options{
			Path:    path,
			Queries: queries,
			Env: tui.FilterEnv{
				Debounce: settings.Debounce,
				Logger:   logger,
				Metrics:  &metrics,
				MaxRows:  settings.Overlay.MaxRows,
			},
			ObserveAnchor: settings.Overlay.ObserveAnchor,
			Watcher:       watcher,
		})

		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
		final, err := p.Run()
		if err != nil {
			return fmt.Errorf("running table view: %w", err)
		}

		if m, ok := final.(tui.Model); ok {
			printQueries(cmd, m.Queries())
		}
		return nil
	},
}

// printQueries echoes the filters that were active on exit as flags that
// reproduce them.
func printQueries(cmd *cobra.Command, queries map[string]string) {
	if len(queries) == 0 {
		return
	}
	keys := make([]string, 0, len(queries))
	for k := range queries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Active filters:")
	for _, k := range keys {
		fmt.Fprintf(out, "  --query %q\n", k+"="+queries[k])
	}
}

func init() {
	viewCmd.Flags().BoolVar(&viewWatch, "watch", false, "Reload the table when the file changes")
	viewCmd.Flags().DurationVar(&viewDebounce, "debounce", 300*time.Millisecond, "Delay before a text filter applies what was typed")
	viewCmd.Flags().StringArrayVarP(&viewQueries, "query", "q", nil, "Initial filter as column=value (repeatable)")
}
