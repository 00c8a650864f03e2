package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ruminaider/tablefilter/internal/config"
	"github.com/ruminaider/tablefilter/internal/paths"
	"github.com/ruminaider/tablefilter/internal/viewport"
)

// settingsFlags maps viper keys to the flags that override them.
var settingsFlags = map[string]string{
	"log.level": "log-level",
	"watch":     "watch",
	"debounce":  "debounce",
}

// loadSettings merges the settings file, environment and the flags of cmd
// that were set explicitly.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	v := config.NewViper(config.DefaultSettings(paths.LogFile()))
	for key, name := range settingsFlags {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return config.Settings{}, fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return config.LoadSettings(v, settingsFile)
}

// overlayMetrics converts the overlay settings for the positioner.
func overlayMetrics(s config.OverlaySettings) viewport.Metrics {
	return viewport.Metrics{Gap: s.Gap, MinWidth: s.MinWidth, Margin: s.Margin}
}
