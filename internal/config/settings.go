package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings is the application configuration, read from
// ~/.tablefilter/settings.yaml, TABLEFILTER_* environment variables and
// command-line flags, in increasing precedence.
type Settings struct {
	// Debounce delays text filter commits while the user is typing.
	Debounce time.Duration  `mapstructure:"debounce"`
	Log      LogSettings     `mapstructure:"log"`
	Overlay  OverlaySettings `mapstructure:"overlay"`
	// Watch reloads the table file when it changes on disk.
	Watch bool `mapstructure:"watch"`
}

// LogSettings controls the debug log.
type LogSettings struct {
	// Level is one of DEBUG, INFO, WARN, ERROR.
	Level string `mapstructure:"level"`
	// File is the JSON log target. Empty disables logging.
	File string `mapstructure:"file"`
}

// OverlaySettings tunes multiselect overlay placement.
type OverlaySettings struct {
	Gap      int `mapstructure:"gap"`
	MinWidth int `mapstructure:"min_width"`
	Margin   int `mapstructure:"margin"`
	// ObserveAnchor repositions the overlay when its trigger cell reflows
	// without a terminal resize.
	ObserveAnchor bool `mapstructure:"observe_anchor"`
	// MaxRows is the number of option rows shown before the list scrolls.
	MaxRows int `mapstructure:"max_rows"`
}

// EnvPrefix prefixes environment variable overrides.
const EnvPrefix = "TABLEFILTER"

// DefaultSettings returns the built-in settings.
func DefaultSettings(logFile string) Settings {
	return Settings{
		Debounce: 300 * time.Millisecond,
		Log: LogSettings{
			Level: "INFO",
			File:  logFile,
		},
		Overlay: OverlaySettings{
			Gap:           0,
			MinWidth:      28,
			Margin:        1,
			ObserveAnchor: true,
			MaxRows:       8,
		},
	}
}

// NewViper returns a viper instance with defaults registered and
// environment overrides enabled.
func NewViper(defaults Settings) *viper.Viper {
	v := viper.New()
	v.SetDefault("debounce", defaults.Debounce)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("overlay.gap", defaults.Overlay.Gap)
	v.SetDefault("overlay.min_width", defaults.Overlay.MinWidth)
	v.SetDefault("overlay.margin", defaults.Overlay.Margin)
	v.SetDefault("overlay.observe_anchor", defaults.Overlay.ObserveAnchor)
	v.SetDefault("overlay.max_rows", defaults.Overlay.MaxRows)
	v.SetDefault("watch", defaults.Watch)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadSettings reads the optional settings file into v and decodes the
// merged result. A missing file is not an error.
func LoadSettings(v *viper.Viper, file string) (Settings, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, fmt.Errorf("reading settings %s: %w", file, err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// Validate reports every invalid value at once.
func (s Settings) Validate() error {
	var errs []error
	if s.Debounce < 0 {
		errs = append(errs, fmt.Errorf("debounce must not be negative, got %s", s.Debounce))
	}
	switch strings.ToUpper(s.Log.Level) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of DEBUG, INFO, WARN, ERROR", s.Log.Level))
	}
	if s.Overlay.Gap < 0 {
		errs = append(errs, fmt.Errorf("overlay.gap must not be negative, got %d", s.Overlay.Gap))
	}
	if s.Overlay.MinWidth < 1 {
		errs = append(errs, fmt.Errorf("overlay.min_width must be positive, got %d", s.Overlay.MinWidth))
	}
	if s.Overlay.Margin < 0 {
		errs = append(errs, fmt.Errorf("overlay.margin must not be negative, got %d", s.Overlay.Margin))
	}
	if s.Overlay.MaxRows < 1 {
		errs = append(errs, fmt.Errorf("overlay.max_rows must be positive, got %d", s.Overlay.MaxRows))
	}
	return errors.Join(errs...)
}
