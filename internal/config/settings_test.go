package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ruminaider/tablefilter/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	defaults := config.DefaultSettings("/tmp/x.log")
	v := config.NewViper(defaults)

	s, err := config.LoadSettings(v, filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, defaults, s)
}

func TestLoadSettings_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`debounce: 50ms
log:
  level: debug
overlay:
  min_width: 40
  observe_anchor: false
watch: true
`), 0644))

	v := config.NewViper(config.DefaultSettings(""))
	s, err := config.LoadSettings(v, path)
	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, s.Debounce)
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, 40, s.Overlay.MinWidth)
	assert.False(t, s.Overlay.ObserveAnchor)
	assert.Equal(t, 1, s.Overlay.Margin, "unset keys keep defaults")
	assert.True(t, s.Watch)
}

func TestLoadSettings_Env(t *testing.T) {
	t.Setenv("TABLEFILTER_OVERLAY_MAX_ROWS", "12")
	t.Setenv("TABLEFILTER_DEBOUNCE", "1s")

	v := config.NewViper(config.DefaultSettings(""))
	s, err := config.LoadSettings(v, "")
	require.NoError(t, err)
	assert.Equal(t, 12, s.Overlay.MaxRows)
	assert.Equal(t, time.Second, s.Debounce)
}

func TestLoadSettings_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`log:
  level: loud
overlay:
  min_width: 0
  max_rows: 0
`), 0644))

	v := config.NewViper(config.DefaultSettings(""))
	_, err := config.LoadSettings(v, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
	assert.Contains(t, err.Error(), "overlay.min_width")
	assert.Contains(t, err.Error(), "overlay.max_rows")
}

func TestLoadSettings_BrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0644))

	_, err := config.LoadSettings(config.NewViper(config.DefaultSettings("")), path)
	assert.ErrorContains(t, err, "reading settings")
}

func TestSettingsValidate_NegativeDebounce(t *testing.T) {
	s := config.DefaultSettings("")
	s.Debounce = -time.Second
	assert.ErrorContains(t, s.Validate(), "debounce")
}
