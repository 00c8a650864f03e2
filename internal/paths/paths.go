package paths

import (
	"os"
	"path/filepath"
)

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// Dir returns ~/.tablefilter.
func Dir() string {
	return filepath.Join(home(), ".tablefilter")
}

// SettingsFile returns ~/.tablefilter/settings.yaml.
func SettingsFile() string {
	return filepath.Join(Dir(), "settings.yaml")
}

// LogFile returns ~/.tablefilter/tablefilter.log.
func LogFile() string {
	return filepath.Join(Dir(), "tablefilter.log")
}
