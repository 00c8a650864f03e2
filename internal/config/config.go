package config

import (
	"errors"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Table represents a table definition file: columns with their filter
// declarations plus the rows to display.
type Table struct {
	Title   string           `yaml:"title,omitempty"`
	Columns []Column         `yaml:"columns"`
	Rows    []map[string]any `yaml:"rows,omitempty"`
}

// Column declares one table column.
type Column struct {
	Key    string  `yaml:"key"`
	Title  string  `yaml:"title,omitempty"`
	Width  int     `yaml:"width,omitempty"` // natural width hint; 0 = derive from content
	Filter *Filter `yaml:"filter,omitempty"`
}

// Filter declares which filter control a column uses.
type Filter struct {
	Type   string       `yaml:"type"`
	Config FilterConfig `yaml:"config,omitempty"`
}

// Option is one selectable entry of a list or multiselect filter.
type Option struct {
	Value string `yaml:"value"`
	Title string `yaml:"title"`
}

// FilterConfig holds the kind-specific filter settings. Every field is
// optional; pointer fields distinguish "absent" from the zero value.
type FilterConfig struct {
	List      []Option `yaml:"list,omitempty"`
	Separator *string  `yaml:"separator,omitempty"`
	Strict    *bool    `yaml:"strict,omitempty"`

	ApplyButtonText        string `yaml:"applyButtonText,omitempty"`
	ClearButtonText        string `yaml:"clearButtonText,omitempty"`
	SelectAllButtonText    string `yaml:"selectAllButtonText,omitempty"`
	ClearAllButtonText     string `yaml:"clearAllButtonText,omitempty"`
	SearchPlaceholder      string `yaml:"searchPlaceholder,omitempty"`
	SelectText             string `yaml:"selectText,omitempty"`
	AllSelectedText        string `yaml:"allSelectedText,omitempty"`
	SelectedCountText      string `yaml:"selectedCountText,omitempty"`
	MaxDisplayedSelections *int   `yaml:"maxDisplayedSelections,omitempty"`

	// Checkbox filter labels.
	True      string `yaml:"true,omitempty"`
	False     string `yaml:"false,omitempty"`
	ResetText string `yaml:"resetText,omitempty"`
}

// Parse parses table definition bytes into a Table and validates it.
func Parse(data []byte) (Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Table{}, fmt.Errorf("parsing table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Table{}, fmt.Errorf("parsing table: %w", err)
	}
	return t, nil
}

// Marshal serializes a Table to YAML bytes.
func Marshal(t Table) ([]byte, error) {
	return yaml.Marshal(t)
}

// Validate checks that every column has a unique, non-empty key.
func (t Table) Validate() error {
	if len(t.Columns) == 0 {
		return errors.New("no columns defined")
	}
	var errs []error
	seen := make(map[string]bool, len(t.Columns))
	for i, c := range t.Columns {
		switch {
		case c.Key == "":
			errs = append(errs, fmt.Errorf("column %d: missing key", i))
		case seen[c.Key]:
			errs = append(errs, fmt.Errorf("column %d: duplicate key %q", i, c.Key))
		}
		seen[c.Key] = true
		if c.Width < 0 {
			errs = append(errs, fmt.Errorf("column %q: negative width", c.Key))
		}
	}
	return errors.Join(errs...)
}

// Load reads and parses the table definition at path.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("reading table %s: %w", path, err)
	}
	return Parse(data)
}

// Save writes t to path as YAML.
func Save(path string, t Table) error {
	data, err := Marshal(t)
	if err != nil {
		return fmt.Errorf("marshaling table: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing table %s: %w", path, err)
	}
	return nil
}

// ColumnIndex returns the index of the column with key, or -1.
func (t Table) ColumnIndex(key string) int {
	for i, c := range t.Columns {
		if c.Key == key {
			return i
		}
	}
	return -1
}
