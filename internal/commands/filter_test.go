package commands_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruminaider/tablefilter/internal/commands"
	"github.com/ruminaider/tablefilter/internal/grid"
)

func TestParseQueries(t *testing.T) {
	q, err := commands.ParseQueries([]string{"department=ENG,OPS", " name =a=b", "level=1", "level=3"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"department": "ENG,OPS",
		"name":       "a=b",
		"level":      "3",
	}, q)

	for _, bad := range []string{"department", "=x", " =x"} {
		_, err := commands.ParseQueries([]string{bad})
		assert.Error(t, err, bad)
	}

	q, err = commands.ParseQueries(nil)
	require.NoError(t, err)
	assert.Empty(t, q)
}

func TestFilter_MultiselectIsStrict(t *testing.T) {
	path := setupTable(t)

	result, err := commands.Filter(path, map[string]string{"department": "ENG"})
	require.NoError(t, err)
	assert.Equal(t, "Staff", result.Title)
	assert.Equal(t, []string{"Department", "Name", "level"}, result.Headers)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, [][]string{
		{"ENG", "Ann", "3"},
		{"ENG", "Cid", "2"},
	}, result.Rows)
}

func TestFilter_CombinesColumns(t *testing.T) {
	path := setupTable(t)

	result, err := commands.Filter(path, map[string]string{
		"department": "OPS,ENG",
		"level":      "3",
	})
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "Ann", result.Rows[0][1])
}

func TestFilter_TextIsSubstring(t *testing.T) {
	path := setupTable(t)

	result, err := commands.Filter(path, map[string]string{"name": "EE"})
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "Dee", result.Rows[0][1])
}

func TestFilter_NoQueries(t *testing.T) {
	result, err := commands.Filter(setupTable(t), nil)
	require.NoError(t, err)
	assert.Len(t, result.Rows, 4)
}

func TestFilter_UnknownColumn(t *testing.T) {
	_, err := commands.Filter(setupTable(t), map[string]string{"zeta": "1", "alpha": "2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alpha, zeta")
}

func TestFilter_MissingFile(t *testing.T) {
	_, err := commands.Filter(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestInstallPredicates(t *testing.T) {
	tbl := &grid.Table{Columns: []grid.Column{
		{Key: "a", Kind: grid.KindMultiSelect},
		{Key: "b", Kind: grid.KindText},
	}}
	commands.InstallPredicates(tbl)
	assert.NotNil(t, tbl.Columns[0].Predicate)
	assert.Nil(t, tbl.Columns[1].Predicate)
}
