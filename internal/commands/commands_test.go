package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const staffYAML = `title: Staff
columns:
  - key: department
    title: Department
    filter:
      type: multiselect
      config:
        list:
          - {value: ENG, title: Engineering}
          - {value: OPS, title: Operations}
  - key: name
    title: Name
  - key: level
rows:
  - {department: ENG, name: Ann, level: 3}
  - {department: OPS, name: Bob, level: 1}
  - {department: ENG, name: Cid, level: 2}
  - {department: ENGINEERING, name: Dee, level: 3}
`

func setupTable(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "staff.yaml")
	require.NoError(t, os.WriteFile(path, []byte(staffYAML), 0644))
	return path
}
