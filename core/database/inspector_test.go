package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE stack_overrides (id INTEGER PRIMARY KEY, kind TEXT, override_key TEXT, stack_limit INTEGER)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "stack_overrides")
	require.NoError(t, err)
	assert.Len(t, columns, 4)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}
	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["kind"])
	assert.Equal(t, "integer", colMap["stack_limit"])

	// PRAGMA table_info returns no rows for an unknown table.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE stack_settings (id INTEGER PRIMARY KEY, version INTEGER)").Error)

	missing, err := MissingColumns(db, "stack_settings", []string{"id", "Version", "default_limit"})
	require.NoError(t, err)
	assert.Equal(t, []string{"default_limit"}, missing)
}
