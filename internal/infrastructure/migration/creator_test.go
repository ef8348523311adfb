package migration

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_WritesPair(t *testing.T) {
	dir := t.TempDir()

	f, err := Create(dir, "Add Forecast Table")
	require.NoError(t, err)

	assert.Contains(t, f.UpPath, "add_forecast_table.up.sql")
	assert.Contains(t, f.DownPath, "add_forecast_table.down.sql")

	up, err := os.ReadFile(f.UpPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(up), "-- Migration: Add Forecast Table"))

	_, err = os.Stat(f.DownPath)
	assert.NoError(t, err)
}

func TestList(t *testing.T) {
	dir := t.TempDir()

	names, err := List(dir)
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = Create(dir, "first")
	require.NoError(t, err)

	names, err = List(dir)
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Contains(t, names[0], "_first")
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "blank_dialog_parties", sanitizeName("Blank  Dialog--Parties"))
	assert.Equal(t, "v2_schema", sanitizeName("V2 Schema!"))
	assert.Equal(t, "trailing", sanitizeName("trailing- "))
}
