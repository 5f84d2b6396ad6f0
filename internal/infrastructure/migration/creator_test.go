package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add supplies table", "add_supplies_table"},
		{"Add-Supplies-Table", "add_supplies_table"},
		{"ADD_SUPPLIES_TABLE", "add_supplies_table"},
		{"add__supplies__table", "add_supplies_table"},
		{"Add Orders 123", "add_orders_123"},
		{"create-order-counters", "create_order_counters"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	tmpDir := t.TempDir()

	mf, err := CreateMigration(tmpDir, "add supplies table")
	require.NoError(t, err)
	require.NotNil(t, mf)

	// Version is a sortable YYYYMMDDHHMMSS stamp
	assert.Len(t, mf.Version, 14)

	assert.True(t, strings.HasSuffix(mf.UpPath, ".up.sql"))
	assert.True(t, strings.HasSuffix(mf.DownPath, ".down.sql"))

	upBase := strings.TrimSuffix(filepath.Base(mf.UpPath), ".up.sql")
	downBase := strings.TrimSuffix(filepath.Base(mf.DownPath), ".down.sql")
	assert.Equal(t, upBase, downBase)

	// Both files exist and carry the migration name
	upContent, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(upContent), "add supplies table")

	downContent, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(downContent), "Rollback")
}

func TestListMigrations(t *testing.T) {
	t.Run("lists migration base names once", func(t *testing.T) {
		tmpDir := t.TempDir()

		_, err := CreateMigration(tmpDir, "first")
		require.NoError(t, err)

		migrations, err := ListMigrations(tmpDir)
		require.NoError(t, err)
		require.Len(t, migrations, 1)
		assert.True(t, strings.HasSuffix(migrations[0], "_first"))
	})

	t.Run("missing directory yields empty list", func(t *testing.T) {
		migrations, err := ListMigrations(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})
}
