package infra

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupCopiesDatabaseFile(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "data.sqlite")

	db, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, Close(db))

	backupDir := filepath.Join(dir, "backups")
	dest, err := Backup(dbPath, backupDir)
	require.NoError(t, err)

	src, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	copied, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, src, copied)
	assert.Contains(t, filepath.Base(dest), "data-")
}

func TestBackupMissingSource(t *testing.T) {
	dir := t.TempDir()
	_, err := Backup(filepath.Join(dir, "nope.sqlite"), filepath.Join(dir, "backups"))
	require.Error(t, err)
}

func TestOpenMigratesSchema(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer Close(db)

	for _, table := range []string{
		"products", "variants", "providers", "purchases", "purchase_items",
		"customers", "customer_accounts", "account_movements",
		"sales", "sale_items", "register_sessions", "cash_movements",
		"audit_log", "users",
	} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}
