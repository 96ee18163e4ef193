package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func writeDatabase(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "fidra.db")
	assert.NoError(t, os.WriteFile(path, []byte("ledger contents"), 0o644))
	return path
}

func TestCreate(t *testing.T) {
	tmp := t.TempDir()
	dbPath := writeDatabase(t, tmp)
	backupDir := filepath.Join(tmp, "backups")

	b, err := Create(dbPath, backupDir)
	assert.NoError(t, err)
	assert.Equal(t, int64(len("ledger contents")), b.Size)

	copied, err := os.ReadFile(b.Path)
	assert.NoError(t, err)
	assert.Equal(t, "ledger contents", string(copied))
}

func TestCreateMissingDatabase(t *testing.T) {
	tmp := t.TempDir()

	_, err := Create(filepath.Join(tmp, "absent.db"), filepath.Join(tmp, "backups"))
	assert.Error(t, err)
}

func TestListNewestFirst(t *testing.T) {
	tmp := t.TempDir()
	backupDir := filepath.Join(tmp, "backups")
	assert.NoError(t, os.MkdirAll(backupDir, 0o755))

	// Stamped names control ordering; file mtimes are irrelevant.
	for _, name := range []string{
		"fidra-20240101-080000.db",
		"fidra-20240103-080000.db",
		"fidra-20240102-080000.db",
		"notes.txt",        // ignored
		"unstamped.db",     // ignored
	} {
		assert.NoError(t, os.WriteFile(filepath.Join(backupDir, name), []byte("x"), 0o644))
	}

	backups, err := List(backupDir)
	assert.NoError(t, err)
	assert.Equal(t, 3, len(backups))

	assert.Equal(t, time.Date(2024, time.January, 3, 8, 0, 0, 0, time.Local), backups[0].CreatedAt)
	assert.Equal(t, time.Date(2024, time.January, 2, 8, 0, 0, 0, time.Local), backups[1].CreatedAt)
	assert.Equal(t, time.Date(2024, time.January, 1, 8, 0, 0, 0, time.Local), backups[2].CreatedAt)
}

func TestListMissingDirectory(t *testing.T) {
	backups, err := List(filepath.Join(t.TempDir(), "nowhere"))
	assert.NoError(t, err)
	assert.Equal(t, 0, len(backups))
}

func TestPrune(t *testing.T) {
	tmp := t.TempDir()
	backupDir := filepath.Join(tmp, "backups")
	assert.NoError(t, os.MkdirAll(backupDir, 0o755))

	for _, name := range []string{
		"fidra-20240101-080000.db",
		"fidra-20240102-080000.db",
		"fidra-20240103-080000.db",
		"fidra-20240104-080000.db",
	} {
		assert.NoError(t, os.WriteFile(filepath.Join(backupDir, name), []byte("x"), 0o644))
	}

	pruned, err := Prune(backupDir, 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(pruned))

	remaining, err := List(backupDir)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(remaining))

	// The newest two survive.
	assert.Equal(t, time.Date(2024, time.January, 4, 8, 0, 0, 0, time.Local), remaining[0].CreatedAt)
	assert.Equal(t, time.Date(2024, time.January, 3, 8, 0, 0, 0, time.Local), remaining[1].CreatedAt)
}

func TestPruneNothingToDo(t *testing.T) {
	tmp := t.TempDir()
	backupDir := filepath.Join(tmp, "backups")
	assert.NoError(t, os.MkdirAll(backupDir, 0o755))

	pruned, err := Prune(backupDir, 5)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(pruned))
}

func TestPruneNegativeKeep(t *testing.T) {
	_, err := Prune(t.TempDir(), -1)
	assert.Error(t, err)
}
