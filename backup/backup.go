// Package backup manages timestamped copies of the ledger database.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/exp/slices"
)

const timestampLayout = "20060102-150405"

// Backup describes one stored backup file.
type Backup struct {
	Path      string
	CreatedAt time.Time
	Size      int64
}

// Create copies the database at dbPath into dir under a timestamped name and
// returns the backup. The directory is created if needed.
func Create(dbPath, dir string) (*Backup, error) {
	src, err := os.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	now := time.Now()
	base := strings.TrimSuffix(filepath.Base(dbPath), filepath.Ext(dbPath))
	name := fmt.Sprintf("%s-%s.db", base, now.Format(timestampLayout))
	target := filepath.Join(dir, name)

	dst, err := os.Create(target)
	if err != nil {
		return nil, fmt.Errorf("failed to create backup file: %w", err)
	}

	size, err := io.Copy(dst, src)
	if err != nil {
		_ = dst.Close()
		_ = os.Remove(target)
		return nil, fmt.Errorf("failed to copy database: %w", err)
	}
	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish backup: %w", err)
	}

	return &Backup{Path: target, CreatedAt: now, Size: size}, nil
}

// List returns the backups in dir, newest first. A missing directory yields
// an empty list, not an error.
func List(dir string) ([]*Backup, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []*Backup
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".db") {
			continue
		}

		createdAt, ok := parseTimestamp(entry.Name())
		if !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return nil, err
		}

		backups = append(backups, &Backup{
			Path:      filepath.Join(dir, entry.Name()),
			CreatedAt: createdAt,
			Size:      info.Size(),
		})
	}

	slices.SortFunc(backups, func(a, b *Backup) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return backups, nil
}

// Prune deletes all but the keep newest backups in dir and returns the
// removed ones.
func Prune(dir string, keep int) ([]*Backup, error) {
	if keep < 0 {
		return nil, fmt.Errorf("keep must be non-negative, got %d", keep)
	}

	backups, err := List(dir)
	if err != nil {
		return nil, err
	}
	if len(backups) <= keep {
		return nil, nil
	}

	pruned := backups[keep:]
	for _, b := range pruned {
		if err := os.Remove(b.Path); err != nil {
			return nil, fmt.Errorf("failed to remove %s: %w", b.Path, err)
		}
	}

	return pruned, nil
}

// parseTimestamp extracts the creation time from a backup file name of the
// form <base>-YYYYMMDD-HHMMSS.db.
func parseTimestamp(name string) (time.Time, bool) {
	name = strings.TrimSuffix(name, ".db")
	if len(name) < len(timestampLayout) {
		return time.Time{}, false
	}

	stamp := name[len(name)-len(timestampLayout):]
	t, err := time.ParseInLocation(timestampLayout, stamp, time.Local)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}
