package infra

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Backup copies the database file into backupDir under a timestamped name
// and returns the destination path. Scheduling is up to the caller.
func Backup(dbPath, backupDir string) (string, error) {
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", err
	}

	stamp := time.Now().UTC().Format("20060102-150405")
	dest := filepath.Join(backupDir, fmt.Sprintf("data-%s.sqlite", stamp))

	src, err := os.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	if err := dst.Sync(); err != nil {
		return "", err
	}
	return dest, nil
}
