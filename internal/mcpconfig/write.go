package mcpconfig

import (
	"fmt"
	"io"
	"os"
)

const (
	// BackupSuffix is appended to the config path for the pre-write copy.
	BackupSuffix = ".backup"
	tmpSuffix    = ".tmp"
)

// Backup copies path to path+".backup", replacing any earlier backup, and
// returns the backup path. File mode and modification time are preserved.
func Backup(path string) (string, error) {
	dst := path + BackupSuffix

	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening config for backup: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return "", fmt.Errorf("stat config for backup: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return "", fmt.Errorf("creating backup: %w", err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return "", fmt.Errorf("writing backup: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("writing backup: %w", err)
	}
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("setting backup permissions: %w", err)
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return "", fmt.Errorf("setting backup times: %w", err)
	}
	return dst, nil
}

// Save writes doc to path atomically: the JSON goes to path+".tmp" first and
// is renamed over path only once fully written and synced.
func Save(path string, doc *Document) error {
	data, err := doc.Bytes()
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) (err error) {
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	tmp := path + tmpSuffix
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err = f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing config: %w", err)
	}
	return nil
}
