package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyFile copies src to dst along with its permission bits and
// access/modification times. Content is written to a temp file next to dst
// and renamed into place, so dst is either the old file or the complete new
// one. An existing dst is overwritten. It returns the number of bytes copied.
func CopyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat source: %w", err)
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("source is not a regular file: %s", src)
	}

	// Reading the source may advance its access time.
	atime := accessTime(src, info)

	tempFile, err := os.CreateTemp(filepath.Dir(dst), ".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	// Remove the temp file unless it was renamed into place.
	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	n, err := io.Copy(tempFile, in)
	if err != nil {
		return n, fmt.Errorf("failed to copy contents: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return n, fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tempPath, info.Mode().Perm()); err != nil {
		return n, fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Chtimes(tempPath, atime, info.ModTime()); err != nil {
		return n, fmt.Errorf("failed to set times: %w", err)
	}

	if err := os.Rename(tempPath, dst); err != nil {
		return n, fmt.Errorf("failed to rename temp file to %s: %w", dst, err)
	}
	tempFile = nil

	return n, nil
}
