package organizer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// PrepareDirectory leaves dir existing and empty. Existing children are
// removed one by one; a failure on one child is logged and collected and
// the rest are still removed. A missing dir is created with its parents.
// The returned errors are all *OpError.
func PrepareDirectory(dir string, log Logger) []error {
	log = orNop(log)

	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(dir, 0755); err != nil {
			opErr := newOpError(KindDirectoryCreate, dir, "", err)
			log.LogError(fmt.Sprintf("Cannot create directory %s: %v", dir, err))
			return []error{opErr}
		}
		log.LogInfo(fmt.Sprintf("Created directory: %s", dir))
		return nil
	case err != nil:
		log.LogError(fmt.Sprintf("Cannot access directory %s: %v", dir, err))
		return []error{newOpError(KindDirectoryCreate, dir, "", err)}
	case !info.IsDir():
		err := fmt.Errorf("path exists and is not a directory")
		log.LogError(fmt.Sprintf("Cannot prepare %s: %v", dir, err))
		return []error{newOpError(KindDirectoryCreate, dir, "", err)}
	}

	log.LogInfo(fmt.Sprintf("Cleaning directory: %s", dir))

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.LogError(fmt.Sprintf("Cannot list directory %s: %v", dir, err))
		return []error{newOpError(KindDirectoryCleanup, dir, "", err)}
	}

	var errs []error
	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name())
		var rmErr error
		if entry.IsDir() {
			rmErr = os.RemoveAll(child)
		} else {
			rmErr = os.Remove(child)
		}
		if rmErr != nil {
			log.LogError(fmt.Sprintf("Cannot remove %s: %v", child, rmErr))
			errs = append(errs, newOpError(KindDirectoryCleanup, child, "", rmErr))
		}
	}
	return errs
}
