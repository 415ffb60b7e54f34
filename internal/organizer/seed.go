package organizer

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultSeedCount is the number of placeholder files SeedCorpus creates
// unless configured otherwise.
const DefaultSeedCount = 100

// SeedFileName returns the placeholder name for 1-based index i.
func SeedFileName(i int, exts *ExtensionSet) string {
	return fmt.Sprintf("file_%d.%s", i, exts.At(i-1))
}

// SeedCorpus creates count empty files named file_<i>.<ext> in dir, cycling
// through exts in order. Each file is attempted independently; failures are
// logged and collected, and already-created files are left in place.
func SeedCorpus(dir string, exts *ExtensionSet, count int, log Logger) []error {
	log = orNop(log)
	if exts.Len() == 0 {
		err := fmt.Errorf("no extensions configured")
		log.LogError(fmt.Sprintf("Cannot seed %s: %v", dir, err))
		return []error{newOpError(KindFileCreate, dir, "", err)}
	}

	log.LogInfo(fmt.Sprintf("Creating %d placeholder files in %s", count, dir))

	var errs []error
	for i := 1; i <= count; i++ {
		path := filepath.Join(dir, SeedFileName(i, exts))
		f, err := os.Create(path)
		if err == nil {
			err = f.Close()
		}
		if err != nil {
			log.LogError(fmt.Sprintf("Cannot create file %s: %v", path, err))
			errs = append(errs, newOpError(KindFileCreate, path, "", err))
		}
	}

	log.LogInfo(fmt.Sprintf("Placeholder files created: %d/%d", count-len(errs), count))
	return errs
}
