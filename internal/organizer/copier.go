package organizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harrison/organizer/internal/fileutil"
)

// Copier copies files into extension-named folders under DestRoot.
// A Copier holds no mutable state and may be used from many goroutines.
type Copier struct {
	DestRoot   string
	Extensions *ExtensionSet
	Logger     Logger
}

// NewCopier creates a Copier targeting destRoot.
func NewCopier(destRoot string, exts *ExtensionSet, log Logger) *Copier {
	return &Copier{
		DestRoot:   destRoot,
		Extensions: exts,
		Logger:     orNop(log),
	}
}

// Destination returns the path src is copied to, whether or not its
// extension is allowed.
func (c *Copier) Destination(src string) string {
	return filepath.Join(c.DestRoot, ExtensionOf(src), filepath.Base(src))
}

// Copy classifies src by extension and copies it to
// <DestRoot>/<ext>/<name>. Unsupported extensions are skipped. Failures are
// logged and returned in the outcome, never as a panic or error return.
func (c *Copier) Copy(ctx context.Context, src string) CopyOutcome {
	start := time.Now()
	ext := ExtensionOf(src)
	outcome := CopyOutcome{Source: src, Extension: ext}

	finish := func(status CopyStatus, err error) CopyOutcome {
		outcome.Status = status
		outcome.Err = err
		outcome.Duration = time.Since(start)
		return outcome
	}

	if !c.Extensions.Contains(ext) {
		c.Logger.LogInfo(fmt.Sprintf("Extension %s is not supported, skipped %s", ext, src))
		return finish(StatusSkipped, nil)
	}

	dest := c.Destination(src)
	outcome.Destination = dest

	if err := ctx.Err(); err != nil {
		c.Logger.LogError(fmt.Sprintf("Copy of %s to %s cancelled: %v", src, dest, err))
		return finish(StatusFailed, newOpError(KindCopyIO, src, dest, err))
	}

	c.Logger.LogTrace(fmt.Sprintf("Copying %s to %s", src, dest))

	folder := filepath.Dir(dest)
	// MkdirAll tolerates concurrent creation of the same folder.
	if err := os.MkdirAll(folder, 0755); err != nil {
		c.Logger.LogError(fmt.Sprintf("Cannot create folder %s for %s: %v", folder, src, err))
		return finish(StatusFailed, newOpError(KindFolderCreate, src, dest, err))
	}

	n, err := fileutil.CopyFile(src, dest)
	if err != nil {
		c.Logger.LogError(fmt.Sprintf("Error copying %s to %s: %v", src, dest, err))
		return finish(StatusFailed, newOpError(KindCopyIO, src, dest, err))
	}

	outcome.Bytes = n
	c.Logger.LogInfo(fmt.Sprintf("Copied %s to %s", filepath.Base(src), folder))
	return finish(StatusCopied, nil)
}
