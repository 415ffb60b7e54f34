package organizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopier_CopiesAllowedExtension(t *testing.T) {
	src := filepath.Join(t.TempDir(), "photos", "Holiday.PNG")
	writeFile(t, src, "\x89PNG binary payload")
	require.NoError(t, os.Chmod(src, 0600))
	mtime := time.Date(2020, 5, 17, 10, 30, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	dest := t.TempDir()
	c := NewCopier(dest, DefaultExtensionSet(), nil)

	outcome := c.Copy(context.Background(), src)

	require.Equal(t, StatusCopied, outcome.Status, "err: %v", outcome.Err)
	assert.NoError(t, outcome.Err)
	assert.Equal(t, "png", outcome.Extension)
	assert.Equal(t, filepath.Join(dest, "png", "Holiday.PNG"), outcome.Destination)
	assert.Equal(t, int64(len("\x89PNG binary payload")), outcome.Bytes)

	got, err := os.ReadFile(outcome.Destination)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG binary payload", string(got))

	info, err := os.Stat(outcome.Destination)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	assert.True(t, info.ModTime().Equal(mtime), "mtime %v, want %v", info.ModTime(), mtime)

	// No temp files are left behind in the extension folder.
	entries, err := os.ReadDir(filepath.Join(dest, "png"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCopier_SkipsUnsupported(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		wantExt string
	}{
		{name: "unknown extension", file: "notes.txt", wantExt: "txt"},
		{name: "no extension", file: "Makefile", wantExt: NoExtension},
		{name: "dotfile", file: ".env", wantExt: NoExtension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := filepath.Join(t.TempDir(), tt.file)
			writeFile(t, src, "content")
			dest := t.TempDir()
			log := &recordingLogger{}

			outcome := NewCopier(dest, DefaultExtensionSet(), log).Copy(context.Background(), src)

			assert.Equal(t, StatusSkipped, outcome.Status)
			assert.NoError(t, outcome.Err)
			assert.Equal(t, tt.wantExt, outcome.Extension)
			assert.Empty(t, outcome.Destination)
			assert.Empty(t, listTree(t, dest), "nothing may appear under dest")
			assert.Zero(t, log.errorCount(), "a skip is not an error")
		})
	}
}

func TestCopier_OverwritesExisting(t *testing.T) {
	src := filepath.Join(t.TempDir(), "sheet.xlsx")
	writeFile(t, src, "new")
	dest := t.TempDir()
	writeFile(t, filepath.Join(dest, "xlsx", "sheet.xlsx"), "old and longer")

	outcome := NewCopier(dest, DefaultExtensionSet(), nil).Copy(context.Background(), src)
	require.Equal(t, StatusCopied, outcome.Status)

	got, err := os.ReadFile(filepath.Join(dest, "xlsx", "sheet.xlsx"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestCopier_MissingSource(t *testing.T) {
	src := filepath.Join(t.TempDir(), "gone.doc")
	dest := t.TempDir()
	log := &recordingLogger{}

	outcome := NewCopier(dest, DefaultExtensionSet(), log).Copy(context.Background(), src)

	assert.Equal(t, StatusFailed, outcome.Status)
	var opErr *OpError
	require.True(t, errors.As(outcome.Err, &opErr))
	assert.Equal(t, KindCopyIO, opErr.Kind)
	assert.Equal(t, src, opErr.Path)
	assert.Equal(t, filepath.Join(dest, "doc", "gone.doc"), opErr.Dest)
	assert.True(t, errors.Is(outcome.Err, os.ErrNotExist))
	assert.Equal(t, 1, log.errorCount())
	assert.NoFileExists(t, filepath.Join(dest, "doc", "gone.doc"))
}

func TestCopier_FolderCreateFailure(t *testing.T) {
	src := filepath.Join(t.TempDir(), "slides.ppt")
	writeFile(t, src, "deck")

	// The destination root is a regular file, so no folder fits under it.
	dest := filepath.Join(t.TempDir(), "output")
	writeFile(t, dest, "not a dir")

	outcome := NewCopier(dest, DefaultExtensionSet(), nil).Copy(context.Background(), src)

	assert.Equal(t, StatusFailed, outcome.Status)
	var opErr *OpError
	require.True(t, errors.As(outcome.Err, &opErr))
	assert.Equal(t, KindFolderCreate, opErr.Kind)
}

func TestCopier_CancelledContext(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a.jpg")
	writeFile(t, src, "jpeg")
	dest := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome := NewCopier(dest, DefaultExtensionSet(), nil).Copy(ctx, src)

	assert.Equal(t, StatusFailed, outcome.Status)
	assert.True(t, errors.Is(outcome.Err, context.Canceled))
	assert.Empty(t, listTree(t, dest))
}

func TestCopier_ConcurrentSameFolder(t *testing.T) {
	srcDir := t.TempDir()
	dest := t.TempDir()
	c := NewCopier(dest, DefaultExtensionSet(), nil)

	const n = 40
	for i := 0; i < n; i++ {
		writeFile(t, filepath.Join(srcDir, fmt.Sprintf("doc_%d.docx", i)), fmt.Sprintf("body %d", i))
	}

	var wg sync.WaitGroup
	outcomes := make([]CopyOutcome, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i] = c.Copy(context.Background(), filepath.Join(srcDir, fmt.Sprintf("doc_%d.docx", i)))
		}(i)
	}
	wg.Wait()

	for i, o := range outcomes {
		assert.Equal(t, StatusCopied, o.Status, "file %d: %v", i, o.Err)
	}
	assert.Len(t, listTree(t, dest), n)
}

func TestCopier_TracesEachCopy(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a.xls")
	writeFile(t, src, "sheet")
	dest := t.TempDir()
	log := &recordingLogger{}

	NewCopier(dest, DefaultExtensionSet(), log).Copy(context.Background(), src)

	want := fmt.Sprintf("Copying %s to %s", src, filepath.Join(dest, "xls", "a.xls"))
	assert.Equal(t, []string{want}, log.traces)
}
