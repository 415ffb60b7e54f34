package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/organizer/internal/filelock"
)

// organizeArgs points --config at a missing file so the working directory's
// configuration never leaks into a test.
func organizeArgs(t *testing.T, extra ...string) []string {
	t.Helper()
	args := []string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}
	return append(args, extra...)
}

func countFiles(t *testing.T, root string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			n++
		}
		return nil
	})
	require.NoError(t, err)
	return n
}

func TestOrganize_DefaultRun(t *testing.T) {
	root := t.TempDir()
	source := filepath.Join(root, "source")
	output := filepath.Join(root, "output")

	out, err := executeCommand(organizeArgs(t, "--workers", "3", source, output)...)
	require.NoError(t, err)

	assert.Equal(t, 100, countFiles(t, source))
	assert.Equal(t, 100, countFiles(t, output))

	entries, err := os.ReadDir(output)
	require.NoError(t, err)
	assert.Len(t, entries, 8)

	assert.Contains(t, out, "Found 100 files")
	assert.Contains(t, out, "Operation complete")
	assert.Contains(t, out, "copied: 100, skipped: 0, failed: 0")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "Progress Copy [")
	assert.Contains(t, out, "100%")

	// The lock is released once the run returns.
	lock, err := filelock.AcquireDirLock(output)
	require.NoError(t, err)
	lock.Unlock()
}

func TestOrganize_ConfigFileAndFlagPrecedence(t *testing.T) {
	root := t.TempDir()
	source := filepath.Join(root, "source")
	output := filepath.Join(root, "output")
	configPath := filepath.Join(root, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("seed_count: 50\nextensions: [png, jpg]\n"), 0644))

	_, err := executeCommand("--config", configPath, "--seed-count", "10", source, output)
	require.NoError(t, err)

	// Flag wins over file for seed_count; extensions come from the file.
	assert.Equal(t, 10, countFiles(t, output))
	entries, err := os.ReadDir(output)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"png", "jpg"}, names)
}

func TestOrganize_KeepSource(t *testing.T) {
	root := t.TempDir()
	source := filepath.Join(root, "source")
	output := filepath.Join(root, "output")
	require.NoError(t, os.MkdirAll(filepath.Join(source, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(source, "sub", "photo.JPG"), []byte("jpg"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(source, "todo.txt"), []byte("txt"), 0644))

	out, err := executeCommand(organizeArgs(t, "--keep-source", source, output)...)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(output, "jpg", "photo.JPG"))
	assert.NoDirExists(t, filepath.Join(output, "txt"))
	assert.FileExists(t, filepath.Join(source, "todo.txt"))
	assert.Contains(t, out, "Extension txt is not supported")
	assert.Contains(t, out, "copied: 1, skipped: 1, failed: 0")
}

func TestOrganize_ReportAndLogDir(t *testing.T) {
	root := t.TempDir()
	reportPath := filepath.Join(root, "reports", "run.yaml")
	logDir := filepath.Join(root, "logs")

	out, err := executeCommand(organizeArgs(t,
		"--seed-count", "8",
		"--report", reportPath,
		"--log-dir", logDir,
		filepath.Join(root, "source"), filepath.Join(root, "output"),
	)...)
	require.NoError(t, err)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "copied: 8")
	assert.Contains(t, string(data), "run_id:")

	assert.FileExists(t, filepath.Join(logDir, "latest.log"))
	assert.Contains(t, out, "Logs written to:")

	logData, err := os.ReadFile(filepath.Join(logDir, "latest.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logData), "Operation complete")
}

func TestOrganize_LockHeld(t *testing.T) {
	root := t.TempDir()
	output := filepath.Join(root, "output")

	lock, err := filelock.AcquireDirLock(output)
	require.NoError(t, err)
	defer lock.Unlock()

	_, err = executeCommand(organizeArgs(t, filepath.Join(root, "source"), output)...)
	require.Error(t, err)
	assert.True(t, errors.Is(err, filelock.ErrLocked))

	// Nothing ran: the source was never created.
	assert.NoDirExists(t, filepath.Join(root, "source"))
}

func TestOrganize_LockHeldForNestedOutput(t *testing.T) {
	root := t.TempDir()
	t.Chdir(root)
	source := filepath.Join(root, "src")
	output := filepath.Join(source, "out")

	// Held through a relative path; the run names the output absolutely.
	lock, err := filelock.AcquireDirLock(filepath.Join("src", "out"))
	require.NoError(t, err)
	defer lock.Unlock()

	_, err = executeCommand(organizeArgs(t, source, output)...)
	require.Error(t, err)
	assert.True(t, errors.Is(err, filelock.ErrLocked))
}

func TestOrganize_LockOutsidePreparedDirectories(t *testing.T) {
	root := t.TempDir()
	output := filepath.Join(root, "out")
	require.NoError(t, os.MkdirAll(output, 0755))
	t.Chdir(output)

	_, err := executeCommand(organizeArgs(t, "--seed-count", "4", filepath.Join(root, "src"), ".")...)
	require.NoError(t, err)
	assert.Equal(t, 4, countFiles(t, output))

	lockPath, err := filelock.DirLockPath(".")
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(lockPath, root+string(filepath.Separator)),
		"lock %s must not live under the prepared directories", lockPath)
}

func TestOrganize_TraceLevel(t *testing.T) {
	root := t.TempDir()

	out, err := executeCommand(organizeArgs(t, "--log-level", "trace", "--seed-count", "2",
		filepath.Join(root, "src"), filepath.Join(root, "out"))...)
	require.NoError(t, err)

	assert.Contains(t, out, "[TRACE] Copying ")
}

func TestOrganize_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name  string
		flags []string
		want  string
	}{
		{name: "negative workers", flags: []string{"--workers", "-1"}, want: "workers must be >= 0"},
		{name: "bad log level", flags: []string{"--log-level", "chatty"}, want: "invalid log_level"},
		{name: "negative seed count", flags: []string{"--seed-count", "-5"}, want: "seed_count must be >= 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			args := append(tt.flags, filepath.Join(root, "src"), filepath.Join(root, "out"))
			_, err := executeCommand(organizeArgs(t, args...)...)
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.want), "error %v", err)
		})
	}
}

func TestOrganize_MalformedConfigFile(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(root, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("workers: [\n"), 0644))

	_, err := executeCommand("--config", configPath, filepath.Join(root, "src"), filepath.Join(root, "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
