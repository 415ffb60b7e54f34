package organizer

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// recordingLogger captures messages by level for assertions.
type recordingLogger struct {
	mu     sync.Mutex
	traces []string
	infos  []string
	errors []string
	stages []string
}

func (r *recordingLogger) LogTrace(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.traces = append(r.traces, message)
}

func (r *recordingLogger) LogDebug(string) {}

func (r *recordingLogger) LogInfo(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, message)
}

func (r *recordingLogger) LogWarn(string) {}

func (r *recordingLogger) LogError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, message)
}

func (r *recordingLogger) LogStageStart(stage string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = append(r.stages, "start:"+stage)
}

func (r *recordingLogger) LogStageComplete(stage string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = append(r.stages, "done:"+stage)
}

func (r *recordingLogger) errorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errors)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// listTree returns paths relative to root for every regular file under it.
func listTree(t *testing.T, root string) map[string]bool {
	t.Helper()
	files := make(map[string]bool)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			rel, _ := filepath.Rel(root, path)
			files[filepath.ToSlash(rel)] = true
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return files
}

func skipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission checks are bypassed for root")
	}
}

func seedName(i int, ext string) string {
	return fmt.Sprintf("file_%d.%s", i, ext)
}
