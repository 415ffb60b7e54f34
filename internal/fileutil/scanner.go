package fileutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// Pattern is a regex pattern to match filenames (without extension)
	Pattern string
	// Extensions is a list of file extensions to include (e.g., ".png", "jpg")
	Extensions []string
	// Recursive enables recursive directory scanning
	Recursive bool
	// ExcludeDirs is a list of directory names to exclude (e.g., ".git", "node_modules")
	ExcludeDirs []string
	// MaxDepth limits recursion depth (0 = unlimited, 1 = current dir only)
	MaxDepth int
	// IncludeHidden descends into directories whose name starts with "."
	IncludeHidden bool
	// FollowSymlinks resolves symlinks: links to directories are traversed
	// and links to files are judged by their target.
	FollowSymlinks bool
	// RegularOnly drops entries that are not regular files (devices, sockets, pipes)
	RegularOnly bool
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Files contains the absolute paths of all matched files
	Files []string
	// Errors contains any errors encountered during scanning
	Errors []error
}

type walker struct {
	root       string
	opts       ScanOptions
	pattern    *regexp.Regexp
	extMap     map[string]bool
	excludeMap map[string]bool
	visited    map[string]bool
	result     *ScanResult
}

// ScanDirectory scans a directory for files matching the provided options.
// Only an inaccessible root or an invalid pattern is fatal; everything else
// lands in ScanResult.Errors and scanning continues.
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	w := &walker{
		root:       dir,
		opts:       opts,
		extMap:     make(map[string]bool),
		excludeMap: make(map[string]bool),
		visited:    make(map[string]bool),
		result: &ScanResult{
			Files:  make([]string, 0),
			Errors: make([]error, 0),
		},
	}

	if opts.Pattern != "" {
		w.pattern, err = regexp.Compile(opts.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}
	}

	for _, ext := range opts.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		w.extMap[strings.ToLower(ext)] = true
	}
	for _, name := range opts.ExcludeDirs {
		w.excludeMap[name] = true
	}

	w.walkDir(dir, 0)

	sort.Strings(w.result.Files)
	return w.result, nil
}

// ScanTree collects every regular file under root, descending into hidden
// directories and through symlinked directories. A failure on the root
// itself is returned in Errors alongside an empty file list.
func ScanTree(root string) *ScanResult {
	result, err := ScanDirectory(root, ScanOptions{
		Recursive:      true,
		IncludeHidden:  true,
		FollowSymlinks: true,
		RegularOnly:    true,
	})
	if err != nil {
		return &ScanResult{Files: []string{}, Errors: []error{err}}
	}
	return result
}

func (w *walker) walkDir(dir string, depth int) {
	if w.opts.FollowSymlinks {
		// Guard against symlink cycles by tracking resolved directories.
		if real, err := filepath.EvalSymlinks(dir); err == nil {
			if w.visited[real] {
				return
			}
			w.visited[real] = true
		}
	}

	// ReadDir returns the entries it managed to read alongside the error.
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.result.Errors = append(w.result.Errors, fmt.Errorf("error accessing %s: %w", dir, err))
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		mode := entry.Type()

		if mode&fs.ModeSymlink != 0 && w.opts.FollowSymlinks {
			target, err := os.Stat(path)
			if err != nil {
				w.result.Errors = append(w.result.Errors, fmt.Errorf("error resolving %s: %w", path, err))
				continue
			}
			mode = target.Mode().Type()
		}

		if mode.IsDir() {
			if w.skipDir(entry.Name(), depth+1) {
				continue
			}
			w.walkDir(path, depth+1)
			continue
		}

		if w.opts.RegularOnly && !mode.IsRegular() {
			continue
		}
		w.collect(path, entry.Name())
	}
}

func (w *walker) skipDir(name string, depth int) bool {
	if w.excludeMap[name] {
		return true
	}
	if !w.opts.IncludeHidden && strings.HasPrefix(name, ".") {
		return true
	}
	if !w.opts.Recursive {
		return true
	}
	return w.opts.MaxDepth > 0 && depth >= w.opts.MaxDepth
}

func (w *walker) collect(path, filename string) {
	if len(w.extMap) > 0 {
		ext := strings.ToLower(filepath.Ext(filename))
		if !w.extMap[ext] {
			return
		}
	}

	if w.pattern != nil {
		nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))
		if !w.pattern.MatchString(nameWithoutExt) {
			return
		}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		w.result.Errors = append(w.result.Errors, fmt.Errorf("failed to resolve path %s: %w", path, err))
		return
	}
	w.result.Files = append(w.result.Files, absPath)
}
