package organizer

import (
	"path/filepath"
	"strings"
)

// NoExtension is the extension reported for files whose name has no suffix.
const NoExtension = "no_extension"

// DefaultExtensions is the allowed extension order used when no
// configuration overrides it.
var DefaultExtensions = []string{"png", "jpg", "doc", "docx", "ppt", "pptx", "xls", "xlsx"}

// ExtensionSet is an ordered, immutable set of lowercase extensions without
// a leading dot. It is safe for concurrent reads.
type ExtensionSet struct {
	order   []string
	members map[string]bool
}

// NewExtensionSet builds a set from exts. Entries are lowercased, a leading
// dot is stripped, and duplicates or empty entries are dropped while the
// first-seen order is kept.
func NewExtensionSet(exts []string) *ExtensionSet {
	set := &ExtensionSet{
		order:   make([]string, 0, len(exts)),
		members: make(map[string]bool, len(exts)),
	}
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext == "" || set.members[ext] {
			continue
		}
		set.members[ext] = true
		set.order = append(set.order, ext)
	}
	return set
}

// DefaultExtensionSet returns a set built from DefaultExtensions.
func DefaultExtensionSet() *ExtensionSet {
	return NewExtensionSet(DefaultExtensions)
}

// Contains reports whether ext is in the set.
func (s *ExtensionSet) Contains(ext string) bool {
	return s.members[ext]
}

// Len returns the number of extensions.
func (s *ExtensionSet) Len() int {
	return len(s.order)
}

// At returns the extension for round-robin position i (wraps around).
func (s *ExtensionSet) At(i int) string {
	if len(s.order) == 0 {
		return ""
	}
	return s.order[i%len(s.order)]
}

// List returns a copy of the extensions in order.
func (s *ExtensionSet) List() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// ExtensionOf returns the lowercased substring after the last dot of the
// base name of path, or NoExtension. A name whose only dot is the leading
// one (".bashrc") has no extension.
func ExtensionOf(path string) string {
	name := filepath.Base(path)
	idx := strings.LastIndex(name, ".")
	if idx <= 0 || idx == len(name)-1 {
		return NoExtension
	}
	return strings.ToLower(name[idx+1:])
}
