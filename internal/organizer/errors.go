package organizer

import (
	"fmt"
	"strings"
)

// ErrorKind classifies where in the pipeline an operation failed.
type ErrorKind int

const (
	// KindDirectoryCleanup is a failure removing a child of a prepared directory.
	KindDirectoryCleanup ErrorKind = iota
	// KindDirectoryCreate is a failure creating a prepared directory.
	KindDirectoryCreate
	// KindFileCreate is a failure creating a placeholder file.
	KindFileCreate
	// KindTreeScan is a failure while walking the source tree.
	KindTreeScan
	// KindFolderCreate is a failure creating an extension folder.
	KindFolderCreate
	// KindCopyIO is a failure copying file contents or metadata.
	KindCopyIO
)

// String returns the string representation of ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case KindDirectoryCleanup:
		return "directory cleanup"
	case KindDirectoryCreate:
		return "directory create"
	case KindFileCreate:
		return "file create"
	case KindTreeScan:
		return "tree scan"
	case KindFolderCreate:
		return "folder create"
	case KindCopyIO:
		return "copy"
	default:
		return "unknown"
	}
}

// OpError records a single failed filesystem operation. Dest is set only
// for copy-stage failures.
type OpError struct {
	Kind ErrorKind
	Path string
	Dest string
	Err  error
}

func newOpError(kind ErrorKind, path, dest string, err error) *OpError {
	return &OpError{Kind: kind, Path: path, Dest: dest, Err: err}
}

// Error implements the error interface for OpError.
func (e *OpError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	sb.WriteString(" ")
	sb.WriteString(e.Path)
	if e.Dest != "" {
		sb.WriteString(fmt.Sprintf(" -> %s", e.Dest))
	}
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return sb.String()
}

// Unwrap returns the underlying error for error wrapping support.
func (e *OpError) Unwrap() error {
	return e.Err
}
