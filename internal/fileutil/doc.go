// Package fileutil provides directory scanning and file copying for the
// organizer pipeline.
//
// # Scanning
//
// ScanDirectory walks a directory with configurable filtering:
//   - Extensions: case-insensitive suffixes, with or without the leading dot
//   - Pattern: regex matched against the file name without its extension
//   - Recursive and MaxDepth: how far below the root to descend
//     (MaxDepth 0 = unlimited, 1 = root only)
//   - ExcludeDirs: directory names never entered
//   - IncludeHidden: enter directories whose names start with "."
//   - FollowSymlinks: traverse linked directories and judge linked files by
//     their targets; cycles are detected by resolved path
//   - RegularOnly: drop devices, sockets and pipes
//
// Only an inaccessible root or an invalid pattern is fatal. Unreadable
// subdirectories and broken links are collected in ScanResult.Errors and the
// walk continues. Matched paths are absolute and sorted.
//
// ScanTree is the configuration the pipeline uses: every regular file under
// the root, hidden directories and symlinked directories included.
//
//	result := fileutil.ScanTree("/data/source")
//	for _, err := range result.Errors {
//	    log.Printf("scan: %v", err)
//	}
//	fmt.Printf("found %d files\n", len(result.Files))
//
// # Copying
//
// CopyFile copies one file, keeping its permission bits and access and
// modification times. Data goes to a temp file beside the destination which
// is then renamed over it, so concurrent writers to the same destination
// leave one complete file behind (last writer wins).
package fileutil
