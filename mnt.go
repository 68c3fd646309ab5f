// Package mnt parses the Linux kernel mount tables
// (/proc/<pid>/mountinfo and /proc/mounts) into structured entries and
// answers containment and overlap queries over them: which filesystem
// is mounted where, with what options, and which mounts are still
// visible once later mounts have shadowed earlier ones.
//
// The package never mounts or unmounts anything, does not watch for
// mount table changes and does not resolve symlinks; each query
// re-reads its input from scratch.
package mnt

import (
	"path/filepath"
	"strings"
)

// pathHasPrefix reports whether path equals prefix or is a descendant
// of it, comparing whole path components so that "/var" does not match
// "/variant".
func pathHasPrefix(path, prefix string) bool {
	path = filepath.Clean(path)
	prefix = filepath.Clean(prefix)
	if path == prefix {
		return true
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(path, prefix)
}

// splitList splits a comma separated field, dropping a single trailing
// empty element so that "rw," means the same as "rw". Interior empty
// elements are preserved.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	if n := len(parts); n > 0 && parts[n-1] == "" {
		parts = parts[:n-1]
	}
	return parts
}
