package mnt

import (
	"errors"
	"io"
	"path/filepath"
)

// Filter is a predicate over a single mount entry, used to build ad
// hoc searches over a parsed stream. Filters never fail and do not
// modify the entry.
type Filter func(*MountInfoEntry) bool

// Matches reports whether the entry satisfies the filter.
func (e *MountInfoEntry) Matches(f Filter) bool {
	return f(e)
}

// FilterID matches on the mount id.
func FilterID(id int) Filter {
	return func(e *MountInfoEntry) bool { return e.ID == id }
}

// FilterParentID matches on the parent mount id.
func FilterParentID(id int) Filter {
	return func(e *MountInfoEntry) bool { return e.ParentID == id }
}

// FilterMajor matches on the device major number.
func FilterMajor(major uint32) Filter {
	return func(e *MountInfoEntry) bool { return e.Major == major }
}

// FilterMinor matches on the device minor number.
func FilterMinor(minor uint32) Filter {
	return func(e *MountInfoEntry) bool { return e.Minor == minor }
}

// FilterRoot matches the root path exactly.
func FilterRoot(root string) Filter {
	return func(e *MountInfoEntry) bool { return e.Root == root }
}

// FilterFile matches the mount point exactly.
func FilterFile(file string) Filter {
	return func(e *MountInfoEntry) bool { return e.File == file }
}

// FilterMntOps matches entries whose option list contains op.
func FilterMntOps(op MntOps) Filter {
	return func(e *MountInfoEntry) bool { return e.HasMntOps(op) }
}

// FilterOptional matches entries carrying the optional field tag,
// whatever its value.
func FilterOptional(tag string) Filter {
	return func(e *MountInfoEntry) bool {
		_, ok := e.Optionals[tag]
		return ok
	}
}

// FilterVfstype matches the filesystem type exactly.
func FilterVfstype(vfstype string) Filter {
	return func(e *MountInfoEntry) bool { return e.Vfstype == vfstype }
}

// FilterSpec matches the mount source exactly. Pass the empty string
// to match entries with no source (kernel "none").
func FilterSpec(spec string) Filter {
	return func(e *MountInfoEntry) bool { return e.Spec == spec }
}

// FilterSuperOption matches entries whose superblock option set
// contains opt.
func FilterSuperOption(opt string) Filter {
	return func(e *MountInfoEntry) bool {
		_, ok := e.SuperOptions[opt]
		return ok
	}
}

// GetSubmountsFrom consumes it and returns every mount whose mount
// point is root or a descendant of it, in the order the kernel
// recorded them. The first parse or read error anywhere in the stream
// aborts the whole query.
func GetSubmountsFrom(root string, it *Iter) ([]*MountInfoEntry, error) {
	var mounts []*MountInfoEntry
	for {
		m, err := it.Next()
		if errors.Is(err, io.EOF) {
			return mounts, nil
		}
		if err != nil {
			return nil, err
		}
		if pathHasPrefix(m.File, root) {
			mounts = append(mounts, m)
		}
	}
}

// GetSubmounts returns every mount from root and beneath in the
// current process's mount table.
func GetSubmounts(root string) ([]*MountInfoEntry, error) {
	it, err := Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = it.Close() }()
	return GetSubmountsFrom(root, it)
}

// GetMountFrom consumes it and returns the most recently recorded
// mount whose mount point is target or an ancestor of it. Later
// entries win because later recorded mounts reflect more specific
// overmounts. It returns nil with no error when nothing matches.
func GetMountFrom(target string, it *Iter) (*MountInfoEntry, error) {
	var found *MountInfoEntry
	for {
		m, err := it.Next()
		if errors.Is(err, io.EOF) {
			return found, nil
		}
		if err != nil {
			return nil, err
		}
		if pathHasPrefix(target, m.File) {
			found = m
		}
	}
}

// GetMount returns the mount point for target in the current
// process's mount table.
func GetMount(target string) (*MountInfoEntry, error) {
	it, err := Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = it.Close() }()
	return GetMountFrom(target, it)
}

// GetMountWritableFrom is like GetMountFrom but, when writable is
// set, additionally requires the mount to carry the "rw" option. Any
// failure (read error, parse error, no matching mount) collapses to
// nil: this helper deliberately trades error detail for a simple
// present-or-absent answer.
//
// The target path is not checked for existence, only its would-be
// enclosing mount point.
func GetMountWritableFrom(target string, writable bool, it *Iter) *MountInfoEntry {
	m, err := GetMountFrom(target, it)
	if err != nil || m == nil {
		return nil
	}
	if writable && !m.HasMntOps(MntOps{Kind: OpWrite, Set: true}) {
		return nil
	}
	return m
}

// GetMountWritable finds the mount providing access to target in the
// current process's mount table, requiring write access when writable
// is set.
func GetMountWritable(target string, writable bool) *MountInfoEntry {
	it, err := Open()
	if err != nil {
		return nil
	}
	defer func() { _ = it.Close() }()
	return GetMountWritableFrom(target, writable, it)
}

// IsMountpointFrom consumes it and reports whether path is the mount
// point of at least one recorded mount. The path is compared cleaned
// but not resolved: symlinks are not followed and the path is not
// required to exist.
func IsMountpointFrom(path string, it *Iter) (bool, error) {
	path = filepath.Clean(path)
	found := false
	for {
		m, err := it.Next()
		if errors.Is(err, io.EOF) {
			return found, nil
		}
		if err != nil {
			return false, err
		}
		if filepath.Clean(m.File) == path {
			found = true
		}
	}
}

// IsMountpoint reports whether path is a mount point in the current
// process's mount table.
func IsMountpoint(path string) (bool, error) {
	it, err := Open()
	if err != nil {
		return false, err
	}
	defer func() { _ = it.Close() }()
	return IsMountpointFrom(path, it)
}

// RemoveOverlaps filters a chronologically ordered mount list down to
// the entries still visible at query time: a mount recorded later at
// the same or a nested path hides an earlier one. Entries mounted on
// "/" itself are dropped as synthetic roots introduced by bind mount
// bookkeeping. Paths listed in excludeFiles are ignored as
// obstructions when checking other mounts for shadowing, but are not
// themselves forced to stay. The result preserves chronological order.
//
// Known approximation: a mount moved to a new path keeps its original
// position in the table, so a moved mount cannot be told apart from
// one still at the location it was first recorded at.
func RemoveOverlaps(mounts []*MountInfoEntry, excludeFiles []string) []*MountInfoEntry {
	var visible []*MountInfoEntry
	for i := len(mounts) - 1; i >= 0; i-- {
		m := mounts[i]
		if filepath.Clean(m.File) == "/" {
			continue
		}
		shadowed := false
		for _, v := range visible {
			if isExcluded(excludeFiles, v.File) {
				continue
			}
			if pathHasPrefix(m.File, v.File) {
				shadowed = true
				break
			}
		}
		if !shadowed {
			visible = append(visible, m)
		}
	}
	for i, j := 0, len(visible)-1; i < j; i, j = i+1, j-1 {
		visible[i], visible[j] = visible[j], visible[i]
	}
	return visible
}

func isExcluded(excludeFiles []string, file string) bool {
	for _, x := range excludeFiles {
		if filepath.Clean(x) == filepath.Clean(file) {
			return true
		}
	}
	return false
}
