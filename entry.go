// Parsing of single /proc/<pid>/mountinfo records. Fields are based on
// the description in the kernel's proc_pid_mountinfo(5):
//
//	36 35 98:0 /mnt1 /mnt2 rw,noatime master:1 - ext3 /dev/root rw,errors=continue
//	(1)(2)(3)   (4)   (5)      (6)      (7)   (8) (9)   (10)         (11)

package mnt

import (
	"strconv"
	"strings"
)

// OptField is the value side of one optional field tag. HasValue
// distinguishes a bare tag ("unbindable") from a tag carrying a value
// ("master:1"), including an empty one ("master:").
type OptField struct {
	Value    string
	HasValue bool
}

// MountInfoEntry is one parsed mountinfo record. Entries are built
// once by ParseEntry and not modified afterwards.
type MountInfoEntry struct {
	// ID is the unique identifier of the mount (may be reused
	// after umount).
	ID int
	// ParentID is the ID of the parent mount, or of self for the
	// root of the mount tree.
	ParentID int
	// Major and Minor are the st_dev device numbers for files on
	// this filesystem.
	Major uint32
	Minor uint32
	// Root is the pathname of the directory in the filesystem
	// which forms the root of this mount.
	Root string
	// File is the mount point relative to the process's root.
	File string
	// MntOps are the per-mount options in their original order.
	MntOps []MntOps
	// Optionals maps optional field tags ("shared", "master", ...)
	// to their value, if any. Duplicate tags overwrite, last one
	// wins.
	Optionals map[string]OptField
	// Vfstype is the filesystem type in the form "type[.subtype]".
	Vfstype string
	// Spec is the mount source, or empty when the kernel reported
	// the literal placeholder "none".
	Spec string
	// SuperOptions are the per-superblock options, deduplicated.
	SuperOptions map[string]struct{}
}

// ParseEntry parses a single mountinfo line. Tokens are separated by
// runs of spaces and tabs; any tokens after the superblock options are
// ignored. The first missing or malformed field aborts the parse with
// a *LineError naming it, so a partially filled entry is never
// returned.
func ParseEntry(line string) (*MountInfoEntry, error) {
	tokens := strings.Fields(line)
	next := func() (string, bool) {
		if len(tokens) == 0 {
			return "", false
		}
		tok := tokens[0]
		tokens = tokens[1:]
		return tok, true
	}

	e := &MountInfoEntry{
		Optionals:    map[string]OptField{},
		SuperOptions: map[string]struct{}{},
	}

	tok, ok := next()
	if !ok {
		return nil, &LineError{Field: FieldID}
	}
	id, err := strconv.Atoi(tok)
	if err != nil {
		return nil, &LineError{Field: FieldID, Value: tok}
	}
	e.ID = id

	tok, ok = next()
	if !ok {
		return nil, &LineError{Field: FieldParentID}
	}
	parentID, err := strconv.Atoi(tok)
	if err != nil {
		return nil, &LineError{Field: FieldParentID, Value: tok}
	}
	e.ParentID = parentID

	tok, ok = next()
	if !ok {
		return nil, &LineError{Field: FieldMajMin}
	}
	maj, min, found := strings.Cut(tok, ":")
	if !found {
		return nil, &LineError{Field: FieldMajMin, Value: tok}
	}
	major, err := strconv.ParseUint(maj, 10, 32)
	if err != nil {
		return nil, &LineError{Field: FieldMajMin, Value: tok}
	}
	minor, err := strconv.ParseUint(min, 10, 32)
	if err != nil {
		return nil, &LineError{Field: FieldMajMin, Value: tok}
	}
	e.Major, e.Minor = uint32(major), uint32(minor)

	if e.Root, ok = next(); !ok {
		return nil, &LineError{Field: FieldRoot}
	}
	if e.File, ok = next(); !ok {
		return nil, &LineError{Field: FieldFile}
	}

	tok, ok = next()
	if !ok {
		return nil, &LineError{Field: FieldMntOps}
	}
	e.MntOps = parseMntOpsList(tok)

	// Zero or more optional fields of the form "tag[:value]",
	// terminated by a single hyphen.
	for {
		tok, ok = next()
		if !ok {
			return nil, &LineError{Field: FieldOptional}
		}
		if tok == "-" {
			break
		}
		tag, value, found := strings.Cut(tok, ":")
		e.Optionals[tag] = OptField{Value: value, HasValue: found}
	}

	if e.Vfstype, ok = next(); !ok {
		return nil, &LineError{Field: FieldVfstype}
	}

	tok, ok = next()
	if !ok {
		return nil, &LineError{Field: FieldSpec}
	}
	if tok != "none" {
		e.Spec = tok
	}

	tok, ok = next()
	if !ok {
		return nil, &LineError{Field: FieldSuperOptions}
	}
	for _, opt := range splitList(tok) {
		e.SuperOptions[opt] = struct{}{}
	}

	return e, nil
}

// HasMntOps reports whether op appears in the entry's mount options.
func (e *MountInfoEntry) HasMntOps(op MntOps) bool {
	for _, o := range e.MntOps {
		if o == op {
			return true
		}
	}
	return false
}
