// Parsing of the fstab style /proc/mounts format:
//
//	spec file vfstype mntops freq passno

package mnt

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

// ProcMounts is the fstab style mount list of the current process.
const ProcMounts = "/proc/mounts"

// DumpField is the fifth /proc/mounts column, consulted by dump(8).
type DumpField byte

// DumpField values
const (
	DumpIgnore DumpField = iota
	DumpBackup
)

// Mount is one parsed /proc/mounts record.
type Mount struct {
	// Spec is the mounted device or source.
	Spec string
	// File is the mount point.
	File string
	// Vfstype is the filesystem type.
	Vfstype string
	// MntOps are the mount options in their original order.
	MntOps []MntOps
	// Freq is the dump(8) backup frequency field.
	Freq DumpField
	// PassNo is the fsck(8) pass number; 0 means not checked.
	PassNo int
}

// ParseMount parses a single /proc/mounts line. The first missing or
// malformed field aborts the parse with a *LineError naming it.
func ParseMount(line string) (*Mount, error) {
	tokens := strings.Fields(line)
	next := func() (string, bool) {
		if len(tokens) == 0 {
			return "", false
		}
		tok := tokens[0]
		tokens = tokens[1:]
		return tok, true
	}

	m := &Mount{}
	var ok bool
	if m.Spec, ok = next(); !ok {
		return nil, &LineError{Field: FieldSpec}
	}
	if m.File, ok = next(); !ok {
		return nil, &LineError{Field: FieldFile}
	}
	if m.Vfstype, ok = next(); !ok {
		return nil, &LineError{Field: FieldVfstype}
	}

	tok, ok := next()
	if !ok {
		return nil, &LineError{Field: FieldMntOps}
	}
	m.MntOps = parseMntOpsList(tok)

	tok, ok = next()
	if !ok {
		return nil, &LineError{Field: FieldFreq}
	}
	switch tok {
	case "0":
		m.Freq = DumpIgnore
	case "1":
		m.Freq = DumpBackup
	default:
		return nil, &LineError{Field: FieldFreq, Value: tok}
	}

	tok, ok = next()
	if !ok {
		return nil, &LineError{Field: FieldPassNo}
	}
	passno, err := strconv.Atoi(tok)
	if err != nil || passno < 0 {
		return nil, &LineError{Field: FieldPassNo, Value: tok}
	}
	m.PassNo = passno

	return m, nil
}

// ParseMounts parses a whole /proc/mounts stream. The first malformed
// line or read failure aborts with a *ParseError.
func ParseMounts(r io.Reader) ([]*Mount, error) {
	var mounts []*Mount
	scanner := bufio.NewScanner(r)
	for line := 0; scanner.Scan(); line++ {
		m, err := ParseMount(scanner.Text())
		if err != nil {
			return nil, lineErr(line, err)
		}
		mounts = append(mounts, m)
	}
	if err := scanner.Err(); err != nil {
		return nil, readErr(err)
	}
	return mounts, nil
}

// GetMounts returns the current process's /proc/mounts entries.
func GetMounts() ([]*Mount, error) {
	f, err := os.Open(ProcMounts)
	if err != nil {
		return nil, readErr(err)
	}
	defer func() { _ = f.Close() }()
	return ParseMounts(f)
}
