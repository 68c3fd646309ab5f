// Error types shared by the mountinfo and mounts parsers

package mnt

import "fmt"

// Field identifies one column of a mount table line. The first group
// covers /proc/<pid>/mountinfo, the last two are specific to the
// /proc/mounts (fstab) format.
type Field byte

// Mount table fields
const (
	FieldID Field = iota
	FieldParentID
	FieldMajMin
	FieldRoot
	FieldFile
	FieldMntOps
	FieldOptional
	FieldVfstype
	FieldSpec
	FieldSuperOptions
	FieldFreq
	FieldPassNo
)

var fieldNames = []string{
	FieldID:           "mount id",
	FieldParentID:     "parent id",
	FieldMajMin:       "maj:min",
	FieldRoot:         "root",
	FieldFile:         "file",
	FieldMntOps:       "mntops",
	FieldOptional:     "optional",
	FieldVfstype:      "vfstype",
	FieldSpec:         "spec",
	FieldSuperOptions: "superoptions",
	FieldFreq:         "freq",
	FieldPassNo:       "passno",
}

// String renders the field name as it appears in error messages
func (f Field) String() string {
	if int(f) >= len(fieldNames) {
		return fmt.Sprintf("field %d", f)
	}
	return fieldNames[f]
}

// LineError describes the first defect found in a single mount table
// line. Value is empty when the field was missing entirely and holds
// the raw offending text when the field was present but malformed.
type LineError struct {
	Field Field
	Value string
}

// Missing reports whether the field was absent rather than malformed.
func (e *LineError) Missing() bool {
	return e.Value == ""
}

// Error renders the line error as a string
func (e *LineError) Error() string {
	if e.Missing() {
		return fmt.Sprintf("missing field: %s", e.Field)
	}
	return fmt.Sprintf("bad %s field value: %q", e.Field, e.Value)
}

// ParseError is the unified error returned by the stream iterator and
// the query helpers. It wraps either a *LineError together with the
// 0-based line it occurred on, or a read failure from the underlying
// source, in which case Line is -1.
type ParseError struct {
	Line int
	Err  error
}

// Error renders the parse error as a string
func (e *ParseError) Error() string {
	if e.Line < 0 {
		return fmt.Sprintf("failed to read the mounts file: %v", e.Err)
	}
	return fmt.Sprintf("failed at line %d: %v", e.Line, e.Err)
}

// Unwrap returns the wrapped cause so errors.Is and errors.As can
// reach the underlying LineError or I/O error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

func lineErr(line int, err error) *ParseError {
	return &ParseError{Line: line, Err: err}
}

func readErr(err error) *ParseError {
	return &ParseError{Line: -1, Err: err}
}
