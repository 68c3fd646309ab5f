package mnt

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// ProcMountInfo is the mount table of the current process.
const ProcMountInfo = "/proc/self/mountinfo"

// Iter reads a mountinfo stream one line at a time. It is forward
// only and single use: to read the table again, construct a new Iter.
// An Iter must not be shared between concurrent callers.
type Iter struct {
	scanner *bufio.Scanner
	closer  io.Closer
	line    int
}

// NewIter returns an Iter reading mountinfo lines from r.
func NewIter(r io.Reader) *Iter {
	return &Iter{scanner: bufio.NewScanner(r), line: -1}
}

// Open returns an Iter reading the current process's mount table.
// Callers must Close it when done.
func Open() (*Iter, error) {
	return openPath(ProcMountInfo)
}

// OpenPid returns an Iter reading the mount table of the process with
// the given pid. Callers must Close it when done.
func OpenPid(pid int) (*Iter, error) {
	return openPath(fmt.Sprintf("/proc/%d/mountinfo", pid))
}

func openPath(path string) (*Iter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, readErr(err)
	}
	it := NewIter(f)
	it.closer = f
	return it, nil
}

// Next returns the next parsed entry. At the end of the input it
// returns io.EOF. A malformed line comes back as a *ParseError
// carrying the 0-based line number and iteration may continue past it;
// a read failure on the underlying source also comes back as a
// *ParseError (with Line -1) and is terminal.
func (it *Iter) Next() (*MountInfoEntry, error) {
	if !it.scanner.Scan() {
		if err := it.scanner.Err(); err != nil {
			return nil, readErr(err)
		}
		return nil, io.EOF
	}
	it.line++
	entry, err := ParseEntry(it.scanner.Text())
	if err != nil {
		return nil, lineErr(it.line, err)
	}
	return entry, nil
}

// Close releases the underlying file for iterators opened from a proc
// path. It is a no-op for reader-backed iterators.
func (it *Iter) Close() error {
	if it.closer == nil {
		return nil
	}
	err := it.closer.Close()
	it.closer = nil
	return err
}
