package mnt

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIter(s string) *Iter {
	return NewIter(strings.NewReader(s))
}

func files(mounts []*MountInfoEntry) []string {
	out := make([]string, len(mounts))
	for i, m := range mounts {
		out[i] = m.File
	}
	return out
}

// entryLines builds a minimal mountinfo table with one line per mount
// point, ids counting up from 1.
func entryLines(mountPoints ...string) string {
	var b strings.Builder
	for i, file := range mountPoints {
		b.WriteString(strings.Join([]string{
			// id, parent, maj:min, root, file
			strconv.Itoa(i + 1), "0", "0:1", "/", file,
			"rw", "-", "tmpfs", "none", "rw",
		}, " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func TestGetSubmountsFrom(t *testing.T) {
	mounts, err := GetSubmountsFrom("/", testIter(testMountInfo))
	require.NoError(t, err)
	// everything descends from "/", chronological order preserved
	assert.Equal(t, []string{
		"/", "/sys", "/proc", "/dev", "/dev/shm", "/run", "/tmp",
		"/boot", "/var/lib/nfs/rpc_pipefs",
	}, files(mounts))

	mounts, err = GetSubmountsFrom("/dev", testIter(testMountInfo))
	require.NoError(t, err)
	assert.Equal(t, []string{"/dev", "/dev/shm"}, files(mounts))

	mounts, err = GetSubmountsFrom("/nowhere", testIter(testMountInfo))
	require.NoError(t, err)
	assert.Empty(t, mounts)
}

func TestGetSubmountsFromComponents(t *testing.T) {
	// the prefix test works on path components, not raw strings
	in := entryLines("/", "/var", "/variant", "/var/tmp")
	mounts, err := GetSubmountsFrom("/var", testIter(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"/var", "/var/tmp"}, files(mounts))
}

func TestGetSubmountsFromError(t *testing.T) {
	// one bad line anywhere fails the whole query
	in := testMountInfo + "garbage\n"
	mounts, err := GetSubmountsFrom("/", testIter(in))
	assert.Nil(t, mounts)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 9, perr.Line)
}

func TestGetMountFrom(t *testing.T) {
	in := entryLines("/", "/home")

	m, err := GetMountFrom("/home/alice", testIter(in))
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "/home", m.File)

	m, err = GetMountFrom("/etc", testIter(in))
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "/", m.File)

	m, err = GetMountFrom("/home", testIter(in))
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "/home", m.File)
}

func TestGetMountFromLastWins(t *testing.T) {
	// a later entry at the same mount point reflects the more
	// recent overmount
	in := entryLines("/", "/mnt", "/mnt")
	m, err := GetMountFrom("/mnt/data", testIter(in))
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 3, m.ID)
}

func TestGetMountFromNoMatch(t *testing.T) {
	in := entryLines("/home", "/tmp")
	m, err := GetMountFrom("/etc/passwd", testIter(in))
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestGetMountWritableFrom(t *testing.T) {
	const in = "1 0 0:1 / / rw - tmpfs none rw\n" +
		"2 0 0:2 / /ro ro,nosuid - squashfs /dev/loop0 ro\n"

	m := GetMountWritableFrom("/data", true, testIter(in))
	require.NotNil(t, m)
	assert.Equal(t, "/", m.File)

	// read-only mount does not satisfy a writable request...
	assert.Nil(t, GetMountWritableFrom("/ro/file", true, testIter(in)))
	// ...but is fine when writability is not required
	m = GetMountWritableFrom("/ro/file", false, testIter(in))
	require.NotNil(t, m)
	assert.Equal(t, "/ro", m.File)

	// lookup failures collapse to no answer instead of an error
	assert.Nil(t, GetMountWritableFrom("/data", true, testIter("garbage\n")))
	assert.Nil(t, GetMountWritableFrom("/nowhere", true, testIter("")))
}

func TestIsMountpointFrom(t *testing.T) {
	ok, err := IsMountpointFrom("/dev/shm", testIter(testMountInfo))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsMountpointFrom("/dev/shm/", testIter(testMountInfo))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsMountpointFrom("/dev/shm/sub", testIter(testMountInfo))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPathHasPrefix(t *testing.T) {
	for _, test := range []struct {
		path, prefix string
		want         bool
	}{
		{"/var", "/var", true},
		{"/var/tmp", "/var", true},
		{"/variant", "/var", false},
		{"/var", "/var/tmp", false},
		{"/anything", "/", true},
		{"/", "/", true},
		{"/var/", "/var", true},
		{"/var", "/var/", true},
	} {
		assert.Equal(t, test.want, pathHasPrefix(test.path, test.prefix),
			"pathHasPrefix(%q, %q)", test.path, test.prefix)
	}
}
