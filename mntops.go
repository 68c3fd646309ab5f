package mnt

// MntOpsKind enumerates the mount option flags this package
// recognises. OpExtra is the open arm: any token outside the fixed
// vocabulary parses to it with the text kept verbatim.
type MntOpsKind byte

// Recognised mount option flags
const (
	OpExtra MntOpsKind = iota
	OpAtime
	OpDirAtime
	OpRelAtime
	OpDev
	OpExec
	OpSuid
	OpWrite
)

// MntOps is one parsed mount option token. For the flag kinds Set
// records whether the option appeared in its plain spelling (true,
// e.g. "atime") or negated (false, e.g. "noatime"); for OpWrite the
// spellings are "rw" and "ro". For OpExtra, Extra holds the original
// token and Set is unused.
type MntOps struct {
	Kind  MntOpsKind
	Set   bool
	Extra string
}

// The one place the kernel spellings live. mntOpsNames is indexed by
// kind and holds the plain and negated spelling of each flag.
var mntOpsNames = [][2]string{
	OpAtime:    {"atime", "noatime"},
	OpDirAtime: {"diratime", "nodiratime"},
	OpRelAtime: {"relatime", "norelatime"},
	OpDev:      {"dev", "nodev"},
	OpExec:     {"exec", "noexec"},
	OpSuid:     {"suid", "nosuid"},
	OpWrite:    {"rw", "ro"},
}

var mntOpsTable = map[string]MntOps{}

func init() {
	for kind, names := range mntOpsNames {
		if names[0] == "" {
			continue
		}
		mntOpsTable[names[0]] = MntOps{Kind: MntOpsKind(kind), Set: true}
		mntOpsTable[names[1]] = MntOps{Kind: MntOpsKind(kind)}
	}
}

// ParseMntOps classifies a single option token. It is total: tokens
// outside the fixed vocabulary come back as OpExtra carrying the
// original text. Matching is exact and case sensitive.
func ParseMntOps(token string) MntOps {
	if op, ok := mntOpsTable[token]; ok {
		return op
	}
	return MntOps{Kind: OpExtra, Extra: token}
}

// String renders the option with its kernel spelling
func (op MntOps) String() string {
	if op.Kind == OpExtra || int(op.Kind) >= len(mntOpsNames) {
		return op.Extra
	}
	if op.Set {
		return mntOpsNames[op.Kind][0]
	}
	return mntOpsNames[op.Kind][1]
}

// parseMntOpsList splits a comma separated options token into parsed
// options. A single trailing empty element is dropped ("rw," parses
// the same as "rw") but interior empties are kept.
func parseMntOpsList(s string) []MntOps {
	parts := splitList(s)
	ops := make([]MntOps, len(parts))
	for i, p := range parts {
		ops[i] = ParseMntOps(p)
	}
	return ops
}
