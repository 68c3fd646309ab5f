package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/agrover/mnt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	listExcludes []string
	listPid      int
	listAll      bool
	listJSON     bool
)

func init() {
	root.AddCommand(listCommand)
	addListFlags(listCommand.Flags())
}

func addListFlags(flags *pflag.FlagSet) {
	flags.StringArrayVarP(&listExcludes, "exclude", "e", nil, "Mount point to ignore when resolving overlaps (repeatable)")
	flags.IntVarP(&listPid, "pid", "p", 0, "Read the mount table of this process instead of our own")
	flags.BoolVarP(&listAll, "all", "a", false, "List every recorded mount, including shadowed ones")
	flags.BoolVarP(&listJSON, "json", "", false, "Output entries as JSON")
}

var listCommand = &cobra.Command{
	Use:   "list [root]",
	Short: "List the visible mounts at or below a path",
	Long: `Lists every mount whose mount point is the given root (default "/")
or a path beneath it. Mounts hidden by a later mount at the same or a
nested path are resolved away unless --all is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(command *cobra.Command, args []string) error {
		mountRoot := "/"
		if len(args) == 1 {
			mountRoot = args[0]
		}
		it, err := openTable(listPid)
		if err != nil {
			return err
		}
		defer func() { _ = it.Close() }()

		mounts, err := mnt.GetSubmountsFrom(mountRoot, it)
		if err != nil {
			return err
		}
		logrus.Debugf("parsed %d mounts below %q", len(mounts), mountRoot)
		if !listAll {
			mounts = mnt.RemoveOverlaps(mounts, listExcludes)
		}
		if listJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(mounts)
		}
		for _, m := range mounts {
			fmt.Println(formatEntry(m))
		}
		return nil
	},
}

func openTable(pid int) (*mnt.Iter, error) {
	if pid > 0 {
		return mnt.OpenPid(pid)
	}
	return mnt.Open()
}

func formatEntry(m *mnt.MountInfoEntry) string {
	ops := make([]string, len(m.MntOps))
	for i, op := range m.MntOps {
		ops[i] = op.String()
	}
	spec := m.Spec
	if spec == "" {
		spec = "none"
	}
	return fmt.Sprintf("%s on %s type %s (%s)", spec, m.File, m.Vfstype, strings.Join(ops, ","))
}
