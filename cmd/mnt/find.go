package main

import (
	"fmt"

	"github.com/agrover/mnt"
	"github.com/spf13/cobra"
)

var (
	findPid      int
	findWritable bool
)

func init() {
	root.AddCommand(findCommand)
	flags := findCommand.Flags()
	flags.IntVarP(&findPid, "pid", "p", 0, "Read the mount table of this process instead of our own")
	flags.BoolVarP(&findWritable, "writable", "w", false, "Require the mount to be read-write")
}

var findCommand = &cobra.Command{
	Use:   "find path",
	Short: "Show the mount providing access to a path",
	Long: `Finds the most specific mount whose mount point encloses the given
path. The path itself does not have to exist, only its would-be parent
mount point is looked up.`,
	Args: cobra.ExactArgs(1),
	RunE: func(command *cobra.Command, args []string) error {
		target := args[0]
		it, err := openTable(findPid)
		if err != nil {
			return err
		}
		defer func() { _ = it.Close() }()

		if findWritable {
			m := mnt.GetMountWritableFrom(target, true, it)
			if m == nil {
				return fmt.Errorf("no writable mount found for %q", target)
			}
			fmt.Println(formatEntry(m))
			return nil
		}
		m, err := mnt.GetMountFrom(target, it)
		if err != nil {
			return err
		}
		if m == nil {
			return fmt.Errorf("no mount found for %q", target)
		}
		fmt.Println(formatEntry(m))
		return nil
	},
}
