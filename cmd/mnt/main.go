// Command mnt lists and queries the Linux mount table.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

var root = &cobra.Command{
	Use:   "mnt",
	Short: "Query the Linux mount table",
	Long: `mnt parses /proc/<pid>/mountinfo and answers questions about it:
which mounts are visible beneath a path once overmounts are resolved,
and which mount provides access to a given path.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(command *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := root.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
