package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cryptosim/hagelin/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Get cx52 version information",
	Run: func(cmd *cobra.Command, args []string) {
		version := version.GetCX52Release()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "CX52 Release: %s\n", version.Release)
		if !version.Tagged {
			fmt.Fprintf(out, "This is not a tagged release build.\n")
		}

		fmt.Fprintf(out, "Git: %s\n", version.Git.Commit)
		fmt.Fprintf(out, "Dirty: %t\n", version.Git.Dirty)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
