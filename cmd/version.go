package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	version = "0.1.0"
)

func Version() string {
	return fmt.Sprintf("colfilter %s", version)
}

func init() {
	colfilterCmd.AddCommand(
		&cobra.Command{
			Use:   "version",
			Short: "Print the version number of Colfilter",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), Version())
			},
		})
}
