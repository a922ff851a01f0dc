package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leftmike/colfilter/filter"
	"github.com/leftmike/colfilter/filter/parser"
)

var (
	dumpCmd = &cobra.Command{
		Use:   "dump expression ...",
		Short: "Print the tree of a filter expression",
		Args:  cobra.MinimumNArgs(1),
		RunE:  dumpRun,
	}

	dumpText = false
)

func init() {
	dumpCmd.Flags().BoolVar(&dumpText, "text", dumpText, "print the tree as text, not JSON")
	colfilterCmd.AddCommand(dumpCmd)
}

func dumpRun(cmd *cobra.Command, args []string) error {
	n, err := parser.Parse(strings.Join(args, " "))
	if err != nil {
		return err
	}
	defer filter.Release(n)

	dn := filter.Dump(n)
	if dumpText {
		fmt.Fprintln(cmd.OutOrStdout(), dn)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", dn.JSON())
	}
	return nil
}
