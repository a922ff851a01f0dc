package cmd

import (
	"github.com/spf13/cobra"

	"github.com/leftmike/colfilter/flags"
	"github.com/leftmike/colfilter/repl"
	"github.com/leftmike/colfilter/table"
)

func init() {
	replCmd := &cobra.Command{
		Use:   "repl file",
		Short: "Interactively filter the rows of a table",
		Args:  cobra.ExactArgs(1),
		RunE:  replRun,
	}
	initTableFlags(replCmd.Flags())
	colfilterCmd.AddCommand(replCmd)
}

func replRun(cmd *cobra.Command, args []string) error {
	format, err := table.ParseFormat(output)
	if err != nil {
		return err
	}
	policy, err := table.ParseErrorPolicy(onError)
	if err != nil {
		return err
	}

	t, err := openTable(args)
	if err != nil {
		return err
	}

	return repl.Interact(t, repl.Options{
		Format:  format,
		Sep:     separator,
		Policy:  policy,
		LogTree: cfg.Flags.GetFlag(flags.LogFilterTree),
	})
}
