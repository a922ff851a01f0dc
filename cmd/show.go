package cmd

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leftmike/colfilter/filter"
	"github.com/leftmike/colfilter/filter/parser"
	"github.com/leftmike/colfilter/flags"
	"github.com/leftmike/colfilter/table"
)

var (
	showCmd = &cobra.Command{
		Use:   "show [file]",
		Short: "Show the rows of a table which match a filter",
		Long: `Show reads a table from file, or standard input if file is missing or -, and
writes the rows matching --filter. The first line of the table names the columns;
NAME:number, NAME:boolean, or NAME:string gives a column a type.`,
		Args: cobra.MaximumNArgs(1),
		RunE: showRun,
	}

	filterExpr = ""
	separator  = ""
	output     = "table"
	onError    = "skip"
	sortColumn = ""
	reverse    = false
	dumpTree   = false
)

func initTableFlags(fs *pflag.FlagSet) {
	fs.StringVar(&separator, "separator", separator,
		"cell `separator`; default is white space")
	cfg.Var(fs, "separator")

	fs.StringVarP(&output, "output", "o", output, "output format: table, raw, or json")
	cfg.Var(fs, "output")

	fs.StringVar(&onError, "on-error", onError,
		"rows which fail to evaluate: skip them or fail")
	cfg.Var(fs, "on-error")
}

func init() {
	fs := showCmd.Flags()
	initTableFlags(fs)

	fs.StringVarP(&filterExpr, "filter", "Q", filterExpr, "filter `expression`")
	fs.StringVar(&sortColumn, "sort", sortColumn, "sort rows by `column`")
	fs.BoolVarP(&reverse, "reverse", "r", reverse, "reverse the sort order")
	fs.BoolVar(&dumpTree, "dump", dumpTree, "print the filter tree before the rows")

	colfilterCmd.AddCommand(showCmd)
}

func openTable(args []string) (*table.Table, error) {
	path := "-"
	if len(args) > 0 {
		path = args[0]
	}
	return table.Open(path, table.ReadOptions{
		Separator:    separator,
		HumanNumbers: cfg.Flags.GetFlag(flags.HumanNumbers),
	})
}

func parseFilter(s string, t *table.Table) (filter.Node, error) {
	p := parser.NewParser(strings.NewReader(s), "filter")
	p.Columns(t.ColumnType)
	n, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	if cfg.Flags.GetFlag(flags.LogFilterTree) {
		filter.LogDump(log.StandardLogger(), "filter parsed", n)
	}
	return n, nil
}

func showRun(cmd *cobra.Command, args []string) error {
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

	if filterExpr != "" {
		n, err := parseFilter(filterExpr, t)
		if err != nil {
			return err
		}
		defer filter.Release(n)

		if dumpTree {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", filter.Dump(n).JSON())
		}
		t, err = table.Apply(t, n, policy)
		if err != nil {
			return err
		}
	}

	if sortColumn != "" {
		t, err = table.SortBy(t, sortColumn, reverse)
		if err != nil {
			return err
		}
	}

	return table.Render(cmd.OutOrStdout(), t, format, separator)
}
