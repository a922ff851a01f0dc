package repl

import (
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/leftmike/colfilter/filter"
	"github.com/leftmike/colfilter/filter/parser"
	"github.com/leftmike/colfilter/table"
)

type Options struct {
	Format  table.Format
	Sep     string
	Policy  table.ErrorPolicy
	LogTree bool
}

// LineReader returns the next filter expression; it returns io.EOF when there are no more.
type LineReader interface {
	ReadLine() (string, error)
}

// Run reads filter expressions from lr and writes the rows of t which match each of them
// to w. An empty line shows every row; \dump EXPR prints the tree instead.
func Run(lr LineReader, t *table.Table, w io.Writer, opts Options) error {
	for num := 1; ; num += 1 {
		line, err := lr.ReadLine()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		err = runLine(line, num, t, w, opts)
		if err != nil {
			fmt.Fprintln(w, err)
		}
	}
}

func runLine(line string, num int, t *table.Table, w io.Writer, opts Options) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return table.Render(w, t, opts.Format, opts.Sep)
	}

	dump := false
	if strings.HasPrefix(line, `\dump`) {
		dump = true
		line = strings.TrimSpace(line[len(`\dump`):])
	}

	p := parser.NewParser(strings.NewReader(line), fmt.Sprintf("line %d", num))
	p.Columns(t.ColumnType)
	n, err := p.ParseExpr()
	if err != nil {
		return err
	}
	defer filter.Release(n)

	if dump {
		_, err = fmt.Fprintf(w, "%s\n", filter.Dump(n).JSON())
		return err
	}
	if opts.LogTree {
		filter.LogDump(log.StandardLogger(), "repl filter", n)
	}

	ft, err := table.Apply(t, n, opts.Policy)
	if err != nil {
		return err
	}
	return table.Render(w, ft, opts.Format, opts.Sep)
}
