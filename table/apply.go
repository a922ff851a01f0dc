package table

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/leftmike/colfilter/filter"
)

type ErrorPolicy int

const (
	// SkipErrors excludes rows that fail to evaluate.
	SkipErrors ErrorPolicy = iota
	// FailOnError stops at the first row that fails to evaluate.
	FailOnError
)

func (ep ErrorPolicy) String() string {
	switch ep {
	case SkipErrors:
		return "skip"
	case FailOnError:
		return "fail"
	}
	return fmt.Sprintf("ErrorPolicy(%d)", int(ep))
}

func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch s {
	case "skip":
		return SkipErrors, nil
	case "fail":
		return FailOnError, nil
	}
	return SkipErrors, fmt.Errorf("table: expected skip or fail; got %s", s)
}

// Apply returns a copy of t holding only the rows that satisfy n; t is not changed.
func Apply(t *Table, n filter.Node, policy ErrorPolicy) (*Table, error) {
	ft := t.derive()
	skipped := 0
	for rdx := range t.Rows {
		ok, err := filter.Evaluate(n, t.Row(rdx))
		if err != nil {
			if policy == FailOnError {
				return nil, fmt.Errorf("table: row %d: %w", rdx+1, err)
			}
			log.WithFields(log.Fields{
				"row":   rdx + 1,
				"error": err,
			}).Debug("filter: row skipped")
			skipped += 1
			continue
		}
		if ok {
			ft.Rows = append(ft.Rows, t.Rows[rdx])
		}
	}

	log.WithFields(log.Fields{
		"rows":    len(t.Rows),
		"matched": len(ft.Rows),
		"skipped": skipped,
	}).Debug("filter applied")
	return ft, nil
}
