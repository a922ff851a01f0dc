package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"

	"github.com/leftmike/colfilter/filter"
)

type Column struct {
	Name string
	Type filter.DataType
}

func (col Column) String() string {
	if col.Type == filter.NoneType {
		return col.Name
	}
	return fmt.Sprintf("%s:%s", col.Name, col.Type)
}

type Table struct {
	Columns      []Column
	Rows         [][]string
	HumanNumbers bool

	index map[string]int
}

func New(cols []Column, humanNumbers bool) *Table {
	t := &Table{
		Columns:      cols,
		HumanNumbers: humanNumbers,
	}
	t.buildIndex()
	return t
}

func (t *Table) buildIndex() {
	t.index = make(map[string]int, len(t.Columns))
	for cdx, col := range t.Columns {
		t.index[strings.ToUpper(col.Name)] = cdx
	}
}

// Lookup finds a column by name, ignoring case.
func (t *Table) Lookup(name string) (int, bool) {
	if t.index == nil {
		t.buildIndex()
	}
	cdx, ok := t.index[strings.ToUpper(name)]
	return cdx, ok
}

// ColumnType can be passed to a parser to type holders and reject unknown columns.
func (t *Table) ColumnType(name string) (filter.DataType, bool) {
	cdx, ok := t.Lookup(name)
	if !ok {
		return filter.NoneType, false
	}
	return t.Columns[cdx].Type, true
}

func (t *Table) Append(row []string) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf("table: row has %d cells; want %d", len(row), len(t.Columns))
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// derive returns an empty table with the same columns.
func (t *Table) derive() *Table {
	return &Table{
		Columns:      t.Columns,
		HumanNumbers: t.HumanNumbers,
		index:        t.index,
	}
}

type row struct {
	t   *Table
	rdx int
}

// Row returns the filter.Row for row rdx; cells are converted to the column type each time a
// column is resolved.
func (t *Table) Row(rdx int) filter.Row {
	return row{t: t, rdx: rdx}
}

func (r row) Column(name string) (filter.Value, bool) {
	cdx, ok := r.t.Lookup(name)
	if !ok {
		return nil, false
	}
	v, err := r.t.value(r.rdx, cdx)
	if err != nil {
		return nil, false
	}
	return v, true
}

func (t *Table) value(rdx, cdx int) (filter.Value, error) {
	cell := t.Rows[rdx][cdx]
	switch t.Columns[cdx].Type {
	case filter.NumberType:
		return parseNumber(cell, t.HumanNumbers)
	case filter.BooleanType:
		return filter.Cast(filter.BooleanType, filter.StringValue(cell))
	default:
		return filter.StringValue(cell), nil
	}
}

func parseNumber(s string, human bool) (filter.Value, error) {
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("table: expected a finite number: %q", s)
		}
		return filter.NumberValue(f), nil
	}
	if !human || s == "" {
		return nil, fmt.Errorf("table: expected a number: %q", s)
	}

	// A bare unit letter is a power of 1024, as in "4K", "4k" or "1.5G".
	if u := unicode.ToUpper(rune(s[len(s)-1])); strings.ContainsRune("KMGTPE", u) {
		s = s[:len(s)-1] + string(u) + "iB"
	}
	u, err := humanize.ParseBytes(s)
	if err != nil {
		return nil, fmt.Errorf("table: expected a number: %q: %s", s, err)
	}
	return filter.NumberValue(u), nil
}
