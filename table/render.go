package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/valyala/fastjson"

	"github.com/leftmike/colfilter/filter"
)

type Format int

const (
	TableFormat Format = iota
	RawFormat
	JSONFormat
)

func ParseFormat(s string) (Format, error) {
	switch s {
	case "table":
		return TableFormat, nil
	case "raw":
		return RawFormat, nil
	case "json":
		return JSONFormat, nil
	}
	return TableFormat, fmt.Errorf("table: expected table, raw, or json; got %s", s)
}

func Render(w io.Writer, t *Table, f Format, sep string) error {
	switch f {
	case TableFormat:
		return renderTable(w, t)
	case RawFormat:
		return renderRaw(w, t, sep)
	case JSONFormat:
		return renderJSON(w, t)
	}
	panic(fmt.Sprintf("unexpected table format: %d", f))
}

func renderTable(w io.Writer, t *Table) error {
	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)

	hdr := make([]string, len(t.Columns))
	align := make([]int, len(t.Columns))
	for cdx, col := range t.Columns {
		hdr[cdx] = col.Name
		if col.Type == filter.NumberType {
			align[cdx] = tablewriter.ALIGN_RIGHT
		} else {
			align[cdx] = tablewriter.ALIGN_LEFT
		}
	}
	tw.SetHeader(hdr)
	tw.SetColumnAlignment(align)
	tw.AppendBulk(t.Rows)
	tw.Render()

	_, err := fmt.Fprintf(w, "(%d rows)\n", tw.NumLines())
	return err
}

func renderRaw(w io.Writer, t *Table, sep string) error {
	if sep == "" {
		sep = " "
	}

	hdr := make([]string, len(t.Columns))
	for cdx, col := range t.Columns {
		hdr[cdx] = col.Name
	}
	_, err := fmt.Fprintln(w, strings.Join(hdr, sep))
	if err != nil {
		return err
	}
	for _, row := range t.Rows {
		_, err = fmt.Fprintln(w, strings.Join(row, sep))
		if err != nil {
			return err
		}
	}
	return nil
}

func renderJSON(w io.Writer, t *Table) error {
	var a fastjson.Arena
	arr := a.NewArray()
	for rdx := range t.Rows {
		o := a.NewObject()
		for cdx, col := range t.Columns {
			o.Set(col.Name, jsonValue(&a, t, rdx, cdx))
		}
		arr.SetArrayItem(rdx, o)
	}

	_, err := w.Write(append(arr.MarshalTo(nil), '\n'))
	return err
}

// jsonValue emits numbers and booleans natively when the cell converts to its column's type.
func jsonValue(a *fastjson.Arena, t *Table, rdx, cdx int) *fastjson.Value {
	v, err := t.value(rdx, cdx)
	if err != nil {
		return a.NewNull()
	}
	switch v := v.(type) {
	case filter.NumberValue:
		return a.NewNumberFloat64(float64(v))
	case filter.BoolValue:
		if v {
			return a.NewTrue()
		}
		return a.NewFalse()
	case filter.StringValue:
		return a.NewString(string(v))
	}
	panic(fmt.Sprintf("unexpected type for filter.Value: %T: %v", v, v))
}
