package table

import (
	"fmt"

	"github.com/google/btree"

	"github.com/leftmike/colfilter/filter"
)

type sortItem struct {
	val filter.Value // nil if the cell could not be converted
	rdx int
}

func (si sortItem) Less(item btree.Item) bool {
	si2 := item.(sortItem)
	if si.val == nil || si2.val == nil {
		if si.val == nil && si2.val != nil {
			return true
		} else if si.val != nil {
			return false
		}
		return si.rdx < si2.rdx
	}

	cmp, err := si.val.Compare(si2.val)
	if err != nil {
		panic(fmt.Sprintf("table: sort values of different types: %v and %v", si.val, si2.val))
	}
	if cmp == 0 {
		return si.rdx < si2.rdx
	}
	return cmp < 0
}

// SortBy returns a copy of t with the rows ordered by the named column. Equal values keep
// their order; cells that can't be converted to the column type sort first.
func SortBy(t *Table, name string, reverse bool) (*Table, error) {
	cdx, ok := t.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("table: sort: unknown column %s", name)
	}

	tree := btree.New(16)
	for rdx := range t.Rows {
		v, err := t.value(rdx, cdx)
		if err != nil {
			v = nil
		}
		tree.ReplaceOrInsert(sortItem{val: v, rdx: rdx})
	}

	st := t.derive()
	st.Rows = make([][]string, 0, len(t.Rows))
	iter := func(item btree.Item) bool {
		st.Rows = append(st.Rows, t.Rows[item.(sortItem).rdx])
		return true
	}
	if reverse {
		tree.Descend(iter)
	} else {
		tree.Ascend(iter)
	}
	return st, nil
}
