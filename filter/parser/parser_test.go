package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leftmike/colfilter/filter"
	"github.com/leftmike/colfilter/filter/parser"
)

func TestParseExpr(t *testing.T) {
	cases := []struct {
		s    string
		r    string
		fail bool
	}{
		{s: "SIZE > 1000", r: "(SIZE > 1000)"},
		{s: "SIZE gt 1000", r: "(SIZE > 1000)"},
		{s: `NAME == "root" && SIZE > 1000`, r: `((NAME == "root") && (SIZE > 1000))`},
		{s: `NAME eq 'root' and SIZE >= 1.5`, r: `((NAME == "root") && (SIZE >= 1.5))`},
		{s: "A || B && C", r: "(A || (B && C))"},
		{s: "A && B || C", r: "((A && B) || C)"},
		{s: "(A || B) && C", r: "((A || B) && C)"},
		{s: "!A", r: "(! A)"},
		{s: "not not A", r: "(! (! A))"},
		{s: `!(PATH =~ "^/dev/")`, r: `(! (PATH =~ "^/dev/"))`},
		{s: `PATH !~ '^/dev/'`, r: `(PATH !~ "^/dev/")`},
		{s: "RO == false", r: "(RO == false)"},
		{s: "TRUE", r: "true"},
		{s: "X = -5", r: "(X == -5)"},
		{s: "X != 5 OR X ne 6", r: "((X != 5) || (X != 6))"},
		{s: "X < 1 || X <= 2 || X lt 3 || X le 4",
			r: "((((X < 1) || (X <= 2)) || (X < 3)) || (X <= 4))"},
		{s: "SOCK.NETNS == 4026531840", r: "(SOCK.NETNS == 4026531840)"},
		{s: `NAME == "a\"b\n"`, r: `(NAME == "a\"b\n")`},
		{s: "(A == 1) == (B == 2)", r: "((A == 1) == (B == 2))"},
		{s: "", fail: true},
		{s: "SIZE >", fail: true},
		{s: "SIZE > 1 2", fail: true},
		{s: "(A", fail: true},
		{s: "A & B", fail: true},
		{s: `NAME == "root`, fail: true},
		{s: "A == == B", fail: true},
		{s: "A ~ B", fail: true},
		{s: "- A", fail: true},
		{s: "A && )", fail: true},
	}

	for i, c := range cases {
		p := parser.NewParser(strings.NewReader(c.s), fmt.Sprintf("cases[%d]", i))
		n, err := p.ParseExpr()
		if c.fail {
			if err == nil {
				t.Errorf("ParseExpr(%q) did not fail", c.s)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseExpr(%q) failed with %s", c.s, err)
			continue
		}
		if n.String() != c.r {
			t.Errorf("ParseExpr(%q) got %s want %s", c.s, n, c.r)
		}
		if filter.Refs(n) != 1 {
			t.Errorf("ParseExpr(%q) got %d refs want 1", c.s, filter.Refs(n))
		}
		filter.Release(n)
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := parser.NewParser(strings.NewReader("A == 1 &&\n  )"), "test").ParseExpr()
	if err == nil {
		t.Fatal("ParseExpr() did not fail")
	}
	if !strings.HasPrefix(err.Error(), "test:2:3: ") {
		t.Errorf("ParseExpr() got %q want test:2:3 prefix", err)
	}
}

func TestParseErrorNewline(t *testing.T) {
	_, err := parser.NewParser(strings.NewReader("A <\n"), "test").ParseExpr()
	if err == nil {
		t.Fatal("ParseExpr() did not fail")
	}
	if !strings.HasPrefix(err.Error(), "test:1:3: ") {
		t.Errorf("ParseExpr() got %q want test:1:3 prefix", err)
	}
}

func TestParseColumns(t *testing.T) {
	types := map[string]filter.DataType{
		"NAME": filter.StringType,
		"SIZE": filter.NumberType,
	}
	columns := func(name string) (filter.DataType, bool) {
		dt, ok := types[name]
		return dt, ok
	}

	p := parser.NewParser(strings.NewReader("NAME == SIZE"), "columns")
	p.Columns(columns)
	n, err := p.ParseExpr()
	if err != nil {
		t.Fatalf("ParseExpr(NAME == SIZE) failed with %s", err)
	}
	dn := filter.Dump(n)
	if dn.Left.Type != "string" || dn.Right.Type != "number" {
		t.Errorf("ParseExpr(NAME == SIZE) got %s", dn)
	}
	filter.Release(n)

	p = parser.NewParser(strings.NewReader("NAME == 'x' && MISSING > 1"), "columns")
	p.Columns(columns)
	_, err = p.ParseExpr()
	if err == nil || !strings.Contains(err.Error(), "unknown column MISSING") {
		t.Errorf("ParseExpr(MISSING > 1) got %v want unknown column", err)
	}
}

func TestParseEvaluate(t *testing.T) {
	cases := []struct {
		s    string
		row  map[string]string
		want bool
	}{
		{`NAME == "root" && SIZE > 1000`, map[string]string{"NAME": "root", "SIZE": "2000"},
			true},
		{`NAME == "root" && SIZE > 1000`, map[string]string{"NAME": "other", "SIZE": "2000"},
			false},
		{`!(PATH =~ "^/dev/")`, map[string]string{"PATH": "/dev/null"}, false},
		{`!(PATH =~ "^/dev/")`, map[string]string{"PATH": "/etc/passwd"}, true},
	}

	for _, c := range cases {
		n, err := parser.Parse(c.s)
		if err != nil {
			t.Fatalf("Parse(%q) failed with %s", c.s, err)
		}
		b, err := filter.Evaluate(n,
			filter.RowFunc(func(name string) (filter.Value, bool) {
				s, ok := c.row[name]
				return filter.StringValue(s), ok
			}))
		if err != nil {
			t.Errorf("Evaluate(%q, %v) failed with %s", c.s, c.row, err)
		} else if b != c.want {
			t.Errorf("Evaluate(%q, %v) got %v want %v", c.s, c.row, b, c.want)
		}
		filter.Release(n)
	}
}
