package filter_test

import (
	"errors"
	"math"
	"testing"

	. "github.com/leftmike/colfilter/filter"
)

func TestCast(t *testing.T) {
	cases := []struct {
		dt   DataType
		v    Value
		r    Value
		fail bool
	}{
		{dt: NoneType, v: StringValue("abc"), r: StringValue("abc")},
		{dt: NoneType, v: NumberValue(1), r: NumberValue(1)},
		{dt: BooleanType, v: StringValue("yes"), r: BoolValue(true)},
		{dt: BooleanType, v: StringValue(" off\n"), r: BoolValue(false)},
		{dt: BooleanType, v: StringValue("anything"), r: BoolValue(true)},
		{dt: BooleanType, v: StringValue(""), r: BoolValue(false)},
		{dt: BooleanType, v: NumberValue(0), r: BoolValue(false)},
		{dt: BooleanType, v: NumberValue(-2), r: BoolValue(true)},
		{dt: NumberType, v: StringValue("2000"), r: NumberValue(2000)},
		{dt: NumberType, v: StringValue(" 5.5 "), r: NumberValue(5.5)},
		{dt: NumberType, v: StringValue("-1e3"), r: NumberValue(-1000)},
		{dt: NumberType, v: BoolValue(true), r: NumberValue(1)},
		{dt: NumberType, v: StringValue("12abc"), fail: true},
		{dt: NumberType, v: StringValue(""), fail: true},
		{dt: NumberType, v: StringValue("nan"), fail: true},
		{dt: NumberType, v: StringValue(" NaN "), fail: true},
		{dt: NumberType, v: StringValue("inf"), fail: true},
		{dt: NumberType, v: StringValue("+Inf"), fail: true},
		{dt: NumberType, v: StringValue("-infinity"), fail: true},
		{dt: NumberType, v: StringValue("1e400"), fail: true},
		{dt: NumberType, v: StringValue("4k"), fail: true},
		{dt: NumberType, v: StringValue("-0"), r: NumberValue(0)},
		{dt: NumberType, v: StringValue("1.7976931348623157e308"),
			r: NumberValue(math.MaxFloat64)},
		{dt: StringType, v: NumberValue(1.5), r: StringValue("1.5")},
		{dt: StringType, v: NumberValue(2000), r: StringValue("2000")},
		{dt: StringType, v: BoolValue(false), r: StringValue("false")},
		{dt: StringType, v: nil, fail: true},
	}

	for _, c := range cases {
		r, err := Cast(c.dt, c.v)
		if c.fail {
			if err == nil {
				t.Errorf("Cast(%s, %v) did not fail", c.dt, c.v)
			} else if !errors.Is(err, ErrCast) {
				t.Errorf("Cast(%s, %v) got %s want ErrCast", c.dt, c.v, err)
			}
		} else if err != nil {
			t.Errorf("Cast(%s, %v) failed with %s", c.dt, c.v, err)
		} else if r != c.r {
			t.Errorf("Cast(%s, %v) got %v want %v", c.dt, c.v, r, c.r)
		}
	}
}

func TestCompare(t *testing.T) {
	cases := []struct {
		op   Op
		l, r Value
		want bool
		err  error
	}{
		{op: EqualOp, l: NumberValue(1), r: NumberValue(1), want: true},
		{op: NotEqualOp, l: NumberValue(1), r: NumberValue(1)},
		{op: LessThanOp, l: BoolValue(false), r: BoolValue(true), want: true},
		{op: GreaterThanOp, l: StringValue("b"), r: StringValue("a"), want: true},
		{op: GreaterEqualOp, l: StringValue("a"), r: StringValue("a"), want: true},
		{op: LessEqualOp, l: NumberValue(2), r: NumberValue(1)},
		{op: MatchOp, l: StringValue("/dev/sda1"), r: StringValue("sd[a-z][0-9]+$"),
			want: true},
		{op: MatchOp, l: StringValue("/dev/sda"), r: StringValue("(sd|nvme)a|b"), want: true},
		{op: NotMatchOp, l: StringValue("loop0"), r: StringValue("^loop"), want: false},
		{op: MatchOp, l: NumberValue(1), r: StringValue("1"), err: ErrCast},
		{op: MatchOp, l: StringValue("x"), r: StringValue("[x"), err: ErrCompare},
		{op: EqualOp, l: NumberValue(1), r: StringValue("1"), err: ErrCompare},
		{op: EqualOp, l: NumberValue(math.NaN()), r: NumberValue(5), err: ErrCompare},
		{op: LessThanOp, l: NumberValue(1), r: NumberValue(math.NaN()), err: ErrCompare},
		{op: LessThanOp, l: NumberValue(math.Inf(-1)), r: NumberValue(-math.MaxFloat64),
			want: true},
		{op: AndOp, l: BoolValue(true), r: BoolValue(true), err: ErrInvalidTree},
	}

	for _, c := range cases {
		b, err := Compare(c.op, c.l, c.r)
		if c.err != nil {
			if !errors.Is(err, c.err) {
				t.Errorf("Compare(%s, %v, %v) got %v want %s", c.op.Name(), c.l, c.r, err, c.err)
			}
		} else if err != nil {
			t.Errorf("Compare(%s, %v, %v) failed with %s", c.op.Name(), c.l, c.r, err)
		} else if b != c.want {
			t.Errorf("Compare(%s, %v, %v) got %v want %v", c.op.Name(), c.l, c.r, b, c.want)
		}
	}
}
