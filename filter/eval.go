package filter

import (
	"fmt"
)

// Row supplies column values to holders while a tree is evaluated. Column returns false when
// the row has no value for name.
type Row interface {
	Column(name string) (Value, bool)
}

type RowFunc func(name string) (Value, bool)

func (rf RowFunc) Column(name string) (Value, bool) {
	return rf(name)
}

// Evaluate reports whether row satisfies the tree rooted at n. The tree is only read, so it
// may be evaluated against different rows concurrently.
func Evaluate(n Node, row Row) (bool, error) {
	switch n := n.(type) {
	case nil:
		return false, fmt.Errorf("filter: %w: missing node", ErrInvalidTree)
	case *Expression:
		return evalExpr(n, row)
	case *Parameter:
		v, err := resolveParam(n, row)
		if err != nil {
			return false, err
		}
		b, err := Cast(BooleanType, v)
		if err != nil {
			return false, err
		}
		return bool(b.(BoolValue)), nil
	default:
		panic(fmt.Sprintf("unexpected type for filter.Node: %T: %v", n, n))
	}
}

func evalExpr(e *Expression, row Row) (bool, error) {
	switch e.op {
	case AndOp:
		b, err := Evaluate(e.left, row)
		if err != nil || !b {
			return false, err
		}
		return Evaluate(e.right, row)
	case OrOp:
		b, err := Evaluate(e.left, row)
		if err != nil || b {
			return b, err
		}
		return Evaluate(e.right, row)
	case NotOp:
		b, err := Evaluate(e.right, row)
		if err != nil {
			return false, err
		}
		return !b, nil
	}

	dt := guessDataType(e)
	if e.op == MatchOp || e.op == NotMatchOp {
		if dt == NoneType {
			dt = StringType
		} else if dt != StringType {
			return false, fmt.Errorf("filter: %w: %s requires strings; got %s", ErrCast,
				e.op.Name(), dt)
		}
	}

	l, err := castNode(e.left, dt, row)
	if err != nil {
		return false, err
	}
	r, err := castNode(e.right, dt, row)
	if err != nil {
		return false, err
	}
	return Compare(e.op, l, r)
}

func nodeDataType(n Node) DataType {
	switch n := n.(type) {
	case *Expression:
		return BooleanType
	case *Parameter:
		return n.dataType
	}
	return NoneType
}

func isHolder(n Node) bool {
	p, ok := n.(*Parameter)
	return ok && p.IsHolder()
}

// guessDataType picks the type both operands of a comparison are cast to. For "SIZE > 5.5"
// the literal decides, not the holder. Two holders, or two concrete operands of different
// types, fall back to the left type; this is lenient rather than a rule callers should rely
// on.
func guessDataType(e *Expression) DataType {
	l := nodeDataType(e.left)
	r := nodeDataType(e.right)
	if l == r {
		return l
	}

	lh := isHolder(e.left)
	rh := isHolder(e.right)
	if lh && !rh {
		return r
	}
	return l
}

func castNode(n Node, dt DataType, row Row) (Value, error) {
	var v Value
	switch n := n.(type) {
	case *Expression:
		b, err := Evaluate(n, row)
		if err != nil {
			return nil, err
		}
		v = BoolValue(b)
	case *Parameter:
		var err error
		v, err = resolveParam(n, row)
		if err != nil {
			return nil, err
		}
	default:
		panic(fmt.Sprintf("unexpected type for filter.Node: %T: %v", n, n))
	}
	return Cast(dt, v)
}

func resolveParam(p *Parameter, row Row) (Value, error) {
	if !p.IsHolder() {
		return p.value, nil
	}
	if row == nil {
		return nil, fmt.Errorf("filter: %w: %s: no row", ErrResolution, p.holder)
	}
	v, ok := row.Column(p.holder)
	if !ok || v == nil {
		return nil, fmt.Errorf("filter: %w: %s", ErrResolution, p.holder)
	}
	return v, nil
}
