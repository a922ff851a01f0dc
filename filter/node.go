package filter

import (
	"fmt"
	"sync/atomic"
)

type Op int

const (
	AndOp Op = iota
	OrOp
	NotOp
	EqualOp
	NotEqualOp
	LessThanOp
	LessEqualOp
	GreaterThanOp
	GreaterEqualOp
	MatchOp
	NotMatchOp
)

var ops = [...]struct {
	name string
	text string
}{
	AndOp:          {"AND", "&&"},
	OrOp:           {"OR", "||"},
	NotOp:          {"NOT", "!"},
	EqualOp:        {"EQ", "=="},
	NotEqualOp:     {"NE", "!="},
	LessThanOp:     {"LT", "<"},
	LessEqualOp:    {"LE", "<="},
	GreaterThanOp:  {"GT", ">"},
	GreaterEqualOp: {"GE", ">="},
	MatchOp:        {"REG", "=~"},
	NotMatchOp:     {"NREG", "!~"},
}

func (op Op) valid() bool {
	return op >= 0 && int(op) < len(ops)
}

// Name is the operator as it appears in a dump.
func (op Op) Name() string {
	if !op.valid() {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return ops[op].name
}

// String is the operator as it appears in expression text.
func (op Op) String() string {
	if !op.valid() {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return ops[op].text
}

func (op Op) IsLogical() bool {
	return op == AndOp || op == OrOp || op == NotOp
}

// Node is either an *Expression or a *Parameter. Nodes are shared and reference counted: a
// constructor returns a node holding one reference, Ref adds one, Release drops one.
type Node interface {
	fmt.Stringer
	node() *nodeRef
}

type nodeRef struct {
	refs  int32
	freed int32
}

func (nr *nodeRef) node() *nodeRef {
	return nr
}

// freeHook is called once for every node whose last reference is released.
var freeHook func(n Node)

func Ref(n Node) Node {
	if n == nil {
		return nil
	}
	nr := n.node()
	if atomic.LoadInt32(&nr.freed) != 0 {
		panic(fmt.Sprintf("filter: reference to released node %s", n))
	}
	atomic.AddInt32(&nr.refs, 1)
	return n
}

func Refs(n Node) int32 {
	if n == nil {
		return 0
	}
	return atomic.LoadInt32(&n.node().refs)
}

func Release(n Node) {
	if n == nil {
		return
	}
	nr := n.node()
	refs := atomic.AddInt32(&nr.refs, -1)
	if refs > 0 {
		return
	} else if refs < 0 || !atomic.CompareAndSwapInt32(&nr.freed, 0, 1) {
		panic(fmt.Sprintf("filter: node released too many times: %s", n))
	}

	if freeHook != nil {
		freeHook(n)
	}

	switch n := n.(type) {
	case *Expression:
		left, right := n.left, n.right
		n.left = nil
		n.right = nil
		Release(left)
		Release(right)
	case *Parameter:
		n.holder = ""
		n.value = nil
	default:
		panic(fmt.Sprintf("unexpected type for filter.Node: %T: %v", n, n))
	}
}

type Expression struct {
	nodeRef
	op    Op
	left  Node
	right Node
}

// NewExpression takes over the caller's references to left and right; on error it takes
// over nothing. NotOp has only a right operand.
func NewExpression(op Op, left, right Node) (*Expression, error) {
	if !op.valid() {
		return nil, fmt.Errorf("filter: %w: unknown operator %d", ErrInvalidTree, int(op))
	}
	if right == nil {
		return nil, fmt.Errorf("filter: %w: %s missing right operand", ErrInvalidTree,
			op.Name())
	}
	if op == NotOp {
		if left != nil {
			return nil, fmt.Errorf("filter: %w: NOT has a left operand", ErrInvalidTree)
		}
	} else if left == nil {
		return nil, fmt.Errorf("filter: %w: %s missing left operand", ErrInvalidTree,
			op.Name())
	}

	return &Expression{
		nodeRef: nodeRef{refs: 1},
		op:      op,
		left:    left,
		right:   right,
	}, nil
}

func (e *Expression) Op() Op {
	return e.op
}

func (e *Expression) Left() Node {
	return e.left
}

func (e *Expression) Right() Node {
	return e.right
}

func (e *Expression) String() string {
	if e.op == NotOp {
		return fmt.Sprintf("(%s %s)", e.op, e.right)
	}
	return fmt.Sprintf("(%s %s %s)", e.left, e.op, e.right)
}

type Parameter struct {
	nodeRef
	dataType DataType
	holder   string
	value    Value
}

// NewParameter returns a holder when holder is not empty, otherwise a literal. A literal's
// value is cast to dt when dt is not NoneType; a literal with NoneType takes the type of its
// value.
func NewParameter(dt DataType, holder string, value Value) (*Parameter, error) {
	if holder != "" {
		if value != nil {
			return nil, fmt.Errorf("filter: %w: holder %s has a value", ErrInvalidTree, holder)
		}
		return NewHolder(holder, dt), nil
	}
	if value == nil {
		return nil, fmt.Errorf("filter: %w: parameter without holder or value",
			ErrInvalidTree)
	}
	if dt == NoneType {
		return NewLiteral(value), nil
	}

	v, err := Cast(dt, value)
	if err != nil {
		return nil, err
	}
	return NewLiteral(v), nil
}

// NewHolder returns a reference to the column name; dt is NoneType unless the column's type
// is already known.
func NewHolder(name string, dt DataType) *Parameter {
	return &Parameter{
		nodeRef:  nodeRef{refs: 1},
		dataType: dt,
		holder:   name,
	}
}

func NewLiteral(v Value) *Parameter {
	return &Parameter{
		nodeRef:  nodeRef{refs: 1},
		dataType: v.DataType(),
		value:    v,
	}
}

func (p *Parameter) DataType() DataType {
	return p.dataType
}

func (p *Parameter) IsHolder() bool {
	return p.holder != ""
}

func (p *Parameter) Holder() string {
	return p.holder
}

func (p *Parameter) Value() Value {
	return p.value
}

func (p *Parameter) String() string {
	if p.holder != "" {
		return p.holder
	}
	return Format(p.value)
}
