package filter

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"
)

const (
	ExprKind  = "expr"
	ParamKind = "param"
)

// DumpNode is a read-only copy of a tree for debugging.
type DumpNode struct {
	Kind   string
	Op     string
	Type   string
	Holder string
	Value  string
	Left   *DumpNode
	Right  *DumpNode
}

// Dump copies the tree rooted at n. It neither evaluates the tree nor changes any reference
// counts.
func Dump(n Node) *DumpNode {
	switch n := n.(type) {
	case nil:
		return nil
	case *Expression:
		return &DumpNode{
			Kind:  ExprKind,
			Op:    n.op.Name(),
			Left:  Dump(n.left),
			Right: Dump(n.right),
		}
	case *Parameter:
		dn := &DumpNode{
			Kind: ParamKind,
			Type: n.dataType.String(),
		}
		if n.IsHolder() {
			dn.Holder = n.holder
		} else {
			dn.Value = Format(n.value)
		}
		return dn
	default:
		panic(fmt.Sprintf("unexpected type for filter.Node: %T: %v", n, n))
	}
}

func (dn *DumpNode) String() string {
	if dn == nil {
		return ""
	}
	if dn.Kind == ParamKind {
		if dn.Holder != "" {
			return fmt.Sprintf("%s:%s", dn.Holder, dn.Type)
		}
		return dn.Value
	}
	if dn.Left == nil {
		return fmt.Sprintf("%s(%s)", dn.Op, dn.Right)
	}
	return fmt.Sprintf("%s(%s, %s)", dn.Op, dn.Left, dn.Right)
}

func (dn *DumpNode) value(a *fastjson.Arena) *fastjson.Value {
	o := a.NewObject()
	switch dn.Kind {
	case ExprKind:
		o.Set("type", a.NewString(dn.Op))
		if dn.Left != nil {
			o.Set("left", dn.Left.object(a))
		}
		if dn.Right != nil {
			o.Set("right", dn.Right.object(a))
		}
	case ParamKind:
		o.Set("type", a.NewString(dn.Type))
		if dn.Holder != "" {
			o.Set("holder", a.NewString(dn.Holder))
		} else {
			o.Set("value", a.NewString(dn.Value))
		}
	}
	return o
}

// object wraps the node in an object keyed by its kind: {"expr": {...}}.
func (dn *DumpNode) object(a *fastjson.Arena) *fastjson.Value {
	o := a.NewObject()
	o.Set(dn.Kind, dn.value(a))
	return o
}

// JSON renders the dump as a single JSON object.
func (dn *DumpNode) JSON() []byte {
	if dn == nil {
		return []byte("null")
	}
	var a fastjson.Arena
	return dn.object(&a).MarshalTo(nil)
}

// LogDump writes the tree rooted at n to logger at debug level.
func LogDump(logger log.FieldLogger, msg string, n Node) {
	dn := Dump(n)
	logger.WithFields(log.Fields{
		"tree": dn.String(),
		"json": string(dn.JSON()),
	}).Debug(msg)
}
