package parser

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/leftmike/colfilter/filter"
	"github.com/leftmike/colfilter/filter/scanner"
	"github.com/leftmike/colfilter/filter/token"
)

// ColumnsFunc returns the type of the named column or false if there is no such column.
type ColumnsFunc func(name string) (filter.DataType, bool)

type Parser interface {
	Columns(fn ColumnsFunc)
	ParseExpr() (filter.Node, error)
}

type parser struct {
	scanner   scanner.Scanner
	sctx      scanner.ScanCtx
	unscanned bool
	scanned   rune
	columns   ColumnsFunc
	nodes     []filter.Node
}

func NewParser(rr io.RuneReader, fn string) Parser {
	var p parser
	p.scanner.Init(rr, fn)
	return &p
}

// Parse parses a complete filter expression; holders are untyped.
func Parse(s string) (filter.Node, error) {
	return NewParser(strings.NewReader(s), "filter").ParseExpr()
}

func (p *parser) Columns(fn ColumnsFunc) {
	p.columns = fn
}

// ParseExpr returns the root of a new tree holding one reference. On error, every node built
// so far is released.
func (p *parser) ParseExpr() (n filter.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); ok {
				panic(r)
			}
			err = r.(error)
			n = nil
			for _, pn := range p.nodes {
				filter.Release(pn)
			}
		}
		p.nodes = nil
	}()

	if p.scan() == token.EOF {
		p.error("expected an expression got end of input")
	}
	p.unscan()

	n = p.parseOr()
	p.expectEOF()
	return
}

func (p *parser) error(msg string) {
	panic(fmt.Errorf("%s: %s", p.sctx.Position, msg))
}

func (p *parser) scan() rune {
	if p.unscanned {
		p.unscanned = false
		return p.scanned
	}

	p.scanner.Scan(&p.sctx)
	p.scanned = p.sctx.Token
	if p.scanned == token.Error {
		p.error(p.sctx.Error.Error())
	}
	return p.scanned
}

func (p *parser) unscan() {
	p.unscanned = true
}

func (p *parser) got() string {
	switch p.scanned {
	case token.EOF:
		return "end of input"
	case token.Identifier:
		return fmt.Sprintf("identifier %s", p.sctx.Identifier)
	case token.Reserved:
		return fmt.Sprintf("keyword %s", p.sctx.Identifier)
	case token.String:
		return fmt.Sprintf("string %q", p.sctx.String)
	case token.Number:
		return fmt.Sprintf("number %v", p.sctx.Number)
	}
	return token.Format(p.scanned)
}

func (p *parser) expectEOF() {
	if p.scan() != token.EOF {
		p.error(fmt.Sprintf("expected the end of the expression got %s", p.got()))
	}
}

func (p *parser) maybeKeyword(tok rune, kw token.Keyword) bool {
	r := p.scan()
	if r == tok || (r == token.Reserved && p.sctx.Keyword == kw) {
		return true
	}
	p.unscan()
	return false
}

// track records nodes so that they can be released if parsing fails; a node is dropped from
// the list once it is owned by an expression.
func (p *parser) track(n filter.Node) filter.Node {
	p.nodes = append(p.nodes, n)
	return n
}

func (p *parser) untrack(ns ...filter.Node) {
	for _, n := range ns {
		for ndx := len(p.nodes) - 1; ndx >= 0; ndx-- {
			if p.nodes[ndx] == n {
				p.nodes = append(p.nodes[:ndx], p.nodes[ndx+1:]...)
				break
			}
		}
	}
}

func (p *parser) newExpr(op filter.Op, left, right filter.Node) filter.Node {
	e, err := filter.NewExpression(op, left, right)
	if err != nil {
		p.error(err.Error())
	}
	p.untrack(left, right)
	return p.track(e)
}

/*
<or>      = <and> [ ('||' | OR) <and> ...]
<and>     = <unary> [ ('&&' | AND) <unary> ...]
<unary>   = ('!' | NOT) <unary> | <cmp>
<cmp>     = <operand> [ <cmp-op> <operand> ]
<cmp-op>  = '==' | '=' | EQ | '!=' | NE | '<' | LT | '<=' | LE | '>' | GT | '>=' | GE
          | '=~' | '!~'
<operand> = <number> | <string> | TRUE | FALSE | <column> | '(' <or> ')'
*/

func (p *parser) parseOr() filter.Node {
	n := p.parseAnd()
	for p.maybeKeyword(token.BarBar, token.OR) {
		n = p.newExpr(filter.OrOp, n, p.parseAnd())
	}
	return n
}

func (p *parser) parseAnd() filter.Node {
	n := p.parseUnary()
	for p.maybeKeyword(token.AndAnd, token.AND) {
		n = p.newExpr(filter.AndOp, n, p.parseUnary())
	}
	return n
}

func (p *parser) parseUnary() filter.Node {
	if p.maybeKeyword(token.Bang, token.NOT) {
		return p.newExpr(filter.NotOp, nil, p.parseUnary())
	}
	return p.parseCompare()
}

var compareOps = map[rune]filter.Op{
	token.EqualEqual:   filter.EqualOp,
	token.Equal:        filter.EqualOp,
	token.BangEqual:    filter.NotEqualOp,
	token.Less:         filter.LessThanOp,
	token.LessEqual:    filter.LessEqualOp,
	token.Greater:      filter.GreaterThanOp,
	token.GreaterEqual: filter.GreaterEqualOp,
	token.EqualTilde:   filter.MatchOp,
	token.BangTilde:    filter.NotMatchOp,
}

var compareKeywords = map[token.Keyword]filter.Op{
	token.EQ: filter.EqualOp,
	token.NE: filter.NotEqualOp,
	token.LT: filter.LessThanOp,
	token.LE: filter.LessEqualOp,
	token.GT: filter.GreaterThanOp,
	token.GE: filter.GreaterEqualOp,
}

func (p *parser) parseCompare() filter.Node {
	left := p.parseOperand()

	r := p.scan()
	op, ok := compareOps[r]
	if !ok && r == token.Reserved {
		op, ok = compareKeywords[p.sctx.Keyword]
	}
	if !ok {
		p.unscan()
		return left
	}

	return p.newExpr(op, left, p.parseOperand())
}

func (p *parser) parseOperand() filter.Node {
	switch r := p.scan(); r {
	case token.Number:
		return p.track(filter.NewLiteral(filter.NumberValue(p.sctx.Number)))
	case token.String:
		return p.track(filter.NewLiteral(filter.StringValue(p.sctx.String)))
	case token.Reserved:
		switch p.sctx.Keyword {
		case token.TRUE:
			return p.track(filter.NewLiteral(filter.BoolValue(true)))
		case token.FALSE:
			return p.track(filter.NewLiteral(filter.BoolValue(false)))
		}
	case token.Identifier:
		name := p.sctx.Identifier
		dt := filter.NoneType
		if p.columns != nil {
			var ok bool
			dt, ok = p.columns(name)
			if !ok {
				p.error(fmt.Sprintf("unknown column %s", name))
			}
		}
		return p.track(filter.NewHolder(name, dt))
	case token.LParen:
		n := p.parseOr()
		if p.scan() != token.RParen {
			p.error(fmt.Sprintf("expected closing parenthesis got %s", p.got()))
		}
		return n
	}

	p.error(fmt.Sprintf("expected a number, a string, a column, TRUE, or FALSE got %s",
		p.got()))
	return nil
}
