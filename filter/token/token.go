package token

import (
	"fmt"
	"strings"
)

const (
	EOF = -(iota + 1)
	Error
	Identifier
	Reserved
	String
	Number

	AndAnd
	BarBar
	EqualEqual
	BangEqual
	LessEqual
	GreaterEqual
	EqualTilde
	BangTilde
)

const (
	LParen = '('
	RParen = ')'
)

const (
	Equal   = '='
	Less    = '<'
	Greater = '>'
	Bang    = '!'
)

var operators = map[rune]string{
	AndAnd:       "&&",
	BarBar:       "||",
	EqualEqual:   "==",
	BangEqual:    "!=",
	LessEqual:    "<=",
	GreaterEqual: ">=",
	EqualTilde:   "=~",
	BangTilde:    "!~",
}

var (
	opRunes = map[rune]bool{
		'&': true, '|': true, '=': true, '!': true, '<': true, '>': true, '~': true,
	}
	Operators = map[string]rune{}
)

type Keyword int

const (
	NoKeyword Keyword = iota
	AND
	OR
	NOT
	EQ
	NE
	LT
	LE
	GT
	GE
	TRUE
	FALSE
)

var keywords = map[string]Keyword{
	"and":   AND,
	"or":    OR,
	"not":   NOT,
	"eq":    EQ,
	"ne":    NE,
	"lt":    LT,
	"le":    LE,
	"gt":    GT,
	"ge":    GE,
	"true":  TRUE,
	"false": FALSE,
}

// LookupKeyword matches keywords regardless of case.
func LookupKeyword(s string) Keyword {
	return keywords[strings.ToLower(s)]
}

func IsOpRune(r rune) bool {
	_, ok := opRunes[r]
	return ok
}

func Format(r rune) string {
	if r > 0 {
		return fmt.Sprintf("rune %c", r)
	}
	if s, ok := operators[r]; ok {
		return s
	}
	return fmt.Sprintf("token %d", r)
}

func init() {
	for r, s := range operators {
		Operators[s] = r
	}
}
