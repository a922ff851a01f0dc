package scanner

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"unicode"

	"github.com/leftmike/colfilter/filter/token"
)

type Position struct {
	Filename string
	Line     int
	Column   int
}

type ScanCtx struct {
	Token      rune
	Error      error
	Identifier string // Identifier and Reserved
	Keyword    token.Keyword
	String     string
	Number     float64
	Position
}

type Scanner struct {
	initialized bool
	rr          io.RuneReader
	unread      bool
	read        rune
	filename    string
	line        int
	column      int
	prevLine    int
	prevColumn  int
	buffer      bytes.Buffer
}

func (pos Position) String() string {
	s := pos.Filename
	if pos.Line > 0 {
		s += fmt.Sprintf(":%d:%d", pos.Line, pos.Column)
	}
	return s
}

func (s *Scanner) Init(rr io.RuneReader, fn string) {
	if s.initialized {
		panic("scanner already initialized")
	}
	s.initialized = true

	s.rr = rr
	s.filename = fn
	s.line = 1
}

func (s *Scanner) Scan(sctx *ScanCtx) {
	s.buffer.Reset()
	sctx.Filename = s.filename
	sctx.Line = s.line
	sctx.Column = s.column
	sctx.Keyword = token.NoKeyword
	sctx.Token = s.scan(sctx)
}

func (s *Scanner) scan(sctx *ScanCtx) rune {
	r := s.readRune(sctx)
	for {
		if r < 0 {
			return r
		}
		if !unicode.IsSpace(r) {
			break
		}
		r = s.readRune(sctx)
	}

	sctx.Column = s.column
	sctx.Line = s.line

	if unicode.IsLetter(r) || r == '_' {
		return s.scanIdentifier(sctx, r)
	} else if unicode.IsDigit(r) {
		return s.scanNumber(sctx, r, 1)
	} else if r == '-' {
		r = s.readRune(sctx)
		if unicode.IsDigit(r) {
			return s.scanNumber(sctx, r, -1)
		} else if r == token.Error {
			return token.Error
		}
		sctx.Error = fmt.Errorf("scanner: unexpected character '-'")
		return token.Error
	} else if r == '"' || r == '\'' {
		return s.scanString(sctx, r)
	} else if token.IsOpRune(r) {
		s.buffer.WriteRune(r)
		r2 := s.readRune(sctx)
		if token.IsOpRune(r2) {
			s.buffer.WriteRune(r2)
			if r3, ok := token.Operators[s.buffer.String()]; ok {
				return r3
			}
			s.unreadRune()
		} else if r2 == token.Error {
			return token.Error
		} else if r2 != token.EOF {
			s.unreadRune()
		}

		switch r {
		case token.Equal, token.Less, token.Greater, token.Bang:
			return r
		}
		sctx.Error = fmt.Errorf("scanner: unexpected operator %c", r)
		return token.Error
	} else if r == token.LParen || r == token.RParen {
		return r
	}

	sctx.Error = fmt.Errorf("scanner: unexpected character '%c'", r)
	return token.Error
}

func (s *Scanner) readRune(sctx *ScanCtx) rune {
	if s.unread {
		s.unread = false
		s.advance(s.read)
		return s.read
	}

	var err error
	s.read, _, err = s.rr.ReadRune()
	if err == io.EOF {
		s.read = token.EOF
		return token.EOF
	} else if err != nil {
		sctx.Error = err
		s.read = token.Error
		return token.Error
	}

	s.advance(s.read)
	return s.read
}

func (s *Scanner) advance(r rune) {
	s.prevLine = s.line
	s.prevColumn = s.column
	if r == '\n' {
		s.line += 1
		s.column = 0
	} else {
		s.column += 1
	}
}

// unreadRune pushes back the last rune read; the position goes back with it.
func (s *Scanner) unreadRune() {
	s.unread = true
	s.line = s.prevLine
	s.column = s.prevColumn
}

func isIdentifierRune(r rune) bool {
	switch r {
	case '_', '.', '%', ':', '/', '-':
		return true
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (s *Scanner) scanIdentifier(sctx *ScanCtx, r rune) rune {
	for {
		s.buffer.WriteRune(r)
		r = s.readRune(sctx)
		if r == token.EOF {
			break
		} else if r == token.Error {
			return token.Error
		}
		if !isIdentifierRune(r) {
			s.unreadRune()
			break
		}
	}

	sctx.Identifier = s.buffer.String()
	if kw := token.LookupKeyword(sctx.Identifier); kw != token.NoKeyword {
		sctx.Keyword = kw
		return token.Reserved
	}
	return token.Identifier
}

func (s *Scanner) scanNumber(sctx *ScanCtx, r rune, sign float64) rune {
	dot := false
	for {
		s.buffer.WriteRune(r)
		r = s.readRune(sctx)
		if r == token.EOF {
			break
		} else if r == token.Error {
			return token.Error
		}
		if !dot && r == '.' {
			dot = true
		} else if !unicode.IsDigit(r) {
			s.unreadRune()
			break
		}
	}

	f, err := strconv.ParseFloat(s.buffer.String(), 64)
	if err != nil {
		sctx.Error = err
		return token.Error
	}
	sctx.Number = f * sign
	return token.Number
}

func (s *Scanner) scanString(sctx *ScanCtx, delim rune) rune {
	for {
		r := s.readRune(sctx)
		if r == token.EOF {
			sctx.Error = fmt.Errorf("scanner: string missing terminating %c", delim)
			return token.Error
		} else if r == token.Error {
			return token.Error
		}
		if r == delim {
			break
		}
		if r == '\\' {
			r = s.readRune(sctx)
			switch r {
			case 'n':
				r = '\n'
			case 't':
				r = '\t'
			case 'r':
				r = '\r'
			case token.EOF:
				sctx.Error = fmt.Errorf("scanner: incomplete string escape")
				return token.Error
			case token.Error:
				return token.Error
			}
		}
		s.buffer.WriteRune(r)
	}

	sctx.String = s.buffer.String()
	return token.String
}
