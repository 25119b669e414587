package expr

import (
	"fmt"
	"strings"
	"text/scanner"
)

const scannerMode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanComments | scanner.SkipComments

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNum
	tokIdent

	// keywords
	tokLet
	tokIn
	tokIf
	tokThen
	tokElse
	tokTrue
	tokFalse

	// punctuation
	tokPlus
	tokStar
	tokMinus
	tokEq     // ==
	tokAssign // =
	tokLParen
	tokRParen

	// anything else the scanner hands us
	tokOther
)

var keywords = map[string]tokenKind{
	"let":   tokLet,
	"in":    tokIn,
	"if":    tokIf,
	"then":  tokThen,
	"else":  tokElse,
	"true":  tokTrue,
	"false": tokFalse,
}

// IsKeyword reports whether s is a reserved word.
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

type token struct {
	kind tokenKind
	text string
	pos  scanner.Position
}

func (t token) String() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.text)
}

type lexer struct {
	scanner scanner.Scanner
	err     *ParseError
}

func (l *lexer) Init(src string) {
	l.scanner.Init(strings.NewReader(src))
	l.scanner.Mode = scannerMode
	l.scanner.Error = func(s *scanner.Scanner, msg string) {
		if l.err == nil {
			l.err = &ParseError{Pos: s.Pos(), Msg: msg}
		}
	}
}

// next scans the next token.
// Scanner errors (a malformed number, say) are reported through l.err.
func (l *lexer) next() token {
	r := l.scanner.Scan()
	tok := token{text: l.scanner.TokenText(), pos: l.scanner.Position}
	switch r {
	case scanner.EOF:
		tok.kind = tokEOF
		tok.pos = l.scanner.Pos()
	case scanner.Ident:
		if k, ok := keywords[tok.text]; ok {
			tok.kind = k
		} else {
			tok.kind = tokIdent
		}
	case scanner.Int:
		tok.kind = tokNum
	case '+':
		tok.kind = tokPlus
	case '*':
		tok.kind = tokStar
	case '-':
		tok.kind = tokMinus
	case '(':
		tok.kind = tokLParen
	case ')':
		tok.kind = tokRParen
	case '=':
		if l.scanner.Peek() == '=' {
			l.scanner.Next()
			tok.kind = tokEq
			tok.text = "=="
		} else {
			tok.kind = tokAssign
		}
	default:
		tok.kind = tokOther
	}
	return tok
}
