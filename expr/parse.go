package expr

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Parse parses a complete expression.
// Anything other than whitespace and comments after the expression is an error.
func Parse(input string) (Expr, error) {
	p := newParser(input)
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.unexpected()
	}
	if p.err != nil {
		// e.g. an unterminated comment after a complete expression
		return nil, p.err
	}
	return e, nil
}

// ParseReader reads all of r and parses it with Parse.
func ParseReader(r io.Reader) (Expr, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	return Parse(string(b))
}

// parser is a recursive descent parser with one token of lookahead.
// p.tok is the next token that has not been consumed yet.
type parser struct {
	lex lexer
	tok token
	err *ParseError
}

func newParser(input string) *parser {
	p := new(parser)
	p.lex.Init(input)
	p.advance()
	return p
}

func (p *parser) advance() {
	p.tok = p.lex.next()
	if p.lex.err != nil && p.err == nil {
		p.err = p.lex.err
	}
}

func (p *parser) errorf(tok token, format string, args ...interface{}) *ParseError {
	if p.err != nil {
		// a scanner error always comes first: the token after it is garbage
		return p.err
	}
	return &ParseError{Pos: tok.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) unexpected() *ParseError {
	if p.tok.kind == tokEOF {
		return p.errorf(p.tok, "unexpected end of input")
	}
	return p.errorf(p.tok, "unexpected %s", p.tok)
}

// expect consumes a token of the given kind.
// what describes the token for the error message.
func (p *parser) expect(kind tokenKind, what string) error {
	if p.err != nil {
		return p.err
	}
	if p.tok.kind != kind {
		if p.tok.kind == tokEOF {
			return p.errorf(p.tok, "expected %s, found end of input", what)
		}
		return p.errorf(p.tok, "expected %s, found %s", what, p.tok)
	}
	p.advance()
	return nil
}

// expr := let_expr | if_expr | eq_expr
//
// let and if are also primaries, so parseEqs handles all three;
// a let or if body extends as far to the right as possible either way.
func (p *parser) parseExpr() (Expr, error) {
	return p.parseEqs()
}

// eq_expr := add_expr ( "==" add_expr )?
func (p *parser) parseEqs() (Expr, error) {
	left, err := p.parseAdds()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEq {
		return left, nil
	}
	p.advance()
	right, err := p.parseAdds()
	if err != nil {
		return nil, err
	}
	return Eq(left, right), nil
}

// add_expr := mult_expr ( "+" mult_expr )*
func (p *parser) parseAdds() (Expr, error) {
	left, err := p.parseMults()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokPlus {
		p.advance()
		right, err := p.parseMults()
		if err != nil {
			return nil, err
		}
		left = Add(left, right)
	}
	return left, nil
}

// mult_expr := unary_expr ( "*" unary_expr )*
func (p *parser) parseMults() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokStar {
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = Mult(left, right)
	}
	return left, nil
}

// unary_expr := ("-")? primary
//
// A minus directly before a number is part of the literal,
// so that the most negative int64 can be written down.
// Before anything else it means multiplication by -1.
func (p *parser) parseUnary() (Expr, error) {
	if p.tok.kind != tokMinus {
		return p.parsePrimary()
	}
	p.advance()
	if p.tok.kind == tokNum {
		return p.parseNum("-")
	}
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return Mult(Num(-1), e), nil
}

func (p *parser) parsePrimary() (Expr, error) {
	if p.err != nil {
		return nil, p.err
	}
	switch p.tok.kind {
	case tokNum:
		return p.parseNum("")
	case tokTrue, tokFalse:
		b := p.tok.kind == tokTrue
		p.advance()
		return Bool(b), nil
	case tokIdent:
		name := p.tok.text
		p.advance()
		return Var(name), nil
	case tokLParen:
		return p.parseParen()
	case tokLet:
		return p.parseLet()
	case tokIf:
		return p.parseIf()
	case tokIn, tokThen, tokElse:
		return nil, p.errorf(p.tok, "unexpected keyword %s", p.tok)
	default:
		return nil, p.unexpected()
	}
}

func (p *parser) parseNum(sign string) (Expr, error) {
	tok := p.tok
	n, err := strconv.ParseInt(sign+tok.text, 0, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return nil, p.errorf(tok, "integer literal %s%s out of range", sign, tok.text)
		}
		return nil, p.errorf(tok, "malformed integer literal %s%s", sign, tok.text)
	}
	p.advance()
	return Num(n), nil
}

// "(" expr ")"
func (p *parser) parseParen() (Expr, error) {
	open := p.tok
	p.advance()
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokRParen {
		if p.err != nil {
			return nil, p.err
		}
		return nil, p.errorf(p.tok, "expected ')' to match '(' at %d:%d, found %s", open.pos.Line, open.pos.Column, p.tok)
	}
	p.advance()
	return e, nil
}

// "let" IDENT "=" expr "in" expr
func (p *parser) parseLet() (Expr, error) {
	p.advance()
	if p.err != nil {
		return nil, p.err
	}
	name := p.tok
	switch name.kind {
	case tokIdent:
	case tokEOF:
		return nil, p.errorf(name, "expected variable name after let, found end of input")
	default:
		if IsKeyword(name.text) {
			return nil, p.errorf(name, "reserved word %s cannot be used as a variable name", name)
		}
		return nil, p.errorf(name, "expected variable name after let, found %s", name)
	}
	p.advance()
	if err := p.expect(tokAssign, "'='"); err != nil {
		return nil, err
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokIn, "in"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return Let(name.text, val, body), nil
}

// "if" expr "then" expr "else" expr
func (p *parser) parseIf() (Expr, error) {
	p.advance()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokThen, "then"); err != nil {
		return nil, err
	}
	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokElse, "else"); err != nil {
		return nil, err
	}
	els, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return If(cond, then, els), nil
}
