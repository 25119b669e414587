package expr

import (
	"fmt"
	"text/scanner"
)

// A ParseError reports malformed input.
// Pos is the position of the token that could not be parsed.
type ParseError struct {
	Pos scanner.Position
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// RuntimeError is an error raised while evaluating an expression.
// It is implemented by *UnboundVariableError and *RuntimeTypeError.
type RuntimeError interface {
	error
	runtimeError()
}

// An UnboundVariableError reports a variable with no binding in scope.
type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return "unbound variable: " + e.Name
}

// A RuntimeTypeError reports an operator applied to a value of the wrong kind.
// Op is the operator ("+", "*" or "if"), Want the kind of value it needs.
type RuntimeTypeError struct {
	Op   string
	Want string
	Got  Val
}

func (e *RuntimeTypeError) Error() string {
	return fmt.Sprintf("type error: %s expects a %s, found %s %s", e.Op, e.Want, kind(e.Got), e.Got)
}

func (*UnboundVariableError) runtimeError() {}
func (*RuntimeTypeError) runtimeError()     {}
