package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// format.go converts an AST back to source code

// Precedence levels, lowest first.
// let and if have no operator so they sit at precNone:
// their bodies extend as far right as they can.
type precedence int

const (
	precNone precedence = iota
	precEq
	precAdd
	precMult
	precAtom
)

var binOpPrec = map[BinOp]precedence{
	OpEq:   precEq,
	OpAdd:  precAdd,
	OpMult: precMult,
}

func precOf(e Expr) precedence {
	switch e := e.(type) {
	case *NumExpr, *BoolExpr, *VarExpr:
		return precAtom
	case *BinExpr:
		return binOpPrec[e.Op]
	case *LetExpr, *IfExpr:
		return precNone
	default:
		panic(fmt.Sprintf("unhandled case in precOf: %T", e))
	}
}

type formatter struct {
	buf strings.Builder
	// pretty selects minimal parenthesization;
	// otherwise every compound expression is wrapped.
	pretty bool
}

// Print renders e with every operator, let and if in parentheses.
func Print(e Expr) string {
	f := formatter{pretty: false}
	f.visitExpr(e)
	return f.buf.String()
}

// PrettyPrint renders e with only the parentheses needed
// to parse back to the same tree.
func PrettyPrint(e Expr) string {
	f := formatter{pretty: true}
	f.visitExpr(e)
	return f.buf.String()
}

func (f *formatter) visitExpr(e Expr) {
	switch e := e.(type) {
	case *NumExpr:
		f.write(strconv.FormatInt(e.Value, 10))
	case *BoolExpr:
		f.write(strconv.FormatBool(e.Value))
	case *VarExpr:
		f.write(e.Name)
	case *BinExpr:
		if !f.pretty {
			f.write("(")
		}
		op := binOpPrec[e.Op]
		f.visitOperand(e.Left, f.needParens(e.Left, op, false))
		f.write(string(e.Op))
		f.visitOperand(e.Right, f.needParens(e.Right, op, true))
		if !f.pretty {
			f.write(")")
		}
	case *LetExpr:
		if !f.pretty {
			f.write("(")
		}
		f.write("let " + e.Var + " = ")
		f.visitExpr(e.Val)
		f.write(" in ")
		f.visitExpr(e.Body)
		if !f.pretty {
			f.write(")")
		}
	case *IfExpr:
		if !f.pretty {
			f.write("(")
		}
		f.write("if ")
		f.visitExpr(e.Cond)
		f.write(" then ")
		f.visitExpr(e.Then)
		f.write(" else ")
		f.visitExpr(e.Else)
		if !f.pretty {
			f.write(")")
		}
	default:
		panic(fmt.Sprintf("unhandled case in formatter.visitExpr: %T", e))
	}
}

// needParens reports whether child, an operand of an operator with
// precedence op, must be wrapped when pretty printing.
// + and * are left-associative, so an equal-precedence right operand
// is wrapped to keep its grouping; == doesn't chain at all.
// Print wraps compound children itself, so it never needs extra parens.
func (f *formatter) needParens(child Expr, op precedence, right bool) bool {
	if !f.pretty {
		return false
	}
	p := precOf(child)
	if p < op {
		return true
	}
	if p == op && (right || op == precEq) {
		return true
	}
	return false
}

func (f *formatter) visitOperand(e Expr, parens bool) {
	if parens {
		f.write("(")
	}
	f.visitExpr(e)
	if parens {
		f.write(")")
	}
}

func (f *formatter) write(s string) {
	f.buf.WriteString(s)
}
