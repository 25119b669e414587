// Package expr implements the msdscript expression language:
// a parser, two printers, and an evaluator.
//
// The language has integers, booleans, addition, multiplication,
// equality, non-recursive let bindings and conditionals:
//
//	let x = 5 in if x == 5 then x*2 else 0
//
// Expressions are trees of the node types below. A tree is never
// modified after it has been built, and no subtree is shared.
package expr

import "fmt"

// Expr is an expression node.
// The set of node types is closed: NumExpr, BoolExpr, BinExpr, VarExpr,
// LetExpr and IfExpr.
type Expr interface {
	fmt.Stringer
	isExpr()
}

type NumExpr struct {
	Value int64
}

type BoolExpr struct {
	Value bool
}

// BinOp is a binary operator.
type BinOp string

const (
	OpAdd  BinOp = "+"
	OpMult BinOp = "*"
	OpEq   BinOp = "=="
)

type BinExpr struct {
	Op    BinOp
	Left  Expr
	Right Expr
}

type VarExpr struct {
	Name string
}

// LetExpr binds Var to the value of Val within Body only.
type LetExpr struct {
	Var  string
	Val  Expr
	Body Expr
}

type IfExpr struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (*NumExpr) isExpr()  {}
func (*BoolExpr) isExpr() {}
func (*BinExpr) isExpr()  {}
func (*VarExpr) isExpr()  {}
func (*LetExpr) isExpr()  {}
func (*IfExpr) isExpr()   {}

func (e *NumExpr) String() string  { return PrettyPrint(e) }
func (e *BoolExpr) String() string { return PrettyPrint(e) }
func (e *BinExpr) String() string  { return PrettyPrint(e) }
func (e *VarExpr) String() string  { return PrettyPrint(e) }
func (e *LetExpr) String() string  { return PrettyPrint(e) }
func (e *IfExpr) String() string   { return PrettyPrint(e) }

func Num(n int64) Expr { return &NumExpr{Value: n} }

func Bool(b bool) Expr { return &BoolExpr{Value: b} }

func Add(left, right Expr) Expr { return &BinExpr{Op: OpAdd, Left: left, Right: right} }

func Mult(left, right Expr) Expr { return &BinExpr{Op: OpMult, Left: left, Right: right} }

func Eq(left, right Expr) Expr { return &BinExpr{Op: OpEq, Left: left, Right: right} }

func Var(name string) Expr { return &VarExpr{Name: name} }

func Let(name string, val, body Expr) Expr { return &LetExpr{Var: name, Val: val, Body: body} }

func If(cond, then, els Expr) Expr { return &IfExpr{Cond: cond, Then: then, Else: els} }

// Equal reports whether a and b are structurally equal:
// the same node types with the same payloads, all the way down.
func Equal(a, b Expr) bool {
	switch a := a.(type) {
	case *NumExpr:
		b, ok := b.(*NumExpr)
		return ok && a.Value == b.Value
	case *BoolExpr:
		b, ok := b.(*BoolExpr)
		return ok && a.Value == b.Value
	case *BinExpr:
		b, ok := b.(*BinExpr)
		return ok && a.Op == b.Op && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case *VarExpr:
		b, ok := b.(*VarExpr)
		return ok && a.Name == b.Name
	case *LetExpr:
		b, ok := b.(*LetExpr)
		return ok && a.Var == b.Var && Equal(a.Val, b.Val) && Equal(a.Body, b.Body)
	case *IfExpr:
		b, ok := b.(*IfExpr)
		return ok && Equal(a.Cond, b.Cond) && Equal(a.Then, b.Then) && Equal(a.Else, b.Else)
	default:
		panic(fmt.Sprintf("unhandled case: %T", a))
	}
}
