package expr

import (
	"fmt"
	"sort"
)

// FreeVars returns the names that occur free in e, sorted.
// A closed expression has none.
func FreeVars(e Expr) []string {
	seen := make(map[string]bool)
	freeVarsExpr(newscope(nil), e, seen)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func freeVarsExpr(s *scope, expr Expr, seen map[string]bool) {
	switch e := expr.(type) {
	case *NumExpr, *BoolExpr:
	case *VarExpr:
		if !s.has(e.Name) {
			seen[e.Name] = true
		}
	case *BinExpr:
		freeVarsExpr(s, e.Left, seen)
		freeVarsExpr(s, e.Right, seen)
	case *LetExpr:
		freeVarsExpr(s, e.Val, seen)
		inner := s.push()
		inner.define(e.Var, nil)
		freeVarsExpr(inner, e.Body, seen)
	case *IfExpr:
		freeVarsExpr(s, e.Cond, seen)
		freeVarsExpr(s, e.Then, seen)
		freeVarsExpr(s, e.Else, seen)
	default:
		panic(fmt.Sprintf("unhandled case: %T", e))
	}
}

// HasVariable reports whether name occurs free in e.
func HasVariable(e Expr, name string) bool {
	switch e := e.(type) {
	case *NumExpr, *BoolExpr:
		return false
	case *VarExpr:
		return e.Name == name
	case *BinExpr:
		return HasVariable(e.Left, name) || HasVariable(e.Right, name)
	case *LetExpr:
		return HasVariable(e.Val, name) || (e.Var != name && HasVariable(e.Body, name))
	case *IfExpr:
		return HasVariable(e.Cond, name) || HasVariable(e.Then, name) || HasVariable(e.Else, name)
	default:
		panic(fmt.Sprintf("unhandled case: %T", e))
	}
}

// Subst returns a copy of e with every free occurrence of name replaced
// by repl. The result shares no nodes with e or repl.
//
// The substitution is not capture-avoiding: if repl has free variables
// that a let in e rebinds, they are captured. Substituting values
// (see ToExpr) never has this problem.
func Subst(e Expr, name string, repl Expr) Expr {
	if !HasVariable(e, name) {
		return clone(e)
	}
	switch e := e.(type) {
	case *VarExpr:
		return clone(repl)
	case *BinExpr:
		return &BinExpr{
			Op:    e.Op,
			Left:  Subst(e.Left, name, repl),
			Right: Subst(e.Right, name, repl),
		}
	case *LetExpr:
		body := e.Body
		if e.Var != name {
			body = Subst(e.Body, name, repl)
		}
		return &LetExpr{
			Var:  e.Var,
			Val:  Subst(e.Val, name, repl),
			Body: body,
		}
	case *IfExpr:
		return &IfExpr{
			Cond: Subst(e.Cond, name, repl),
			Then: Subst(e.Then, name, repl),
			Else: Subst(e.Else, name, repl),
		}
	default:
		panic(fmt.Sprintf("unhandled case: %T", e))
	}
}

func clone(expr Expr) Expr {
	switch e := expr.(type) {
	case *NumExpr:
		return &NumExpr{Value: e.Value}
	case *BoolExpr:
		return &BoolExpr{Value: e.Value}
	case *VarExpr:
		return &VarExpr{Name: e.Name}
	case *BinExpr:
		return &BinExpr{Op: e.Op, Left: clone(e.Left), Right: clone(e.Right)}
	case *LetExpr:
		return &LetExpr{Var: e.Var, Val: clone(e.Val), Body: clone(e.Body)}
	case *IfExpr:
		return &IfExpr{Cond: clone(e.Cond), Then: clone(e.Then), Else: clone(e.Else)}
	default:
		panic(fmt.Sprintf("unhandled case: %T", e))
	}
}
