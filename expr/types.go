package expr

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Type is a static type: IntT, BoolT or AnyT.
type Type interface {
	fmt.Stringer
	isType()
}

type IntT struct{}
type BoolT struct{}

// AnyT is the type of an expression whose type couldn't be determined
// because of an earlier error. It is compatible with every type so that
// one mistake isn't reported over and over.
type AnyT struct{}

func (IntT) isType()  {}
func (BoolT) isType() {}
func (AnyT) isType()  {}

func (IntT) String() string  { return "int" }
func (BoolT) String() string { return "bool" }
func (AnyT) String() string  { return "any" }

// Typecheck computes the static type of e, which must be closed.
//
// The checker is stricter than Eval: both branches of an if must have
// the same type even though only one of them ever runs, and unbound
// names are errors even in a branch that would not be taken.
// All errors found are returned together as a *multierror.Error.
func Typecheck(e Expr) (Type, error) {
	t, err := typecheckExpr(newscope(nil), e)
	if err != nil {
		return t, multierror.Append(nil, err)
	}
	return t, nil
}

func typecheckExpr(s *scope, expr Expr) (Type, error) {
	switch e := expr.(type) {
	case *NumExpr:
		return IntT{}, nil
	case *BoolExpr:
		return BoolT{}, nil
	case *VarExpr:
		if !s.has(e.Name) {
			return AnyT{}, fmt.Errorf("%s not in scope", e.Name)
		}
		return s.lookup(e.Name).(Type), nil
	case *BinExpr:
		t1, err1 := typecheckExpr(s, e.Left)
		t2, err2 := typecheckExpr(s, e.Right)
		var result *multierror.Error
		result = multierror.Append(result, nonNil(err1, err2)...)
		switch e.Op {
		case OpAdd, OpMult:
			if !isInt(t1) || !isInt(t2) {
				result = multierror.Append(result, fmt.Errorf("operands to %s must be %s, found %s and %s", e.Op, IntT{}, t1, t2))
			}
			return IntT{}, result.ErrorOrNil()
		case OpEq:
			// any two values can be compared
			return BoolT{}, result.ErrorOrNil()
		default:
			panic(fmt.Sprintf("unhandled binop: %s", e.Op))
		}
	case *LetExpr:
		t1, err1 := typecheckExpr(s, e.Val)
		inner := s.push()
		inner.define(e.Var, t1)
		t2, err2 := typecheckExpr(inner, e.Body)
		var result *multierror.Error
		result = multierror.Append(result, nonNil(err1, err2)...)
		return t2, result.ErrorOrNil()
	case *IfExpr:
		t1, err1 := typecheckExpr(s, e.Cond)
		t2, err2 := typecheckExpr(s, e.Then)
		t3, err3 := typecheckExpr(s, e.Else)
		var result *multierror.Error
		result = multierror.Append(result, nonNil(err1)...)
		if !sameType(t1, BoolT{}) {
			result = multierror.Append(result, fmt.Errorf("if condition must be %s, found %s", BoolT{}, t1))
		}
		result = multierror.Append(result, nonNil(err2, err3)...)
		if !sameType(t2, t3) {
			result = multierror.Append(result, fmt.Errorf("both branches of an if must have the same type, found %s and %s", t2, t3))
			return AnyT{}, result.ErrorOrNil()
		}
		return join(t2, t3), result.ErrorOrNil()
	default:
		panic(fmt.Sprintf("unhandled case: %T", e))
	}
}

// nonNil strips out nil errors.
func nonNil(errs ...error) []error {
	var out []error
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}

func isInt(t Type) bool {
	return sameType(t, IntT{})
}

// sameType reports whether t1 and t2 are compatible.
// AnyT is compatible with everything.
func sameType(t1, t2 Type) bool {
	if t1 == (AnyT{}) || t2 == (AnyT{}) {
		return true
	}
	return t1 == t2
}

// join picks the more informative of two compatible types.
func join(t1, t2 Type) Type {
	if t1 == (AnyT{}) {
		return t2
	}
	return t1
}
