package expr

import "fmt"

// Interp evaluates e in the empty environment.
func Interp(e Expr) (Val, error) {
	return Eval(e, nil)
}

// Eval evaluates e in env.
//
// Evaluation is strict and left to right; only the branch of an if
// that is selected gets evaluated. The first error encountered stops
// evaluation and is returned as a RuntimeError.
//
// Arithmetic is on int64 and wraps on overflow.
func Eval(e Expr, env *Env) (Val, error) {
	switch e := e.(type) {
	case *NumExpr:
		return NumVal(e.Value), nil
	case *BoolExpr:
		return BoolVal(e.Value), nil
	case *BinExpr:
		l, err := Eval(e.Left, env)
		if err != nil {
			return nil, err
		}
		r, err := Eval(e.Right, env)
		if err != nil {
			return nil, err
		}
		return ApplyBinOp(e.Op, l, r)
	case *VarExpr:
		v, ok := env.Lookup(e.Name)
		if !ok {
			return nil, &UnboundVariableError{Name: e.Name}
		}
		return v, nil
	case *LetExpr:
		// the right-hand side can't see its own binding
		v, err := Eval(e.Val, env)
		if err != nil {
			return nil, err
		}
		return Eval(e.Body, env.Extend(e.Var, v))
	case *IfExpr:
		c, err := Eval(e.Cond, env)
		if err != nil {
			return nil, err
		}
		b, ok := c.(BoolVal)
		if !ok {
			return nil, &RuntimeTypeError{Op: "if", Want: "boolean", Got: c}
		}
		if b {
			return Eval(e.Then, env)
		}
		return Eval(e.Else, env)
	default:
		panic(fmt.Sprintf("unhandled case: %T", e))
	}
}

// ApplyBinOp applies op to two evaluated operands.
// + and * need numbers on both sides; the left operand is checked first.
// == compares any two values.
func ApplyBinOp(op BinOp, l, r Val) (Val, error) {
	switch op {
	case OpEq:
		return BoolVal(l == r), nil
	case OpAdd, OpMult:
		a, ok := l.(NumVal)
		if !ok {
			return nil, &RuntimeTypeError{Op: string(op), Want: "number", Got: l}
		}
		b, ok := r.(NumVal)
		if !ok {
			return nil, &RuntimeTypeError{Op: string(op), Want: "number", Got: r}
		}
		if op == OpAdd {
			return a + b, nil
		}
		return a * b, nil
	default:
		panic(fmt.Sprintf("unhandled binop: %s", op))
	}
}
