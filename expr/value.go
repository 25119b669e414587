package expr

import (
	"fmt"
	"strconv"
)

// Val is a runtime value: a NumVal or a BoolVal.
// Vals are comparable with ==, and a NumVal never equals a BoolVal.
type Val interface {
	fmt.Stringer
	isVal()
}

type NumVal int64

type BoolVal bool

func (NumVal) isVal()  {}
func (BoolVal) isVal() {}

func (v NumVal) String() string  { return strconv.FormatInt(int64(v), 10) }
func (v BoolVal) String() string { return strconv.FormatBool(bool(v)) }

// ToExpr returns the literal expression that evaluates to v.
func ToExpr(v Val) Expr {
	switch v := v.(type) {
	case NumVal:
		return Num(int64(v))
	case BoolVal:
		return Bool(bool(v))
	default:
		panic(fmt.Sprintf("unhandled case: %T", v))
	}
}

// kind names the sort of value v is, for error messages.
func kind(v Val) string {
	switch v.(type) {
	case NumVal:
		return "number"
	case BoolVal:
		return "boolean"
	default:
		panic(fmt.Sprintf("unhandled case: %T", v))
	}
}
