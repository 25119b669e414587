package expr

import (
	"regexp"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var typecheckTests = []struct {
	input string
	typ   Type
}{
	{"true", BoolT{}},
	{"false", BoolT{}},
	{"1", IntT{}},
	{"2 + 2", IntT{}},
	{"2 * -2", IntT{}},
	{"2 == 1", BoolT{}},
	{"let a = 42 in a", IntT{}},
	{"let a = 42 in a == 42", BoolT{}},
	{"let a = 42 in 42 == a", BoolT{}},
	{"let a = 42 in a == a", BoolT{}},
	{"true == false", BoolT{}},
	{"true == 1", BoolT{}},
	{"(1 == 2) == true", BoolT{}},
	{"if true then 1 else 0", IntT{}},
	{"let a = true in let b = false in if a == b then a else b", BoolT{}},
	{"let a = 1 in let a = true in a", BoolT{}},
}

var typecheckErrorTests = []struct {
	input  string
	typ    Type
	errors []string
}{
	{"true + false", IntT{}, []string{`operands to \+ must be int, found bool and bool`}},
	{"1 * true", IntT{}, []string{`operands to \* must be int, found int and bool`}},
	{"if 1 then 42 else 0", IntT{}, []string{"condition must be bool"}},
	{"if true then 42 else false", AnyT{}, []string{"both branches.*must have the same type, found int and bool"}},
	{"x", AnyT{}, []string{"x not in scope"}},
	{"let x = x in x", AnyT{}, []string{"x not in scope"}},
	{"if true then 1 else y", IntT{}, []string{"y not in scope"}},
	{"(1 + true) + (false * 2)", IntT{}, []string{
		`operands to \+ must be int, found int and bool`,
		`operands to \* must be int, found bool and int`,
	}},
	{"if 3 then a else b", AnyT{}, []string{"a not in scope", "b not in scope", "condition must be bool"}},
}

func TestTypecheck(t *testing.T) {
	for _, tt := range typecheckTests {
		expr, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.input, err)
			continue
		}
		typ, err := Typecheck(expr)
		if typ != tt.typ {
			t.Errorf("Typecheck(%q) = %v, want %v", tt.input, typ, tt.typ)
		}
		if err != nil {
			t.Errorf("Typecheck(%q): unexpected error: %v", tt.input, err)
		}
	}
	for _, tt := range typecheckErrorTests {
		expr, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.input, err)
			continue
		}
		typ, err := Typecheck(expr)
		if typ != tt.typ {
			t.Errorf("Typecheck(%q) = %v, want %v", tt.input, typ, tt.typ)
		}
		if err == nil {
			t.Errorf("Typecheck(%q): expected an error but found none", tt.input)
			continue
		}
		merr, ok := err.(*multierror.Error)
		if !ok {
			t.Errorf("Typecheck(%q): error is %T, want *multierror.Error", tt.input, err)
			continue
		}
		if len(merr.Errors) != len(tt.errors) {
			t.Errorf("Typecheck(%q): got %d errors, want %d: %v", tt.input, len(merr.Errors), len(tt.errors), err)
			continue
		}
		for _, pattern := range tt.errors {
			matched, matchErr := regexp.MatchString(pattern, err.Error())
			if matchErr != nil {
				t.Errorf("invalid pattern (%q): %v", pattern, matchErr)
			} else if !matched {
				t.Errorf("Typecheck(%q): unexpected error: %v", tt.input, err)
				t.Errorf("Typecheck(%q): expected error matching %q", tt.input, pattern)
			}
		}
	}
}

// A program that typechecks never fails at runtime with a type error.
func TestTypecheckImpliesNoTypeErrors(t *testing.T) {
	for _, tt := range evalTests {
		e, err := Parse(tt.input)
		require.NoError(t, err)
		typ, err := Typecheck(e)
		if err != nil {
			continue
		}
		v, err := Interp(e)
		require.NoError(t, err, tt.input)
		switch typ.(type) {
		case IntT:
			assert.IsType(t, NumVal(0), v, tt.input)
		case BoolT:
			assert.IsType(t, BoolVal(false), v, tt.input)
		}
	}
}
