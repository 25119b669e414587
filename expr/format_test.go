package expr

import (
	"math"
	"math/rand"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
)

var prettyPrintTests = []struct {
	e    Expr
	want string
}{
	{Num(1), "1"},
	{Num(-3), "-3"},
	{Bool(true), "true"},
	{Var("x"), "x"},
	{Mult(Add(Num(1), Num(2)), Num(3)), "(1+2)*3"},
	{Add(Mult(Num(1), Num(2)), Num(3)), "1*2+3"},
	{Add(Num(1), Mult(Num(2), Num(3))), "1+2*3"},
	{Mult(Num(1), Add(Num(2), Num(3))), "1*(2+3)"},
	{Add(Num(1), Add(Num(2), Num(3))), "1+(2+3)"},
	{Add(Add(Num(1), Num(2)), Num(3)), "1+2+3"},
	{Mult(Num(1), Mult(Num(2), Num(3))), "1*(2*3)"},
	{Mult(Mult(Num(1), Num(2)), Num(3)), "1*2*3"},
	{Eq(Add(Num(1), Num(2)), Mult(Num(3), Num(4))), "1+2==3*4"},
	{Eq(Eq(Num(1), Num(2)), Num(3)), "(1==2)==3"},
	{Eq(Num(1), Eq(Num(2), Num(3))), "1==(2==3)"},
	{Add(Eq(Num(1), Num(2)), Num(3)), "(1==2)+3"},
	{Mult(Num(3), Eq(Num(1), Num(2))), "3*(1==2)"},
	{Add(Num(1), Num(-5)), "1+-5"},
	{Mult(Num(-1), Var("x")), "-1*x"},
	{Let("x", Num(5), Add(Var("x"), Num(1))), "let x = 5 in x+1"},
	{Let("x", Eq(Num(1), Num(2)), Eq(Var("x"), Bool(false))), "let x = 1==2 in x==false"},
	{Let("x", Let("y", Num(1), Var("y")), Var("x")), "let x = let y = 1 in y in x"},
	{Add(Let("x", Num(1), Var("x")), Num(2)), "(let x = 1 in x)+2"},
	{Add(Num(2), Let("x", Num(1), Var("x"))), "2+(let x = 1 in x)"},
	{Eq(If(Bool(true), Num(1), Num(2)), Num(1)), "(if true then 1 else 2)==1"},
	{Eq(Num(1), If(Bool(true), Num(1), Num(2))), "1==(if true then 1 else 2)"},
	{
		If(Eq(Var("x"), Num(1)), Let("y", Num(2), Var("y")), If(Bool(true), Num(1), Num(2))),
		"if x==1 then let y = 2 in y else if true then 1 else 2",
	},
	{
		If(If(Var("a"), Var("b"), Var("c")), Var("d"), Var("e")),
		"if if a then b else c then d else e",
	},
}

func TestPrettyPrint(t *testing.T) {
	for _, tt := range prettyPrintTests {
		if got := PrettyPrint(tt.e); got != tt.want {
			t.Errorf("PrettyPrint(%# v) = %q, want %q", pretty.Formatter(tt.e), got, tt.want)
		}
		if got := tt.e.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

var printTests = []struct {
	e    Expr
	want string
}{
	{Num(-3), "-3"},
	{Var("x"), "x"},
	{Bool(false), "false"},
	{Add(Num(1), Num(2)), "(1+2)"},
	{Mult(Add(Num(1), Num(2)), Num(3)), "((1+2)*3)"},
	{Add(Add(Num(1), Num(2)), Num(3)), "((1+2)+3)"},
	{Eq(Num(1), Bool(true)), "(1==true)"},
	{Let("x", Num(1), Add(Var("x"), Num(2))), "(let x = 1 in (x+2))"},
	{If(Bool(true), Num(1), Num(2)), "(if true then 1 else 2)"},
	{Add(Num(1), If(Var("c"), Num(1), Num(2))), "(1+(if c then 1 else 2))"},
}

func TestPrint(t *testing.T) {
	for _, tt := range printTests {
		if got := Print(tt.e); got != tt.want {
			t.Errorf("Print(%# v) = %q, want %q", pretty.Formatter(tt.e), got, tt.want)
		}
	}
}

// leaves are the atoms used to build test trees.
// They include both int64 extremes, which must survive printing.
var leaves = []Expr{
	Num(0),
	Num(-2),
	Num(math.MaxInt64),
	Num(math.MinInt64),
	Bool(true),
	Var("x"),
}

// shallow returns every tree with at most one compound node.
func shallow() []Expr {
	var out []Expr
	out = append(out, leaves...)
	for _, l := range leaves {
		for _, r := range leaves {
			out = append(out, Add(l, r), Mult(l, r), Eq(l, r), Let("x", l, r))
			out = append(out, If(l, r, l), If(r, l, Num(7)))
		}
	}
	return out
}

func checkRoundTrip(t *testing.T, e Expr) {
	t.Helper()
	for _, printer := range []struct {
		name string
		fn   func(Expr) string
	}{
		{"PrettyPrint", PrettyPrint},
		{"Print", Print},
	} {
		s := printer.fn(e)
		got, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%s(%# v)) = Parse(%q) failed: %v", printer.name, pretty.Formatter(e), s, err)
		}
		if !Equal(got, e) {
			t.Fatalf("Parse(%s(e)) != e\ntext: %q\ndiff: %v", printer.name, s, pretty.Diff(e, got))
		}
	}
}

// TestRoundTrip_Exhaustive checks every tree of two levels
// of binary operators and lets over the shallow set.
func TestRoundTrip_Exhaustive(t *testing.T) {
	sh := shallow()
	for _, a := range sh {
		checkRoundTrip(t, a)
		for _, b := range sh {
			checkRoundTrip(t, Add(a, b))
			checkRoundTrip(t, Mult(a, b))
			checkRoundTrip(t, Eq(a, b))
			checkRoundTrip(t, Let("y", a, b))
		}
	}
}

func TestRoundTrip_Conditionals(t *testing.T) {
	sh := shallow()
	for _, a := range sh {
		for _, b := range sh {
			checkRoundTrip(t, If(a, b, Var("z")))
			checkRoundTrip(t, If(Var("z"), a, b))
			checkRoundTrip(t, If(b, Num(1), a))
		}
	}
}

func randomExpr(r *rand.Rand, depth int) Expr {
	if depth == 0 || r.Intn(4) == 0 {
		return leaves[r.Intn(len(leaves))]
	}
	names := []string{"x", "y", "z"}
	switch r.Intn(6) {
	case 0:
		return Add(randomExpr(r, depth-1), randomExpr(r, depth-1))
	case 1:
		return Mult(randomExpr(r, depth-1), randomExpr(r, depth-1))
	case 2:
		return Eq(randomExpr(r, depth-1), randomExpr(r, depth-1))
	case 3:
		return Let(names[r.Intn(len(names))], randomExpr(r, depth-1), randomExpr(r, depth-1))
	case 4:
		return If(randomExpr(r, depth-1), randomExpr(r, depth-1), randomExpr(r, depth-1))
	default:
		return Var(names[r.Intn(len(names))])
	}
}

func TestRoundTrip_Random(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 5000; i++ {
		checkRoundTrip(t, randomExpr(r, 6))
	}
}

func TestPrettyPrintIsIdempotent(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 500; i++ {
		e := randomExpr(r, 5)
		s := PrettyPrint(e)
		e2, err := Parse(s)
		if assert.NoError(t, err, s) {
			assert.Equal(t, s, PrettyPrint(e2))
		}
	}
}
