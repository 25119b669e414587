// Package bytecode compiles msdscript expressions to a small register
// machine and runs them.
//
// A Prog is a list of blocks. Each block is a straight-line list of ops
// ending in a jump, a branch, a return or a failure. Every expression
// gets its own destination register; let-bound variables live in the
// register their right-hand side was computed into.
package bytecode

import (
	"fmt"
	"strconv"

	"github.com/magical/msdscript/expr"
)

type Reg int

func (r Reg) String() string { return "r" + strconv.Itoa(int(r)) }

type Opcode int

const (
	NoOp Opcode = iota

	LiteralOp // dst = value
	CopyOp    // dst = src
	BinOp     // dst = src0 variant src1
	BranchOp  // if src0 goto label0 else goto label1
	JumpOp    // goto label0
	FailOp    // unbound variable named by variant
	ReturnOp  // return src0
)

var opcodeNames = [...]string{
	NoOp:      "noop",
	LiteralOp: "literal",
	CopyOp:    "copy",
	BinOp:     "binop",
	BranchOp:  "branch",
	JumpOp:    "jump",
	FailOp:    "fail",
	ReturnOp:  "return",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return "Opcode(" + strconv.Itoa(int(op)) + ")"
}

// An Op is a single register machine instruction.
type Op struct {
	Opcode  Opcode
	Variant string
	Dst     []Reg
	Src     []Reg
	Label   []string
	Value   expr.Val
}

type block struct {
	name string
	code []Op
}

// A Prog is a compiled expression.
type Prog struct {
	blocks []*block
	index  map[string]*block
	nregs  int
}

// binding maps a let-bound name to its register.
type binding struct {
	name   string
	reg    Reg
	parent *binding
}

func (b *binding) lookup(name string) (Reg, bool) {
	for ; b != nil; b = b.parent {
		if b.name == name {
			return b.reg, true
		}
	}
	return 0, false
}

type compiler struct {
	blocks  []*block
	cur     *block
	lastreg int
	nlabels int
}

// Compile lowers e to a Prog.
// Compilation never fails: a variable with no enclosing let compiles to
// a FailOp, which reports the unbound variable if it is ever reached.
func Compile(e expr.Expr) *Prog {
	c := new(compiler)
	c.cur = c.newBlock("entry")
	dst := c.newReg()
	c.lower(nil, e, dst)
	c.emit(Op{Opcode: ReturnOp, Src: []Reg{dst}})

	p := &Prog{
		blocks: c.blocks,
		index:  make(map[string]*block, len(c.blocks)),
		nregs:  c.lastreg,
	}
	for _, b := range c.blocks {
		p.index[b.name] = b
	}
	return p
}

func (c *compiler) newReg() Reg {
	r := Reg(c.lastreg)
	c.lastreg++
	return r
}

func (c *compiler) newBlock(prefix string) *block {
	b := &block{name: prefix + strconv.Itoa(c.nlabels)}
	c.nlabels++
	c.blocks = append(c.blocks, b)
	return b
}

func (c *compiler) emit(op Op) {
	c.cur.code = append(c.cur.code, op)
}

// lower generates code that leaves the value of expr in dst.
// Operands are computed left to right, like expr.Eval does.
func (c *compiler) lower(s *binding, e expr.Expr, dst Reg) {
	switch e := e.(type) {
	case *expr.NumExpr:
		c.emit(Op{Opcode: LiteralOp, Dst: []Reg{dst}, Value: expr.NumVal(e.Value)})
	case *expr.BoolExpr:
		c.emit(Op{Opcode: LiteralOp, Dst: []Reg{dst}, Value: expr.BoolVal(e.Value)})
	case *expr.VarExpr:
		if r, ok := s.lookup(e.Name); ok {
			c.emit(Op{Opcode: CopyOp, Dst: []Reg{dst}, Src: []Reg{r}})
		} else {
			c.emit(Op{Opcode: FailOp, Variant: e.Name})
		}
	case *expr.BinExpr:
		l := c.newReg()
		c.lower(s, e.Left, l)
		r := c.newReg()
		c.lower(s, e.Right, r)
		c.emit(Op{Opcode: BinOp, Variant: string(e.Op), Dst: []Reg{dst}, Src: []Reg{l, r}})
	case *expr.LetExpr:
		v := c.newReg()
		c.lower(s, e.Val, v)
		c.lower(&binding{name: e.Var, reg: v, parent: s}, e.Body, dst)
	case *expr.IfExpr:
		cond := c.newReg()
		c.lower(s, e.Cond, cond)
		then := c.newBlock("then")
		els := c.newBlock("else")
		join := c.newBlock("join")
		c.emit(Op{Opcode: BranchOp, Src: []Reg{cond}, Label: []string{then.name, els.name}})

		c.cur = then
		c.lower(s, e.Then, dst)
		c.emit(Op{Opcode: JumpOp, Label: []string{join.name}})

		c.cur = els
		c.lower(s, e.Else, dst)
		c.emit(Op{Opcode: JumpOp, Label: []string{join.name}})

		c.cur = join
	default:
		panic(fmt.Sprintf("unhandled case in lower: %T", e))
	}
}
