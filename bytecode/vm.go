package bytecode

import (
	"fmt"

	"github.com/magical/msdscript/expr"
)

// Run executes p from its entry block.
// It returns the same value, or the same kind of error,
// as expr.Interp on the expression p was compiled from.
func (p *Prog) Run() (expr.Val, error) {
	regs := make([]expr.Val, p.nregs)
	b, pc := p.blocks[0], 0
	for {
		if pc >= len(b.code) {
			panic(fmt.Sprintf("fell off the end of block %s", b.name))
		}
		op := b.code[pc]
		pc++
		switch op.Opcode {
		case NoOp:
		case LiteralOp:
			regs[op.Dst[0]] = op.Value
		case CopyOp:
			regs[op.Dst[0]] = regs[op.Src[0]]
		case BinOp:
			v, err := expr.ApplyBinOp(expr.BinOp(op.Variant), regs[op.Src[0]], regs[op.Src[1]])
			if err != nil {
				return nil, err
			}
			regs[op.Dst[0]] = v
		case BranchOp:
			c := regs[op.Src[0]]
			cond, ok := c.(expr.BoolVal)
			if !ok {
				return nil, &expr.RuntimeTypeError{Op: "if", Want: "boolean", Got: c}
			}
			target := op.Label[1]
			if cond {
				target = op.Label[0]
			}
			b, pc = p.index[target], 0
		case JumpOp:
			b, pc = p.index[op.Label[0]], 0
		case FailOp:
			return nil, &expr.UnboundVariableError{Name: op.Variant}
		case ReturnOp:
			return regs[op.Src[0]], nil
		default:
			panic(fmt.Sprintf("unhandled op: %s", op))
		}
	}
}
