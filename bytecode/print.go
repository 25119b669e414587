package bytecode

import (
	"fmt"
	"strings"
)

// String disassembles p, one block at a time.
func (p *Prog) String() string {
	var out strings.Builder
	for _, b := range p.blocks {
		fmt.Fprintf(&out, "%s:\n", b.name)
		for i, op := range b.code {
			fmt.Fprintf(&out, "\t%3d: %s\n", i, op)
		}
	}
	return out.String()
}

// String formats op the way the disassembler prints it.
//
//	%r2 = binop "==" %r3, %r4
//	branch %r2 {then1, else2}
func (op Op) String() string {
	switch op.Opcode {
	case NoOp:
		return "noop"
	case LiteralOp:
		return fmt.Sprintf("%%%s = literal <%s>", op.Dst[0], op.Value)
	case CopyOp:
		return fmt.Sprintf("%%%s = copy %%%s", op.Dst[0], op.Src[0])
	case BinOp:
		return fmt.Sprintf("%%%s = binop %q %%%s, %%%s", op.Dst[0], op.Variant, op.Src[0], op.Src[1])
	case BranchOp:
		return fmt.Sprintf("branch %%%s {%s, %s}", op.Src[0], op.Label[0], op.Label[1])
	case JumpOp:
		return fmt.Sprintf("jump {%s}", op.Label[0])
	case FailOp:
		return fmt.Sprintf("fail %q", op.Variant)
	case ReturnOp:
		return fmt.Sprintf("return %%%s", op.Src[0])
	default:
		return fmt.Sprintf("%s %v %q %v %v %v", op.Opcode, op.Dst, op.Variant, op.Src, op.Label, op.Value)
	}
}
