package vm

import "github.com/edadma/slate/pkg/bytecode"

// asm is a tiny hand-assembler for building bytecode.Function fixtures
// directly, so this package's tests do not depend on internal/compiler
// (spec.md treats the compiler as an external collaborator). It mirrors
// the shape internal/compiler emits: a flat code stream plus a constant
// pool, built incrementally with one method call per instruction.
type asm struct {
	code      []byte
	constants []interface{}
}

func newAsm() *asm { return &asm{} }

func (a *asm) op(op bytecode.Opcode) *asm {
	a.code = append(a.code, byte(op))
	return a
}

func (a *asm) opn(op bytecode.Opcode, operand uint16) *asm {
	a.code = append(a.code, byte(op))
	buf := make([]byte, bytecode.OperandWidth)
	bytecode.EncodeOperand(buf, operand)
	a.code = append(a.code, buf...)
	return a
}

// constant appends c to the pool and returns its index.
func (a *asm) constant(c interface{}) uint16 {
	a.constants = append(a.constants, c)
	return uint16(len(a.constants) - 1)
}

func (a *asm) pushConst(c interface{}) *asm {
	return a.opn(bytecode.OpPushConstant, a.constant(c))
}

// emitJump appends op with a placeholder operand and returns the
// position of its opcode byte, to be resolved later by patchJump.
func (a *asm) emitJump(op bytecode.Opcode) int {
	pos := len(a.code)
	a.opn(op, 0)
	return pos
}

// patchJump fills in a forward jump's operand once the target (the
// current end of the code stream) is known.
func (a *asm) patchJump(pos int) {
	afterInstr := pos + 1 + bytecode.OperandWidth
	offset := int16(len(a.code) - afterInstr)
	bytecode.EncodeOperand(a.code[pos+1:pos+1+bytecode.OperandWidth], uint16(offset))
}

// emitLoop appends a LOOP back to loopStart.
func (a *asm) emitLoop(loopStart int) {
	pos := len(a.code)
	afterInstr := pos + 1 + bytecode.OperandWidth
	a.opn(bytecode.OpLoop, uint16(afterInstr-loopStart))
}

func (a *asm) fn(numLocals, numParams int) *bytecode.Function {
	return &bytecode.Function{
		Name:      "<test>",
		Code:      a.code,
		Constants: a.constants,
		NumLocals: numLocals,
		NumParams: numParams,
	}
}
