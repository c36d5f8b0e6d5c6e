// Package compiler lowers an internal/ast tree into a bytecode.Function
// the VM can execute.
//
// The teacher's compiler walked a flat symbol table with no notion of
// nested functions (smog's blocks shared the enclosing locals array
// directly). Slate closures instead get their own Function record and
// resolve free variables against the lexically enclosing compiler, in
// the usual single-pass style: a local found in the immediately
// enclosing function becomes an UpvalueLocal descriptor, a name found
// further out becomes a chain of UpvalueUpvalue descriptors so each
// intermediate closure only needs to carry forward what its own body
// (or a descendant's) actually uses.
package compiler

import (
	"fmt"
	"math/big"

	"github.com/edadma/slate/internal/ast"
	"github.com/edadma/slate/pkg/bytecode"
)

// Compiler builds one bytecode.Function at a time; nested function
// literals spawn a child Compiler linked via enclosing.
type Compiler struct {
	enclosing *Compiler
	isScript  bool

	code      []byte
	constants []interface{}
	locals    []string
	upvalues  []bytecode.UpvalueDescriptor
}

// Compile compiles a whole program as the top-level script function:
// `let` at this level defines a global rather than a stack local, so
// REPL-style sessions can keep reusing the same VM and see previously
// defined names (spec.md §6.2's Run semantics).
func Compile(program *ast.Program) (*bytecode.Function, error) {
	c := &Compiler{isScript: true}
	if err := c.compileStatements(program.Statements, true); err != nil {
		return nil, err
	}
	c.emit(bytecode.OpReturn)
	return &bytecode.Function{
		Name:      "<script>",
		Code:      c.code,
		Constants: c.constants,
		NumLocals: len(c.locals),
	}, nil
}

// compileStatements compiles a statement list. When keepLastExpr is
// true, a trailing expression statement's value is left on the stack
// instead of popped, becoming the script's result.
func (c *Compiler) compileStatements(stmts []ast.Statement, keepLastExpr bool) error {
	for i, stmt := range stmts {
		if keepLastExpr && i == len(stmts)-1 {
			if es, ok := stmt.(*ast.ExpressionStatement); ok {
				return c.compileExpression(es.Expression)
			}
		}
		if err := c.compileStatement(stmt); err != nil {
			return err
		}
	}
	if keepLastExpr {
		c.emit(bytecode.OpPushNull)
	}
	return nil
}

func (c *Compiler) compileStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		return c.compileLet(s)
	case *ast.ExpressionStatement:
		if err := c.compileExpression(s.Expression); err != nil {
			return err
		}
		c.emit(bytecode.OpPop)
		return nil
	case *ast.ReturnStatement:
		if s.Value != nil {
			if err := c.compileExpression(s.Value); err != nil {
				return err
			}
		} else {
			c.emit(bytecode.OpPushNull)
		}
		c.emit(bytecode.OpReturn)
		return nil
	case *ast.BlockStatement:
		return c.compileBlock(s)
	case *ast.IfStatement:
		return c.compileIf(s)
	case *ast.WhileStatement:
		return c.compileWhile(s)
	default:
		return fmt.Errorf("compiler: unknown statement type %T", stmt)
	}
}

func (c *Compiler) compileLet(s *ast.LetStatement) error {
	if err := c.compileExpression(s.Value); err != nil {
		return err
	}
	if c.isScript {
		idx := c.addConstant(s.Name)
		c.emitOperand(bytecode.OpDefineGlobal, uint16(idx))
		return nil
	}
	slot := c.addLocal(s.Name)
	c.emitOperand(bytecode.OpSetLocal, uint16(slot))
	c.emit(bytecode.OpPop)
	return nil
}

func (c *Compiler) compileBlock(block *ast.BlockStatement) error {
	for _, stmt := range block.Statements {
		if err := c.compileStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) compileIf(s *ast.IfStatement) error {
	if err := c.compileExpression(s.Condition); err != nil {
		return err
	}
	thenJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emit(bytecode.OpPop)
	if err := c.compileBlock(s.Consequence); err != nil {
		return err
	}
	elseJump := c.emitJump(bytecode.OpJump)
	c.patchJump(thenJump)
	c.emit(bytecode.OpPop)
	if s.Alternative != nil {
		if err := c.compileStatement(s.Alternative); err != nil {
			return err
		}
	}
	c.patchJump(elseJump)
	return nil
}

func (c *Compiler) compileWhile(s *ast.WhileStatement) error {
	loopStart := len(c.code)
	if err := c.compileExpression(s.Condition); err != nil {
		return err
	}
	exitJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emit(bytecode.OpPop)
	if err := c.compileBlock(s.Body); err != nil {
		return err
	}
	c.emitLoop(loopStart)
	c.patchJump(exitJump)
	c.emit(bytecode.OpPop)
	return nil
}

// compileExpression compiles expr so it leaves exactly one value on
// the stack.
func (c *Compiler) compileExpression(expr ast.Expression) error {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		c.emitOperand(bytecode.OpPushConstant, uint16(c.addConstant(e.Value)))
	case *ast.BigIntLiteral:
		n, ok := new(big.Int).SetString(e.Text, 10)
		if !ok {
			return fmt.Errorf("compiler: invalid integer literal %q", e.Text)
		}
		c.emitOperand(bytecode.OpPushConstant, uint16(c.addConstant(n)))
	case *ast.NumberLiteral:
		c.emitOperand(bytecode.OpPushConstant, uint16(c.addConstant(e.Value)))
	case *ast.StringLiteral:
		c.emitOperand(bytecode.OpPushConstant, uint16(c.addConstant(e.Value)))
	case *ast.BooleanLiteral:
		if e.Value {
			c.emit(bytecode.OpPushTrue)
		} else {
			c.emit(bytecode.OpPushFalse)
		}
	case *ast.NullLiteral:
		c.emit(bytecode.OpPushNull)
	case *ast.UndefinedLiteral:
		c.emit(bytecode.OpPushUndefined)
	case *ast.Identifier:
		return c.compileLoad(e.Name)
	case *ast.ArrayLiteral:
		for _, el := range e.Elements {
			if err := c.compileExpression(el); err != nil {
				return err
			}
		}
		c.emitOperand(bytecode.OpBuildArray, uint16(len(e.Elements)))
	case *ast.ObjectLiteral:
		for _, entry := range e.Entries {
			c.emitOperand(bytecode.OpPushConstant, uint16(c.addConstant(entry.Key)))
			if err := c.compileExpression(entry.Value); err != nil {
				return err
			}
		}
		c.emitOperand(bytecode.OpBuildObject, uint16(len(e.Entries)))
	case *ast.RangeLiteral:
		if err := c.compileExpression(e.Start); err != nil {
			return err
		}
		if err := c.compileExpression(e.End); err != nil {
			return err
		}
		operand := uint16(0)
		if e.Exclusive {
			operand = 1
		}
		c.emitOperand(bytecode.OpBuildRange, operand)
	case *ast.PrefixExpression:
		if err := c.compileExpression(e.Right); err != nil {
			return err
		}
		switch e.Operator {
		case "-":
			c.emit(bytecode.OpNegate)
		case "!":
			c.emit(bytecode.OpNot)
		case "~":
			c.emit(bytecode.OpBitwiseNot)
		default:
			return fmt.Errorf("compiler: unknown prefix operator %q", e.Operator)
		}
	case *ast.InfixExpression:
		return c.compileInfix(e)
	case *ast.AssignExpression:
		return c.compileAssign(e)
	case *ast.CallExpression:
		return c.compileCall(e)
	case *ast.MemberExpression:
		if err := c.compileExpression(e.Object); err != nil {
			return err
		}
		c.emitOperand(bytecode.OpGetProperty, uint16(c.addConstant(e.Property)))
	case *ast.IndexExpression:
		if err := c.compileExpression(e.Object); err != nil {
			return err
		}
		if err := c.compileExpression(e.Index); err != nil {
			return err
		}
		c.emit(bytecode.OpGetIndex)
	case *ast.FunctionLiteral:
		return c.compileFunctionLiteral(e)
	default:
		return fmt.Errorf("compiler: unknown expression type %T", expr)
	}
	return nil
}

var infixOpcodes = map[string]bytecode.Opcode{
	"+": bytecode.OpAdd, "-": bytecode.OpSubtract, "*": bytecode.OpMultiply,
	"/": bytecode.OpDivide, "%": bytecode.OpMod, "**": bytecode.OpPower,
	"==": bytecode.OpEqual, "!=": bytecode.OpNotEqual,
	"<": bytecode.OpLess, "<=": bytecode.OpLessEqual,
	">": bytecode.OpGreater, ">=": bytecode.OpGreaterEqual,
	"&&": bytecode.OpAnd, "||": bytecode.OpOr, "??": bytecode.OpNullCoalesce,
	"&": bytecode.OpBitwiseAnd, "|": bytecode.OpBitwiseOr, "^": bytecode.OpBitwiseXor,
	"<<": bytecode.OpLeftShift, ">>": bytecode.OpRightShift, ">>>": bytecode.OpLogicalRightShift,
	"in": bytecode.OpIn, "instanceof": bytecode.OpInstanceOf,
}

func (c *Compiler) compileInfix(e *ast.InfixExpression) error {
	op, ok := infixOpcodes[e.Operator]
	if !ok {
		return fmt.Errorf("compiler: unknown infix operator %q", e.Operator)
	}
	if err := c.compileExpression(e.Left); err != nil {
		return err
	}
	if err := c.compileExpression(e.Right); err != nil {
		return err
	}
	c.emit(op)
	return nil
}

func (c *Compiler) compileAssign(e *ast.AssignExpression) error {
	switch target := e.Target.(type) {
	case *ast.Identifier:
		if err := c.compileExpression(e.Value); err != nil {
			return err
		}
		return c.compileStore(target.Name)
	case *ast.MemberExpression:
		if err := c.compileExpression(target.Object); err != nil {
			return err
		}
		if err := c.compileExpression(e.Value); err != nil {
			return err
		}
		c.emitOperand(bytecode.OpSetProperty, uint16(c.addConstant(target.Property)))
		return nil
	case *ast.IndexExpression:
		if err := c.compileExpression(target.Object); err != nil {
			return err
		}
		if err := c.compileExpression(target.Index); err != nil {
			return err
		}
		if err := c.compileExpression(e.Value); err != nil {
			return err
		}
		c.emit(bytecode.OpSetIndex)
		return nil
	default:
		return fmt.Errorf("compiler: invalid assignment target %T", e.Target)
	}
}

func (c *Compiler) compileCall(e *ast.CallExpression) error {
	if member, ok := e.Callee.(*ast.MemberExpression); ok {
		if err := c.compileExpression(member.Object); err != nil {
			return err
		}
		c.emitOperand(bytecode.OpGetProperty, uint16(c.addConstant(member.Property)))
		for _, arg := range e.Args {
			if err := c.compileExpression(arg); err != nil {
				return err
			}
		}
		c.emitOperand(bytecode.OpCallMethod, uint16(len(e.Args)))
		return nil
	}
	if err := c.compileExpression(e.Callee); err != nil {
		return err
	}
	for _, arg := range e.Args {
		if err := c.compileExpression(arg); err != nil {
			return err
		}
	}
	c.emitOperand(bytecode.OpCall, uint16(len(e.Args)))
	return nil
}

// compileLoad resolves name against locals, then enclosing upvalues,
// then falls back to a global lookup.
func (c *Compiler) compileLoad(name string) error {
	if slot := c.resolveLocal(name); slot != -1 {
		c.emitOperand(bytecode.OpGetLocal, uint16(slot))
		return nil
	}
	if idx := c.resolveUpvalue(name); idx != -1 {
		c.emitOperand(bytecode.OpGetUpvalue, uint16(idx))
		return nil
	}
	c.emitOperand(bytecode.OpGetGlobal, uint16(c.addConstant(name)))
	return nil
}

func (c *Compiler) compileStore(name string) error {
	if slot := c.resolveLocal(name); slot != -1 {
		c.emitOperand(bytecode.OpSetLocal, uint16(slot))
		return nil
	}
	if idx := c.resolveUpvalue(name); idx != -1 {
		c.emitOperand(bytecode.OpSetUpvalue, uint16(idx))
		return nil
	}
	c.emitOperand(bytecode.OpSetGlobal, uint16(c.addConstant(name)))
	return nil
}

func (c *Compiler) compileFunctionLiteral(e *ast.FunctionLiteral) error {
	child := &Compiler{enclosing: c}
	for _, p := range e.Parameters {
		child.addLocal(p)
	}
	if err := child.compileStatements(e.Body.Statements, false); err != nil {
		return err
	}
	child.emit(bytecode.OpPushNull)
	child.emit(bytecode.OpReturn)

	fn := &bytecode.Function{
		Name:        e.Name,
		Code:        child.code,
		Constants:   child.constants,
		NumLocals:   len(child.locals),
		NumParams:   len(e.Parameters),
		ParamNames:  e.Parameters,
		NumUpvalues: len(child.upvalues),
		Upvalues:    child.upvalues,
	}
	c.emitOperand(bytecode.OpClosure, uint16(c.addConstant(fn)))
	return nil
}

// resolveLocal looks up name among this compiler's own locals only.
func (c *Compiler) resolveLocal(name string) int {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if c.locals[i] == name {
			return i
		}
	}
	return -1
}

// resolveUpvalue looks up name in an enclosing function, adding an
// upvalue descriptor to every compiler between here and where the
// binding actually lives.
func (c *Compiler) resolveUpvalue(name string) int {
	if c.enclosing == nil {
		return -1
	}
	if slot := c.enclosing.resolveLocal(name); slot != -1 {
		return c.addUpvalue(bytecode.UpvalueLocal, uint16(slot))
	}
	if idx := c.enclosing.resolveUpvalue(name); idx != -1 {
		return c.addUpvalue(bytecode.UpvalueUpvalue, uint16(idx))
	}
	return -1
}

func (c *Compiler) addUpvalue(kind bytecode.UpvalueKind, index uint16) int {
	for i, uv := range c.upvalues {
		if uv.Kind == kind && uv.Index == index {
			return i
		}
	}
	c.upvalues = append(c.upvalues, bytecode.UpvalueDescriptor{Kind: kind, Index: index})
	return len(c.upvalues) - 1
}

func (c *Compiler) addLocal(name string) int {
	c.locals = append(c.locals, name)
	return len(c.locals) - 1
}

func (c *Compiler) addConstant(v interface{}) int {
	c.constants = append(c.constants, v)
	return len(c.constants) - 1
}

func (c *Compiler) emit(op bytecode.Opcode) {
	c.code = append(c.code, byte(op))
}

func (c *Compiler) emitOperand(op bytecode.Opcode, operand uint16) {
	c.code = append(c.code, byte(op))
	buf := make([]byte, bytecode.OperandWidth)
	bytecode.EncodeOperand(buf, operand)
	c.code = append(c.code, buf...)
}

// emitJump appends op with a placeholder operand, returning its opcode
// position for a later patchJump.
func (c *Compiler) emitJump(op bytecode.Opcode) int {
	pos := len(c.code)
	c.emitOperand(op, 0)
	return pos
}

func (c *Compiler) patchJump(pos int) {
	afterInstr := pos + 1 + bytecode.OperandWidth
	offset := int16(len(c.code) - afterInstr)
	bytecode.EncodeOperand(c.code[pos+1:pos+1+bytecode.OperandWidth], uint16(offset))
}

func (c *Compiler) emitLoop(loopStart int) {
	pos := len(c.code)
	afterInstr := pos + 1 + bytecode.OperandWidth
	c.emitOperand(bytecode.OpLoop, uint16(afterInstr-loopStart))
}
