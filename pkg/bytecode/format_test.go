package bytecode

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

func sampleFunction() *Function {
	fn := &Function{Name: "add", NumLocals: 2, NumParams: 2, ParamNames: []string{"a", "b"}}
	fn.Constants = []interface{}{int32(1)}
	code := make([]byte, 0, 16)
	code = append(code, byte(OpGetLocal), 0, 0)
	code = append(code, byte(OpGetLocal), 1, 0)
	code = append(code, byte(OpAdd))
	code = append(code, byte(OpReturn))
	fn.Code = code
	fn.DebugTable = []DebugEntry{{Offset: 0, Line: 1, Column: 1}}
	return fn
}

func TestDisassembleSnapshot(t *testing.T) {
	snaps.MatchSnapshot(t, Disassemble(sampleFunction()))
}

func TestWriteReadRoundTrip(t *testing.T) {
	fn := sampleFunction()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, fn))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Equal(t, fn.NumLocals, got.NumLocals)
	require.Equal(t, fn.NumParams, got.NumParams)
	require.Equal(t, fn.ParamNames, got.ParamNames)
	require.Equal(t, fn.Code, got.Code)
	require.Equal(t, fn.Constants, got.Constants)
	require.Equal(t, fn.DebugTable, got.DebugTable)
}

func TestOpcodeHasOperand(t *testing.T) {
	require.True(t, OpPushConstant.HasOperand())
	require.False(t, OpReturn.HasOperand())
	require.True(t, OpCall.HasOperand())
	require.False(t, OpPushNull.HasOperand())
}

func TestDecodeJumpOffset(t *testing.T) {
	buf := make([]byte, OperandWidth)
	EncodeOperand(buf, uint16(int16(-5)))
	require.Equal(t, -5, DecodeJumpOffset(DecodeOperand(buf)))
}
