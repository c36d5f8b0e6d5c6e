// Disassembly and binary serialization for Function records.
//
// Binary format ("svmc" — slate virtual machine compiled), generalized
// from the teacher's smog .sg format to Slate's richer constant-pool
// shape:
//
//	[Header]
//	  Magic (4 bytes): "SVMC" (0x53564D43)
//	  Version (4 bytes): format version, currently 1
//
//	[Function]
//	  NumLocals (4 bytes), NumParams (4 bytes)
//	  ParamNames: count (4 bytes) + for each: length-prefixed UTF-8
//	  Constants: count (4 bytes) + for each: type tag (1 byte) + payload
//	  Code: length (4 bytes) + raw bytes
//	  DebugTable: count (4 bytes) + for each: offset/line/column (4 bytes each)
//	  Upvalues: count (4 bytes) + for each: kind (1 byte) + index (2 bytes)
//
// Constant type tags:
//
//	0x01 nil         0x02 bool (1 byte)     0x03 int32 (4 bytes)
//	0x04 bigint (sign byte + length-prefixed big-endian magnitude)
//	0x05 float64 (8 bytes)                  0x06 string (length + UTF-8)
//	0x07 nested Function (recursive)
package bytecode

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/big"
	"strings"
)

const (
	magicNumber  = 0x53564D43
	formatVersion = 1
)

const (
	tagNil byte = iota + 1
	tagBool
	tagInt32
	tagBigInt
	tagFloat64
	tagString
	tagFunction
)

// Write serializes fn in the svmc binary format.
func Write(w io.Writer, fn *Function) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(magicNumber)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(formatVersion)); err != nil {
		return err
	}
	return writeFunction(w, fn)
}

func writeFunction(w io.Writer, fn *Function) error {
	if err := writeU32(w, uint32(fn.NumLocals)); err != nil {
		return err
	}
	if err := writeU32(w, uint32(fn.NumParams)); err != nil {
		return err
	}
	if err := writeU32(w, uint32(len(fn.ParamNames))); err != nil {
		return err
	}
	for _, name := range fn.ParamNames {
		if err := writeString(w, name); err != nil {
			return err
		}
	}
	if err := writeU32(w, uint32(len(fn.Constants))); err != nil {
		return err
	}
	for _, c := range fn.Constants {
		if err := writeConstant(w, c); err != nil {
			return err
		}
	}
	if err := writeU32(w, uint32(len(fn.Code))); err != nil {
		return err
	}
	if _, err := w.Write(fn.Code); err != nil {
		return err
	}
	if err := writeU32(w, uint32(len(fn.DebugTable))); err != nil {
		return err
	}
	for _, e := range fn.DebugTable {
		if err := writeU32(w, uint32(e.Offset)); err != nil {
			return err
		}
		if err := writeU32(w, uint32(e.Line)); err != nil {
			return err
		}
		if err := writeU32(w, uint32(e.Column)); err != nil {
			return err
		}
	}
	if err := writeU32(w, uint32(len(fn.Upvalues))); err != nil {
		return err
	}
	for _, u := range fn.Upvalues {
		if _, err := w.Write([]byte{byte(u.Kind)}); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, u.Index); err != nil {
			return err
		}
	}
	return nil
}

func writeConstant(w io.Writer, c interface{}) error {
	switch v := c.(type) {
	case nil:
		_, err := w.Write([]byte{tagNil})
		return err
	case bool:
		b := byte(0)
		if v {
			b = 1
		}
		_, err := w.Write([]byte{tagBool, b})
		return err
	case int32:
		if _, err := w.Write([]byte{tagInt32}); err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, v)
	case *big.Int:
		if _, err := w.Write([]byte{tagBigInt}); err != nil {
			return err
		}
		sign := byte(0)
		if v.Sign() < 0 {
			sign = 1
		}
		if _, err := w.Write([]byte{sign}); err != nil {
			return err
		}
		mag := v.Bytes()
		if err := writeU32(w, uint32(len(mag))); err != nil {
			return err
		}
		_, err := w.Write(mag)
		return err
	case float64:
		if _, err := w.Write([]byte{tagFloat64}); err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, v)
	case string:
		if _, err := w.Write([]byte{tagString}); err != nil {
			return err
		}
		return writeString(w, v)
	case *Function:
		if _, err := w.Write([]byte{tagFunction}); err != nil {
			return err
		}
		return writeFunction(w, v)
	default:
		return fmt.Errorf("bytecode: unsupported constant type %T", c)
	}
}

func writeU32(w io.Writer, v uint32) error {
	return binary.Write(w, binary.LittleEndian, v)
}

func writeString(w io.Writer, s string) error {
	if err := writeU32(w, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// Read deserializes a Function previously written with Write.
func Read(r io.Reader) (*Function, error) {
	var magic, version uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, err
	}
	if magic != magicNumber {
		return nil, fmt.Errorf("bytecode: bad magic number %#x", magic)
	}
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version != formatVersion {
		return nil, fmt.Errorf("bytecode: unsupported format version %d", version)
	}
	return readFunction(r)
}

func readFunction(r io.Reader) (*Function, error) {
	fn := &Function{}

	numLocals, err := readU32(r)
	if err != nil {
		return nil, err
	}
	fn.NumLocals = int(numLocals)

	numParams, err := readU32(r)
	if err != nil {
		return nil, err
	}
	fn.NumParams = int(numParams)

	paramCount, err := readU32(r)
	if err != nil {
		return nil, err
	}
	fn.ParamNames = make([]string, paramCount)
	for i := range fn.ParamNames {
		s, err := readString(r)
		if err != nil {
			return nil, err
		}
		fn.ParamNames[i] = s
	}

	constCount, err := readU32(r)
	if err != nil {
		return nil, err
	}
	fn.Constants = make([]interface{}, constCount)
	for i := range fn.Constants {
		c, err := readConstant(r)
		if err != nil {
			return nil, err
		}
		fn.Constants[i] = c
	}

	codeLen, err := readU32(r)
	if err != nil {
		return nil, err
	}
	fn.Code = make([]byte, codeLen)
	if _, err := io.ReadFull(r, fn.Code); err != nil {
		return nil, err
	}

	debugCount, err := readU32(r)
	if err != nil {
		return nil, err
	}
	fn.DebugTable = make([]DebugEntry, debugCount)
	for i := range fn.DebugTable {
		offset, err := readU32(r)
		if err != nil {
			return nil, err
		}
		line, err := readU32(r)
		if err != nil {
			return nil, err
		}
		col, err := readU32(r)
		if err != nil {
			return nil, err
		}
		fn.DebugTable[i] = DebugEntry{Offset: int(offset), Line: int(line), Column: int(col)}
	}

	upvalCount, err := readU32(r)
	if err != nil {
		return nil, err
	}
	fn.Upvalues = make([]UpvalueDescriptor, upvalCount)
	for i := range fn.Upvalues {
		kindBuf := make([]byte, 1)
		if _, err := io.ReadFull(r, kindBuf); err != nil {
			return nil, err
		}
		var idx uint16
		if err := binary.Read(r, binary.LittleEndian, &idx); err != nil {
			return nil, err
		}
		fn.Upvalues[i] = UpvalueDescriptor{Kind: UpvalueKind(kindBuf[0]), Index: idx}
	}
	fn.NumUpvalues = len(fn.Upvalues)

	return fn, nil
}

func readConstant(r io.Reader) (interface{}, error) {
	tagBuf := make([]byte, 1)
	if _, err := io.ReadFull(r, tagBuf); err != nil {
		return nil, err
	}
	switch tagBuf[0] {
	case tagNil:
		return nil, nil
	case tagBool:
		b := make([]byte, 1)
		if _, err := io.ReadFull(r, b); err != nil {
			return nil, err
		}
		return b[0] != 0, nil
	case tagInt32:
		var v int32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return nil, err
		}
		return v, nil
	case tagBigInt:
		signBuf := make([]byte, 1)
		if _, err := io.ReadFull(r, signBuf); err != nil {
			return nil, err
		}
		n, err := readU32(r)
		if err != nil {
			return nil, err
		}
		mag := make([]byte, n)
		if _, err := io.ReadFull(r, mag); err != nil {
			return nil, err
		}
		v := new(big.Int).SetBytes(mag)
		if signBuf[0] == 1 {
			v.Neg(v)
		}
		return v, nil
	case tagFloat64:
		var v float64
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return nil, err
		}
		return v, nil
	case tagString:
		return readString(r)
	case tagFunction:
		return readFunction(r)
	default:
		return nil, fmt.Errorf("bytecode: unknown constant tag %#x", tagBuf[0])
	}
}

func readU32(r io.Reader) (uint32, error) {
	var v uint32
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func readString(r io.Reader) (string, error) {
	n, err := readU32(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// Disassemble renders fn as human-readable text, one instruction per
// line, in the same "MNEMONIC operand  ; comment" style the teacher's
// disassembler used for smog's .sg files.
func Disassemble(fn *Function) string {
	var b strings.Builder
	disassembleInto(&b, fn, "")
	return b.String()
}

func disassembleInto(b *strings.Builder, fn *Function, indent string) {
	fmt.Fprintf(b, "%sfunction %s(locals=%d, params=%d)\n", indent, nameOrAnon(fn.Name), fn.NumLocals, fn.NumParams)
	offset := 0
	for offset < len(fn.Code) {
		op := Opcode(fn.Code[offset])
		line := fmt.Sprintf("%s%04d %s", indent, offset, op.String())
		width := 1
		if op.HasOperand() {
			operand := DecodeOperand(fn.Code[offset+1:])
			switch op {
			case OpJump, OpJumpIfFalse, OpJumpIfTrue:
				target := offset + 1 + OperandWidth + DecodeJumpOffset(operand)
				line += fmt.Sprintf(" %d (-> %04d)", DecodeJumpOffset(operand), target)
			case OpLoop:
				target := offset + 1 + OperandWidth - int(operand)
				line += fmt.Sprintf(" %d (-> %04d)", operand, target)
			case OpPushConstant, OpGetGlobal, OpSetGlobal, OpDefineGlobal, OpGetProperty, OpSetProperty, OpSetDebugLocation:
				line += fmt.Sprintf(" %d", operand)
				if int(operand) < len(fn.Constants) {
					line += fmt.Sprintf(" ; %v", fn.Constants[operand])
				}
			case OpClosure:
				line += fmt.Sprintf(" %d", operand)
				if int(operand) < len(fn.Constants) {
					if nested, ok := fn.Constants[operand].(*Function); ok {
						for _, u := range nested.Upvalues {
							kind := "local"
							if u.Kind == UpvalueUpvalue {
								kind = "upvalue"
							}
							width += 3
							line += fmt.Sprintf(" (%s %d)", kind, u.Index)
						}
					}
				}
			default:
				line += fmt.Sprintf(" %d", operand)
			}
			width += OperandWidth
		}
		b.WriteString(line)
		b.WriteString("\n")
		offset += width
	}
	for _, c := range fn.Constants {
		if nested, ok := c.(*Function); ok {
			disassembleInto(b, nested, indent+"  ")
		}
	}
}

func nameOrAnon(name string) string {
	if name == "" {
		return "<anonymous>"
	}
	return name
}
