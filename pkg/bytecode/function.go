package bytecode

// DebugLocation is the `{line, column, source-text}` triple installed by
// SET_DEBUG_LOCATION as the VM's current location and attached to
// runtime error messages.
type DebugLocation struct {
	Line       int
	Column     int
	SourceText string
}

// DebugEntry maps a byte offset in a Function's code to the source
// location active at that offset. The debug table is optional; when
// absent, runtime errors carry no location.
type DebugEntry struct {
	Offset int
	Line   int
	Column int
}

// Function is the immutable code record the VM executes: a compiled
// function, method, or top-level script body. It is produced by an
// external compiler and is otherwise opaque to the VM except for the
// fields below (see spec.md §6).
//
// Constants are stored untyped (interface{}) rather than as
// internal/value.Value: this keeps the bytecode package free of any
// dependency on the value representation, mirroring how the teacher's
// bytecode.Bytecode keeps its constant pool as []interface{} and lets the
// VM interpret each entry's Go type when it executes PUSH_CONSTANT.
// Recognized constant shapes are: nil, bool, int32, *big.Int, float64,
// string, *DebugLocation, and *Function (for nested closures).
type Function struct {
	Name       string
	Code       []byte
	Constants  []interface{}
	NumLocals  int
	NumParams  int
	ParamNames []string
	DebugTable []DebugEntry

	// NumUpvalues tells the VM how many UpvalueDescriptor entries follow
	// a CLOSURE instruction that constructs this function: the compiler
	// knows this count when it finishes compiling the nested function
	// body, so the instruction stream doesn't need to encode it again.
	NumUpvalues int
	Upvalues    []UpvalueDescriptor
}

// LocationAt returns the debug location active at the given code offset,
// or nil if the function carries no debug table or the offset precedes
// the first entry.
func (f *Function) LocationAt(offset int) *DebugLocation {
	if len(f.DebugTable) == 0 {
		return nil
	}
	var best *DebugEntry
	for i := range f.DebugTable {
		e := &f.DebugTable[i]
		if e.Offset <= offset && (best == nil || e.Offset > best.Offset) {
			best = e
		}
	}
	if best == nil {
		return nil
	}
	return &DebugLocation{Line: best.Line, Column: best.Column}
}
