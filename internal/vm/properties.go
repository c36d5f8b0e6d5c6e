package vm

import (
	"github.com/edadma/slate/internal/value"
	"github.com/edadma/slate/internal/vmerr"
)

// getProperty implements GET_PROPERTY (spec.md §4.4): object fields take
// priority over methods of the same name; a method found by walking the
// prototype chain is wrapped in a BoundMethod so it still carries its
// receiver after the value leaves the stack (e.g. `let f = obj.method`
// followed by a later bare CALL).
func (vm *VM) getProperty(recv value.Value, name string) (value.Value, error) {
	switch recv.Kind() {
	case value.KindObject:
		if v, ok := recv.ObjectGet(name); ok {
			return v.Retain(), nil
		}
		if method, _, ok := recv.LookupMethod(name); ok {
			return value.BoundMethod(recv, method), nil
		}
		return value.Value{}, vmerr.Namef("undefined property %q on %s", name, recv.TypeName())
	case value.KindClass:
		cls := recv.AsClass()
		if m, ok := cls.Methods[name]; ok {
			return value.BoundMethod(recv, m), nil
		}
		return value.Value{}, vmerr.Namef("undefined class method %q on %s", name, cls.Name)
	default:
		return vm.getBuiltinMethod(recv, name)
	}
}

// getBuiltinMethod resolves a property name against the builtin class
// registered for recv's kind (String, Array, Int, LocalDate, ...),
// installed into vm.classes by internal/builtins at VM construction
// (spec.md §6.3).
func (vm *VM) getBuiltinMethod(recv value.Value, name string) (value.Value, error) {
	cls, ok := vm.classes[recv.TypeName()]
	if !ok {
		return value.Value{}, vmerr.Namef("no methods registered for %s", recv.TypeName())
	}
	for c := cls; c != nil; c = c.Parent {
		if m, ok := c.Methods[name]; ok {
			return value.BoundMethod(recv, m), nil
		}
	}
	return value.Value{}, vmerr.Namef("undefined method %q on %s", name, recv.TypeName())
}

// instanceOf implements INSTANCEOF (spec.md §4.2: "INSTANCEOF walks the
// class chain") uniformly across every heap-backed kind, not just
// KindObject: a builtin value's class is looked up in the same
// vm.classes registry getBuiltinMethod resolves methods against, so
// `5 instanceof Int` and `buf instanceof Buffer` walk the prototype
// chain exactly like a user-defined object does against an explicit
// ancestor.
func (vm *VM) instanceOf(v value.Value, cls *value.Class) bool {
	if v.Kind() == value.KindObject {
		return v.InstanceOf(cls)
	}
	builtin, ok := vm.classes[v.TypeName()]
	if !ok {
		return false
	}
	return builtin.IsSubclassOf(cls)
}

// getIndex implements GET_INDEX for array/string/buffer/object
// receivers (spec.md §4.4 indexing contracts); a range, like any other
// kind, is rejected as not indexable.
func (vm *VM) getIndex(recv, idx value.Value) (value.Value, error) {
	switch recv.Kind() {
	case value.KindArray:
		i, err := indexInt(idx, recv.ArrayLen())
		if err != nil {
			return value.Value{}, err
		}
		return recv.ArrayGet(i).Retain(), nil
	case value.KindString:
		i, err := indexInt(idx, recv.RuneLen())
		if err != nil {
			return value.Value{}, err
		}
		return value.String(string(recv.RuneAt(i))), nil
	case value.KindBuffer:
		i, err := indexInt(idx, recv.BufferLen())
		if err != nil {
			return value.Value{}, err
		}
		return value.Int32(int32(recv.BufferByteAt(i))), nil
	case value.KindObject:
		if !idx.IsString() {
			return value.Value{}, vmerr.Typef("object index must be a string, got %s", idx.TypeName())
		}
		if v, ok := recv.ObjectGet(idx.AsString()); ok {
			return v.Retain(), nil
		}
		return value.Undefined, nil
	default:
		return value.Value{}, vmerr.Typef("%s is not indexable", recv.TypeName())
	}
}

// setIndex implements SET_INDEX for array and object receivers. Every
// other kind, buffers included, is rejected.
func (vm *VM) setIndex(recv, idx, val value.Value) error {
	switch recv.Kind() {
	case value.KindArray:
		i, err := indexInt(idx, recv.ArrayLen())
		if err != nil {
			return err
		}
		recv.ArraySet(i, val.Retain())
		return nil
	case value.KindObject:
		if !idx.IsString() {
			return vmerr.Typef("object index must be a string, got %s", idx.TypeName())
		}
		recv.ObjectSet(idx.AsString(), val.Retain())
		return nil
	default:
		return vmerr.Typef("%s does not support index assignment", recv.TypeName())
	}
}

func indexInt(idx value.Value, length int) (int, error) {
	if !idx.IsInt32() {
		return 0, vmerr.Typef("index must be an Int, got %s", idx.TypeName())
	}
	i := int(idx.AsInt32())
	if i < 0 || i >= length {
		return 0, vmerr.Boundsf("index %d out of range [0, %d)", i, length)
	}
	return i, nil
}

// inOperator implements the IN opcode: membership test whose meaning
// depends on the right-hand operand's kind (spec.md §4.4).
func (vm *VM) inOperator(a, b value.Value) (bool, error) {
	switch b.Kind() {
	case value.KindArray:
		return b.ArrayIndexOf(a, func(x, y value.Value) bool { return x.Equals(y) }) >= 0, nil
	case value.KindRange:
		if !a.IsNumeric() {
			return false, nil
		}
		return b.RangeContains(int64(rangeEndpoint(a))), nil
	case value.KindObject:
		if !a.IsString() {
			return false, vmerr.Typef("'in' on an object requires a String key, got %s", a.TypeName())
		}
		_, ok := b.ObjectGet(a.AsString())
		return ok, nil
	case value.KindString:
		if !a.IsString() {
			return false, vmerr.Typef("'in' on a String requires a String operand, got %s", a.TypeName())
		}
		return b.Contains(a), nil
	default:
		return false, vmerr.Typef("'in' is not supported on %s", b.TypeName())
	}
}
