package value

// arrayObj is the heap payload for a mutable, resizable, insertion-
// ordered Slate array. Elements retain/release their own heap objects
// as they move in and out of the slice, mirroring the teacher's
// pkg/vm.Array ownership discipline generalized to every Value kind
// instead of just Instance.
type arrayObj struct {
	elems []Value
	refs  int32
}

func (a *arrayObj) retain()  { a.refs++ }
func (a *arrayObj) release() { a.refs-- }

// Array constructs a Slate array from the given elements, retaining
// each one.
func Array(elems []Value) Value {
	owned := make([]Value, len(elems))
	for i, e := range elems {
		owned[i] = e.Retain()
	}
	return Value{kind: KindArray, heap: &arrayObj{elems: owned, refs: 1}}
}

func (v Value) arr() *arrayObj { return v.heap.(*arrayObj) }

func (v Value) ArrayLen() int { return len(v.arr().elems) }

func (v Value) ArrayGet(i int) Value { return v.arr().elems[i] }

func (v Value) ArraySet(i int, val Value) {
	a := v.arr()
	a.elems[i].Release()
	a.elems[i] = val.Retain()
}

func (v Value) ArrayPush(val Value) {
	a := v.arr()
	a.elems = append(a.elems, val.Retain())
}

func (v Value) ArrayPop() (Value, bool) {
	a := v.arr()
	n := len(a.elems)
	if n == 0 {
		return Value{}, false
	}
	last := a.elems[n-1]
	a.elems = a.elems[:n-1]
	return last, true // ownership transfers to the caller; no release here
}

// ArrayCopy returns a new array holding the same elements, honoring
// spec.md §8's "copy is independent of the original" property: mutating
// the copy's backing slice must never affect the source.
func (v Value) ArrayCopy() Value {
	return Array(v.arr().elems)
}

// ArrayReverse returns a new array with elements in reverse order.
func (v Value) ArrayReverse() Value {
	src := v.arr().elems
	out := make([]Value, len(src))
	for i, e := range src {
		out[len(src)-1-i] = e
	}
	return Array(out)
}

// ArraySlice returns a new array spanning the half-open range
// [start, end) of the source, the same "copy of the span, not a view"
// semantics ArrayCopy uses.
func (v Value) ArraySlice(start, end int) Value {
	return Array(v.arr().elems[start:end])
}

func (v Value) ArrayConcat(other Value) Value {
	a, b := v.arr().elems, other.arr().elems
	out := make([]Value, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return Array(out)
}

// ArrayElements exposes the backing slice read-only, for builtins that
// need to iterate without copying (e.g. join, indexOf).
func (v Value) ArrayElements() []Value {
	return v.arr().elems
}

func (v Value) ArrayIndexOf(target Value, eq func(a, b Value) bool) int {
	for i, e := range v.arr().elems {
		if eq(e, target) {
			return i
		}
	}
	return -1
}

func (v Value) ArrayInsert(i int, val Value) {
	a := v.arr()
	a.elems = append(a.elems, Value{})
	copy(a.elems[i+1:], a.elems[i:])
	a.elems[i] = val.Retain()
}

func (v Value) ArrayRemoveAt(i int) Value {
	a := v.arr()
	removed := a.elems[i]
	a.elems = append(a.elems[:i], a.elems[i+1:]...)
	return removed // ownership transfers to the caller
}
