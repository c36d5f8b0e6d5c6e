package value

// Class is Slate's prototype-chain class record (spec.md §4.4): every
// class but the implicit root "Value" class has exactly one Parent,
// and method lookup walks that chain outward-in, most-derived first.
//
// Classes are themselves first-class values (kind KindClass) so they
// can be stored in globals, passed as arguments, and compared with
// `instanceof`; Class also implements heapObject so a KindClass Value
// participates in the same retain/release protocol as any other heap
// kind, even though in practice classes are long-lived (registered once
// at startup or at class-declaration time) and never reach a zero
// refcount during a program's run.
type Class struct {
	Name    string
	Parent  *Class
	Methods map[string]Value
	// Native, when non-nil, constructs an instance directly in Go
	// (e.g. Array, String, Int) instead of running a Slate constructor
	// body; used for every builtin class (spec.md §6.3).
	Native func(ctx *Context, args []Value) (Value, error)
	refs   int32
}

func (c *Class) retain()  { c.refs++ }
func (c *Class) release() { c.refs-- }

// NewClass constructs a class value with the given name and parent.
// parent is nil only for the root Value class.
func NewClass(name string, parent *Class) *Class {
	return &Class{Name: name, Parent: parent, Methods: make(map[string]Value), refs: 1}
}

// ClassValue wraps a *Class as a first-class Value.
func ClassValue(c *Class) Value {
	return Value{kind: KindClass, heap: c}
}

func (v Value) AsClass() *Class { return v.heap.(*Class) }

// IsSubclassOf reports whether c equals or descends from ancestor,
// walking the prototype chain — the semantics `instanceof` and the
// IN opcode's class-membership form use (spec.md §4.4).
func (c *Class) IsSubclassOf(ancestor *Class) bool {
	for cur := c; cur != nil; cur = cur.Parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// InstanceOf reports whether v was constructed from a class that is, or
// descends from, cls.
func (v Value) InstanceOf(cls *Class) bool {
	if v.class == nil {
		return false
	}
	return v.class.IsSubclassOf(cls)
}
