package value

// objectObj is the heap payload for a Slate object: an insertion-
// ordered string-keyed map of fields, used both for bare object
// literals (`{a: 1}`) and as the field storage behind class instances.
type objectObj struct {
	keys   []string
	fields map[string]Value
	refs   int32
}

func (o *objectObj) retain()  { o.refs++ }
func (o *objectObj) release() { o.refs-- }

// Object constructs an object literal with no class binding.
func Object() Value {
	return Value{kind: KindObject, heap: &objectObj{fields: make(map[string]Value)}}
}

// Instance constructs an object bound to cls, the shape produced by a
// class constructor call.
func Instance(cls *Class) Value {
	v := Object()
	v.class = cls
	return v
}

func (v Value) obj() *objectObj { return v.heap.(*objectObj) }

func (v Value) ObjectGet(key string) (Value, bool) {
	val, ok := v.obj().fields[key]
	return val, ok
}

func (v Value) ObjectSet(key string, val Value) {
	o := v.obj()
	if old, ok := o.fields[key]; ok {
		old.Release()
	} else {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = val.Retain()
}

func (v Value) ObjectDelete(key string) bool {
	o := v.obj()
	if _, ok := o.fields[key]; !ok {
		return false
	}
	o.fields[key].Release()
	delete(o.fields, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// ObjectKeys returns field names in insertion order.
func (v Value) ObjectKeys() []string {
	return v.obj().keys
}

func (v Value) ObjectLen() int { return len(v.obj().keys) }

// LookupMethod walks the instance's prototype chain looking for a
// method named name, returning the method Value and the class that
// defines it (needed for `super` dispatch).
func (v Value) LookupMethod(name string) (Value, *Class, bool) {
	for c := v.class; c != nil; c = c.Parent {
		if m, ok := c.Methods[name]; ok {
			return m, c, true
		}
	}
	return Value{}, nil, false
}
