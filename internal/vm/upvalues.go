package vm

import "github.com/edadma/slate/internal/value"

// captureUpvalue returns the open upvalue pointing at stack slot, reusing
// one already captured for that slot so two closures created from the
// same enclosing frame share mutations to the variable (spec.md §4.5).
func (vm *VM) captureUpvalue(slot int) *value.Upvalue {
	if u, ok := vm.openUvalFor(slot); ok {
		return u
	}
	u := &value.Upvalue{Location: &vm.stack[slot]}
	vm.openUpval[slot] = u
	return u
}

func (vm *VM) openUvalFor(slot int) (*value.Upvalue, bool) {
	u, ok := vm.openUpval[slot]
	return u, ok
}

// closeUpvaluesFrom closes every open upvalue at or above fromSlot,
// copying the value out of the stack so it survives the frame's locals
// being released (spec.md §4.5's open->closed transition on return).
func (vm *VM) closeUpvaluesFrom(fromSlot int) {
	for slot, u := range vm.openUpval {
		if slot >= fromSlot {
			u.Close()
			delete(vm.openUpval, slot)
		}
	}
}
