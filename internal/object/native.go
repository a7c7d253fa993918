package object

// NativeData is the native-object extension of spec.md §3.6: a fixed
// table of named native getters/setters for objects that expose behavior
// no script property can express; its one user is the `arguments` object
// built by the evaluator's makeArguments. Unlike plain properties, native
// slots are not part of the
// ordered Props list and are never enumerated.
type NativeData struct {
	Slots map[string]NativeSlot
}

// NativeSlot pairs a native getter with an optional setter. Get is never
// nil; Set is nil for read-only native slots.
type NativeSlot struct {
	Get func(rt Runtime, this Value) (Value, error)
	Set func(rt Runtime, this Value, val Value) error
}

// NewNativeData builds an empty native slot table.
func NewNativeData() *NativeData {
	return &NativeData{Slots: make(map[string]NativeSlot)}
}

// Define installs a native slot under name.
func (n *NativeData) Define(name string, get func(rt Runtime, this Value) (Value, error), set func(rt Runtime, this Value, val Value) error) {
	n.Slots[name] = NativeSlot{Get: get, Set: set}
}

// NativeGet reads a named native slot, reporting ok=false when name is
// not a native slot so the caller falls through to the ordinary property
// path.
func (o *Object) NativeGet(rt Runtime, this Value, name string) (Value, bool, error) {
	if o.Native == nil {
		return Undefined, false, nil
	}
	slot, ok := o.Native.Slots[name]
	if !ok {
		return Undefined, false, nil
	}
	v, err := slot.Get(rt, this)
	return v, true, err
}

// NativePut writes a named native slot. handled is false when name is not
// a native slot. If the slot exists but has no setter, handled is true and
// err is nil (a silent no-op, matching non-strict assignment to a
// read-only property).
func (o *Object) NativePut(rt Runtime, this Value, name string, val Value) (handled bool, err error) {
	if o.Native == nil {
		return false, nil
	}
	slot, ok := o.Native.Slots[name]
	if !ok {
		return false, nil
	}
	if slot.Set == nil {
		return true, nil
	}
	return true, slot.Set(rt, this, val)
}
