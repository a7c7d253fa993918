package object

import "github.com/cwbudde/go-mjs/internal/heap"

// GetProperty implements the general [[Get]] internal method (ES5 §8.12.3):
// dense array storage and native slots are checked at each level before the
// ordinary property list, then the search continues up the prototype
// chain. Accessor getters are always invoked with the original receiver as
// `this`, never the object the accessor was found on.
func GetProperty(rt Runtime, pos heap.Pos, name string) (Value, error) {
	receiver := ObjectAt(pos)
	for cur := pos; cur != 0; {
		obj := Get(rt.Heap(), cur)
		switch obj.Variant {
		case VariantArray:
			if v, ok := obj.ArrayGet(rt.Heap(), name); ok {
				return v, nil
			}
		case VariantNative:
			if v, ok, err := obj.NativeGet(rt, receiver, name); ok {
				return v, err
			}
		}
		if v, ok, err := obj.GetOwnProperty(rt, name, receiver); ok {
			return v, err
		}
		cur = heap.Pos(obj.Prototype)
	}
	return Undefined, nil
}

// HasProperty implements [[HasProperty]] (ES5 §8.12.6): true if name
// resolves anywhere in the prototype chain, through dense array storage,
// native slots, or the ordinary property list.
func HasProperty(h *heap.Heap, pos heap.Pos, name string) bool {
	for cur := pos; cur != 0; {
		obj := Get(h, cur)
		if obj.Variant == VariantArray {
			if name == "length" {
				return true
			}
			if idx, ok := indexOf(name); ok && idx < obj.Array.Length && int(idx) < len(obj.Array.Present) && obj.Array.Present[idx] {
				return true
			}
		}
		if obj.Variant == VariantNative && obj.Native != nil {
			if _, ok := obj.Native.Slots[name]; ok {
				return true
			}
		}
		if obj.HasOwnProperty(name) {
			return true
		}
		cur = heap.Pos(obj.Prototype)
	}
	return false
}

// CanPut reports whether [[Put]] would succeed for name on pos, without
// performing the write (ES5 §8.12.4).
func CanPut(h *heap.Heap, pos heap.Pos, name string) bool {
	obj := Get(h, pos)
	if obj.Variant == VariantArray || (obj.Variant == VariantNative && obj.Native != nil && obj.Native.Slots[name].Get != nil) {
		return true
	}
	if i := obj.findOwn(name); i >= 0 {
		p := obj.Props[i]
		if p.Attributes.Has(Accessor) {
			acc := getAccessor(h, p.Value)
			return !FromRepresentation(acc.Set).IsUndefined()
		}
		return !p.Attributes.Has(ReadOnly)
	}
	for protoPos := heap.Pos(obj.Prototype); protoPos != 0; {
		proto := Get(h, protoPos)
		if i := proto.findOwn(name); i >= 0 {
			p := proto.Props[i]
			if p.Attributes.Has(Accessor) {
				acc := getAccessor(h, p.Value)
				return !FromRepresentation(acc.Set).IsUndefined()
			}
			return obj.Extensible && !p.Attributes.Has(ReadOnly)
		}
		protoPos = heap.Pos(proto.Prototype)
	}
	return obj.Extensible
}

// PutProperty implements the general [[Put]] internal method (ES5 §8.12.5):
// dense array storage and native slots are tried first; otherwise an
// existing own accessor/data property is updated in place, an inherited
// accessor's setter is invoked, and a writable inherited data property (or
// no property at all, on an extensible object) results in a new own
// property. throwOnFail requests TypeError on an otherwise-silent failure,
// matching strict-mode assignment (spec.md §4.4/§7).
func PutProperty(rt Runtime, pos heap.Pos, name string, val Value, throwOnFail bool) error {
	h := rt.Heap()
	obj := Get(h, pos)
	receiver := ObjectAt(pos)

	switch obj.Variant {
	case VariantArray:
		if obj.ArrayPut(h, name, val) {
			return nil
		}
	case VariantNative:
		if handled, err := obj.NativePut(rt, receiver, name, val); handled {
			return err
		}
	}

	if i := obj.findOwn(name); i >= 0 {
		p := obj.Props[i]
		if p.Attributes.Has(Accessor) {
			return putAccessor(rt, receiver, p, name, val, throwOnFail)
		}
		if p.Attributes.Has(ReadOnly) {
			return rejectPut(rt, name, throwOnFail)
		}
		obj.Props[i].Value = val.ToRepresentation()
		return nil
	}

	for protoPos := heap.Pos(obj.Prototype); protoPos != 0; {
		proto := Get(h, protoPos)
		if i := proto.findOwn(name); i >= 0 {
			p := proto.Props[i]
			if p.Attributes.Has(Accessor) {
				return putAccessor(rt, receiver, p, name, val, throwOnFail)
			}
			if p.Attributes.Has(ReadOnly) {
				return rejectPut(rt, name, throwOnFail)
			}
			break
		}
		protoPos = heap.Pos(proto.Prototype)
	}

	if !obj.Extensible {
		return rejectPut(rt, name, throwOnFail)
	}
	obj.DefineOwnProperty(name, val.ToRepresentation(), 0)
	return nil
}

func putAccessor(rt Runtime, receiver Value, p Property, name string, val Value, throwOnFail bool) error {
	acc := getAccessor(rt.Heap(), p.Value)
	setter := FromRepresentation(acc.Set)
	if setter.IsUndefined() {
		return rejectPut(rt, name, throwOnFail)
	}
	_, err := CallValue(rt, setter, receiver, []Value{val})
	return err
}

func rejectPut(rt Runtime, name string, throwOnFail bool) error {
	if throwOnFail {
		return rt.Throw("TypeError", "cannot assign to read-only property '"+name+"'")
	}
	return nil
}

// DeleteProperty implements [[Delete]] (ES5 §8.12.7). Only own properties
// are ever deleted; a name resolved on a prototype is left untouched and
// reports deleted=true (there is nothing to delete on this object).
func DeleteProperty(rt Runtime, pos heap.Pos, name string, throwOnFail bool) (deleted bool, err error) {
	obj := Get(rt.Heap(), pos)
	if obj.Variant == VariantArray {
		if handled, ok := obj.ArrayDelete(name); handled {
			return ok, nil
		}
	}
	ok := obj.DeleteOwnProperty(name)
	if !ok && throwOnFail {
		return false, rt.Throw("TypeError", "property '"+name+"' is non-configurable")
	}
	return ok, nil
}

// EnumerateKeys collects own and inherited enumerable string keys in for-in
// order (ES5 §12.6.4): dense array indices first, then the ordinary
// property list, walking the prototype chain and skipping names already
// seen closer to the receiver.
func EnumerateKeys(h *heap.Heap, pos heap.Pos) []string {
	seen := make(map[string]bool)
	var keys []string
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for cur := pos; cur != 0; {
		obj := Get(h, cur)
		if obj.Variant == VariantArray {
			for _, k := range obj.ArrayOwnIndexKeys() {
				add(k)
			}
		}
		for _, k := range obj.OwnKeys(true) {
			add(k)
		}
		cur = heap.Pos(obj.Prototype)
	}
	return keys
}
