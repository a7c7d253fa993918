package object

import "github.com/cwbudde/go-mjs/internal/heap"

// ArrayData is the array-object extension of spec.md §3.5: a length plus
// two parallel dense structures (a representation sequence and a
// presence bitmask) for indices 0..length-1. Integer-string names within
// range are served from here; everything else falls through to the
// ordinary property list on the owning Object.
type ArrayData struct {
	Length  uint32
	Storage heap.UntrackedHandle // heap.Vector of Representation, dense
	Present []bool               // presence bitmask, parallel to Storage
}

func (a *ArrayData) fixup(h *heap.Heap) {
	h.RegisterFixup((*heap.Pos)(&a.Storage))
}

// NewArray allocates a new array object with the given prototype.
func NewArray(h *heap.Heap, prototype heap.Pos) heap.Pos {
	storage := h.NewVector(nil)
	pos := h.Make(objectType, &Object{
		ClassName:  "Array",
		Prototype:  prototype,
		Internal:   heap.UndefinedRepr,
		Extensible: true,
		Variant:    VariantArray,
		Array: &ArrayData{
			Storage: storage,
		},
	})
	return pos
}

// indexOf reports whether key is a canonical array index (an unsigned
// 32-bit integer written in canonical decimal form) and its value.
func indexOf(key string) (uint32, bool) {
	if key == "" {
		return 0, false
	}
	if key == "0" {
		return 0, true
	}
	if key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	var n uint64
	for _, c := range key {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + uint64(c-'0')
		if n > 0xFFFFFFFF {
			return 0, false
		}
	}
	if n >= 0xFFFFFFFF {
		return 0, false // spec: array index < 2^32-1
	}
	return uint32(n), true
}

// ArrayGet implements the array dense-storage read path, falling back to
// ok=false when key doesn't address the dense storage so callers proceed
// to the general property path.
func (o *Object) ArrayGet(h *heap.Heap, key string) (Value, bool) {
	if key == "length" {
		return Number(float64(o.Array.Length)), true
	}
	idx, ok := indexOf(key)
	if !ok || idx >= o.Array.Length {
		return Undefined, false
	}
	v := h.GetVector(o.Array.Storage)
	if int(idx) >= len(v.Items) || !o.Array.Present[idx] {
		return Undefined, false
	}
	return FromRepresentation(v.Items[idx]), true
}

// ArrayPut writes through the dense storage, growing it as needed, or
// reports handled=false for keys the general property path should take.
func (o *Object) ArrayPut(h *heap.Heap, key string, val Value) (handled bool) {
	if key == "length" {
		n := uint32(val.Number())
		o.setLength(h, n)
		return true
	}
	idx, ok := indexOf(key)
	if !ok {
		return false
	}
	vec := h.GetVector(o.Array.Storage)
	if int(idx) >= len(vec.Items) {
		grown := make([]heap.Representation, idx+1)
		copy(grown, vec.Items)
		vec.Items = grown
		grownPresent := make([]bool, idx+1)
		copy(grownPresent, o.Array.Present)
		o.Array.Present = grownPresent
	}
	vec.Items[idx] = val.ToRepresentation()
	o.Array.Present[idx] = true
	if idx >= o.Array.Length {
		o.Array.Length = idx + 1
	}
	return true
}

// setLength truncates entries at indices >= n and deletes their
// properties (spec.md §3.5).
func (o *Object) setLength(h *heap.Heap, n uint32) {
	vec := h.GetVector(o.Array.Storage)
	if n < uint32(len(vec.Items)) {
		vec.Items = vec.Items[:n]
		o.Array.Present = o.Array.Present[:n]
	}
	o.Array.Length = n
}

// ArrayDelete removes a dense entry, or reports handled=false for the
// general property path.
func (o *Object) ArrayDelete(key string) (handled, deleted bool) {
	idx, ok := indexOf(key)
	if !ok {
		return false, false
	}
	if int(idx) < len(o.Array.Present) {
		o.Array.Present[idx] = false
	}
	return true, true
}

// ArrayOwnIndexKeys returns the dense, present indices as decimal keys in
// ascending order, ahead of the ordinary property keys.
func (o *Object) ArrayOwnIndexKeys() []string {
	var keys []string
	for i, present := range o.Array.Present {
		if present {
			keys = append(keys, itoa(i))
		}
	}
	return keys
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
